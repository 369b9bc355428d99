package models

import "time"

// Post represents a social media post. Content and image are both optional,
// but at least one must be present at creation time.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image"` // URL in the object store, nil when the post has no image
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// AnnotatedPost is a post enriched with its author name and the counts the
// feed displays. comment_count counts only root comments, not replies.
type AnnotatedPost struct {
	ID           uint    `json:"id"`
	User         string  `json:"user"`
	Content      string  `json:"content"`
	Image        *string `json:"image"`
	CreatedAt    string  `json:"created_at"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
}

// PostCreatedAtLayout matches the display format the frontend expects.
const PostCreatedAtLayout = "02 Jan 2006, 03:04 PM"
