package models

import "time"

// Comment represents a comment on a post. Comments form a tree per post via
// ParentID; root comments have no parent. A parent always belongs to the
// same post as its children.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	Post      Post      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	Parent    *Comment  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment with its replies nested, as returned to clients.
type CommentNode struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	Author    string         `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	ParentID  *uint          `json:"parent_id"`
	Children  []*CommentNode `json:"children"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=500"`
	ParentID *uint  `json:"parent_id"`
}
