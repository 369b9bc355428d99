package models

import "time"

// Like represents a like on exactly one of a post or a comment. The check
// constraint makes the exactly-one-of rule a storage guarantee rather than
// call-site discipline, and the composite unique indexes allow at most one
// like per (user, post) and per (user, comment).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post_like;uniqueIndex:idx_user_comment_like;check:chk_like_one_target,(post_id IS NULL) <> (comment_id IS NULL)"`
	PostID    *uint     `json:"post_id,omitempty" gorm:"index;uniqueIndex:idx_user_post_like"`
	CommentID *uint     `json:"comment_id,omitempty" gorm:"index;uniqueIndex:idx_user_comment_like"`
	CreatedAt time.Time `json:"created_at"`
}
