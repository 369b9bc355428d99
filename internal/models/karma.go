package models

import "time"

// Karma transaction sources. Every ledger entry records which action
// produced it so history stays auditable.
const (
	KarmaSourcePostLike      = "post_like"
	KarmaSourcePostUnlike    = "post_unlike"
	KarmaSourceCommentLike   = "comment_like"
	KarmaSourceCommentUnlike = "comment_unlike"
)

// KarmaTransaction is one append-only ledger entry. A user's karma is the
// sum of their entries; rows are never updated or deleted.
type KarmaTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Points    int       `gorm:"not null" json:"points"`
	Source    string    `gorm:"not null;size:50" json:"source"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
