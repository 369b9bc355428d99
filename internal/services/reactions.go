package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mratin/sparkfeed/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Karma weights per target kind. Fixed constants, not configurable per call.
const (
	postLikeWeight    = 5
	commentLikeWeight = 1
)

type targetKind int

const (
	targetPost targetKind = iota
	targetComment
)

// LikeTarget identifies the one thing a like applies to. The tagged form
// makes "exactly one of post or comment" impossible to violate at call
// sites.
type LikeTarget struct {
	kind targetKind
	id   uint
}

// PostTarget addresses a post by id.
func PostTarget(id uint) LikeTarget { return LikeTarget{kind: targetPost, id: id} }

// CommentTarget addresses a comment by id.
func CommentTarget(id uint) LikeTarget { return LikeTarget{kind: targetComment, id: id} }

func (t LikeTarget) weight() int {
	if t.kind == targetPost {
		return postLikeWeight
	}
	return commentLikeWeight
}

func (t LikeTarget) likeSource() string {
	if t.kind == targetPost {
		return models.KarmaSourcePostLike
	}
	return models.KarmaSourceCommentLike
}

func (t LikeTarget) unlikeSource() string {
	if t.kind == targetPost {
		return models.KarmaSourcePostUnlike
	}
	return models.KarmaSourceCommentUnlike
}

// ownerID resolves the user who receives karma for likes on this target.
func (t LikeTarget) ownerID(tx *gorm.DB) (uint, error) {
	switch t.kind {
	case targetPost:
		var post models.Post
		if err := tx.First(&post, t.id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("post %d: %w", t.id, ErrNotFound)
			}
			return 0, err
		}
		return post.UserID, nil
	default:
		var comment models.Comment
		if err := tx.First(&comment, t.id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("comment %d: %w", t.id, ErrNotFound)
			}
			return 0, err
		}
		return comment.AuthorID, nil
	}
}

// newLike builds the Like row for this target with the matching FK set.
func (t LikeTarget) newLike(userID uint) models.Like {
	like := models.Like{UserID: userID}
	id := t.id
	if t.kind == targetPost {
		like.PostID = &id
	} else {
		like.CommentID = &id
	}
	return like
}

// pairFilter matches the single Like row for (actor, target).
func (t LikeTarget) pairFilter(tx *gorm.DB, userID uint) *gorm.DB {
	if t.kind == targetPost {
		return tx.Where("user_id = ? AND post_id = ?", userID, t.id)
	}
	return tx.Where("user_id = ? AND comment_id = ?", userID, t.id)
}

// countFilter matches all Like rows for the target.
func (t LikeTarget) countFilter(tx *gorm.DB) *gorm.DB {
	if t.kind == targetPost {
		return tx.Where("post_id = ?", t.id)
	}
	return tx.Where("comment_id = ?", t.id)
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	Liked     bool
	LikeCount int64
}

// ReactionService atomically flips like state and keeps the karma ledger in
// step. Every toggle commits exactly one Like row change and exactly one
// ledger append, or neither.
type ReactionService struct {
	db *gorm.DB
}

// NewReactionService creates a new ReactionService
func NewReactionService(db *gorm.DB) *ReactionService {
	return &ReactionService{db: db}
}

// Toggle flips the like state of (actor, target). Concurrent toggles on the
// same pair serialize on the locked Like row; when both racers insert into
// the gap, the unique index rejects the loser and one retry resolves it as
// an unlike of the winner's row.
func (s *ReactionService) Toggle(ctx context.Context, actorID uint, target LikeTarget) (ToggleResult, error) {
	res, err := s.toggleOnce(ctx, actorID, target)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		res, err = s.toggleOnce(ctx, actorID, target)
	}
	return res, err
}

func (s *ReactionService) toggleOnce(ctx context.Context, actorID uint, target LikeTarget) (ToggleResult, error) {
	var out ToggleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := target.ownerID(tx)
		if err != nil {
			return err
		}

		lookup := target.pairFilter(tx, actorID)
		if tx.Dialector.Name() == "postgres" {
			// SQLite serializes writers on its own and rejects FOR UPDATE.
			lookup = lookup.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.Like
		switch err := lookup.First(&existing).Error; {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := appendKarma(tx, ownerID, -target.weight(), target.unlikeSource()); err != nil {
				return err
			}
			out.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := target.newLike(actorID)
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := appendKarma(tx, ownerID, target.weight(), target.likeSource()); err != nil {
				return err
			}
			out.Liked = true
		default:
			return err
		}

		return target.countFilter(tx.Model(&models.Like{})).Count(&out.LikeCount).Error
	})
	if err != nil {
		return ToggleResult{}, err
	}
	return out, nil
}

// appendKarma writes one ledger entry inside the caller's transaction.
func appendKarma(tx *gorm.DB, userID uint, points int, source string) error {
	entry := models.KarmaTransaction{
		UserID: userID,
		Points: points,
		Source: source,
	}
	return tx.Create(&entry).Error
}
