package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/mratin/sparkfeed/backend/internal/repositories"
	"gorm.io/gorm"
)

// CommentService builds threaded comment trees and accepts new comments.
type CommentService struct {
	db          *gorm.DB
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{db: db, commentRepo: commentRepo, userRepo: userRepo}
}

// TreeForPost returns the comment forest for a post, roots ordered by
// creation time. An unknown post simply yields an empty forest.
func (s *CommentService) TreeForPost(ctx context.Context, postID uint) ([]*models.CommentNode, error) {
	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return BuildForest(comments), nil
}

// BuildForest reconstructs the parent/children forest from a flat list of
// comments already ordered by creation time. Two iterative passes: one to
// allocate every node, one to attach each node to its parent. Children
// inherit the fetch order, so no per-parent re-sort happens. A comment whose
// parent is missing from the list becomes a root rather than an error, and
// depth is unbounded because nothing here recurses.
func BuildForest(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[uint]*models.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentNode{
			ID:        c.ID,
			Content:   c.Content,
			Author:    c.Author.Username,
			CreatedAt: c.CreatedAt,
			ParentID:  c.ParentID,
			Children:  []*models.CommentNode{},
		}
	}

	roots := []*models.CommentNode{}
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// AddComment validates and persists a new comment, returning it as a leaf
// node. A parent, when given, must exist on the same post.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID uint, content string, parentID *uint) (*models.CommentNode, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("content is required: %w", ErrValidation)
	}

	if err := s.db.WithContext(ctx).First(&models.Post{}, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, ErrNotFound)
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetCommentByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("parent comment %d: %w", *parentID, ErrNotFound)
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("parent comment %d: %w", *parentID, ErrNotFound)
		}
	}

	author, err := s.userRepo.GetUserByID(authorID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return &models.CommentNode{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    author.Username,
		CreatedAt: comment.CreatedAt,
		ParentID:  comment.ParentID,
		Children:  []*models.CommentNode{},
	}, nil
}
