package repositories

import (
	"context"
	"time"

	"github.com/mratin/sparkfeed/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetAnnotatedPostByID(ctx context.Context, id uint) (*models.AnnotatedPost, error)
	ListAnnotatedPosts(ctx context.Context, limit int) ([]models.AnnotatedPost, error)
	ClearImage(ctx context.Context, id uint) error
}

// annotatedPostSelect joins each post with its author and computes the feed
// counts. comment_count deliberately counts root comments only (parent_id IS
// NULL); replies are reachable through the comment tree, not the feed badge.
const annotatedPostSelect = `
SELECT p.id,
       u.username,
       p.content,
       p.image_url,
       p.created_at,
       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id AND c.parent_id IS NULL) AS comment_count
FROM posts p
JOIN users u ON u.id = p.user_id
`

// annotatedPostRow is the scan target for annotatedPostSelect.
type annotatedPostRow struct {
	ID           uint
	Username     string
	Content      string
	ImageURL     *string
	CreatedAt    time.Time
	LikeCount    int64
	CommentCount int64
}

func (row annotatedPostRow) toModel() models.AnnotatedPost {
	return models.AnnotatedPost{
		ID:           row.ID,
		User:         row.Username,
		Content:      row.Content,
		Image:        row.ImageURL,
		CreatedAt:    row.CreatedAt.Format(models.PostCreatedAtLayout),
		LikeCount:    row.LikeCount,
		CommentCount: row.CommentCount,
	}
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAnnotatedPostByID retrieves a single post with author and counts
func (r *PostgresPostRepository) GetAnnotatedPostByID(ctx context.Context, id uint) (*models.AnnotatedPost, error) {
	var row annotatedPostRow
	err := r.db.WithContext(ctx).
		Raw(annotatedPostSelect+"WHERE p.id = @id", map[string]interface{}{"id": id}).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	annotated := row.toModel()
	return &annotated, nil
}

// ListAnnotatedPosts retrieves the newest posts with author and counts
func (r *PostgresPostRepository) ListAnnotatedPosts(ctx context.Context, limit int) ([]models.AnnotatedPost, error) {
	var rows []annotatedPostRow
	err := r.db.WithContext(ctx).
		Raw(annotatedPostSelect+"ORDER BY p.created_at DESC, p.id DESC LIMIT @limit",
			map[string]interface{}{"limit": limit}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	annotated := make([]models.AnnotatedPost, len(rows))
	for i, row := range rows {
		annotated[i] = row.toModel()
	}
	return annotated, nil
}

// ClearImage removes the image reference from a post
func (r *PostgresPostRepository) ClearImage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("image_url", nil).Error
}
