package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/mratin/sparkfeed/backend/internal/repositories"
	"github.com/mratin/sparkfeed/backend/pkg/storage"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	objectStore    storage.ObjectStore
}

// NewPostHandler creates a new PostHandler. The object store may be nil when
// image uploads are not configured.
func NewPostHandler(postRepo repositories.PostRepository, objectStore storage.ObjectStore) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		objectStore:    objectStore,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.ListPosts)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:post_id/image", h.DeletePostImage)
}

// ListPosts returns the newest posts annotated with like and comment counts
func (h *PostHandler) ListPosts(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		limit = 10
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	posts, err := h.postRepository.ListAnnotatedPosts(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, posts)
}

// CreatePost creates a new post from a multipart form with an optional image
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	content := strings.TrimSpace(c.FormValue("content"))
	file, fileErr := c.FormFile("image")
	if content == "" && fileErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Content or image is required")
	}

	var imageURL *string
	if fileErr == nil {
		if h.objectStore == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Image storage is not configured")
		}
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
		}
		defer src.Close()

		url, err := h.objectStore.Store(c.Request().Context(), src, file.Header.Get("Content-Type"))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
		}
		imageURL = &url
	}

	post := &models.Post{
		UserID:   claims.UserID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	annotated, err := h.postRepository.GetAnnotatedPostByID(c.Request().Context(), post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, annotated)
}

// DeletePostImage clears a post's image; only the post owner may do this
func (h *PostHandler) DeletePostImage(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post's image")
	}

	if post.ImageURL != nil && h.objectStore != nil {
		if err := h.objectStore.Delete(c.Request().Context(), *post.ImageURL); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image from storage")
		}
	}

	if err := h.postRepository.ClearImage(c.Request().Context(), post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
