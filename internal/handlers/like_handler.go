package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/services"
)

// LikeHandler handles HTTP requests that toggle likes
type LikeHandler struct {
	reactionService *services.ReactionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(reactionService *services.ReactionService) *LikeHandler {
	return &LikeHandler{reactionService: reactionService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(protected *echo.Group) {
	protected.POST("/likes/post/:post_id", h.TogglePostLike)
	protected.POST("/likes/comment/:comment_id", h.ToggleCommentLike)
}

// TogglePostLike flips the caller's like on a post
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	res, err := h.reactionService.Toggle(c.Request().Context(), claims.UserID, services.PostTarget(uint(postID)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "Post unliked"
	if res.Liked {
		message = "Post liked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"liked":      res.Liked,
		"like_count": res.LikeCount,
	})
}

// ToggleCommentLike flips the caller's like on a comment
func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	res, err := h.reactionService.Toggle(c.Request().Context(), claims.UserID, services.CommentTarget(uint(commentID)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := "Comment unliked"
	if res.Liked {
		message = "Comment liked"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    message,
		"liked":      res.Liked,
		"like_count": res.LikeCount,
	})
}
