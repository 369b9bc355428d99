package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/services"
)

// LeaderboardHandler handles karma leaderboard HTTP requests
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// RegisterLeaderboardRoutes registers leaderboard-related routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(public, protected *echo.Group) {
	public.GET("/karma/leaderboard", h.GetLeaderboard)
	protected.GET("/karma/leaderboard/me", h.GetMyRank)
}

// GetLeaderboard returns the top users by karma over the current window
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	rows, err := h.leaderboardService.TopK(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rows)
}

// GetMyRank returns the caller's rank and karma over the current window
func (h *LeaderboardHandler) GetMyRank(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	result, err := h.leaderboardService.RankOf(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"username": claims.Username,
		"rank":     result.Rank,
		"karma":    result.Karma,
	})
}
