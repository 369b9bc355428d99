package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/models"
)

// currentClaims returns the JWT claims the auth middleware stored, or nil on
// unauthenticated requests.
func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}
