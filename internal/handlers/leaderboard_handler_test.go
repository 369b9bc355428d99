package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/mratin/sparkfeed/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLeaderboard(t *testing.T) {
	db := newTestDB(t)
	h := NewLeaderboardHandler(services.NewLeaderboardService(db, 24*time.Hour, 5))
	e := echo.New()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	for userID, points := range map[uint]int{alice.ID: 10, bob.ID: 25} {
		entry := models.KarmaTransaction{
			UserID:    userID,
			Points:    points,
			Source:    models.KarmaSourcePostLike,
			CreatedAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/karma/leaderboard", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.GetLeaderboard(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0]["user__username"])
	assert.EqualValues(t, 25, rows[0]["karma"])
	assert.Equal(t, "alice", rows[1]["user__username"])
}

func TestGetMyRank(t *testing.T) {
	db := newTestDB(t)
	h := NewLeaderboardHandler(services.NewLeaderboardService(db, 24*time.Hour, 5))
	e := echo.New()

	alice := createTestUser(t, db, "alice")
	entry := models.KarmaTransaction{
		UserID:    alice.ID,
		Points:    7,
		Source:    models.KarmaSourceCommentLike,
		CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&entry).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/karma/leaderboard/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claimsFor(alice))

	require.NoError(t, h.GetMyRank(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.EqualValues(t, 1, body["rank"])
	assert.EqualValues(t, 7, body["karma"])
}

func TestGetMyRankNoActivity(t *testing.T) {
	db := newTestDB(t)
	h := NewLeaderboardHandler(services.NewLeaderboardService(db, 24*time.Hour, 5))
	e := echo.New()

	alice := createTestUser(t, db, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/karma/leaderboard/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claimsFor(alice))

	require.NoError(t, h.GetMyRank(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["rank"])
	assert.EqualValues(t, 0, body["karma"])
}
