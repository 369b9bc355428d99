package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// LeaderboardRow is one ranked user. The user__username key is what the
// frontend consumes.
type LeaderboardRow struct {
	UserID   uint   `json:"-"`
	Username string `json:"user__username"`
	Karma    int    `json:"karma"`
}

// RankResult is a single user's position on the full ranked list. Rank is
// nil when the user has no ledger activity inside the window.
type RankResult struct {
	Rank  *int `json:"rank"`
	Karma int  `json:"karma"`
}

// LeaderboardService aggregates the karma ledger over a trailing window.
// The ledger is append-only, so reads take no locks.
type LeaderboardService struct {
	db     *gorm.DB
	window time.Duration
	topK   int
	now    func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(db *gorm.DB, window time.Duration, topK int) *LeaderboardService {
	return &LeaderboardService{db: db, window: window, topK: topK, now: time.Now}
}

// rankedQuery sums ledger points per user inside the window. The window
// lower bound is inclusive. Karma ties break by user id ascending so the
// order is deterministic.
const rankedQuery = `
SELECT kt.user_id,
       u.username,
       SUM(kt.points) AS karma
FROM karma_transactions kt
JOIN users u ON u.id = kt.user_id
WHERE kt.created_at >= @since
GROUP BY kt.user_id, u.username
ORDER BY karma DESC, kt.user_id ASC
`

func (s *LeaderboardService) ranked(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	since := s.now().Add(-s.window)
	query := rankedQuery
	args := map[string]interface{}{"since": since}
	if limit > 0 {
		query += "LIMIT @k"
		args["k"] = limit
	}

	var rows []LeaderboardRow
	if err := s.db.WithContext(ctx).Raw(query, args).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []LeaderboardRow{}
	}
	return rows, nil
}

// TopK returns the highest-karma users of the current window.
func (s *LeaderboardService) TopK(ctx context.Context) ([]LeaderboardRow, error) {
	return s.ranked(ctx, s.topK)
}

// RankOf computes the full ranking and scans it for the given user,
// returning their 1-based rank and windowed karma.
func (s *LeaderboardService) RankOf(ctx context.Context, userID uint) (RankResult, error) {
	rows, err := s.ranked(ctx, 0)
	if err != nil {
		return RankResult{}, err
	}
	for i, row := range rows {
		if row.UserID == userID {
			rank := i + 1
			return RankResult{Rank: &rank, Karma: row.Karma}, nil
		}
	}
	return RankResult{Rank: nil, Karma: 0}, nil
}
