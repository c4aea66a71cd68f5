package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository persists normalized stats records keyed by user+platform.
type StatsRepository struct {
	db *pgxpool.Pool
}

const upsertStatsQuery = `
INSERT INTO platform_stats (
    user_id, platform, username, solved_count, rating, highest_rating,
    global_rank, country_rank, easy_count, medium_count, hard_count,
    fundamental_count, total_contest, last_updated, last_success_at, last_error
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14, NULL)
ON CONFLICT (user_id, platform) DO UPDATE SET
    username = EXCLUDED.username,
    solved_count = EXCLUDED.solved_count,
    rating = EXCLUDED.rating,
    highest_rating = EXCLUDED.highest_rating,
    global_rank = EXCLUDED.global_rank,
    country_rank = EXCLUDED.country_rank,
    easy_count = EXCLUDED.easy_count,
    medium_count = EXCLUDED.medium_count,
    hard_count = EXCLUDED.hard_count,
    fundamental_count = EXCLUDED.fundamental_count,
    total_contest = EXCLUDED.total_contest,
    last_updated = EXCLUDED.last_updated,
    last_success_at = EXCLUDED.last_success_at,
    last_error = NULL
`

// A failed fetch only records the error, keeping the last good numbers.
const recordFailureQuery = `
INSERT INTO platform_stats (user_id, platform, username, last_updated, last_error)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, platform) DO UPDATE SET
    last_updated = EXCLUDED.last_updated,
    last_error = EXCLUDED.last_error
`

// Upsert writes every record in one batch.
func (r *StatsRepository) Upsert(ctx context.Context, userID uuid.UUID, stats []model.PlatformStats) error {
	if len(stats) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range stats {
		if s.Failed() {
			batch.Queue(recordFailureQuery, userID, string(s.Platform), s.Username, s.LastUpdated, s.Error)
			continue
		}
		batch.Queue(upsertStatsQuery,
			userID, string(s.Platform), s.Username, s.SolvedCount,
			s.Rating, s.HighestRating, s.GlobalRank, s.CountryRank,
			s.EasyCount, s.MediumCount, s.HardCount, s.FundamentalCount,
			s.TotalContest, s.LastUpdated,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := range stats {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert stats %s: %w", stats[i].Platform, err)
		}
	}
	return nil
}

const selectStatsColumns = `
SELECT platform, username, solved_count, rating, highest_rating, global_rank,
       country_rank, easy_count, medium_count, hard_count, fundamental_count,
       total_contest, last_updated, COALESCE(last_error, '')
FROM platform_stats
`

func scanStats(row pgx.Row) (model.PlatformStats, error) {
	var s model.PlatformStats
	err := row.Scan(
		&s.Platform, &s.Username, &s.SolvedCount, &s.Rating, &s.HighestRating,
		&s.GlobalRank, &s.CountryRank, &s.EasyCount, &s.MediumCount, &s.HardCount,
		&s.FundamentalCount, &s.TotalContest, &s.LastUpdated, &s.Error,
	)
	s.LastUpdated = s.LastUpdated.UTC()
	return s, err
}

// Get returns the stored record for one platform, or ErrNotFound.
func (r *StatsRepository) Get(ctx context.Context, userID uuid.UUID, platform model.Platform) (model.PlatformStats, error) {
	row := r.db.QueryRow(ctx, selectStatsColumns+"WHERE user_id = $1 AND platform = $2", userID, string(platform))
	s, err := scanStats(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PlatformStats{}, ErrNotFound
	}
	if err != nil {
		return model.PlatformStats{}, fmt.Errorf("get stats %s: %w", platform, err)
	}
	return s, nil
}

// ListByUser returns the stored records. A row whose latest fetch failed
// carries that error next to the last successfully fetched values.
func (r *StatsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlatformStats, error) {
	rows, err := r.db.Query(ctx, selectStatsColumns+"WHERE user_id = $1 ORDER BY platform ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := make([]model.PlatformStats, 0, len(model.Platforms))
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// Leaderboard ranks users on one platform by problems solved, then rating.
// Rows that never fetched successfully are excluded; a later failure keeps
// the last good numbers on the board.
func (r *StatsRepository) Leaderboard(ctx context.Context, platform model.Platform, limit int) ([]model.LeaderboardEntry, error) {
	const q = `
SELECT user_id, username, solved_count, rating, last_updated
FROM platform_stats
WHERE platform = $1
  AND last_success_at IS NOT NULL
  AND solved_count ~ '^[0-9]+$'
ORDER BY solved_count::bigint DESC,
         CASE WHEN rating ~ '^[0-9]+$' THEN rating::bigint END DESC NULLS LAST,
         username ASC
LIMIT $2
`
	rows, err := r.db.Query(ctx, q, string(platform), limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		e := model.LeaderboardEntry{Rank: len(out) + 1}
		if err := rows.Scan(&e.UserID, &e.Username, &e.SolvedCount, &e.Rating, &e.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
