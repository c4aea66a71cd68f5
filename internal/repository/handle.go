package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandleRepository stores the platform usernames a user has linked.
type HandleRepository struct {
	db *pgxpool.Pool
}

// ListByUser returns the user's linked handles in platform order.
func (r *HandleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlatformHandle, error) {
	const q = `
SELECT user_id, platform, username, created_at, updated_at
FROM platform_handles
WHERE user_id = $1
ORDER BY platform ASC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query handles: %w", err)
	}
	defer rows.Close()

	out := make([]model.PlatformHandle, 0, len(model.Platforms))
	for rows.Next() {
		var h model.PlatformHandle
		if err := rows.Scan(&h.UserID, &h.Platform, &h.Username, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan handle row: %w", err)
		}
		out = append(out, h)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

// Replace makes handles the user's complete set of links. Stats rows for
// platforms that were unlinked or whose username changed are dropped.
func (r *HandleRepository) Replace(ctx context.Context, userID uuid.UUID, handles []model.PlatformHandle) error {
	const upsert = `
INSERT INTO platform_handles (user_id, platform, username, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (user_id, platform)
DO UPDATE SET username = EXCLUDED.username, updated_at = now()
`
	const prune = `
DELETE FROM platform_handles
WHERE user_id = $1 AND NOT (platform = ANY($2))
`
	const pruneStats = `
DELETE FROM platform_stats s
WHERE s.user_id = $1
  AND NOT EXISTS (
    SELECT 1 FROM platform_handles h
    WHERE h.user_id = s.user_id AND h.platform = s.platform AND h.username = s.username
  )
`
	platforms := make([]string, 0, len(handles))
	for _, h := range handles {
		platforms = append(platforms, string(h.Platform))
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, prune, userID, platforms); err != nil {
			return fmt.Errorf("prune handles: %w", err)
		}

		batch := &pgx.Batch{}
		for _, h := range handles {
			batch.Queue(upsert, userID, string(h.Platform), h.Username)
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < len(handles); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("duplicate handle %s: %w", handles[i].Platform, err)
				}
				return fmt.Errorf("upsert handle %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}

		if _, err := tx.Exec(ctx, pruneStats, userID); err != nil {
			return fmt.Errorf("prune stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace handles: %w", err)
	}
	return nil
}
