package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.FocusSessionRepository = (*focusSessionRepo)(nil)

type focusSessionRepo struct {
	pool *pgxpool.Pool
}

func NewFocusSessionRepo(pool *pgxpool.Pool) *focusSessionRepo {
	return &focusSessionRepo{pool: pool}
}

func (r *focusSessionRepo) Save(ctx context.Context, tx repository.Tx, s *model.FocusSession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	const q = `
INSERT INTO focus_sessions (id, user_id, intent, duration_seconds, started_at, ended_at, completed, distraction_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  ended_at = EXCLUDED.ended_at,
  completed = EXCLUDED.completed,
  distraction_count = EXCLUDED.distraction_count;`

	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.UserID, s.Intent, s.DurationSeconds, s.StartedAt, s.EndedAt, s.Completed, s.DistractionCount)
	return err
}

func (r *focusSessionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]model.FocusSession, error) {
	const q = `
SELECT id, user_id, intent, duration_seconds, started_at, ended_at, completed, distraction_count
FROM focus_sessions
WHERE user_id = $1
ORDER BY started_at DESC;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FocusSession
	for rows.Next() {
		var s model.FocusSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Intent, &s.DurationSeconds,
			&s.StartedAt, &s.EndedAt, &s.Completed, &s.DistractionCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *focusSessionRepo) CountByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM focus_sessions WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, mapPgError(err)
	}
	return n, nil
}
