package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid/v2"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.AICallLogRepository = (*aiLogRepo)(nil)

// aiLogRepo is append-mostly: logs are written after each AI call and pruned
// in bulk by the retention worker. ULIDs keep inserts roughly time-ordered.
type aiLogRepo struct {
	pool *pgxpool.Pool
}

func NewAILogRepo(pool *pgxpool.Pool) *aiLogRepo {
	return &aiLogRepo{pool: pool}
}

func (r *aiLogRepo) Save(ctx context.Context, tx repository.Tx, l *model.AICallLog) error {
	if l.ID == "" {
		l.ID = ulid.Make().String()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}

	const q = `
INSERT INTO ai_call_logs (id, user_id, prompt, response, tokens_used, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err := execSQL(ctx, r.pool, tx, q,
		l.ID, l.UserID, l.Prompt, l.Response, l.TokensUsed, l.Model, l.CreatedAt)
	return err
}

func (r *aiLogRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.AICallLog, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, user_id, prompt, response, tokens_used, model, created_at
FROM ai_call_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AICallLog
	for rows.Next() {
		var l model.AICallLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Prompt, &l.Response,
			&l.TokensUsed, &l.Model, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *aiLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := execSQL(ctx, r.pool, repository.NoTX,
		`DELETE FROM ai_call_logs WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
