package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.ToolRepository = (*toolRepo)(nil)

type toolRepo struct {
	pool *pgxpool.Pool
}

func NewToolRepo(pool *pgxpool.Pool) *toolRepo {
	return &toolRepo{pool: pool}
}

func (r *toolRepo) Save(ctx context.Context, tx repository.Tx, t *model.Tool) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	const q = `
INSERT INTO tools (id, user_id, name, description, category, url, pricing_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  description = EXCLUDED.description,
  category = EXCLUDED.category,
  url = EXCLUDED.url,
  pricing_type = EXCLUDED.pricing_type;`

	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.UserID, t.Name, t.Description, t.Category, t.URL, t.PricingType, t.CreatedAt)
	return err
}

func (r *toolRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM tools WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *toolRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tool, error) {
	const q = `
SELECT id, user_id, name, description, category, url, pricing_type, created_at
FROM tools WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var t model.Tool
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Category,
		&t.URL, &t.PricingType, &t.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &t, nil
}

func (r *toolRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Tool, error) {
	const q = `
SELECT id, user_id, name, description, category, url, pricing_type, created_at
FROM tools WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Tool
	for rows.Next() {
		var t model.Tool
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Category,
			&t.URL, &t.PricingType, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
