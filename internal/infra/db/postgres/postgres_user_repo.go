package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

// userRepo stores profile rows keyed by the identity-provider subject. The
// ID is never generated here.
type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.UserProfile) error {
	if u.ID == "" {
		return domain.ErrInvalidArgument
	}

	const q = `
INSERT INTO user_profiles (id, email, full_name, focus_integrity_score, registered_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  focus_integrity_score = EXCLUDED.focus_integrity_score;`

	_, err := execSQL(ctx, r.pool, tx, q,
		u.ID, u.Email, u.FullName, u.FocusIntegrityScore, u.RegisteredAt)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.UserProfile, error) {
	const q = `
SELECT id, email, full_name, focus_integrity_score, registered_at
FROM user_profiles WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var u model.UserProfile
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.FocusIntegrityScore, &u.RegisteredAt); err != nil {
		return nil, mapPgError(err)
	}
	return &u, nil
}

func (r *userRepo) UpdateFullName(ctx context.Context, tx repository.Tx, id, fullName string) error {
	tag, err := execSQL(ctx, r.pool, tx,
		`UPDATE user_profiles SET full_name = $2 WHERE id = $1;`, id, fullName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
