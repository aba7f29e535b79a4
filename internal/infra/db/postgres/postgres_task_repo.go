package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.TaskRepository = (*taskRepo)(nil)

type taskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *taskRepo {
	return &taskRepo{pool: pool}
}

func (r *taskRepo) Save(ctx context.Context, tx repository.Tx, t *model.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	const q = `
INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  description = EXCLUDED.description,
  status = EXCLUDED.status,
  priority = EXCLUDED.priority,
  due_date = EXCLUDED.due_date;`

	_, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.UserID, t.Title, t.Description, string(t.Status), string(t.Priority), t.DueDate, t.CreatedAt)
	return err
}

func (r *taskRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taskRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Task, error) {
	const q = `
SELECT id, user_id, title, description, status, priority, due_date, created_at
FROM tasks WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	var t model.Task
	var status, priority string
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
		&status, &priority, &t.DueDate, &t.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	t.Status = model.TaskStatus(status)
	t.Priority = model.TaskPriority(priority)
	return &t, nil
}

func (r *taskRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Task, error) {
	const q = `
SELECT id, user_id, title, description, status, priority, due_date, created_at
FROM tasks WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Task
	for rows.Next() {
		var t model.Task
		var status, priority string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
			&status, &priority, &t.DueDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Status = model.TaskStatus(status)
		t.Priority = model.TaskPriority(priority)
		out = append(out, &t)
	}
	return out, rows.Err()
}
