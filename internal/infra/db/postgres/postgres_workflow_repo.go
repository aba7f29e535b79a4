package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

var _ repository.WorkflowRepository = (*workflowRepo)(nil)

// workflowRepo stores workflow actions as a JSONB column rather than a child
// table; actions are always read and written as a unit.
type workflowRepo struct {
	pool *pgxpool.Pool
}

func NewWorkflowRepo(pool *pgxpool.Pool) *workflowRepo {
	return &workflowRepo{pool: pool}
}

func (r *workflowRepo) Save(ctx context.Context, tx repository.Tx, wf *model.Workflow) error {
	if wf.ID == "" {
		wf.ID = uuid.NewString()
	}
	wf.UpdatedAt = time.Now()

	actions, err := json.Marshal(wf.Actions)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO workflows (id, user_id, name, description, trigger, actions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  description = EXCLUDED.description,
  trigger = EXCLUDED.trigger,
  actions = EXCLUDED.actions,
  updated_at = EXCLUDED.updated_at;`

	_, err = execSQL(ctx, r.pool, tx, q,
		wf.ID, wf.UserID, wf.Name, wf.Description, wf.Trigger, actions, wf.CreatedAt, wf.UpdatedAt)
	return err
}

func (r *workflowRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	tag, err := execSQL(ctx, r.pool, tx, `DELETE FROM workflows WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *workflowRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Workflow, error) {
	const q = `
SELECT id, user_id, name, description, trigger, actions, created_at, updated_at
FROM workflows WHERE id = $1;`

	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanWorkflow(row)
}

func (r *workflowRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Workflow, error) {
	const q = `
SELECT id, user_id, name, description, trigger, actions, created_at, updated_at
FROM workflows WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Workflow
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wf)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkflow(row rowScanner) (*model.Workflow, error) {
	var wf model.Workflow
	var actions []byte
	if err := row.Scan(&wf.ID, &wf.UserID, &wf.Name, &wf.Description, &wf.Trigger,
		&actions, &wf.CreatedAt, &wf.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	if len(actions) > 0 {
		if err := json.Unmarshal(actions, &wf.Actions); err != nil {
			return nil, err
		}
	}
	return &wf, nil
}
