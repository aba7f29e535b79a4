package repository

import (
	"context"

	"focus-guardian/internal/domain/model"
)

type WorkflowRepository interface {
	Save(ctx context.Context, tx Tx, wf *model.Workflow) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Workflow, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Workflow, error)
}
