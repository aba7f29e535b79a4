package repository

import (
	"context"

	"focus-guardian/internal/domain/model"
)

type TaskRepository interface {
	Save(ctx context.Context, tx Tx, task *model.Task) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Task, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Task, error)
}
