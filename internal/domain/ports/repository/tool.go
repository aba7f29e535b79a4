package repository

import (
	"context"

	"focus-guardian/internal/domain/model"
)

type ToolRepository interface {
	Save(ctx context.Context, tx Tx, tool *model.Tool) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Tool, error)
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Tool, error)
}
