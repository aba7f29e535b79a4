package repository

import (
	"context"

	"focus-guardian/internal/domain/model"
)

type FocusSessionRepository interface {
	Save(ctx context.Context, tx Tx, session *model.FocusSession) error
	ListByUser(ctx context.Context, tx Tx, userID string) ([]model.FocusSession, error)
	CountByUser(ctx context.Context, tx Tx, userID string) (int, error)
}
