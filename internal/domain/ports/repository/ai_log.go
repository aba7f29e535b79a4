package repository

import (
	"context"
	"time"

	"focus-guardian/internal/domain/model"
)

type AICallLogRepository interface {
	Save(ctx context.Context, tx Tx, log *model.AICallLog) error
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.AICallLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
