package repository

import (
	"context"

	"focus-guardian/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, user *model.UserProfile) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.UserProfile, error)
	UpdateFullName(ctx context.Context, tx Tx, id, fullName string) error
}
