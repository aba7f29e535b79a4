// File: internal/usecase/user_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	GetOrCreate(ctx context.Context, id, email string) (*model.UserProfile, error)
	UpdateFullName(ctx context.Context, id, fullName string) error
}

type userUC struct {
	users repository.UserRepository
}

func NewUserUseCase(users repository.UserRepository) *userUC {
	return &userUC{users: users}
}

// GetOrCreate returns the stored profile, creating one on first sight of an
// identity-provider subject.
func (u *userUC) GetOrCreate(ctx context.Context, id, email string) (*model.UserProfile, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	profile, err := u.users.FindByID(ctx, repository.NoTX, id)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = model.NewUserProfile(id, email)
	if err := u.users.Save(ctx, repository.NoTX, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *userUC) UpdateFullName(ctx context.Context, id, fullName string) error {
	if id == "" || strings.TrimSpace(fullName) == "" {
		return domain.ErrInvalidArgument
	}
	return u.users.UpdateFullName(ctx, repository.NoTX, id, fullName)
}
