// File: internal/usecase/tool_uc.go
package usecase

import (
	"context"
	"strings"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

// Compile-time check
var _ ToolUseCase = (*toolUC)(nil)

type ToolUseCase interface {
	Create(ctx context.Context, tool *model.Tool) error
	Update(ctx context.Context, userID string, tool *model.Tool) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*model.Tool, error)
}

type toolUC struct {
	tools repository.ToolRepository
}

func NewToolUseCase(tools repository.ToolRepository) *toolUC {
	return &toolUC{tools: tools}
}

func (t *toolUC) Create(ctx context.Context, tool *model.Tool) error {
	if tool == nil || tool.UserID == "" || strings.TrimSpace(tool.Name) == "" {
		return domain.ErrInvalidArgument
	}
	tool.ID = ""
	return t.tools.Save(ctx, repository.NoTX, tool)
}

func (t *toolUC) Update(ctx context.Context, userID string, tool *model.Tool) error {
	if tool == nil || tool.ID == "" || strings.TrimSpace(tool.Name) == "" {
		return domain.ErrInvalidArgument
	}
	existing, err := t.tools.FindByID(ctx, repository.NoTX, tool.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}
	tool.UserID = existing.UserID
	tool.CreatedAt = existing.CreatedAt
	return t.tools.Save(ctx, repository.NoTX, tool)
}

func (t *toolUC) Delete(ctx context.Context, userID, id string) error {
	return t.tools.Delete(ctx, repository.NoTX, userID, id)
}

func (t *toolUC) List(ctx context.Context, userID string) ([]*model.Tool, error) {
	return t.tools.ListByUser(ctx, repository.NoTX, userID)
}
