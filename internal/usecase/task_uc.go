// File: internal/usecase/task_uc.go
package usecase

import (
	"context"
	"strings"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
)

// Compile-time check
var _ TaskUseCase = (*taskUC)(nil)

type TaskUseCase interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, userID string, task *model.Task) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*model.Task, error)
}

type taskUC struct {
	tasks repository.TaskRepository
}

func NewTaskUseCase(tasks repository.TaskRepository) *taskUC {
	return &taskUC{tasks: tasks}
}

func (t *taskUC) Create(ctx context.Context, task *model.Task) error {
	if task == nil || task.UserID == "" || strings.TrimSpace(task.Title) == "" {
		return domain.ErrInvalidArgument
	}
	if task.Status == "" {
		task.Status = model.TaskTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if !task.Status.Valid() || !task.Priority.Valid() {
		return domain.ErrInvalidArgument
	}
	task.ID = ""
	return t.tasks.Save(ctx, repository.NoTX, task)
}

func (t *taskUC) Update(ctx context.Context, userID string, task *model.Task) error {
	if task == nil || task.ID == "" || strings.TrimSpace(task.Title) == "" {
		return domain.ErrInvalidArgument
	}
	if !task.Status.Valid() || !task.Priority.Valid() {
		return domain.ErrInvalidArgument
	}
	existing, err := t.tasks.FindByID(ctx, repository.NoTX, task.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}
	task.UserID = existing.UserID
	task.CreatedAt = existing.CreatedAt
	return t.tasks.Save(ctx, repository.NoTX, task)
}

func (t *taskUC) Delete(ctx context.Context, userID, id string) error {
	return t.tasks.Delete(ctx, repository.NoTX, userID, id)
}

func (t *taskUC) List(ctx context.Context, userID string) ([]*model.Task, error) {
	return t.tasks.ListByUser(ctx, repository.NoTX, userID)
}
