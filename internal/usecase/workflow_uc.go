// File: internal/usecase/workflow_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
	"focus-guardian/internal/domain/ports/repository"
)

// Compile-time check
var _ WorkflowUseCase = (*workflowUC)(nil)

type WorkflowUseCase interface {
	Create(ctx context.Context, wf *model.Workflow) error
	Update(ctx context.Context, userID string, wf *model.Workflow) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*model.Workflow, error)
	Suggest(ctx context.Context, userID string, toolNames []string) ([]model.WorkflowDraft, error)
	Refine(ctx context.Context, userID, workflowID string) (*model.WorkflowDraft, error)
}

type workflowUC struct {
	workflows repository.WorkflowRepository
	ai        adapter.AIServiceAdapter
	logs      repository.AICallLogRepository
	pool      Submitter
	model     string
	log       *zerolog.Logger
}

func NewWorkflowUseCase(
	workflows repository.WorkflowRepository,
	ai adapter.AIServiceAdapter,
	logs repository.AICallLogRepository,
	pool Submitter,
	model string,
	logger *zerolog.Logger,
) *workflowUC {
	return &workflowUC{
		workflows: workflows,
		ai:        ai,
		logs:      logs,
		pool:      pool,
		model:     model,
		log:       logger,
	}
}

func (w *workflowUC) Create(ctx context.Context, wf *model.Workflow) error {
	if wf == nil || wf.UserID == "" || strings.TrimSpace(wf.Name) == "" {
		return domain.ErrInvalidArgument
	}
	wf.ID = ""
	if wf.CreatedAt.IsZero() {
		wf.CreatedAt = time.Now()
	}
	return w.workflows.Save(ctx, repository.NoTX, wf)
}

func (w *workflowUC) Update(ctx context.Context, userID string, wf *model.Workflow) error {
	if wf == nil || wf.ID == "" || strings.TrimSpace(wf.Name) == "" {
		return domain.ErrInvalidArgument
	}
	existing, err := w.workflows.FindByID(ctx, repository.NoTX, wf.ID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return domain.ErrNotFound
	}
	wf.UserID = existing.UserID
	wf.CreatedAt = existing.CreatedAt
	return w.workflows.Save(ctx, repository.NoTX, wf)
}

func (w *workflowUC) Delete(ctx context.Context, userID, id string) error {
	return w.workflows.Delete(ctx, repository.NoTX, userID, id)
}

func (w *workflowUC) List(ctx context.Context, userID string) ([]*model.Workflow, error) {
	return w.workflows.ListByUser(ctx, repository.NoTX, userID)
}

// Suggest asks the AI for workflow drafts built from the user's tool names.
// The provider answers in JSON mode; the array sometimes arrives wrapped in
// an object key, so the reply is normalized before use.
func (w *workflowUC) Suggest(ctx context.Context, userID string, toolNames []string) ([]model.WorkflowDraft, error) {
	if len(toolNames) == 0 {
		return nil, domain.ErrInvalidArgument
	}

	prompt := suggestWorkflowsPrompt(toolNames)
	msgs := []adapter.Message{
		{Role: "system", Content: "You are an expert AI architect who designs efficient workflows using modern AI tools."},
		{Role: "user", Content: prompt},
	}
	content, usage, err := w.ai.ChatJSON(ctx, w.model, msgs)
	if err != nil {
		return nil, fmt.Errorf("ai suggest workflows: %w", err)
	}
	w.submitLog(userID, prompt, content, usage)

	drafts, err := normalizeDrafts([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("parse workflow suggestions: %w", err)
	}
	return drafts, nil
}

// Refine has the AI tighten an existing workflow and returns the proposal
// as a draft; the caller decides whether to save it.
func (w *workflowUC) Refine(ctx context.Context, userID, workflowID string) (*model.WorkflowDraft, error) {
	wf, err := w.workflows.FindByID(ctx, repository.NoTX, workflowID)
	if err != nil {
		return nil, err
	}
	if wf.UserID != userID {
		return nil, domain.ErrNotFound
	}

	prompt := refineWorkflowPrompt(wf)
	msgs := []adapter.Message{
		{Role: "system", Content: "You are an expert AI architect who optimizes automation workflows."},
		{Role: "user", Content: prompt},
	}
	content, usage, err := w.ai.ChatJSON(ctx, w.model, msgs)
	if err != nil {
		return nil, fmt.Errorf("ai refine workflow: %w", err)
	}
	w.submitLog(userID, prompt, content, usage)

	var draft model.WorkflowDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("parse refined workflow: %w", err)
	}
	return &draft, nil
}

func (w *workflowUC) submitLog(userID, prompt, response string, usage adapter.Usage) {
	if w.logs == nil || w.pool == nil {
		return
	}
	entry := &model.AICallLog{
		UserID:     userID,
		Prompt:     prompt,
		Response:   response,
		TokensUsed: usage.TotalTokens,
		Model:      w.model,
		CreatedAt:  time.Now(),
	}
	err := w.pool.Submit(func(ctx context.Context) error {
		if err := w.logs.Save(ctx, repository.NoTX, entry); err != nil {
			w.log.Error().Err(err).Str("user_id", userID).Msg("save ai call log")
		}
		return nil
	})
	if err != nil {
		w.log.Warn().Err(err).Msg("ai log task dropped")
	}
}

// normalizeDrafts accepts a bare array, an object with a "workflows" key, or
// an object whose first value is an array.
func normalizeDrafts(raw []byte) ([]model.WorkflowDraft, error) {
	var drafts []model.WorkflowDraft
	if err := json.Unmarshal(raw, &drafts); err == nil {
		return drafts, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if inner, ok := wrapped["workflows"]; ok {
		if err := json.Unmarshal(inner, &drafts); err != nil {
			return nil, err
		}
		return drafts, nil
	}
	for _, inner := range wrapped {
		if err := json.Unmarshal(inner, &drafts); err == nil {
			return drafts, nil
		}
	}
	return nil, fmt.Errorf("no workflow array found in reply")
}
