//go:build !integration

package web

import (
	"context"
	"io"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
	"focus-guardian/internal/usecase"
)

// --- Mock Use Cases (function-field stubs) ---

type mockStatsUC struct {
	GetFn func(ctx context.Context, userID string) (model.UserStats, error)
}

func (m *mockStatsUC) Get(ctx context.Context, userID string) (model.UserStats, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return model.UserStats{}, nil
}

type mockSessionUC struct {
	RecordFn func(ctx context.Context, session *model.FocusSession) error
	ListFn   func(ctx context.Context, userID string) ([]model.FocusSession, error)
}

func (m *mockSessionUC) Record(ctx context.Context, session *model.FocusSession) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, session)
	}
	return nil
}

func (m *mockSessionUC) List(ctx context.Context, userID string) ([]model.FocusSession, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return nil, nil
}

type mockToolUC struct {
	CreateFn func(ctx context.Context, tool *model.Tool) error
	UpdateFn func(ctx context.Context, userID string, tool *model.Tool) error
	DeleteFn func(ctx context.Context, userID, id string) error
	ListFn   func(ctx context.Context, userID string) ([]*model.Tool, error)
}

func (m *mockToolUC) Create(ctx context.Context, tool *model.Tool) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tool)
	}
	return nil
}

func (m *mockToolUC) Update(ctx context.Context, userID string, tool *model.Tool) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, tool)
	}
	return nil
}

func (m *mockToolUC) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockToolUC) List(ctx context.Context, userID string) ([]*model.Tool, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return nil, nil
}

type mockWorkflowUC struct {
	CreateFn  func(ctx context.Context, wf *model.Workflow) error
	UpdateFn  func(ctx context.Context, userID string, wf *model.Workflow) error
	DeleteFn  func(ctx context.Context, userID, id string) error
	ListFn    func(ctx context.Context, userID string) ([]*model.Workflow, error)
	SuggestFn func(ctx context.Context, userID string, toolNames []string) ([]model.WorkflowDraft, error)
	RefineFn  func(ctx context.Context, userID, workflowID string) (*model.WorkflowDraft, error)
}

func (m *mockWorkflowUC) Create(ctx context.Context, wf *model.Workflow) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, wf)
	}
	return nil
}

func (m *mockWorkflowUC) Update(ctx context.Context, userID string, wf *model.Workflow) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, wf)
	}
	return nil
}

func (m *mockWorkflowUC) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockWorkflowUC) List(ctx context.Context, userID string) ([]*model.Workflow, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWorkflowUC) Suggest(ctx context.Context, userID string, toolNames []string) ([]model.WorkflowDraft, error) {
	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, userID, toolNames)
	}
	return nil, nil
}

func (m *mockWorkflowUC) Refine(ctx context.Context, userID, workflowID string) (*model.WorkflowDraft, error) {
	if m.RefineFn != nil {
		return m.RefineFn(ctx, userID, workflowID)
	}
	return &model.WorkflowDraft{}, nil
}

type mockTaskUC struct {
	CreateFn func(ctx context.Context, task *model.Task) error
	UpdateFn func(ctx context.Context, userID string, task *model.Task) error
	DeleteFn func(ctx context.Context, userID, id string) error
	ListFn   func(ctx context.Context, userID string) ([]*model.Task, error)
}

func (m *mockTaskUC) Create(ctx context.Context, task *model.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskUC) Update(ctx context.Context, userID string, task *model.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, task)
	}
	return nil
}

func (m *mockTaskUC) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockTaskUC) List(ctx context.Context, userID string) ([]*model.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return nil, nil
}

type mockUserUC struct {
	GetOrCreateFn    func(ctx context.Context, id, email string) (*model.UserProfile, error)
	UpdateFullNameFn func(ctx context.Context, id, fullName string) error
}

func (m *mockUserUC) GetOrCreate(ctx context.Context, id, email string) (*model.UserProfile, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, id, email)
	}
	return &model.UserProfile{ID: id, Email: email}, nil
}

func (m *mockUserUC) UpdateFullName(ctx context.Context, id, fullName string) error {
	if m.UpdateFullNameFn != nil {
		return m.UpdateFullNameFn(ctx, id, fullName)
	}
	return nil
}

type mockChatUC struct {
	StreamFn     func(ctx context.Context, userID string, mode usecase.ChatMode, messages []adapter.Message, chatCtx model.ChatContext) (adapter.Stream, error)
	ListModelsFn func(ctx context.Context) ([]string, error)
}

func (m *mockChatUC) Stream(ctx context.Context, userID string, mode usecase.ChatMode, messages []adapter.Message, chatCtx model.ChatContext) (adapter.Stream, error) {
	if m.StreamFn != nil {
		return m.StreamFn(ctx, userID, mode, messages, chatCtx)
	}
	return &stubStream{}, nil
}

func (m *mockChatUC) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFn != nil {
		return m.ListModelsFn(ctx)
	}
	return nil, nil
}

type mockGuidanceUC struct {
	GuideFn func(ctx context.Context, intent string, elapsedSeconds, durationSeconds int) (adapter.Stream, error)
}

func (m *mockGuidanceUC) Guide(ctx context.Context, intent string, elapsedSeconds, durationSeconds int) (adapter.Stream, error) {
	if m.GuideFn != nil {
		return m.GuideFn(ctx, intent, elapsedSeconds, durationSeconds)
	}
	return &stubStream{}, nil
}

// stubStream replays a fixed chunk sequence, then io.EOF.
type stubStream struct {
	chunks []string
	pos    int
	closed bool
}

func (s *stubStream) Recv() (string, error) {
	if s.pos >= len(s.chunks) {
		return "", io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}

func (s *stubStream) Close() error {
	s.closed = true
	return nil
}
