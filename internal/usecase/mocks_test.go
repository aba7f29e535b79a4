// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
	"focus-guardian/internal/domain/ports/repository"
	"focus-guardian/internal/infra/worker"
)

// memSessionRepo is a small in-memory implementation used by unit tests.
type memSessionRepo struct {
	mu      sync.RWMutex
	store   []model.FocusSession
	saveErr error
	listErr error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{}
}

func (m *memSessionRepo) Save(ctx context.Context, tx repository.Tx, s *model.FocusSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = "session-" + time.Now().Format("150405.000000")
	}
	m.store = append(m.store, *s)
	return nil
}

func (m *memSessionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]model.FocusSession, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.FocusSession
	for _, s := range m.store {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSessionRepo) CountByUser(ctx context.Context, tx repository.Tx, userID string) (int, error) {
	list, err := m.ListByUser(ctx, tx, userID)
	return len(list), err
}

type memToolRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Tool
	seq   int
}

func newMemToolRepo() *memToolRepo { return &memToolRepo{store: make(map[string]*model.Tool)} }

func (m *memToolRepo) Save(ctx context.Context, tx repository.Tx, t *model.Tool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		m.seq++
		t.ID = fmt.Sprintf("tool-%d", m.seq)
	}
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memToolRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memToolRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memToolRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Tool
	for _, t := range m.store {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memWorkflowRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Workflow
	seq   int
}

func newMemWorkflowRepo() *memWorkflowRepo {
	return &memWorkflowRepo{store: make(map[string]*model.Workflow)}
}

func (m *memWorkflowRepo) Save(ctx context.Context, tx repository.Tx, wf *model.Workflow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if wf.ID == "" {
		m.seq++
		wf.ID = fmt.Sprintf("wf-%d", m.seq)
	}
	cp := *wf
	m.store[wf.ID] = &cp
	return nil
}

func (m *memWorkflowRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wf, ok := m.store[id]
	if !ok || wf.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memWorkflowRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wf, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *wf
	return &cp, nil
}

func (m *memWorkflowRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Workflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Workflow
	for _, wf := range m.store {
		if wf.UserID == userID {
			cp := *wf
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memTaskRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Task
	seq   int
}

func newMemTaskRepo() *memTaskRepo { return &memTaskRepo{store: make(map[string]*model.Task)} }

func (m *memTaskRepo) Save(ctx context.Context, tx repository.Tx, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		m.seq++
		t.ID = fmt.Sprintf("task-%d", m.seq)
	}
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *memTaskRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memTaskRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTaskRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Task
	for _, t := range m.store {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.UserProfile
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.UserProfile)}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) UpdateFullName(ctx context.Context, tx repository.Tx, id, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.FullName = fullName
	return nil
}

type memLogRepo struct {
	mu    sync.RWMutex
	store []*model.AICallLog
}

func newMemLogRepo() *memLogRepo { return &memLogRepo{} }

func (m *memLogRepo) Save(ctx context.Context, tx repository.Tx, l *model.AICallLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *l
	m.store = append(m.store, &cp)
	return nil
}

func (m *memLogRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.AICallLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.AICallLog
	for _, l := range m.store {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *memLogRepo) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// fakeAI returns canned replies and records what it was asked.
type fakeAI struct {
	mu         sync.Mutex
	chunks     []string
	jsonReply  string
	streamErr  error
	jsonErr    error
	gotModel   string
	gotSystems []string
	gotPrompts []string
}

func (f *fakeAI) ListModels(ctx context.Context) ([]string, error) {
	return []string{"fake"}, nil
}

func (f *fakeAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	n := 0
	for _, m := range messages {
		n += len(strings.Fields(m.Content))
	}
	return n, nil
}

func (f *fakeAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	return strings.Join(f.chunks, ""), adapter.Usage{}, nil
}

func (f *fakeAI) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	f.record(model, messages)
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return &sliceStream{chunks: f.chunks}, nil
}

func (f *fakeAI) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	f.record(model, messages)
	if f.jsonErr != nil {
		return "", adapter.Usage{}, f.jsonErr
	}
	return f.jsonReply, adapter.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, nil
}

func (f *fakeAI) record(model string, messages []adapter.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotModel = model
	for _, m := range messages {
		if m.Role == "system" {
			f.gotSystems = append(f.gotSystems, m.Content)
		} else if m.Role == "user" {
			f.gotPrompts = append(f.gotPrompts, m.Content)
		}
	}
}

type sliceStream struct {
	chunks []string
	pos    int
}

func (s *sliceStream) Recv() (string, error) {
	if s.pos >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.pos]
	s.pos++
	return c, nil
}

func (s *sliceStream) Close() error { return nil }

// fakeLimiter flips between allow and deny.
type fakeLimiter struct {
	mu      sync.Mutex
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

// syncPool runs submitted tasks inline so tests need no goroutines.
type syncPool struct{}

func (syncPool) Submit(task worker.Task) error {
	return task(context.Background())
}

// fakeCache is a func-field stats cache mock.
type fakeCache struct {
	getFn        func(ctx context.Context, userID string) (*model.UserStats, error)
	storeFn      func(ctx context.Context, userID string, stats model.UserStats) error
	invalidateFn func(ctx context.Context, userID string) error
}

func (f *fakeCache) Get(ctx context.Context, userID string) (*model.UserStats, error) {
	if f.getFn == nil {
		return nil, domain.ErrNotFound
	}
	return f.getFn(ctx, userID)
}

func (f *fakeCache) Store(ctx context.Context, userID string, stats model.UserStats) error {
	if f.storeFn == nil {
		return nil
	}
	return f.storeFn(ctx, userID, stats)
}

func (f *fakeCache) Invalidate(ctx context.Context, userID string) error {
	if f.invalidateFn == nil {
		return nil
	}
	return f.invalidateFn(ctx, userID)
}
