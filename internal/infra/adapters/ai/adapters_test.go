//go:build !integration

package ai_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"focus-guardian/internal/domain/ports/adapter"
	ai "focus-guardian/internal/infra/adapters/ai"
)

func drain(t *testing.T, s adapter.Stream) string {
	t.Helper()
	defer s.Close()
	var b strings.Builder
	for {
		chunk, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return b.String()
		}
		if err != nil {
			t.Fatalf("recv: %v", err)
		}
		b.WriteString(chunk)
	}
}

func TestMockAdapter_StreamReassemblesChat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := ai.NewMockAdapter()
	msgs := []adapter.Message{{Role: "user", Content: "help me focus"}}

	s, err := m.ChatStream(ctx, "mock", msgs)
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	got := drain(t, s)
	if got == "" {
		t.Fatal("expected a non-empty streamed reply")
	}
	if strings.Contains(got, "  ") || strings.HasSuffix(got, " ") {
		t.Fatalf("word chunks should reassemble cleanly, got %q", got)
	}
}

func TestMockAdapter_MentorPromptGetsShortLine(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := ai.NewMockAdapter()
	msgs := []adapter.Message{
		{Role: "system", Content: "You are the Focus Mentor. Reply in at most twelve words."},
		{Role: "user", Content: "I got distracted"},
	}
	reply, _, err := m.Chat(ctx, "mock", msgs)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if n := len(strings.Fields(reply)); n > 12 {
		t.Fatalf("mentor reply should be short, got %d words: %q", n, reply)
	}
}

func TestMockAdapter_StreamHonorsCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	m := ai.NewMockAdapter()
	s, err := m.ChatStream(ctx, "mock", []adapter.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	defer s.Close()
	cancel()
	if _, err := s.Recv(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMockAdapter_ChatJSONIsValidObject(t *testing.T) {
	t.Parallel()
	out, _, err := ai.NewMockAdapter().ChatJSON(context.Background(), "mock", nil)
	if err != nil {
		t.Fatalf("ChatJSON: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected a JSON object, got %q", out)
	}
}

// slowAI blocks each call until released so the semaphore can be observed.
type slowAI struct {
	mu      sync.Mutex
	active  int
	peak    int
	release chan struct{}
}

func (s *slowAI) enter() {
	s.mu.Lock()
	s.active++
	if s.active > s.peak {
		s.peak = s.active
	}
	s.mu.Unlock()
	<-s.release
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

func (s *slowAI) ListModels(ctx context.Context) ([]string, error) { return nil, nil }
func (s *slowAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	s.enter()
	return 1, nil
}
func (s *slowAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	s.enter()
	return "ok", adapter.Usage{}, nil
}
func (s *slowAI) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	return &oneShotStream{}, nil
}
func (s *slowAI) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	s.enter()
	return "{}", adapter.Usage{}, nil
}

type oneShotStream struct{ done bool }

func (s *oneShotStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	return "ok", nil
}
func (s *oneShotStream) Close() error { return nil }

func TestLimitedAI_CapsConcurrentChats(t *testing.T) {
	t.Parallel()
	inner := &slowAI{release: make(chan struct{})}
	lim := ai.NewLimitedAI(inner, 2)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = lim.Chat(context.Background(), "m", nil)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	if inner.peak > 2 {
		t.Fatalf("expected at most 2 concurrent calls, saw %d", inner.peak)
	}
}

func TestLimitedAI_StreamHoldsSlotUntilClose(t *testing.T) {
	t.Parallel()
	inner := &slowAI{release: make(chan struct{})}
	close(inner.release)
	lim := ai.NewLimitedAI(inner, 1)
	ctx := context.Background()

	s, err := lim.ChatStream(ctx, "m", nil)
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}

	second := make(chan struct{})
	go func() {
		s2, err := lim.ChatStream(ctx, "m", nil)
		if err == nil {
			s2.Close()
		}
		close(second)
	}()

	select {
	case <-second:
		t.Fatal("second stream should wait for the first slot")
	case <-time.After(50 * time.Millisecond):
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("slot was not released on Close")
	}
}

func TestLimitedAI_ZeroLimitPassesThrough(t *testing.T) {
	t.Parallel()
	inner := &slowAI{release: make(chan struct{})}
	if got := ai.NewLimitedAI(inner, 0); got != adapter.AIServiceAdapter(inner) {
		t.Fatal("limit 0 should return the inner adapter unchanged")
	}
}
