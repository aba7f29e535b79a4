package ai

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"time"

	"focus-guardian/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*MockAdapter)(nil)

// Canned replies for keyless demo environments. Coach lines answer full
// chat turns; mentor lines serve the short in-session guidance prompt.
var (
	mockCoachLines = []string{
		"Focus is not about doing more, but doing what matters. Let's break this down.",
		"I notice you're looking for guidance. Start by defining the smallest next step.",
		"Deep work requires a distraction-free environment. Have you silenced your notifications?",
		"This is a mocked response because no API key was found. Configure ai.openai_key to unlock full intelligence.",
	}
	mockMentorLines = []string{
		"Stay with the task.",
		"Return without judgment.",
		"Breathe. Re-engage.",
		"The work creates the flow.",
		"One step at a time.",
		"Focus is a muscle.",
	}
	mockJSON = `{"workflows":[{"name":"Draft and polish","description":"Draft with one tool, refine with another.","trigger":"New document created","actions":[{"type":"generate","description":"Produce a first draft"},{"type":"review","description":"Tighten and fact-check the draft"}]}]}`
)

// MockAdapter streams canned replies word by word with a typing delay.
// It keeps the service fully usable without any provider key.
type MockAdapter struct {
	delay time.Duration
	rand  *rand.Rand
}

func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		delay: 50 * time.Millisecond,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *MockAdapter) ListModels(ctx context.Context) ([]string, error) {
	return []string{"mock"}, nil
}

func (a *MockAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	n := 0
	for _, m := range messages {
		n += len(strings.Fields(m.Content))
	}
	return n, nil
}

func (a *MockAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	return a.pick(messages), adapter.Usage{}, nil
}

func (a *MockAdapter) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	words := strings.Split(a.pick(messages), " ")
	return &mockStream{ctx: ctx, words: words, delay: a.delay}, nil
}

func (a *MockAdapter) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	return mockJSON, adapter.Usage{}, nil
}

// pick chooses mentor lines for the short guidance prompt, coach lines
// otherwise.
func (a *MockAdapter) pick(messages []adapter.Message) string {
	for _, m := range messages {
		if m.Role == "system" && strings.Contains(m.Content, "Focus Mentor") {
			return mockMentorLines[a.rand.Intn(len(mockMentorLines))]
		}
	}
	return mockCoachLines[a.rand.Intn(len(mockCoachLines))]
}

// mockStream emits one word per chunk to simulate typing.
type mockStream struct {
	ctx   context.Context
	words []string
	pos   int
	delay time.Duration
}

func (s *mockStream) Recv() (string, error) {
	if s.pos >= len(s.words) {
		return "", io.EOF
	}
	select {
	case <-time.After(s.delay):
	case <-s.ctx.Done():
		return "", s.ctx.Err()
	}
	w := s.words[s.pos]
	s.pos++
	if s.pos < len(s.words) {
		w += " "
	}
	return w, nil
}

func (s *mockStream) Close() error {
	s.pos = len(s.words)
	return nil
}
