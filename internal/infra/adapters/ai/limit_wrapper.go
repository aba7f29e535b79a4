package ai

import (
	"context"

	"focus-guardian/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.AIServiceAdapter = (*limitedAI)(nil)

type limitedAI struct {
	inner adapter.AIServiceAdapter
	sem   chan struct{}
}

func NewLimitedAI(inner adapter.AIServiceAdapter, maxConcurrent int) adapter.AIServiceAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedAI{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedAI) ListModels(ctx context.Context) ([]string, error) {
	return l.inner.ListModels(ctx)
}

func (l *limitedAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.CountTokens(ctx, model, messages)
}

func (l *limitedAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Chat(ctx, model, messages)
}

// ChatStream holds its slot until the caller closes the stream, so a
// slow reader still counts against the concurrency limit.
func (l *limitedAI) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	l.sem <- struct{}{}
	s, err := l.inner.ChatStream(ctx, model, messages)
	if err != nil {
		<-l.sem
		return nil, err
	}
	return &limitedStream{Stream: s, release: func() { <-l.sem }}, nil
}

func (l *limitedAI) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.ChatJSON(ctx, model, messages)
}

type limitedStream struct {
	adapter.Stream
	release func()
	done    bool
}

func (s *limitedStream) Close() error {
	err := s.Stream.Close()
	if !s.done {
		s.done = true
		s.release()
	}
	return err
}
