// File: internal/usecase/guidance_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/ports/adapter"
)

// Compile-time check
var _ GuidanceUseCase = (*guidanceUC)(nil)

// GuidanceUseCase produces the one-line mid-session mentor nudge.
type GuidanceUseCase interface {
	Guide(ctx context.Context, intent string, elapsedSeconds, durationSeconds int) (adapter.Stream, error)
}

type guidanceUC struct {
	ai    adapter.AIServiceAdapter
	model string
	log   *zerolog.Logger
}

func NewGuidanceUseCase(ai adapter.AIServiceAdapter, model string, logger *zerolog.Logger) *guidanceUC {
	return &guidanceUC{ai: ai, model: model, log: logger}
}

func (g *guidanceUC) Guide(ctx context.Context, intent string, elapsedSeconds, durationSeconds int) (adapter.Stream, error) {
	if strings.TrimSpace(intent) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if elapsedSeconds < 0 || durationSeconds <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	msgs := []adapter.Message{
		{Role: "system", Content: mentorSystemPrompt()},
		{Role: "user", Content: mentorUserPrompt(intent, elapsedSeconds, durationSeconds)},
	}
	s, err := g.ai.ChatStream(ctx, g.model, msgs)
	if err != nil {
		return nil, fmt.Errorf("ai guidance stream: %w", err)
	}
	return s, nil
}
