// File: internal/usecase/session_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
	"focus-guardian/internal/infra/metrics"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

type SessionUseCase interface {
	Record(ctx context.Context, session *model.FocusSession) error
	List(ctx context.Context, userID string) ([]model.FocusSession, error)
}

type sessionUC struct {
	sessions repository.FocusSessionRepository
	cache    StatsCache
	log      *zerolog.Logger
}

func NewSessionUseCase(sessions repository.FocusSessionRepository, cache StatsCache, logger *zerolog.Logger) *sessionUC {
	return &sessionUC{sessions: sessions, cache: cache, log: logger}
}

// Record persists one finished session. Durations and distraction counts
// are validated here, at the write boundary, so stored rows are trusted
// by the stats reducer without re-checking.
func (s *sessionUC) Record(ctx context.Context, session *model.FocusSession) error {
	if session == nil || session.UserID == "" {
		return domain.ErrInvalidArgument
	}
	if session.DurationSeconds < 0 || session.DistractionCount < 0 {
		return fmt.Errorf("negative duration or distraction count: %w", domain.ErrInvalidArgument)
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	if err := s.sessions.Save(ctx, repository.NoTX, session); err != nil {
		return err
	}
	metrics.ObserveFocusSession(session.Completed, session.DurationSeconds)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, session.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", session.UserID).Msg("stats cache invalidate failed")
		}
	}
	return nil
}

func (s *sessionUC) List(ctx context.Context, userID string) ([]model.FocusSession, error) {
	return s.sessions.ListByUser(ctx, repository.NoTX, userID)
}
