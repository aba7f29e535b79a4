// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/repository"
	"focus-guardian/internal/infra/metrics"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	Get(ctx context.Context, userID string) (model.UserStats, error)
}

// StatsCache is satisfied by redis.StatsCache. The cache is strictly
// best-effort; every error falls through to postgres.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*model.UserStats, error)
	Store(ctx context.Context, userID string, stats model.UserStats) error
	Invalidate(ctx context.Context, userID string) error
}

type statsUC struct {
	sessions repository.FocusSessionRepository
	cache    StatsCache
	log      *zerolog.Logger
}

func NewStatsUseCase(sessions repository.FocusSessionRepository, cache StatsCache, logger *zerolog.Logger) *statsUC {
	return &statsUC{sessions: sessions, cache: cache, log: logger}
}

func (s *statsUC) Get(ctx context.Context, userID string) (model.UserStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID); err == nil && cached != nil {
			metrics.IncCacheRequest("stats", "hit")
			return *cached, nil
		}
		metrics.IncCacheRequest("stats", "miss")
	}

	sessions, err := s.sessions.ListByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return model.UserStats{}, err
	}
	stats := model.CalculateStats(sessions)

	if s.cache != nil {
		if err := s.cache.Store(ctx, userID, stats); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("stats cache store failed")
		}
	}
	return stats, nil
}
