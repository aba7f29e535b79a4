package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain/ports/repository"
)

// RetentionWorker periodically prunes AI call logs past the retention window.
type RetentionWorker struct {
	interval  time.Duration
	retention time.Duration
	logs      repository.AICallLogRepository
	log       *zerolog.Logger
}

func NewRetentionWorker(interval, retention time.Duration, logs repository.AICallLogRepository, logger *zerolog.Logger) *RetentionWorker {
	rwLog := logger.With().Str("component", "RetentionWorker").Logger()
	return &RetentionWorker{
		interval:  interval,
		retention: retention,
		logs:      logs,
		log:       &rwLog,
	}
}

func (w *RetentionWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Dur("retention", w.retention).Msg("Starting retention worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping retention worker")
			return ctx.Err()
		case <-ticker.C:
			cutoff := time.Now().Add(-w.retention)
			n, err := w.logs.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				w.log.Error().Err(err).Msg("retention sweep error")
				continue
			}
			if n > 0 {
				w.log.Info().Int64("count", n).Time("cutoff", cutoff).Msg("pruned expired ai call logs")
			}
		}
	}
}
