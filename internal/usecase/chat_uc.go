// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
	"focus-guardian/internal/domain/ports/repository"
	"focus-guardian/internal/infra/metrics"
	"focus-guardian/internal/infra/redis"
	"focus-guardian/internal/infra/security"
	"focus-guardian/internal/infra/worker"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// ChatMode selects which system prompt frames the conversation.
type ChatMode string

const (
	// ModeStrategy is the AI-tool strategy assistant on the tracker pages.
	ModeStrategy ChatMode = "strategy"
	// ModeCoach is the Focus Guardian productivity coach.
	ModeCoach ChatMode = "coach"
)

type ChatUseCase interface {
	Stream(ctx context.Context, userID string, mode ChatMode, messages []adapter.Message, chatCtx model.ChatContext) (adapter.Stream, error)
	ListModels(ctx context.Context) ([]string, error)
}

// Limiter is satisfied by redis.RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Submitter is satisfied by worker.Pool.
type Submitter interface {
	Submit(task worker.Task) error
}

type chatUC struct {
	ai        adapter.AIServiceAdapter
	logs      repository.AICallLogRepository
	limiter   Limiter
	pool      Submitter
	enc       *security.EncryptionService
	model     string
	perMinute int
	log       *zerolog.Logger
}

func NewChatUseCase(
	ai adapter.AIServiceAdapter,
	logs repository.AICallLogRepository,
	limiter Limiter,
	pool Submitter,
	enc *security.EncryptionService,
	model string,
	perMinute int,
	logger *zerolog.Logger,
) *chatUC {
	return &chatUC{
		ai:        ai,
		logs:      logs,
		limiter:   limiter,
		pool:      pool,
		enc:       enc,
		model:     model,
		perMinute: perMinute,
		log:       logger,
	}
}

func (c *chatUC) ListModels(ctx context.Context) ([]string, error) {
	return c.ai.ListModels(ctx)
}

func (c *chatUC) Stream(ctx context.Context, userID string, mode ChatMode, messages []adapter.Message, chatCtx model.ChatContext) (adapter.Stream, error) {
	if len(messages) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	last := messages[len(messages)-1]
	if last.Role != "user" || strings.TrimSpace(last.Content) == "" {
		return nil, domain.ErrInvalidArgument
	}

	if c.limiter != nil && c.perMinute > 0 {
		allowed, err := c.limiter.Allow(ctx, redis.UserChatKey(userID), c.perMinute, time.Minute)
		if err != nil {
			// Rate limiting is best-effort; a dead redis must not kill chat.
			c.log.Warn().Err(err).Str("user_id", userID).Msg("rate limiter unavailable")
		} else if !allowed {
			metrics.RateLimited(c.model)
			return nil, domain.ErrRateLimited
		}
	}

	system := coachPrompt(chatCtx)
	if mode == ModeStrategy {
		system = strategyPrompt(chatCtx)
	}
	full := make([]adapter.Message, 0, len(messages)+1)
	full = append(full, adapter.Message{Role: "system", Content: system})
	full = append(full, messages...)

	start := time.Now()
	s, err := c.ai.ChatStream(ctx, c.model, full)
	if err != nil {
		return nil, fmt.Errorf("ai chat stream: %w", err)
	}

	return &loggedStream{
		Stream: s,
		finish: func(response string, success bool) {
			c.afterStream(userID, last.Content, response, full, start, success)
		},
	}, nil
}

// afterStream records usage metrics and submits the background log write.
// Called once per stream, after the provider finished.
func (c *chatUC) afterStream(userID, prompt, response string, full []adapter.Message, start time.Time, success bool) {
	latency := int(time.Since(start).Milliseconds())

	bg, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tokensIn, _ := c.ai.CountTokens(bg, c.model, full)
	tokensOut, _ := c.ai.CountTokens(bg, c.model, []adapter.Message{{Role: "assistant", Content: response}})
	metrics.ObserveChatUsage("openai", c.model, tokensIn, tokensOut, tokensIn+tokensOut, latency, success)

	if !success || c.logs == nil {
		return
	}

	storedPrompt, storedResponse := prompt, response
	if c.enc != nil {
		var err error
		if storedPrompt, err = c.enc.Encrypt(prompt); err != nil {
			c.log.Error().Err(err).Msg("encrypt ai log prompt")
			return
		}
		if storedResponse, err = c.enc.Encrypt(response); err != nil {
			c.log.Error().Err(err).Msg("encrypt ai log response")
			return
		}
	}

	entry := &model.AICallLog{
		UserID:     userID,
		Prompt:     storedPrompt,
		Response:   storedResponse,
		TokensUsed: tokensIn + tokensOut,
		Model:      c.model,
		CreatedAt:  time.Now(),
	}
	err := c.pool.Submit(func(ctx context.Context) error {
		if err := c.logs.Save(ctx, repository.NoTX, entry); err != nil {
			c.log.Error().Err(err).Str("user_id", userID).Msg("save ai call log")
		}
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("ai log task dropped")
	}
}

// loggedStream accumulates streamed chunks and fires finish exactly once
// when the provider signals the end of the reply.
type loggedStream struct {
	adapter.Stream
	buf    strings.Builder
	once   sync.Once
	finish func(response string, success bool)
}

func (s *loggedStream) Recv() (string, error) {
	chunk, err := s.Stream.Recv()
	if err == nil {
		s.buf.WriteString(chunk)
		return chunk, nil
	}
	if err == io.EOF {
		s.once.Do(func() { s.finish(s.buf.String(), true) })
	} else {
		s.once.Do(func() { s.finish(s.buf.String(), false) })
	}
	return chunk, err
}
