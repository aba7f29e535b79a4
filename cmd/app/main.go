// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"focus-guardian/internal/config"
	"focus-guardian/internal/domain/ports/adapter"
	aiAdapters "focus-guardian/internal/infra/adapters/ai"
	pg "focus-guardian/internal/infra/db/postgres"
	"focus-guardian/internal/infra/logging"
	"focus-guardian/internal/infra/metrics"
	red "focus-guardian/internal/infra/redis"
	"focus-guardian/internal/infra/sched"
	"focus-guardian/internal/infra/security"
	"focus-guardian/internal/infra/web"
	"focus-guardian/internal/infra/worker"
	"focus-guardian/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (mock AI fallback, dev tokens)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)
	statsCache := red.NewStatsCache(redisClient, cfg.Redis.TTL)

	// ---- Encryption (AI log content at rest) ----
	var encSvc *security.EncryptionService
	if cfg.Security.EncryptionKey != "" {
		encSvc, err = security.NewEncryptionService(cfg.Security.EncryptionKey)
		if err != nil {
			log.Fatalf("encryption: %v", err)
		}
	} else {
		logger.Warn().Msg("security.encryption_key not set; AI logs stored in plaintext")
	}

	// ---- Repositories ----
	sessionRepo := pg.NewFocusSessionRepo(pool)
	toolRepo := pg.NewToolRepo(pool)
	workflowRepo := pg.NewWorkflowRepo(pool)
	taskRepo := pg.NewTaskRepo(pool)
	userRepo := pg.NewUserRepo(pool)
	aiLogRepo := pg.NewAILogRepo(pool)

	// ---- AI Adapter (OpenAI -> Gemini -> mock in dev) ----
	var ai adapter.AIServiceAdapter
	switch {
	case cfg.AI.OpenAIKey != "":
		ai, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.DefaultModel)
		if err != nil {
			log.Fatalf("openai adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: OpenAI")
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel)
		if err != nil {
			log.Fatalf("gemini adapter: %v", err)
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Gemini")
	case cfg.Runtime.Dev:
		ai = aiAdapters.NewMockAdapter()
		logger.Warn().Msg("AI adapter: mock (no provider key configured)")
	default:
		log.Fatalf("no AI provider configured: set ai.openai_key or ai.gemini_key in %s", *cfgPath)
	}
	ai = aiAdapters.NewLimitedAI(ai, cfg.AI.ConcurrentLimit)

	// ---- Background workers ----
	wp := worker.NewPool(8)
	wp.Start(ctx)
	defer wp.Stop()

	retention := sched.NewRetentionWorker(
		cfg.Retention.SweepInterval,
		time.Duration(cfg.Retention.AILogDays)*24*time.Hour,
		aiLogRepo,
		logger,
	)
	go func() { _ = retention.Run(ctx) }()

	// ---- Use cases ----
	toolUC := usecase.NewToolUseCase(toolRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	sessionUC := usecase.NewSessionUseCase(sessionRepo, statsCache, logger)
	statsUC := usecase.NewStatsUseCase(sessionRepo, statsCache, logger)
	workflowUC := usecase.NewWorkflowUseCase(workflowRepo, ai, aiLogRepo, wp, cfg.AI.RecommendModel, logger)
	chatUC := usecase.NewChatUseCase(ai, aiLogRepo, rateLimiter, wp, encSvc, cfg.AI.DefaultModel, cfg.AI.ChatPerMinute, logger)
	guidanceUC := usecase.NewGuidanceUseCase(ai, cfg.AI.GuidanceModel, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Runtime.Dev)
	srv := web.NewServer(
		statsUC, sessionUC, toolUC, workflowUC, taskUC,
		userUC, chatUC, guidanceUC,
		auth, cfg.Server.RequestTimeout, cfg.Runtime.Dev, logger,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		// WriteTimeout stays zero: chat responses stream for minutes.
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
