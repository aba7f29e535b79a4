package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"focus-guardian/internal/infra/logging"
	"focus-guardian/internal/usecase"
)

type Server struct {
	statsUC    usecase.StatsUseCase
	sessionUC  usecase.SessionUseCase
	toolUC     usecase.ToolUseCase
	workflowUC usecase.WorkflowUseCase
	taskUC     usecase.TaskUseCase
	userUC     usecase.UserUseCase
	chatUC     usecase.ChatUseCase
	guidanceUC usecase.GuidanceUseCase
	auth       *AuthManager
	timeout    time.Duration
	dev        bool
	log        *zerolog.Logger
}

func NewServer(
	statsUC usecase.StatsUseCase,
	sessionUC usecase.SessionUseCase,
	toolUC usecase.ToolUseCase,
	workflowUC usecase.WorkflowUseCase,
	taskUC usecase.TaskUseCase,
	userUC usecase.UserUseCase,
	chatUC usecase.ChatUseCase,
	guidanceUC usecase.GuidanceUseCase,
	auth *AuthManager,
	timeout time.Duration,
	dev bool,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		statsUC:    statsUC,
		sessionUC:  sessionUC,
		toolUC:     toolUC,
		workflowUC: workflowUC,
		taskUC:     taskUC,
		userUC:     userUC,
		chatUC:     chatUC,
		guidanceUC: guidanceUC,
		auth:       auth,
		timeout:    timeout,
		dev:        dev,
		log:        logger,
	}
}

// Router builds the full route table. Streaming routes skip the timeout
// middleware; a chat completion legitimately outlives a request deadline.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Observe())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if s.dev {
		r.Post("/api/v1/auth/dev-token", s.handleDevToken)
	}

	// Streaming AI endpoints: authenticated, no timeout.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/api/ai/chat", s.handleStrategyChat)
		r.Post("/api/chat", s.handleCoachChat)
		r.Post("/api/guidance", s.handleGuidance)
	})

	// Request/response endpoints: authenticated, bounded.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(Timeout(s.timeout))

		r.Post("/api/ai/suggest-workflows", s.handleSuggestWorkflows)
		r.Post("/api/ai/refine-workflow", s.handleRefineWorkflow)

		r.Route("/api/v1/tools", func(r chi.Router) {
			r.Get("/", s.handleListTools)
			r.Post("/", s.handleCreateTool)
			r.Put("/{id}", s.handleUpdateTool)
			r.Delete("/{id}", s.handleDeleteTool)
		})
		r.Route("/api/v1/workflows", func(r chi.Router) {
			r.Get("/", s.handleListWorkflows)
			r.Post("/", s.handleCreateWorkflow)
			r.Put("/{id}", s.handleUpdateWorkflow)
			r.Delete("/{id}", s.handleDeleteWorkflow)
		})
		r.Route("/api/v1/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Put("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
		})
		r.Route("/api/v1/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleRecordSession)
		})
		r.Get("/api/v1/stats", s.handleStats)
		r.Get("/api/v1/models", s.handleListModels)
		r.Get("/api/v1/profile", s.handleGetProfile)
		r.Put("/api/v1/profile", s.handleUpdateProfile)
	})

	return r
}

// authMiddleware verifies the bearer token and threads the subject through
// the request context. In dev mode a missing token maps to a fixed local
// user so the frontend works without the identity provider.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			if s.dev && r.Header.Get("Authorization") == "" {
				ctx := withUser(r.Context(), "dev-user", "dev@localhost")
				ctx = logging.WithUserID(ctx, "dev-user")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := withUser(r.Context(), claims.Subject, claims.Email)
		ctx = logging.WithUserID(ctx, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
