package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"focus-guardian/internal/domain"
	"focus-guardian/internal/domain/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyExists):
		http.Error(w, "Already exists", http.StatusConflict)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrRateLimited):
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
	case errors.Is(err, domain.ErrAIProviderUnavailable):
		http.Error(w, "AI provider unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleDevToken mints a short-lived bearer token for local development.
// The route is only registered when the server runs in dev mode.
func (s *Server) handleDevToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Subject == "" {
		req.Subject = "dev-user"
	}
	if req.Email == "" {
		req.Email = "dev@localhost"
	}

	token, err := s.auth.Mint(req.Subject, req.Email, 24*time.Hour)
	if err != nil {
		http.Error(w, "Failed to mint token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// --- tools ---

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.toolUC.List(r.Context(), userID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tools)
}

func (s *Server) handleCreateTool(w http.ResponseWriter, r *http.Request) {
	var tool model.Tool
	if err := json.NewDecoder(r.Body).Decode(&tool); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tool.UserID = userID(r.Context())

	if err := s.toolUC.Create(r.Context(), &tool); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tool)
}

func (s *Server) handleUpdateTool(w http.ResponseWriter, r *http.Request) {
	var tool model.Tool
	if err := json.NewDecoder(r.Body).Decode(&tool); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tool.ID = chi.URLParam(r, "id")

	if err := s.toolUC.Update(r.Context(), userID(r.Context()), &tool); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (s *Server) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	if err := s.toolUC.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- workflows ---

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := s.workflowUC.List(r.Context(), userID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workflows)
}

func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var wf model.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	wf.UserID = userID(r.Context())

	if err := s.workflowUC.Create(r.Context(), &wf); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wf)
}

func (s *Server) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	var wf model.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	wf.ID = chi.URLParam(r, "id")

	if err := s.workflowUC.Update(r.Context(), userID(r.Context()), &wf); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	if err := s.workflowUC.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- tasks ---

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.taskUC.List(r.Context(), userID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	task.UserID = userID(r.Context())

	if err := s.taskUC.Create(r.Context(), &task); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var task model.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	task.ID = chi.URLParam(r, "id")

	if err := s.taskUC.Update(r.Context(), userID(r.Context()), &task); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.taskUC.Delete(r.Context(), userID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- sessions and stats ---

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessionUC.List(r.Context(), userID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	var session model.FocusSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	session.UserID = userID(r.Context())

	if err := s.sessionUC.Record(r.Context(), &session); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Get(r.Context(), userID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.chatUC.ListModels(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"models": models})
}

// --- profile ---

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := s.userUC.GetOrCreate(ctx, userID(ctx), userEmail(ctx))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if err := s.userUC.UpdateFullName(ctx, userID(ctx), req.FullName); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
