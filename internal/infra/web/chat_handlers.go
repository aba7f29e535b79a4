package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
	"focus-guardian/internal/usecase"
)

type chatRequest struct {
	Messages []adapter.Message `json:"messages"`
	Context  model.ChatContext `json:"context"`
}

type guidanceRequest struct {
	Context  string `json:"context"`
	Duration int    `json:"duration"`
	Elapsed  int    `json:"elapsed"`
}

func (s *Server) handleStrategyChat(w http.ResponseWriter, r *http.Request) {
	s.streamChat(w, r, usecase.ModeStrategy)
}

func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	s.streamChat(w, r, usecase.ModeCoach)
}

func (s *Server) streamChat(w http.ResponseWriter, r *http.Request, mode usecase.ChatMode) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stream, err := s.chatUC.Stream(r.Context(), userID(r.Context()), mode, req.Messages, req.Context)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer stream.Close()

	s.pipeStream(w, r, stream)
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	var req guidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stream, err := s.guidanceUC.Guide(r.Context(), req.Context, req.Elapsed, req.Duration)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer stream.Close()

	s.pipeStream(w, r, stream)
}

// pipeStream copies text chunks to the client as they arrive. The body is
// plain text, not SSE; the frontend reads the response body incrementally.
func (s *Server) pipeStream(w http.ResponseWriter, r *http.Request, stream adapter.Stream) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for {
		chunk, err := stream.Recv()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warn().Err(err).Msg("chat stream aborted")
			}
			return
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			// Client went away; drop the rest.
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) handleSuggestWorkflows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToolNames []string `json:"toolNames"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	drafts, err := s.workflowUC.Suggest(r.Context(), userID(r.Context()), req.ToolNames)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.WorkflowDraft{"workflows": drafts})
}

func (s *Server) handleRefineWorkflow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkflowID string          `json:"workflowId"`
		Workflow   *model.Workflow `json:"workflow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id := req.WorkflowID
	if id == "" && req.Workflow != nil {
		id = req.Workflow.ID
	}
	if id == "" {
		http.Error(w, "workflowId is required", http.StatusBadRequest)
		return
	}

	draft, err := s.workflowUC.Refine(r.Context(), userID(r.Context()), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*model.WorkflowDraft{"refinedWorkflow": draft})
}
