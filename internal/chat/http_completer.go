package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
)

// Compile-time check
var _ Completer = (*HTTPCompleter)(nil)

// HTTPCompleter speaks the chat wire contract: POST {messages, context}
// as JSON, read the reply as plain incremental text chunks. Closing the
// returned stream aborts the response body, which is the only
// cancellation handle the contract offers.
type HTTPCompleter struct {
	endpoint  string
	authToken string
	client    *http.Client
}

func NewHTTPCompleter(endpoint, authToken string) *HTTPCompleter {
	// No client timeout: a turn stays open for as long as the provider
	// streams. Cancellation comes from the request context.
	return &HTTPCompleter{
		endpoint:  endpoint,
		authToken: authToken,
		client:    &http.Client{},
	}
}

func (h *HTTPCompleter) Complete(ctx context.Context, messages []Message, chatCtx model.ChatContext) (adapter.Stream, error) {
	body := struct {
		Messages []Message         `json:"messages"`
		Context  model.ChatContext `json:"context"`
	}{Messages: messages, Context: chatCtx}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.authToken)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	if resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("chat endpoint http %d", resp.StatusCode)
	}
	return &bodyStream{body: resp.Body, buf: make([]byte, 512)}, nil
}

// bodyStream adapts a raw response body into a chunk stream.
type bodyStream struct {
	body io.ReadCloser
	buf  []byte
	err  error
}

func (s *bodyStream) Recv() (string, error) {
	if s.err != nil {
		return "", s.err
	}
	n, err := s.body.Read(s.buf)
	if n > 0 {
		// Deliver the chunk now; a simultaneous error surfaces on the
		// next call so no bytes are dropped.
		if err != nil {
			s.err = err
		}
		return string(s.buf[:n]), nil
	}
	if err == nil {
		err = io.EOF
	}
	return "", err
}

func (s *bodyStream) Close() error {
	return s.body.Close()
}
