package ai

import (
	"context"
	"errors"
	"io"
	"strings"

	"google.golang.org/genai"

	"focus-guardian/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*GeminiAdapter)(nil)

// GeminiAdapter is the alternate provider, used when only a Gemini key is
// configured. JSON-object replies use the SDK's response MIME type.
type GeminiAdapter struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, defaultModel string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if defaultModel == "" {
		defaultModel = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, defaultModel: defaultModel}, nil
}

func (g *GeminiAdapter) ListModels(ctx context.Context) ([]string, error) {
	models := g.client.Models.All(ctx)
	var out []string
	for m := range models {
		if m.Name != "" {
			out = append(out, m.Name)
		}
	}
	if len(out) == 0 && g.defaultModel != "" {
		out = []string{g.defaultModel}
	}
	return out, nil
}

func (g *GeminiAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	contents := toGenAIHistory(messages)
	resp, err := g.client.Models.CountTokens(ctx, modelOrDefault(model, g.defaultModel), contents, nil)
	if err != nil {
		return 0, err
	}
	return int(resp.TotalTokens), nil
}

func (g *GeminiAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	resp, err := g.client.Models.GenerateContent(ctx, modelOrDefault(model, g.defaultModel), toGenAIHistory(messages), nil)
	if err != nil {
		return "", adapter.Usage{}, err
	}
	return textOf(resp), geminiUsage(resp), nil
}

func (g *GeminiAdapter) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	seq := g.client.Models.GenerateContentStream(ctx, modelOrDefault(model, g.defaultModel), toGenAIHistory(messages), nil)

	// Bridge the SDK's push iterator into the pull-based port stream.
	chunks := make(chan string)
	errc := make(chan error, 1)
	streamCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer close(chunks)
		for resp, err := range seq {
			if err != nil {
				errc <- err
				return
			}
			t := textOf(resp)
			if t == "" {
				continue
			}
			select {
			case chunks <- t:
			case <-streamCtx.Done():
				return
			}
		}
	}()
	return &geminiStream{chunks: chunks, errc: errc, cancel: cancel}, nil
}

func (g *GeminiAdapter) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	resp, err := g.client.Models.GenerateContent(ctx, modelOrDefault(model, g.defaultModel), toGenAIHistory(messages), cfg)
	if err != nil {
		return "", adapter.Usage{}, err
	}
	return textOf(resp), geminiUsage(resp), nil
}

// --- internal ---

type geminiStream struct {
	chunks chan string
	errc   chan error
	cancel context.CancelFunc
}

func (s *geminiStream) Recv() (string, error) {
	chunk, ok := <-s.chunks
	if ok {
		return chunk, nil
	}
	select {
	case err := <-s.errc:
		return "", err
	default:
		return "", io.EOF
	}
}

func (s *geminiStream) Close() error {
	s.cancel()
	return nil
}

func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func geminiUsage(resp *genai.GenerateContentResponse) adapter.Usage {
	u := adapter.Usage{}
	if resp != nil && resp.UsageMetadata != nil {
		u.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		u.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		u.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return u
}

func toGenAIHistory(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "model":
			role = genai.RoleModel
		case "system":
			// Gemini has no separate system role in history; treat as a
			// user instruction.
			role = genai.RoleUser
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}

func modelOrDefault(model, def string) string {
	if strings.TrimSpace(model) != "" {
		return model
	}
	return def
}
