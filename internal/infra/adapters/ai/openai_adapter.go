package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/ssestream"
	"github.com/openai/openai-go/v2/shared"
	"github.com/pkoukk/tiktoken-go"

	"focus-guardian/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIServiceAdapter over the Chat
// Completions API, including token streaming and JSON-object replies.
type OpenAIAdapter struct {
	client openai.Client
	model  string
}

func NewOpenAIAdapter(apiKey, model string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIAdapter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAIAdapter) ListModels(ctx context.Context) ([]string, error) {
	return []string{o.model}, nil
}

// CountTokens is best-effort: tiktoken locally, no API round-trip.
func (o *OpenAIAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if model == "" {
		model = o.model
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, fmt.Errorf("tiktoken encoding: %w", err)
		}
	}
	n := 0
	for _, m := range messages {
		// +4 approximates the per-message wrapping tokens.
		n += len(enc.Encode(m.Content, nil, nil)) + 4
	}
	return n, nil
}

func (o *OpenAIAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	resp, err := o.client.Chat.Completions.New(ctx, o.params(model, messages))
	if err != nil {
		return "", adapter.Usage{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", adapter.Usage{}, errors.New("no choice content")
	}
	return resp.Choices[0].Message.Content, openaiUsage(resp), nil
}

func (o *OpenAIAdapter) ChatStream(ctx context.Context, model string, messages []adapter.Message) (adapter.Stream, error) {
	s := o.client.Chat.Completions.NewStreaming(ctx, o.params(model, messages))
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("openai stream: %w", err)
	}
	return &openaiStream{s: s}, nil
}

func (o *OpenAIAdapter) ChatJSON(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	params := o.params(model, messages)
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
	}
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", adapter.Usage{}, fmt.Errorf("openai json chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", adapter.Usage{}, errors.New("no choice content")
	}
	return resp.Choices[0].Message.Content, openaiUsage(resp), nil
}

func (o *OpenAIAdapter) params(model string, messages []adapter.Message) openai.ChatCompletionNewParams {
	if model == "" {
		model = o.model
	}
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "assistant":
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: out,
	}
}

func openaiUsage(resp *openai.ChatCompletion) adapter.Usage {
	return adapter.Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
}

type openaiStream struct {
	s *ssestream.Stream[openai.ChatCompletionChunk]
}

func (o *openaiStream) Recv() (string, error) {
	for o.s.Next() {
		chunk := o.s.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		if c := chunk.Choices[0].Delta.Content; c != "" {
			return c, nil
		}
	}
	if err := o.s.Err(); err != nil {
		return "", fmt.Errorf("openai stream: %w", err)
	}
	return "", io.EOF
}

func (o *openaiStream) Close() error { return o.s.Close() }
