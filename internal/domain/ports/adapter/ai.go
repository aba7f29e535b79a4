package adapter

import "context"

// Message represents a chat message on the provider wire.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Usage for a single chat call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Stream is a lazy, finite, non-restartable sequence of text chunks.
// Recv returns io.EOF when the provider is done; Close abandons the
// stream and releases the underlying connection.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// AIServiceAdapter is the port for LLM chat.
type AIServiceAdapter interface {
	ListModels(ctx context.Context) ([]string, error)

	// CountTokens must return prompt tokens for the provided messages
	// (provider-specific counting; best-effort when exact isn't available).
	CountTokens(ctx context.Context, model string, messages []Message) (int, error)

	// Chat returns the full assistant text in one shot.
	Chat(ctx context.Context, model string, messages []Message) (string, Usage, error)

	// ChatStream returns the assistant reply as an ordered chunk stream.
	ChatStream(ctx context.Context, model string, messages []Message) (Stream, error)

	// ChatJSON asks the provider for a single JSON object reply and
	// returns the raw JSON text.
	ChatJSON(ctx context.Context, model string, messages []Message) (string, Usage, error)
}
