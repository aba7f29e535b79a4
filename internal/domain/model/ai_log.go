package model

import "time"

// AICallLog records one completed call to the AI provider for auditing and
// usage review. Prompt and response may be stored encrypted at rest.
type AICallLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response,omitempty"`
	TokensUsed int       `json:"tokens_used,omitempty"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
