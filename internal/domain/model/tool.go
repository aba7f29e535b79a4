package model

import "time"

// Tool is one AI tool in a user's catalog.
type Tool struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	URL         string    `json:"url,omitempty"`
	PricingType string    `json:"pricing_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTool(id, userID, name string) *Tool {
	return &Tool{
		ID:        id,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
}
