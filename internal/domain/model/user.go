package model

import "time"

// UserProfile mirrors the row kept for each identity-provider account.
// Authentication itself happens outside this service; we only store the
// profile fields the apps display.
type UserProfile struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	FullName            string    `json:"full_name,omitempty"`
	FocusIntegrityScore int       `json:"focus_integrity_score"`
	RegisteredAt        time.Time `json:"registered_at"`
}

func NewUserProfile(id, email string) *UserProfile {
	return &UserProfile{
		ID:                  id,
		Email:               email,
		FocusIntegrityScore: 100,
		RegisteredAt:        time.Now(),
	}
}
