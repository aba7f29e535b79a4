package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrAlreadyExists         = errors.New("entity already exists")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRateLimited           = errors.New("too many requests")
	ErrAIProviderUnavailable = errors.New("ai provider unavailable")
)
