package pipeline

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRateLimited     = errors.New("session rate limit exceeded")
	ErrEmptyText       = errors.New("text is empty")
	ErrLLMUnavailable  = errors.New("no llm provider configured")
)
