package llm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey    = errors.New("anthropic API key is not configured")
	ErrMissingModel     = errors.New("model is not configured")
	ErrUnsupportedModel = errors.New("unsupported model")
	ErrEmptyResponse    = errors.New("no text content in response")
	ErrNoJSON           = errors.New("no JSON object in response")
)

// StatusError is returned for a non-2xx reply. Body holds the raw payload.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}
