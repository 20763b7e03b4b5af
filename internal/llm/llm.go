// Package llm holds thin clients for the text-generation services used to
// draft follow-up questions.
package llm

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrEmptyResponse = errors.New("empty response from model")
	ErrNotConfigured = errors.New("model client is not configured")
)

// Completer sends a prompt to a model and returns the raw text it produced
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// HTTPDoer is the subset of *http.Client the clients need
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the service answers with a non-2xx status
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return e.Service + " returned status " + http.StatusText(e.Code)
}
