package requests

import (
	"errors"
	"fmt"
	"net/http"

	"gametrack/pkg/messages"
)

var (
	// ErrNotFound means the API has nothing for the requested resource.
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimitExhausted means every attempt was answered with a 429.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")
	// ErrUpstream means the API answered with a non retryable failure or could not be reached.
	ErrUpstream = errors.New("upstream request failed")
	// ErrInvalidIdentifier is returned before any request when the player input is unusable.
	ErrInvalidIdentifier = errors.New(messages.InvalidIdentifier)
)

// APIError is the terminal failure of a Riot API call.
type APIError struct {
	// Kind is one of ErrNotFound, ErrRateLimitExhausted or ErrUpstream.
	Kind       error
	Endpoint   string
	StatusCode int
	Body       string
	Attempts   int
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrRateLimitExhausted):
		return fmt.Sprintf(messages.RateLimitExhausted, e.Attempts, e.Endpoint)
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf(messages.RequestFailedMsg, e.Endpoint) + ": " + e.Err.Error()
	case e.StatusCode == 0:
		return fmt.Sprintf(messages.RequestFailedMsg, e.Endpoint)
	}

	msg := fmt.Sprintf(messages.BadStatusCodeMsg, e.StatusCode, e.Endpoint)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap exposes the kind and the transport error to errors.Is and errors.As.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// newStatusError classifies a final non success response.
func newStatusError(endpoint string, status int, body []byte, attempts int) *APIError {
	kind := ErrUpstream
	switch status {
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusTooManyRequests:
		kind = ErrRateLimitExhausted
	}

	return &APIError{
		Kind:       kind,
		Endpoint:   endpoint,
		StatusCode: status,
		Body:       string(body),
		Attempts:   attempts,
	}
}
