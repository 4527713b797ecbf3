package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var errNoContent = errors.New("no content in model reply")

// ErrRateLimit is a 429 from the vendor. RetryAfter is zero when the
// vendor sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply was empty, not JSON, or failed the
// requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model reply: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers and transport failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "model provider unavailable"
	}
	return fmt.Sprintf("model provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequest is a 4xx other than 429: a bad key, an unknown model or a
// malformed request. Retrying cannot fix it.
type ErrRequest struct {
	Status int
	Err    error
}

func (e *ErrRequest) Error() string {
	return fmt.Sprintf("model request rejected (%d): %v", e.Status, e.Err)
}

func (e *ErrRequest) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means a structured reply was cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model reply truncated at max tokens"
}

// classifyStatus maps a vendor HTTP status onto the error types above.
// A zero status means the request never got an answer.
func classifyStatus(status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status >= 400 && status < 500:
		return &ErrRequest{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates are
// ignored and leave the backoff schedule in charge.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func retryAfterOf(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	return retryAfter(resp.Header)
}

// contextError returns err when it stems from the caller's context, so
// cancellation passes through the adapters unwrapped.
func contextError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
