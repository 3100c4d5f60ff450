package pokemon

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds reported by fetch operations.
var (
	ErrNetwork         = errors.New("network error")
	ErrDecoding        = errors.New("decoding error")
	ErrInvalidResponse = errors.New("invalid response")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrNotFound        = errors.New("not found")
)

// FetchError is a failed fetch tagged with its kind.
// errors.Is matches both the kind and the underlying cause.
type FetchError struct {
	Kind error
	Op   string
	Err  error
}

// NewFetchError wraps err with kind for operation op.
func NewFetchError(kind error, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the kind and the cause to errors.Is and errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage maps err to the text shown in the UI.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, context.Canceled):
		return "The request was canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out"
	case errors.Is(err, ErrNotFound):
		return "Pokémon not found"
	case errors.Is(err, ErrDecoding):
		return "Failed to parse the response data"
	case errors.Is(err, ErrInvalidResponse):
		return "The server returned an invalid response"
	case errors.Is(err, ErrNetwork):
		return "A network error occurred"
	default:
		return "An unexpected error occurred"
	}
}
