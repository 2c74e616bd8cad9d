package domain

import (
	"errors"
	"fmt"
)

// Validation errors. These are rejected locally and never reach the network.
var (
	// ErrEmptyQuery signals a search submitted with blank text.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrSelectionFull signals an attempt to select more than MaxSelection products.
	ErrSelectionFull = errors.New("maximum 4 products can be compared at once")
	// ErrSelectionSize signals a comparison requested outside [MinCompare, MaxSelection].
	ErrSelectionSize = errors.New("select between 2 and 4 products to compare")
	// ErrEmptyFeedback signals feedback submitted with blank text.
	ErrEmptyFeedback = errors.New("feedback is empty")
	// ErrInvalidSentiment signals a minimum sentiment outside [-1, 1].
	ErrInvalidSentiment = errors.New("min sentiment must be between -1 and 1")
	// ErrInvalidSortMode signals an unknown sort mode.
	ErrInvalidSortMode = errors.New("invalid sort mode")
	// ErrUnknownProduct signals a product id absent from the current result set.
	ErrUnknownProduct = errors.New("product is not in the current results")
)

var (
	// ErrRequestFailed signals any failure talking to the analysis service.
	ErrRequestFailed = errors.New("request failed")
	// ErrSessionNotFound signals an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions signals that the session store is at capacity.
	ErrTooManySessions = errors.New("too many sessions")
)

// Selection bounds shared by the selection set and the comparison engine.
const (
	MaxSelection = 4
	MinCompare   = 2
)

// RequestError wraps ErrRequestFailed with the failing operation.
// Status is the HTTP status when the service answered, 0 otherwise.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s: status %d: %v", e.Op, ErrRequestFailed.Error(), e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrRequestFailed.Error(), e.Err)
}

func (e *RequestError) Unwrap() []error { return []error{ErrRequestFailed, e.Err} }

// NewRequestError creates a request failure for op.
func NewRequestError(op string, status int, err error) error {
	return &RequestError{Op: op, Status: status, Err: err}
}

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrSelectionFull) ||
		errors.Is(err, ErrSelectionSize) ||
		errors.Is(err, ErrEmptyFeedback) ||
		errors.Is(err, ErrInvalidSentiment) ||
		errors.Is(err, ErrInvalidSortMode) ||
		errors.Is(err, ErrUnknownProduct)
}

// User-facing messages for request failures, per operation.
var requestMessages = map[string]string{
	"search":    "Failed to fetch recommendations. Ensure backend is running.",
	"compare":   "Failed to load comparison data.",
	"analytics": "Failed to load analytics data.",
	"analyze":   "Live analysis is unavailable right now.",
	"feedback":  "Failed to submit feedback.",
}

// UserMessage returns the text shown to the user for err.
// Validation errors are shown verbatim, request failures get a generic retry message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsValidation(err) {
		for _, s := range []error{
			ErrEmptyQuery, ErrSelectionFull, ErrSelectionSize,
			ErrEmptyFeedback, ErrInvalidSentiment, ErrInvalidSortMode, ErrUnknownProduct,
		} {
			if errors.Is(err, s) {
				return s.Error()
			}
		}
	}
	var re *RequestError
	if errors.As(err, &re) {
		if msg, ok := requestMessages[re.Op]; ok {
			return msg
		}
	}
	return "Something went wrong. Please try again."
}
