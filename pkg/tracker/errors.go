package tracker

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Error codes carried by TrackerError.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNotConfigured     = "NOT_CONFIGURED"
	CodeTransport         = "TRANSPORT_ERROR"
	CodeUpstream          = "UPSTREAM_ERROR"
	CodeMalformedResponse = "MALFORMED_RESPONSE"
	CodeNotFound          = "NOT_FOUND"
)

// Sentinel error kinds. Every TrackerError wraps exactly one of them.
var (
	// ErrInvalidInput indicates a required field was missing or malformed.
	// No upstream call is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates the API credentials are not set.
	ErrNotConfigured = errors.New("tracker not configured")

	// ErrTransport indicates the request never produced an HTTP response
	// (DNS, connection, timeout, cancellation).
	ErrTransport = errors.New("transport error")

	// ErrUpstream indicates the API answered with GraphQL errors or a
	// non-success HTTP status.
	ErrUpstream = errors.New("upstream error")

	// ErrMalformedResponse indicates the body was not a GraphQL envelope.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotFound indicates the API succeeded but holds no matching record.
	ErrNotFound = errors.New("not found")
)

// TrackerError represents a failed Delivery Tracker operation.
type TrackerError struct {
	Kind       error
	Code       string
	Message    string
	StatusCode int

	// GraphQLErrors is the upstream "errors" list, kept for diagnostics.
	GraphQLErrors gqlerror.List

	Cause error
}

// Error implements the error interface.
func (e *TrackerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tracker error (%s): %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("tracker error (%s): %s", e.Code, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *TrackerError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Is matches another TrackerError with the same code.
func (e *TrackerError) Is(target error) bool {
	t, ok := target.(*TrackerError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewTrackerError creates a TrackerError of the given kind.
func NewTrackerError(kind error, code, message string) *TrackerError {
	return &TrackerError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *TrackerError) WithCause(err error) *TrackerError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *TrackerError) WithStatusCode(code int) *TrackerError {
	e.StatusCode = code
	return e
}

// WithGraphQLErrors attaches the upstream error list.
func (e *TrackerError) WithGraphQLErrors(list gqlerror.List) *TrackerError {
	e.GraphQLErrors = list
	return e
}

// AsTrackerError unwraps err into a *TrackerError.
func AsTrackerError(err error) (*TrackerError, bool) {
	var te *TrackerError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// CodeOf returns the TrackerError code of err, or "UNKNOWN".
func CodeOf(err error) string {
	if te, ok := AsTrackerError(err); ok {
		return te.Code
	}
	return "UNKNOWN"
}
