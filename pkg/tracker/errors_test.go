package tracker_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/parcel/pkg/tracker"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestTrackerError_Error(t *testing.T) {
	err := tracker.NewTrackerError(tracker.ErrNotFound, tracker.CodeNotFound, "no tracking record found")
	assert.Equal(t, "tracker error (NOT_FOUND): no tracking record found", err.Error())
}

func TestTrackerError_ErrorWithCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := tracker.NewTrackerError(tracker.ErrTransport, tracker.CodeTransport, "request failed").WithCause(cause)
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "i/o timeout")
}

func TestTrackerError_UnwrapKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := tracker.NewTrackerError(tracker.ErrTransport, tracker.CodeTransport, "request failed").WithCause(cause)

	assert.True(t, errors.Is(err, tracker.ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, tracker.ErrUpstream))
}

func TestTrackerError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("tracking: %w", tracker.NewTrackerError(tracker.ErrNotFound, tracker.CodeNotFound, "missing"))

	assert.True(t, errors.Is(err, tracker.ErrNotFound))
	assert.False(t, errors.Is(err, tracker.ErrUpstream))
}

func TestTrackerError_IsSameCode(t *testing.T) {
	err1 := tracker.NewTrackerError(tracker.ErrUpstream, tracker.CodeUpstream, "first")
	err2 := tracker.NewTrackerError(tracker.ErrUpstream, tracker.CodeUpstream, "second")
	err3 := tracker.NewTrackerError(tracker.ErrNotFound, tracker.CodeNotFound, "third")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestTrackerError_WithStatusCodeAndGraphQLErrors(t *testing.T) {
	list := gqlerror.List{{Message: "Bad carrier"}}
	err := tracker.NewTrackerError(tracker.ErrUpstream, tracker.CodeUpstream, "bad").
		WithStatusCode(400).
		WithGraphQLErrors(list)

	assert.Equal(t, 400, err.StatusCode)
	assert.Len(t, err.GraphQLErrors, 1)
}

func TestAsTrackerError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", tracker.NewTrackerError(tracker.ErrUpstream, tracker.CodeUpstream, "x"))

	te, ok := tracker.AsTrackerError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, tracker.CodeUpstream, te.Code)

	_, ok = tracker.AsTrackerError(errors.New("plain"))
	assert.False(t, ok)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, tracker.CodeNotConfigured,
		tracker.CodeOf(tracker.NewTrackerError(tracker.ErrNotConfigured, tracker.CodeNotConfigured, "x")))
	assert.Equal(t, "UNKNOWN", tracker.CodeOf(errors.New("plain")))
}
