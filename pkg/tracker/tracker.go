// Package tracker is a client for the Delivery Tracker GraphQL API
// (https://tracker.delivery), which aggregates parcel tracking for Korean and
// international carriers.
package tracker

import (
	"context"
	"encoding/json"
)

// Executor runs one GraphQL operation against the upstream API and returns
// the raw "data" member of the response envelope.
//
// Implementations must report failures as *TrackerError so that callers can
// tell configuration, transport, upstream and decoding problems apart.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
}
