package tracker

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// NotFoundTrackingNumber makes the default mock answer with a null track.
const NotFoundTrackingNumber = "0000000000"

// MockExecutor is an in-memory Executor for tests and offline runs.
type MockExecutor struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnExecute func(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records one Execute invocation.
type MockCall struct {
	Query     string
	Variables map[string]any
}

// NewMockExecutor creates a new mock executor with default behavior.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// Execute returns canned data for the carrier-list and track operations.
func (m *MockExecutor) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Query: query, Variables: variables})
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		select {
		case <-time.After(m.SimulateLatency):
		case <-ctx.Done():
			return nil, NewTrackerError(ErrTransport, CodeTransport, ctx.Err().Error()).WithCause(ctx.Err())
		}
	}

	if m.SimulateErrors {
		return nil, NewTrackerError(ErrTransport, CodeTransport, "simulated transport error")
	}

	if m.OnExecute != nil {
		return m.OnExecute(ctx, query, variables)
	}

	switch {
	case strings.Contains(query, "carriers("):
		return json.RawMessage(mockCarriersData), nil
	case strings.Contains(query, "track("):
		if variables["trackingNumber"] == NotFoundTrackingNumber {
			return json.RawMessage(`{"track":null}`), nil
		}
		return json.RawMessage(mockTrackData), nil
	default:
		return json.RawMessage(`{}`), nil
	}
}

// Calls returns a copy of the recorded invocations.
func (m *MockExecutor) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Execute ran.
func (m *MockExecutor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

const mockCarriersData = `{
  "carriers": {
    "edges": [
      {"node": {"id": "kr.cjlogistics", "name": "CJ Logistics"}},
      {"node": {"id": "kr.epost", "name": "Korea Post"}},
      {"node": {"id": "kr.hanjin", "name": "Hanjin Transportation"}},
      {"node": {"id": "kr.lotte", "name": "Lotte Global Logistics"}},
      {"node": {"id": "de.dhl", "name": "DHL"}}
    ]
  }
}`

const mockTrackData = `{
  "track": {
    "trackingNumber": "1234567890",
    "lastEvent": {
      "time": "2024-03-02T08:10:00+09:00",
      "status": {"code": "IN_TRANSIT", "name": "In Transit"},
      "location": {"name": "대전HUB", "countryCode": "KR", "postalCode": null},
      "description": "물류터미널로 상품이 이동중입니다."
    },
    "events": {
      "edges": [
        {"node": {
          "time": "2024-03-01T18:32:00+09:00",
          "status": {"code": "AT_PICKUP", "name": "At Pickup"},
          "location": {"name": "서울강남", "countryCode": "KR", "postalCode": null},
          "description": "보내시는 고객님으로부터 상품을 인수받았습니다"
        }},
        {"node": {
          "time": "2024-03-02T08:10:00+09:00",
          "status": {"code": "IN_TRANSIT", "name": "In Transit"},
          "location": {"name": "대전HUB", "countryCode": "KR", "postalCode": null},
          "description": "물류터미널로 상품이 이동중입니다."
        }}
      ]
    },
    "sender": {"name": "홍*동", "location": null, "phoneNumber": null},
    "recipient": {"name": "김*수", "location": null, "phoneNumber": null}
  }
}`
