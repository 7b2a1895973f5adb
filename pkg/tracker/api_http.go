package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// AuthScheme prefixes the "client_id:client_secret" pair in the
// Authorization header.
const AuthScheme = "TRACKQL-API-KEY"

// DefaultEndpoint is the public Delivery Tracker GraphQL endpoint.
const DefaultEndpoint = "https://apis.tracker.delivery/graphql"

const maxResponseBytes = 4 << 20

// HTTPExecutor is the production Executor, speaking GraphQL over HTTPS.
type HTTPExecutor struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// HTTPExecutorConfig holds configuration for the HTTP executor.
type HTTPExecutorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration

	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// NewHTTPExecutor creates a new HTTP-based executor.
func NewHTTPExecutor(cfg HTTPExecutorConfig) *HTTPExecutor {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HTTPExecutor{
		endpoint:     endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   httpClient,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Execute posts one GraphQL operation and returns the "data" member.
func (e *HTTPExecutor) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if e.clientID == "" || e.clientSecret == "" {
		return nil, NewTrackerError(ErrNotConfigured, CodeNotConfigured,
			"Delivery Tracker credentials (TRACKER_CLIENT_ID / TRACKER_CLIENT_SECRET) are not configured")
	}

	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encoding graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("%s %s:%s", AuthScheme, e.clientID, e.clientSecret))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, NewTrackerError(ErrTransport, CodeTransport,
			"Delivery Tracker request failed: "+err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, NewTrackerError(ErrTransport, CodeTransport,
			"reading Delivery Tracker response: "+err.Error()).WithCause(err).WithStatusCode(resp.StatusCode)
	}

	return decodeResponse(resp.StatusCode, body)
}

// decodeResponse interprets a GraphQL envelope. GraphQL errors take
// precedence over the HTTP status because servers commonly pair them with
// 4xx/5xx codes.
func decodeResponse(statusCode int, body []byte) (json.RawMessage, error) {
	success := statusCode >= 200 && statusCode < 300

	trimmed := bytes.TrimSpace(body)
	var envelope graphql.Response
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, malformedOrStatus(statusCode, success, nil)
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, malformedOrStatus(statusCode, success, err)
	}

	if len(envelope.Errors) > 0 {
		msg := envelope.Errors[0].Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, NewTrackerError(ErrUpstream, CodeUpstream, "Delivery Tracker GraphQL error: "+msg).
			WithGraphQLErrors(envelope.Errors).
			WithStatusCode(statusCode)
	}

	if !success {
		return nil, NewTrackerError(ErrUpstream, CodeUpstream,
			fmt.Sprintf("Delivery Tracker returned HTTP %d", statusCode)).WithStatusCode(statusCode)
	}

	return envelope.Data, nil
}

func malformedOrStatus(statusCode int, success bool, cause error) error {
	if !success {
		return NewTrackerError(ErrUpstream, CodeUpstream,
			fmt.Sprintf("Delivery Tracker returned HTTP %d", statusCode)).WithStatusCode(statusCode).WithCause(cause)
	}
	return NewTrackerError(ErrMalformedResponse, CodeMalformedResponse,
		"Delivery Tracker response could not be parsed").WithStatusCode(statusCode).WithCause(cause)
}
