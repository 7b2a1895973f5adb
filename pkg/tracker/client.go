package tracker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/tournevent/parcel/pkg/tracker"

// Config holds Delivery Tracker configuration.
type Config struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	UseMock      bool
}

// Client queries carriers and shipments from Delivery Tracker.
type Client struct {
	executor Executor
	logger   *otelzap.Logger
	tracer   trace.Tracer
}

// New creates a new Delivery Tracker client. A nil tracer falls back to the
// global OpenTelemetry provider.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var executor Executor

	if cfg.UseMock {
		executor = NewMockExecutor()
	} else {
		executor = NewHTTPExecutor(HTTPExecutorConfig{
			Endpoint:     cfg.Endpoint,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Timeout:      cfg.Timeout,
		})
	}

	return NewWithExecutor(executor, logger, tracer)
}

// NewWithExecutor creates a new client with a custom executor.
func NewWithExecutor(executor Executor, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	return &Client{
		executor: executor,
		logger:   logger,
		tracer:   tracer,
	}
}

// Carriers returns the carrier directory in upstream order. Nodes missing an
// id or a name are dropped.
func (c *Client) Carriers(ctx context.Context, req *CarriersRequest) ([]Carrier, error) {
	if req == nil {
		req = &CarriersRequest{}
	}

	ctx, span := c.tracer.Start(ctx, "tracker.Carriers", trace.WithAttributes(
		attribute.String("graphql.operation.name", CarrierListOperation.Name),
		attribute.Int("carriers.first", req.First),
		attribute.String("carriers.country_code", req.CountryCode),
	))
	defer span.End()

	variables := map[string]any{}
	if req.First > 0 {
		variables["first"] = req.First
	}
	if req.CountryCode != "" {
		variables["countryCode"] = req.CountryCode
	}

	c.logger.Ctx(ctx).Info("Fetching carrier directory",
		zap.Int("first", req.First),
		zap.String("country_code", req.CountryCode),
	)

	raw, err := c.executor.Execute(ctx, CarrierListOperation.Query, variables)
	if err != nil {
		c.fail(ctx, span, "Delivery Tracker carriers query failed", err)
		return nil, err
	}

	var data carriersData
	if err := decodeData(raw, &data); err != nil {
		c.fail(ctx, span, "Delivery Tracker carriers payload invalid", err)
		return nil, err
	}

	carriers := make([]Carrier, 0)
	if data.Carriers != nil {
		for _, edge := range data.Carriers.Edges {
			if edge.Node == nil {
				continue
			}
			id, name := pointer.Get(edge.Node.ID), pointer.Get(edge.Node.Name)
			if id == "" || name == "" {
				continue
			}
			carriers = append(carriers, Carrier{ID: id, Name: name})
		}
	}

	span.SetAttributes(attribute.Int("carriers.count", len(carriers)))
	return carriers, nil
}

// Track fetches one shipment. Both arguments are trimmed and must be
// non-empty; otherwise ErrInvalidInput is returned without calling upstream.
// A null track is reported as ErrNotFound.
func (c *Client) Track(ctx context.Context, carrierID, trackingNumber string) (*Track, error) {
	carrierID = strings.TrimSpace(carrierID)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if carrierID == "" || trackingNumber == "" {
		return nil, NewTrackerError(ErrInvalidInput, CodeInvalidInput, "carrierId and trackingNumber are required")
	}

	ctx, span := c.tracer.Start(ctx, "tracker.Track", trace.WithAttributes(
		attribute.String("graphql.operation.name", TrackOperation.Name),
		attribute.String("carrier.id", carrierID),
	))
	defer span.End()

	c.logger.Ctx(ctx).Info("Tracking shipment",
		zap.String("carrier_id", carrierID),
		zap.String("tracking_number", trackingNumber),
	)

	raw, err := c.executor.Execute(ctx, TrackOperation.Query, map[string]any{
		"carrierId":      carrierID,
		"trackingNumber": trackingNumber,
	})
	if err != nil {
		c.fail(ctx, span, "Delivery Tracker track query failed", err)
		return nil, err
	}

	var data trackData
	if err := decodeData(raw, &data); err != nil {
		c.fail(ctx, span, "Delivery Tracker track payload invalid", err)
		return nil, err
	}

	if data.Track == nil {
		span.SetAttributes(attribute.Bool("track.found", false))
		return nil, NewTrackerError(ErrNotFound, CodeNotFound, "no tracking record found")
	}

	track := data.Track.toTrack()
	span.SetAttributes(
		attribute.Bool("track.found", true),
		attribute.Int("track.events", len(track.Events)),
		attribute.String("track.last_status", track.LastStatusCode()),
	)
	return track, nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, CodeOf(err))
	c.logger.Ctx(ctx).Error(msg, zap.String("code", CodeOf(err)), zap.Error(err))
}

// decodeData unmarshals the GraphQL "data" member. Absent or null data
// decodes to the zero value.
func decodeData(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return NewTrackerError(ErrMalformedResponse, CodeMalformedResponse,
			"Delivery Tracker data could not be decoded").WithCause(err)
	}
	return nil
}

func (n *trackNode) toTrack() *Track {
	track := &Track{
		TrackingNumber: n.TrackingNumber,
		LastEvent:      n.LastEvent,
		Events:         make([]Event, 0),
		Sender:         n.Sender,
		Recipient:      n.Recipient,
	}
	if n.Events != nil {
		for _, edge := range n.Events.Edges {
			if edge.Node != nil {
				track.Events = append(track.Events, *edge.Node)
			}
		}
	}
	return track
}
