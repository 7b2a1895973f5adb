package tracking

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tournevent/parcel/internal/telemetry"
	"github.com/tournevent/parcel/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Tracker is the upstream surface the service depends on.
// *tracker.Client implements it.
type Tracker interface {
	Carriers(ctx context.Context, req *tracker.CarriersRequest) ([]tracker.Carrier, error)
	Track(ctx context.Context, carrierID, trackingNumber string) (*tracker.Track, error)
}

// Options holds the carrier-directory defaults.
type Options struct {
	CarriersPageSize    int
	CarriersCountryCode string
}

// Service implements the two user-facing operations.
type Service struct {
	tracker  Tracker
	options  Options
	logger   *otelzap.Logger
	metrics  *telemetry.Metrics
	validate *validator.Validate
}

// NewService creates a new tracking service.
func NewService(t Tracker, opts Options, logger *otelzap.Logger, metrics *telemetry.Metrics) *Service {
	if opts.CarriersPageSize == 0 {
		opts.CarriersPageSize = 50
	}
	if opts.CarriersCountryCode == "" {
		opts.CarriersCountryCode = "KR"
	}

	return &Service{
		tracker:  t,
		options:  opts,
		logger:   logger,
		metrics:  metrics,
		validate: newValidator(),
	}
}

// ListCarriersRequest holds optional carrier-directory parameters. Zero
// values take the service defaults.
type ListCarriersRequest struct {
	First       int    `json:"first" validate:"omitempty,min=1,max=500"`
	CountryCode string `json:"countryCode" validate:"omitempty,len=2,alpha"`
}

// ListCarriers returns the carrier directory in upstream order.
func (s *Service) ListCarriers(ctx context.Context, req ListCarriersRequest) ([]tracker.Carrier, error) {
	start := time.Now()

	req.CountryCode = strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if err := s.check(req); err != nil {
		s.logger.Ctx(ctx).Warn("Rejected carriers request", zap.Error(err))
		s.record(operationCarriers, start, err)
		return nil, err
	}
	if req.First == 0 {
		req.First = s.options.CarriersPageSize
	}
	if req.CountryCode == "" {
		req.CountryCode = s.options.CarriersCountryCode
	}

	carriers, err := s.tracker.Carriers(ctx, &tracker.CarriersRequest{
		First:       req.First,
		CountryCode: req.CountryCode,
	})
	s.record(operationCarriers, start, err)
	if err != nil {
		return nil, fmt.Errorf("listing carriers: %w", err)
	}
	return carriers, nil
}

// TrackRequest identifies a shipment to look up.
type TrackRequest struct {
	CarrierID      string `json:"carrierId" validate:"required"`
	CarrierName    string `json:"carrierName"`
	TrackingNumber string `json:"trackingNumber" validate:"required"`
}

// Result is the normalized view of one shipment.
type Result struct {
	TrackingNumber string         `json:"trackingNumber"`
	CarrierID      string         `json:"carrierId"`
	CarrierName    string         `json:"carrierName"`
	Status         string         `json:"status"`
	Progress       []ProgressStep `json:"progress"`
}

// Track validates req, fetches the shipment and builds its result. Invalid
// requests fail with tracker.ErrInvalidInput before any upstream call.
func (s *Service) Track(ctx context.Context, req TrackRequest) (*Result, error) {
	start := time.Now()

	req.CarrierID = strings.TrimSpace(req.CarrierID)
	req.CarrierName = strings.TrimSpace(req.CarrierName)
	req.TrackingNumber = strings.TrimSpace(req.TrackingNumber)

	if err := s.check(req); err != nil {
		s.logger.Ctx(ctx).Warn("Rejected track request", zap.Error(err))
		s.record(operationTrack, start, err)
		return nil, err
	}

	track, err := s.tracker.Track(ctx, req.CarrierID, req.TrackingNumber)
	s.record(operationTrack, start, err)
	if err != nil {
		return nil, fmt.Errorf("tracking %s/%s: %w", req.CarrierID, req.TrackingNumber, err)
	}

	return buildResult(req, track), nil
}

func buildResult(req TrackRequest, track *tracker.Track) *Result {
	trackingNumber := track.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = req.TrackingNumber
	}

	carrierName := req.CarrierName
	if carrierName == "" {
		carrierName = DisplayName(req.CarrierID, "")
	}

	return &Result{
		TrackingNumber: trackingNumber,
		CarrierID:      req.CarrierID,
		CarrierName:    carrierName,
		Status:         OverallStatus(track.LastEvent),
		Progress:       BuildProgress(track.Events, track.LastStatusCode()),
	}
}

const (
	operationCarriers = "carriers"
	operationTrack    = "track"
)

func (s *Service) record(operation string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = strings.ToLower(tracker.CodeOf(err))
		if !errors.Is(err, tracker.ErrInvalidInput) && !errors.Is(err, tracker.ErrNotFound) {
			s.metrics.RecordError(operation, status)
		}
	}
	s.metrics.RecordRequest(operation, status, time.Since(start))
}

// check runs struct validation and converts failures into an
// ErrInvalidInput TrackerError with one message per field.
func (s *Service) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return tracker.NewTrackerError(tracker.ErrInvalidInput, tracker.CodeInvalidInput, strings.Join(msgs, "; "))
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "alpha":
		return field + " must contain only letters"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
