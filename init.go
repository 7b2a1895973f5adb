package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tournevent/parcel/internal/config"
	"github.com/tournevent/parcel/internal/telemetry"
	"github.com/tournevent/parcel/internal/tracking"
	"github.com/tournevent/parcel/pkg/tracker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

func loadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.Attributes()...)
	return shutdown, err
}

func newTrackerClient(cfg *config.Config, logger *otelzap.Logger) *tracker.Client {
	return tracker.New(tracker.Config{
		Endpoint:     cfg.TrackerEndpoint,
		ClientID:     cfg.TrackerClientID,
		ClientSecret: cfg.TrackerClientSecret,
		Timeout:      cfg.TrackerTimeout,
		UseMock:      cfg.TrackerUseMock,
	}, logger, telemetry.Tracer())
}

func newService(cfg *config.Config, logger *otelzap.Logger, reg prometheus.Registerer) *tracking.Service {
	return tracking.NewService(newTrackerClient(cfg, logger), tracking.Options{
		CarriersPageSize:    cfg.CarriersPageSize,
		CarriersCountryCode: cfg.CarriersCountryCode,
	}, logger, telemetry.NewMetrics(reg))
}

// oneShotService builds a service for the CLI commands. Logging stays off
// unless --verbose is set so stdout carries only the JSON result.
func oneShotService() (*tracking.Service, func(), error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}

	logger := telemetry.NewNopLogger()
	if verbose {
		if logger, err = initLogger(cfg.LogLevel); err != nil {
			return nil, nil, err
		}
	}

	svc := newService(cfg, logger, prometheus.NewRegistry())
	return svc, func() { logger.Sync() }, nil
}
