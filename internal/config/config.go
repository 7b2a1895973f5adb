package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port            int    `envconfig:"PORT" default:"8080"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowOrigin string `envconfig:"CORS_ALLOW_ORIGIN" default:"*"`

	// Delivery Tracker
	TrackerEndpoint     string        `envconfig:"TRACKER_ENDPOINT" default:"https://apis.tracker.delivery/graphql"`
	TrackerClientID     string        `envconfig:"TRACKER_CLIENT_ID"`
	TrackerClientSecret string        `envconfig:"TRACKER_CLIENT_SECRET"`
	TrackerTimeout      time.Duration `envconfig:"TRACKER_TIMEOUT" default:"15s"`
	TrackerUseMock      bool          `envconfig:"TRACKER_USE_MOCK" default:"false"`

	// Carrier directory defaults
	CarriersPageSize    int    `envconfig:"CARRIERS_PAGE_SIZE" default:"50"`
	CarriersCountryCode string `envconfig:"CARRIERS_COUNTRY_CODE" default:"KR"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"parcel-tracker"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// DefaultDotenvPath is read when Load is given an empty path.
const DefaultDotenvPath = ".env"

// Load reads configuration from the dotenv file at path (if it exists) and
// then from environment variables. Variables already present in the process
// environment win over the file.
//
// Missing tracker credentials are not a load error: the service starts and
// every upstream call reports a configuration error instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultDotenvPath
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading dotenv %s: %w", path, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// HasTrackerCredentials reports whether both halves of the API key are set.
func (c *Config) HasTrackerCredentials() bool {
	return c.TrackerClientID != "" && c.TrackerClientSecret != ""
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.String("tracker.endpoint", c.TrackerEndpoint),
		attribute.Bool("tracker.credentials", c.HasTrackerCredentials()),
	}
}
