package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/tournevent/parcel/internal/server"
	"github.com/tournevent/parcel/internal/tracking"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var (
	envFile string
	verbose bool

	carriersFirst   int
	carriersCountry string
)

var rootCmd = &cobra.Command{
	Use:     "parcel",
	Short:   "Parcel tracking proxy for the Delivery Tracker API",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var carriersCmd = &cobra.Command{
	Use:   "carriers",
	Short: "Print the carrier directory as JSON",
	Args:  cobra.NoArgs,
	RunE:  runCarriers,
}

var trackCmd = &cobra.Command{
	Use:   "track <carrierId> <trackingNumber>",
	Short: "Print the tracking result of one shipment as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrack,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file read before the environment (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stdout while running one-shot commands")

	carriersCmd.Flags().IntVar(&carriersFirst, "first", 0, "number of carriers to fetch (default from CARRIERS_PAGE_SIZE)")
	carriersCmd.Flags().StringVar(&carriersCountry, "country", "", "ISO country code (default from CARRIERS_COUNTRY_CODE)")

	rootCmd.AddCommand(serveCmd, carriersCmd, trackCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	if !cfg.HasTrackerCredentials() && !cfg.TrackerUseMock {
		logger.Warn("Delivery Tracker credentials are not set; upstream calls will fail")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc := newService(cfg, logger, registry)

	logger.Info("Starting parcel tracker",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.String("tracker_endpoint", cfg.TrackerEndpoint),
	)

	srv := server.New(server.Config{
		Port:            cfg.Port,
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		Gatherer:        registry,
	}, svc, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runCarriers(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := oneShotService()
	if err != nil {
		return err
	}
	defer cleanup()

	carriers, err := svc.ListCarriers(cmd.Context(), tracking.ListCarriersRequest{
		First:       carriersFirst,
		CountryCode: carriersCountry,
	})
	if err != nil {
		return err
	}

	for i := range carriers {
		carriers[i].Name = tracking.DisplayName(carriers[i].ID, carriers[i].Name)
	}
	return printJSON(cmd, carriers)
}

func runTrack(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := oneShotService()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Track(cmd.Context(), tracking.TrackRequest{
		CarrierID:      args[0],
		TrackingNumber: args[1],
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
