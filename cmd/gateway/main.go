package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/config"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/gateway"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/logging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gateway",
		Short: "Hospital API gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "routes",
		Short: "Print the prefix to upstream table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadGateway()
			if err != nil {
				return err
			}
			routes, err := gateway.RoutesFromConfig(cfg)
			if err != nil {
				return err
			}
			for _, r := range routes {
				cmd.Printf("%-12s %s\n", r.Prefix, r.Upstream)
			}
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadGateway()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.Env)

	ctx := context.Background()
	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig("gateway"), logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry disabled")
	}

	var metrics gateway.MetricsRecorder
	if m, err := telemetry.InitMetrics(); err != nil {
		logger.Warn().Err(err).Msg("failed to initialize metrics")
	} else {
		metrics = m
	}

	routes, err := gateway.RoutesFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid upstream configuration")
	}
	for _, r := range routes {
		logger.Info().Str("prefix", r.Prefix).Str("upstream", r.Upstream.String()).Msg("route registered")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gateway.New(routes, metrics, logger).Handler(cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("gateway starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if provider != nil {
		_ = provider.Shutdown(shutdownCtx)
	}
	logger.Info().Msg("gateway stopped")
	return nil
}
