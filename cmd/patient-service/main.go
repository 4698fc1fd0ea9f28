package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/config"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/db"
	apphttp "github.com/WailSalutem-Health-Care/hospital-console/internal/http"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/logging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/messaging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/telemetry"
)

const serviceName = "patient-service"

func main() {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Patient registry service",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the patient API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, logger, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			count, err := db.NewMigrator(conn, db.Migrations()).Up(cmd.Context())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			logger.Info().Int("applied", count).Msg("migrations complete")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, err := openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			statuses, err := db.NewMigrator(conn, db.Migrations()).Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			cmd.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				state, at := "pending", ""
				if s.Applied {
					state = "applied"
					at = s.AppliedAt.Format(time.RFC3339)
				}
				cmd.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, state, at)
			}
			return nil
		},
	})
	return cmd
}

func openDB() (*sql.DB, zerolog.Logger, error) {
	cfg, err := config.LoadService()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.LogLevel, cfg.Env)
	conn, err := db.Connect(context.Background(), db.Options{
		DSN:          cfg.DSN(),
		Name:         cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}, logger)
	return conn, logger, err
}

func runServer() error {
	cfg, err := config.LoadService()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.Env)
	ctx := context.Background()

	provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig(serviceName), logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry disabled")
	}
	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize metrics")
	}

	conn, err := db.Connect(ctx, db.Options{
		DSN:          cfg.DSN(),
		Name:         cfg.DBName,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer conn.Close()
	logger.Info().Msg("connected to database")

	if applied, err := db.NewMigrator(conn, db.Migrations()).Up(ctx); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	} else if applied > 0 {
		logger.Info().Int("applied", applied).Msg("migrations applied")
	}

	publisher, err := messaging.NewFromOptions(messaging.BrokerOptions{
		Broker:       cfg.EventsBroker,
		RabbitMQURL:  cfg.RabbitMQURL,
		KafkaBrokers: cfg.KafkaBrokers,
		KafkaTopic:   cfg.KafkaTopic,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Str("broker", cfg.EventsBroker).Msg("event broker unavailable, events will not be published")
		publisher = messaging.NopPublisher{}
	}
	defer publisher.Close()

	var patientMetrics patient.MetricsRecorder
	if metrics != nil {
		patientMetrics = metrics
	}
	svc := patient.NewService(patient.NewRepository(conn, logger), publisher, patientMetrics, cfg.EventsBroker, logger)

	deps := apphttp.RouterDeps{
		Patients: patient.NewHandler(svc, logger),
		Metrics:  metrics,
		Ping:     conn.PingContext,
		Logger:   logger,
	}

	if cfg.AuthEnabled {
		jwks, err := auth.NewJWKS(ctx, cfg.AuthJWKSURL, 0, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load signing keys")
		}
		defer jwks.Close()

		perms, err := auth.LoadPermissions(cfg.PermissionsFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.PermissionsFile).Msg("failed to load permissions")
		}
		deps.Verifier = auth.NewVerifier(auth.Config{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
		}, jwks)
		deps.Perms = perms
		logger.Info().Str("issuer", cfg.AuthIssuer).Msg("bearer authentication enabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apphttp.CORSMiddleware(cfg.CORSOrigins)(apphttp.SetupRouter(deps)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("patient service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if provider != nil {
		_ = provider.Shutdown(shutdownCtx)
	}
	logger.Info().Msg("server stopped")
	return nil
}
