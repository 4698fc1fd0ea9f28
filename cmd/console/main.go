package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/apiclient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/config"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/console"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/logging"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/telemetry"
)

// app is built once flags are parsed and torn down after the command runs.
type app struct {
	console  *console.Console
	logger   zerolog.Logger
	provider *telemetry.Provider
}

func main() {
	v := viper.New()
	var (
		a             *app
		withTelemetry bool
		noColor       bool
	)

	rootCmd := &cobra.Command{
		Use:           "console",
		Short:         "Hospital administration console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(cmd.Context(), v, withTelemetry, !noColor)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "", "gateway base URL (env GATEWAY_URL)")
	flags.String("actor", "", "user id sent as X-User-Id (env ACTOR)")
	flags.String("log-level", "", "log level (env LOG_LEVEL)")
	flags.Duration("timeout", 0, "per-request timeout (env TIMEOUT)")
	flags.BoolVar(&withTelemetry, "telemetry", false, "export traces and client metrics over OTLP")
	flags.BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable coloured status badges")
	_ = v.BindPFlag("GATEWAY_URL", flags.Lookup("base-url"))
	_ = v.BindPFlag("ACTOR", flags.Lookup("actor"))
	_ = v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = v.BindPFlag("TIMEOUT", flags.Lookup("timeout"))

	rootCmd.AddCommand(
		openCmd(&a),
		watchCmd(&a),
		actCmd(&a),
		formCmd(&a),
		bookCmd(&a),
		routesCmd(&a),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(ctx context.Context, v *viper.Viper, withTelemetry, color bool) (*app, error) {
	cfg, err := config.LoadConsole(v)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.Env)

	opts := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		apiclient.WithLogger(logger),
	}
	if cfg.Actor != "" {
		opts = append(opts, apiclient.WithActor(cfg.Actor))
	}

	a := &app{logger: logger}
	if withTelemetry {
		provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig("hospital-console"), logger)
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry disabled")
		}
		a.provider = provider
		if m, err := telemetry.InitMetrics(); err != nil {
			logger.Warn().Err(err).Msg("failed to initialize metrics")
		} else {
			opts = append(opts, apiclient.WithMetrics(m))
		}
	}

	a.console = console.New(console.NewClients(cfg.GatewayURL, opts...), console.Options{
		Out:    os.Stdout,
		Status: os.Stderr,
		Color:  color && isatty.IsTerminal(os.Stdout.Fd()),
		Logger: logger,
	})
	logger.Debug().Str("gateway", cfg.GatewayURL).Dur("timeout", cfg.Timeout).Msg("console ready")
	return a, nil
}

func (a *app) close() {
	if a == nil || a.provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Debug().Err(err).Msg("telemetry flush failed")
	}
}

func openCmd(a **app) *cobra.Command {
	var (
		page, size int
		filters    []string
	)
	cmd := &cobra.Command{
		Use:   "open [path]",
		Short: "Render the page at a path",
		Example: `  console open /patients --filter status=ACTIVE --page 2
  console open /appointments/APT-20260110-001`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := console.HomePath
			if len(args) == 1 {
				path = args[0]
			}
			values, err := console.ParseValues(filters)
			if err != nil {
				return err
			}
			// --page is 1-based on the command line
			if page > 0 {
				page--
			}
			return (*a).console.Open(cmd.Context(), path, console.OpenOptions{Page: page, Size: size, Filters: values})
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", 0, "rows per page")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "list filter as key=value (repeatable)")
	return cmd
}

func watchCmd(a **app) *cobra.Command {
	var (
		size     int
		interval time.Duration
		filters  []string
	)
	cmd := &cobra.Command{
		Use:     "watch <path>",
		Short:   "Re-render a page on an interval until interrupted",
		Example: `  console watch /beds --filter status=AVAILABLE --interval 30s`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := console.ParseValues(filters)
			if err != nil {
				return err
			}
			return (*a).console.Watch(cmd.Context(), args[0], console.OpenOptions{Size: size, Filters: values}, interval)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "rows per page")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Second, "time between refreshes")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "list filter as key=value (repeatable)")
	return cmd
}

func actCmd(a **app) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "act <path> <action>",
		Short: "Run a status action on a detail page",
		Example: `  console act /appointments/APT-20260110-001 confirm
  console act /invoices/INV-1 pay --field amount=50 --field paymentMethod=CASH`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := console.ParseValues(fields)
			if err != nil {
				return err
			}
			return (*a).console.Act(cmd.Context(), args[0], args[1], values)
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "action input as key=value (repeatable)")
	return cmd
}

func formCmd(a **app) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:     "form <path>",
		Short:   "Submit a create form",
		Example: `  console form /patients/register --field firstName=Ada --field lastName=Lovelace ...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fields) == 0 {
				// no fields: show the form's field list
				return (*a).console.Open(cmd.Context(), args[0], console.OpenOptions{})
			}
			values, err := console.ParseValues(fields)
			if err != nil {
				return err
			}
			return (*a).console.Form(cmd.Context(), args[0], values)
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "form field as key=value (repeatable)")
	return cmd
}

func bookCmd(a **app) *cobra.Command {
	var b console.Booking
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment from a doctor's free slots",
		Example: `  console book --patient PAT-2026-0001 --doctor DR1 --date 2026-01-10
  console book --patient PAT-2026-0001 --doctor DR1 --date 2026-01-10 --slot 09:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*a).console.Book(cmd.Context(), b)
		},
	}
	cmd.Flags().StringVar(&b.PatientID, "patient", "", "patient id")
	cmd.Flags().StringVar(&b.DoctorID, "doctor", "", "doctor id")
	cmd.Flags().StringVar(&b.Date, "date", "", "appointment date, YYYY-MM-DD")
	cmd.Flags().StringVar(&b.Slot, "slot", "", "start time, HH:MM")
	cmd.Flags().StringVar(&b.Type, "type", "", "appointment type (default CONSULTATION)")
	cmd.Flags().StringVar(&b.Reason, "reason", "", "reason for the visit")
	return cmd
}

func routesCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every page path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := (*a).console.Routes()
			if len(routes) == 0 {
				return errors.New("no routes registered")
			}
			for _, r := range routes {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}
