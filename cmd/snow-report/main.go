package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/snow-report/internal/api/http"
	"github.com/i474232898/snow-report/internal/config"
	"github.com/i474232898/snow-report/internal/logging"
	"github.com/i474232898/snow-report/internal/report"
	"github.com/i474232898/snow-report/internal/resorts"
	"github.com/i474232898/snow-report/internal/scheduler"
	"github.com/i474232898/snow-report/internal/weather"
	"github.com/i474232898/snow-report/internal/weather/providers"
)

const appName = "snow-report"

func main() {
	// Load configuration; flags below default to these values.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(cfg).ParseAndRun(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

// app bundles the dependencies shared by every subcommand.
type app struct {
	cfg      *config.AppConfig
	logger   *zap.Logger
	registry *resorts.Registry
	service  *weather.Service
}

func newApp(cfg *config.AppConfig) (*app, error) {
	zl, err := logging.New(appName, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	registry := resorts.Default()

	// One refresh fans out to every resort, so a half-open circuit admits
	// the whole batch.
	provider := providers.NewOpenMeteoProvider(httpClient, providers.WithBreaker(providers.BreakerConfig{
		MaxFailures:      cfg.BreakerMaxFailures,
		HalfOpenRequests: uint32(len(registry.All())),
	}))

	return &app{
		cfg:      cfg,
		logger:   zl,
		registry: registry,
		service:  weather.NewService(provider, weather.WithLogger(zl)),
	}, nil
}

func newRootCommand(cfg *config.AppConfig) *ffcli.Command {
	rootFlags := flag.NewFlagSet(appName, flag.ExitOnError)
	rootFlags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	rootFlags.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "timeout for each provider request")
	rootFlags.StringVar(&cfg.Region, "region", cfg.Region, "region whose resorts are shown")

	return &ffcli.Command{
		Name:       appName,
		ShortUsage: appName + " [flags] <subcommand> [flags]",
		ShortHelp:  "Live snow conditions for ski resorts.",
		FlagSet:    rootFlags,
		Options:    []ff.Option{ff.WithEnvVarNoPrefix()},
		Subcommands: []*ffcli.Command{
			newReportCommand(cfg),
			newWatchCommand(cfg),
			newServeCommand(cfg),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}
}

func newReportCommand(cfg *config.AppConfig) *ffcli.Command {
	fs := flag.NewFlagSet(appName+" report", flag.ExitOnError)
	sortKey := fs.String("sort", string(report.SortByTemperature), "sort order: temp, name or snow")
	forecast := fs.String("forecast", "", "also print the 7-day forecast of the resort with this id")

	return &ffcli.Command{
		Name:       "report",
		ShortUsage: appName + " report [-sort temp|name|snow] [-forecast <resort-id>]",
		ShortHelp:  "Fetch current conditions once and print them.",
		FlagSet:    fs,
		Exec: func(ctx context.Context, _ []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			list, err := a.regionResorts()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout+5*time.Second)
			defer cancel()

			batch := a.service.Refresh(ctx, list)
			if err := report.WriteTable(os.Stdout, report.Sort(batch.Resorts, report.SortKey(*sortKey))); err != nil {
				return err
			}
			if len(batch.Stale) > 0 {
				fmt.Fprintf(os.Stdout, "\nUnable to load live weather for %d resort(s); showing last known data.\n", len(batch.Stale))
			}

			if *forecast != "" {
				for _, r := range batch.Resorts {
					if r.ID == *forecast {
						fmt.Fprintln(os.Stdout)
						return report.WriteForecast(os.Stdout, r)
					}
				}
				return fmt.Errorf("%w: %s", resorts.ErrNotFound, *forecast)
			}
			return nil
		},
	}
}

func newWatchCommand(cfg *config.AppConfig) *ffcli.Command {
	fs := flag.NewFlagSet(appName+" watch", flag.ExitOnError)
	fs.DurationVar(&cfg.FetchInterval, "interval", cfg.FetchInterval, "refresh interval")
	sortKey := fs.String("sort", string(report.SortByTemperature), "sort order: temp, name or snow")

	return &ffcli.Command{
		Name:       "watch",
		ShortUsage: appName + " watch [-interval 15m] [-sort temp|name|snow]",
		ShortHelp:  "Refresh conditions periodically and print each refresh.",
		FlagSet:    fs,
		Exec: func(ctx context.Context, _ []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			list, err := a.regionResorts()
			if err != nil {
				return err
			}

			sink := func(batch weather.Batch) {
				fmt.Fprintf(os.Stdout, "\n== %s ==\n", time.Now().Format(time.RFC1123))
				if err := report.WriteTable(os.Stdout, report.Sort(batch.Resorts, report.SortKey(*sortKey))); err != nil {
					a.logger.Error("failed to render report", zap.Error(err))
				}
			}

			sched := scheduler.New(list, cfg.FetchInterval, cfg.HTTPTimeout+5*time.Second, a.service, sink, a.logger)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			<-ctx.Done()
			return nil
		},
	}
}

func newServeCommand(cfg *config.AppConfig) *ffcli.Command {
	fs := flag.NewFlagSet(appName+" serve", flag.ExitOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: appName + " serve [-port 8080]",
		ShortHelp:  "Serve normalized conditions as JSON for the dashboard.",
		FlagSet:    fs,
		Exec: func(ctx context.Context, _ []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			// Basic app configuration
			srv := fiber.New(fiber.Config{
				AppName:               appName,
				DisableStartupMessage: true,
				ReadTimeout:           10 * time.Second,
				WriteTimeout:          30 * time.Second,
				ErrorHandler:          httpapi.ErrorHandler,
			})

			// Global middleware
			srv.Use(logger.New())
			srv.Use(recover.New())

			// Basic health endpoint
			srv.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{
					"status":  "ok",
					"service": appName,
				})
			})

			// API routes.
			httpapi.RegisterRoutes(srv, a.service, a.registry)

			go func() {
				a.logger.Info("listening", zap.String("port", cfg.Port))
				if err := srv.Listen(":" + cfg.Port); err != nil {
					a.logger.Error("fiber server stopped", zap.Error(err))
				}
			}()

			// Wait for termination signal
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
				a.logger.Error("error during shutdown", zap.Error(err))
			}
			return nil
		},
	}
}

func (a *app) regionResorts() ([]weather.Resort, error) {
	if !a.registry.HasRegion(a.cfg.Region) {
		return nil, fmt.Errorf("unknown region %q (known: %v)", a.cfg.Region, a.registry.Regions())
	}
	return a.registry.InRegion(a.cfg.Region), nil
}
