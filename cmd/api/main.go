package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railroute.dev/internal/app"
	"railroute.dev/internal/appconf"
	"railroute.dev/internal/gtfs"
	"railroute.dev/internal/logging"
	"railroute.dev/internal/metrics"
	"railroute.dev/internal/restapi"
)

// parseConfig layers the configuration: defaults, then RAILROUTE_* environment
// variables, then command-line flags.
func parseConfig(args []string, getenv func(string) string) (appconf.Config, error) {
	cfg := appconf.Defaults()
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}

	var env string
	fs := flag.NewFlagSet("railroute", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&cfg.GtfsURL, "gtfs-url", cfg.GtfsURL, "Path or URL of a static GTFS zip file")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file holding the compiled graph (empty to disable)")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "Refresh interval for a remote GTFS source")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second allowed per client (0 disables)")
	fs.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "Burst size per client")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Trip cache entries (0 disables)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "Trip cache entry lifetime")
	fs.IntVar(&cfg.CompressionLevel, "gzip-level", cfg.CompressionLevel, "Gzip level of responses, 1-9 (0 disables)")
	fs.IntVar(&cfg.CompressionMinSize, "gzip-min-size", cfg.CompressionMinSize, "Smallest response in bytes that is compressed")
	fs.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "YAML file with matcher weights and resolver options")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)

	if cfg.GtfsURL == "" && cfg.DBPath == "" {
		return cfg, errors.New("either -gtfs-url or -db is required")
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := appconf.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tuning, err := appconf.LoadTuning(cfg.TuningPath)
	if err != nil {
		return err
	}

	gtfsConfig := gtfs.Config{
		GtfsURL:         cfg.GtfsURL,
		DBPath:          cfg.DBPath,
		RefreshInterval: cfg.RefreshInterval,
		Env:             cfg.Env,
		Verbose:         cfg.LogLevel == "debug",
		Weights:         tuning.Matcher,
		Options:         tuning.Resolver,
	}
	gtfsManager, err := gtfs.InitManager(ctx, gtfsConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize GTFS manager: %w", err)
	}
	defer gtfsManager.Shutdown()

	gtfsManager.PrintStatistics()

	application := &app.Application{
		Config:      cfg,
		GtfsConfig:  gtfsConfig,
		Logger:      logger,
		GtfsManager: gtfsManager,
		Metrics:     metrics.NewCollector(),
	}
	application.WireMetrics()

	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
