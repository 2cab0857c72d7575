package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/hestia/internal/assets"
	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup
	delta := 2

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Connections are opened per request, so a database that is down at startup is not fatal.
	employeeRepo := repository.NewEmployeeRepository(repository.NewConnector(cfg.Database), logger, appMetrics)
	backgrounds := assets.NewFetcher(logger, cfg.Storage, appMetrics)

	app, err := server.NewApp(logger, employeeRepo, backgrounds, cfg.Display, cfg.Storage.CacheDir, appMetrics)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build application", sl.Err(err))
		os.Exit(1)
	}

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		health := server.NewHealthChecker(employeeRepo, backgrounds, logger)
		server.StartMonitoringServer(ctx, logger, reg, health, cfg.MonitoringPort)
	}()

	go func() {
		defer wgr.Done()
		logger.InfoContext(ctx, "Starting employee directory", "port", cfg.HTTPPort)
		if err := server.Serve(ctx, logger, server.NewHTTPServer(cfg.HTTPPort, app)); err != nil {
			logger.ErrorContext(ctx, "Employee directory failed", sl.Err(err))
			stop()
		}
		logger.InfoContext(ctx, "Employee directory stopped.")
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// setupLogger builds the process logger for env. Unknown environments log errors only
// and say so on the first line.
func setupLogger(env string, out io.Writer) *slog.Logger {
	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	}

	log := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))
	log.Error(
		"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
			" Please specify the value of `APP_ENV`: local, development, production")

	return log
}
