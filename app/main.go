package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskdesk/app/config"
	"taskdesk/app/fixtures"
	"taskdesk/app/routes"
	"taskdesk/app/services"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	seed, err := loadSeed(cfg, log)
	if err != nil {
		log.Error("cannot load seed data", "source", cfg.SeedSource, "error", err)
		os.Exit(1)
	}
	log.Info("seed data loaded",
		"source", cfg.SeedSource,
		"tasks", len(seed.Tasks),
		"contacts", len(seed.Contacts),
		"companies", len(seed.Companies),
		"deals", len(seed.Deals),
		"leads", len(seed.Leads),
	)

	opts := services.Options{
		Latency: services.NewLatency(cfg.LatencyScale),
		Log:     log,
	}
	router := routes.New(seed, services.Recurrence{Instances: cfg.RecurrenceInstances}, opts)

	server := http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

// loadSeed reads the startup data. The Neo4j driver is only needed for the
// one read and is closed before serving.
func loadSeed(cfg config.Config, log *slog.Logger) (fixtures.Set, error) {
	if cfg.SeedSource != config.SeedNeo4j {
		return fixtures.Embedded()
	}

	ctx := context.Background()
	driver, err := config.InitNeo4j(ctx, cfg.Neo4j)
	if err != nil {
		return fixtures.Set{}, err
	}
	defer func() {
		if err := driver.Close(ctx); err != nil {
			log.Warn("cannot close neo4j driver", "error", err)
		}
	}()
	return fixtures.NewNeo4jSource(driver).Load(ctx)
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
