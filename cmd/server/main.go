package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaelvsj/docextract/internal/api"
	"github.com/rafaelvsj/docextract/internal/config"
	"github.com/rafaelvsj/docextract/internal/extractor"
	"github.com/rafaelvsj/docextract/internal/observability/metrics"
	"github.com/rafaelvsj/docextract/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Wire the pipeline: registry → dispatcher → pipeline → server.
	registry := extractor.NewRegistry(cfg)
	dispatcher := extractor.NewDispatcher(registry, cfg.TempDir, log)
	pipe := pipeline.New(dispatcher, log)
	m := metrics.NewServerMetrics()

	srv := api.NewServer(pipe, registry, m, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docextract", "port", cfg.Port, "formats", registry.Supported())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
