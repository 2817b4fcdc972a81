package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/shooting-dashboard/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/shooting-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/shooting-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/observability"
	"github.com/couchcryptid/shooting-dashboard/internal/pipeline"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(cfg, logger)
	joiner := spatial.NewJoiner(spatial.AxisOrder(cfg.AxisOrder))
	p := pipeline.New(loader, joiner, logger, metrics, pipeline.OptionsFromConfig(cfg))

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		p.WithPublisher(writer)
		logger.Info("snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	page := httpadapter.Page{Title: cfg.DashboardTitle, Authors: cfg.DashboardAuthors}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, page, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Warm up the dashboard so /readyz flips once the inputs are readable.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
