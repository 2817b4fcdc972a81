// Command render builds the dashboard once and writes it to a directory as
// static files: the HTML page, every Vega-Lite spec, PNG renderings of the
// non-map charts, and the analysis workbook.
//
// Datasets are located with the same environment variables as the server.
//
// Usage:
//
//	DATA_DIR=data/mock go run ./cmd/render -out dist
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/shooting-dashboard/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/shooting-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/shooting-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/shooting-dashboard/internal/adapter/render"
	"github.com/couchcryptid/shooting-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/shooting-dashboard/internal/chart"
	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/observability"
	"github.com/couchcryptid/shooting-dashboard/internal/pipeline"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
)

func main() {
	out := flag.String("out", "dist", "output directory")
	noPNG := flag.Bool("no-png", false, "skip static PNG renderings")
	publish := flag.Bool("publish", false, "publish the analysis snapshot to Kafka (requires KAFKA_BROKERS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *out, !*noPNG, *publish); err != nil {
		logger.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, out string, pngs, publish bool) error {
	p := pipeline.New(
		dataset.NewLoader(cfg, logger),
		spatial.NewJoiner(spatial.AxisOrder(cfg.AxisOrder)),
		logger,
		observability.NewMetricsForTesting(),
		pipeline.OptionsFromConfig(cfg),
	)

	d, err := p.Build(ctx)
	if err != nil {
		return err
	}

	chartsDir := filepath.Join(out, "charts")
	if err := os.MkdirAll(chartsDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var page bytes.Buffer
	if err := httpadapter.RenderPage(&page, httpadapter.Page{Title: cfg.DashboardTitle, Authors: cfg.DashboardAuthors}, d); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	if err := writeFile(filepath.Join(out, "index.html"), page.Bytes()); err != nil {
		return err
	}

	renderer := render.NewRenderer()
	for _, info := range chart.Catalog {
		spec, err := d.Charts[info.ID].MarshalIndent()
		if err != nil {
			return fmt.Errorf("encode %s: %w", info.ID, err)
		}
		if err := writeFile(filepath.Join(chartsDir, info.ID+".json"), spec); err != nil {
			return err
		}

		if !pngs || !render.Supports(info.ID) {
			continue
		}
		var img bytes.Buffer
		if err := renderer.PNG(&img, info.ID, d.Analysis); err != nil {
			return fmt.Errorf("render %s: %w", info.ID, err)
		}
		if err := writeFile(filepath.Join(chartsDir, info.ID+".png"), img.Bytes()); err != nil {
			return err
		}
	}

	var book bytes.Buffer
	if err := xlsx.Write(&book, d.Analysis); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	if err := writeFile(filepath.Join(out, "export.xlsx"), book.Bytes()); err != nil {
		return err
	}

	analysis, err := json.MarshalIndent(d.Analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := writeFile(filepath.Join(out, "analysis.json"), analysis); err != nil {
		return err
	}

	logger.Info("dashboard rendered",
		"out", out,
		"incidents", d.Analysis.Stats.Incidents,
		"unmatched_incidents", d.Analysis.Stats.UnmatchedIncidents,
		"swapped_counties", d.Analysis.Stats.SwappedCounties,
	)

	if !publish {
		return nil
	}
	if len(cfg.KafkaBrokers) == 0 {
		return errors.New("-publish requires KAFKA_BROKERS")
	}
	writer := kafkaadapter.NewWriter(cfg, logger)
	defer func() { _ = writer.Close() }()
	return p.WithPublisher(writer).Publish(ctx, d)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
