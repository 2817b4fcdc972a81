package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/chart"
	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/couchcryptid/shooting-dashboard/internal/observability"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
)

// Loader reads every input dataset.
type Loader interface {
	Load(ctx context.Context) (domain.Datasets, error)
}

// Joiner assigns incidents to county boundaries.
type Joiner interface {
	Join(incidents []domain.Incident, counties []domain.CountyBoundary, crsName string) (spatial.Result, error)
}

// SnapshotPublisher writes a built analysis to an external sink.
type SnapshotPublisher interface {
	Publish(ctx context.Context, a domain.Analysis) (int, error)
}

// Options tunes the aggregations and chart presentation.
type Options struct {
	TopN             int
	CorrelationSince time.Time
	Charts           chart.Options
}

// OptionsFromConfig maps the service settings onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TopN:             cfg.TopN,
		CorrelationSince: cfg.CorrelationSince,
		Charts:           chart.Options{TopoJSONURL: cfg.TopoJSONURL},
	}
}

// Dashboard is one complete build: the analysis and every chart drawn from it.
type Dashboard struct {
	Analysis domain.Analysis
	Charts   chart.Set
}

// Pipeline orchestrates the load-aggregate-join-chart build.
type Pipeline struct {
	loader    Loader
	joiner    Joiner
	publisher SnapshotPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	opts      Options
}

// New creates a Pipeline with the given stages and observability.
func New(l Loader, j Joiner, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		loader:  l,
		joiner:  j,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// WithPublisher sets the sink Run publishes the first successful build to.
func (p *Pipeline) WithPublisher(pub SnapshotPublisher) *Pipeline {
	p.publisher = pub
	return p
}

// CheckReadiness returns nil once a build has succeeded, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dashboard has not been built yet")
	}
	return nil
}

// Build loads the datasets and derives the full dashboard. Every call reads
// the inputs afresh.
func (p *Pipeline) Build(ctx context.Context) (Dashboard, error) {
	start := time.Now()

	d, err := p.build(ctx)
	if err != nil {
		p.metrics.BuildsTotal.WithLabelValues("error").Inc()
		return Dashboard{}, err
	}

	p.metrics.BuildsTotal.WithLabelValues("success").Inc()
	p.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	p.recordStats(d.Analysis)
	if !p.ready.Swap(true) {
		p.metrics.DashboardReady.Set(1)
	}
	return d, nil
}

func (p *Pipeline) build(ctx context.Context) (Dashboard, error) {
	ds, err := p.loader.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load datasets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Dashboard{}, err
	}

	joined, err := p.joiner.Join(ds.Incidents, ds.Counties, ds.CountiesCRS)
	if err != nil {
		return Dashboard{}, fmt.Errorf("spatial join: %w", err)
	}

	a := assemble(ds, joined, p.opts)
	p.logger.Debug("dashboard built",
		"states", len(a.States),
		"counties", len(a.Counties),
		"correlation_points", len(a.Correlation.Points),
		"trend_months", len(a.Trend.Buckets),
		"unmatched_incidents", a.Stats.UnmatchedIncidents,
		"swapped_counties", a.Stats.SwappedCounties,
	)
	return Dashboard{Analysis: a, Charts: chart.Build(a, p.opts.Charts)}, nil
}

func (p *Pipeline) recordStats(a domain.Analysis) {
	p.metrics.IncidentsLoaded.Set(float64(a.Stats.Incidents))
	p.metrics.CountiesJoined.Set(float64(len(a.Counties)))
	p.metrics.IncidentsDropped.WithLabelValues("invalid_date").Add(float64(a.Stats.InvalidDates))
	p.metrics.IncidentsDropped.WithLabelValues("no_coordinates").Add(float64(a.Stats.WithoutCoordinates))
	p.metrics.IncidentsDropped.WithLabelValues("unmatched").Add(float64(a.Stats.UnmatchedIncidents))
}

// Publish sends the analysis to the configured publisher. It is a no-op
// without one.
func (p *Pipeline) Publish(ctx context.Context, d Dashboard) error {
	if p.publisher == nil {
		return nil
	}
	n, err := p.publisher.Publish(ctx, d.Analysis)
	if err != nil {
		return err
	}
	p.metrics.SnapshotMessagesProduced.Add(float64(n))
	p.logger.Info("snapshot published", "messages", n)
	return nil
}

// Run builds the dashboard until the first success, backing off between
// failed attempts, then publishes that build. It returns nil once published
// or when the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("dashboard warm-up started")

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("dashboard warm-up stopping", "reason", ctx.Err())
			return nil
		default:
		}

		d, err := p.Build(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("dashboard build failed", "error", err)
			if !p.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}

		p.logger.Info("dashboard ready",
			"incidents", d.Analysis.Stats.Incidents,
			"counties", len(d.Analysis.Counties),
		)
		if err := p.Publish(ctx, d); err != nil {
			p.logger.Error("snapshot publish failed", "error", err)
		}
		return nil
	}
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
