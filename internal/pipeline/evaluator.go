package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
	"github.com/couchcryptid/hazard-decision-service/internal/observability"
)

const (
	initialBackoff     = 200 * time.Millisecond
	maxBackoff         = 5 * time.Second
	maxPublishAttempts = 5
)

// Publisher delivers a finished assessment downstream.
type Publisher interface {
	Publish(ctx context.Context, a domain.Assessment) error
}

// Options configures the scheduled evaluation.
type Options struct {
	Interval       time.Duration
	Center         *domain.Coordinate
	MockFlags      domain.MockFlags
	DengueRadiusKm float64
}

// Evaluator turns dataset snapshots into hazard assessments, on demand and on
// a fixed schedule.
type Evaluator struct {
	loader    *SnapshotLoader
	publisher Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options
	ready     atomic.Bool
}

// New creates an Evaluator. publisher may be nil, in which case scheduled
// assessments are only logged and recorded in metrics.
func New(loader *SnapshotLoader, publisher Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Evaluator {
	return &Evaluator{
		loader:    loader,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
}

// Assess evaluates the hazards around center. With any mock flag set the
// outcome is canned, so the upstream datasets are not fetched.
func (e *Evaluator) Assess(ctx context.Context, center *domain.Coordinate, flags domain.MockFlags) domain.Assessment {
	start := e.clock.Now()

	in := domain.Inputs{
		Center:         center,
		MockFlags:      flags,
		DengueRadiusKm: e.opts.DengueRadiusKm,
	}
	if !flags.Any() {
		in.Readings = e.loader.Load(ctx)
	}

	a := domain.Assess(in)
	a.EvaluatedAt = e.clock.Now().UTC()

	e.record(a, e.clock.Since(start))
	e.logger.Debug("hazards evaluated",
		"kind", a.Global.Kind,
		"severity", a.Global.Severity,
		"mocked", a.Mocked,
	)
	return a
}

func (e *Evaluator) record(a domain.Assessment, elapsed time.Duration) {
	mode := "live"
	if a.Mocked {
		mode = "mock"
	}
	e.metrics.Evaluations.WithLabelValues(mode).Inc()
	e.metrics.EvaluationDuration.Observe(elapsed.Seconds())
	e.metrics.GlobalSeverity.Set(float64(a.Global.Severity.Rank()))
	for _, h := range a.Grid {
		e.metrics.HazardSeverity.WithLabelValues(string(h.Kind)).Set(float64(h.Severity.Rank()))
	}
}

// CheckReadiness returns nil once the first scheduled evaluation has
// completed, or an error describing why the service is not yet ready.
func (e *Evaluator) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("no hazard evaluation has completed yet")
	}
	return nil
}

// Run evaluates immediately and then once per interval until the context is
// cancelled.
func (e *Evaluator) Run(ctx context.Context) error {
	e.logger.Info("evaluator started",
		"interval", e.opts.Interval,
		"center_set", e.opts.Center != nil,
		"mock", e.opts.MockFlags.String(),
	)
	e.metrics.EvaluatorRunning.Set(1)
	defer e.metrics.EvaluatorRunning.Set(0)

	ticker := e.clock.NewTicker(e.opts.Interval)
	defer ticker.Stop()

	for {
		if !e.runCycle(ctx) {
			e.logger.Info("evaluator stopping", "reason", ctx.Err())
			return nil
		}

		select {
		case <-ctx.Done():
			e.logger.Info("evaluator stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// runCycle performs one scheduled evaluation and publishes it. Returns false
// if the evaluator should stop.
func (e *Evaluator) runCycle(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	a := e.Assess(ctx, e.opts.Center, e.opts.MockFlags)
	e.ready.Store(true)

	if a.Global.Severity != domain.SeveritySafe {
		e.logger.Info("hazard detected",
			"kind", a.Global.Kind,
			"severity", a.Global.Severity,
			"location", a.Global.LocationName,
		)
	}

	if e.publisher == nil {
		return true
	}
	return e.publish(ctx, a)
}

// publish retries with exponential backoff. After maxPublishAttempts the
// assessment is dropped; the next cycle produces a fresh one.
func (e *Evaluator) publish(ctx context.Context, a domain.Assessment) bool {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := e.publisher.Publish(ctx, a)
		if err == nil {
			e.metrics.AssessmentsPublished.Inc()
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		e.metrics.PublishErrors.Inc()
		e.logger.Error("publish assessment failed", "error", err, "attempt", attempt)
		if attempt >= maxPublishAttempts {
			e.logger.Warn("dropping assessment after repeated publish failures", "kind", a.Global.Kind)
			return true
		}

		if !sleepWithContext(ctx, e.clock, backoff) {
			return false
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}

// sleepWithContext mirrors retry.SleepWithContext on the evaluator's clock.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
