package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
)

// SnapshotLoader fetches every dataset for one evaluation.
type SnapshotLoader struct {
	feed   domain.Feed
	logger *slog.Logger
}

// NewSnapshotLoader creates a loader reading from feed.
func NewSnapshotLoader(feed domain.Feed, logger *slog.Logger) *SnapshotLoader {
	return &SnapshotLoader{feed: feed, logger: logger}
}

// Load requests all six datasets concurrently. A dataset that fails to load
// is logged and left nil so the affected classifiers fall back to safe; the
// remaining datasets are still used.
func (l *SnapshotLoader) Load(ctx context.Context) domain.Readings {
	var r domain.Readings
	targets := map[domain.Dataset]*[]domain.Point{
		domain.DatasetRainfall:    &r.Rainfall,
		domain.DatasetWind:        &r.Wind,
		domain.DatasetTemperature: &r.Temperature,
		domain.DatasetHumidity:    &r.Humidity,
		domain.DatasetPM25:        &r.PM25,
	}

	var g errgroup.Group
	for _, ds := range domain.PointDatasets {
		dst := targets[ds]
		g.Go(func() error {
			points, err := l.feed.Points(ctx, ds)
			if err != nil {
				l.logger.Warn("dataset unavailable, treating as empty", "dataset", ds, "error", err)
				return nil
			}
			*dst = points
			return nil
		})
	}
	g.Go(func() error {
		fc, err := l.feed.DengueClusters(ctx)
		if err != nil {
			l.logger.Warn("dataset unavailable, treating as empty", "dataset", domain.DatasetDengue, "error", err)
			return nil
		}
		r.Dengue = fc
		return nil
	})

	// Every goroutine swallows its error, so Wait only synchronises.
	_ = g.Wait()
	return r
}
