package domain

import (
	"context"
	"time"
)

// Dataset names an upstream reading feed.
type Dataset string

const (
	DatasetRainfall    Dataset = "rainfall"
	DatasetWind        Dataset = "wind-speed"
	DatasetTemperature Dataset = "air-temperature"
	DatasetHumidity    Dataset = "relative-humidity"
	DatasetPM25        Dataset = "pm25"
	DatasetDengue      Dataset = "dengue-clusters"
)

// PointDatasets lists the feeds that deliver station or region points.
var PointDatasets = []Dataset{DatasetRainfall, DatasetWind, DatasetTemperature, DatasetHumidity, DatasetPM25}

// Feed supplies the upstream datasets a snapshot is built from.
type Feed interface {
	Points(ctx context.Context, ds Dataset) ([]Point, error)
	DengueClusters(ctx context.Context) (*FeatureCollection, error)
}

// Assessment is the outcome of one evaluation: the banner hazard and the
// per-kind grid computed from the same snapshot.
type Assessment struct {
	Center      *Coordinate `json:"center,omitempty"`
	Global      Hazard      `json:"global"`
	Grid        []Hazard    `json:"grid"`
	Mocked      bool        `json:"mocked"`
	EvaluatedAt time.Time   `json:"evaluated_at"`
}

// Assess runs both decisions over the same inputs. EvaluatedAt is left for
// the caller to stamp.
func Assess(in Inputs) Assessment {
	return Assessment{
		Center: in.Center,
		Global: DecideGlobalHazard(in),
		Grid:   EvaluateAllHazards(in),
		Mocked: in.MockFlags.Any(),
	}
}
