package domain

// Severity is the ordered hazard tier: safe < warning < danger.
type Severity string

const (
	SeveritySafe    Severity = "safe"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Rank orders severities for tie-breaking. Unknown values rank below safe.
func (s Severity) Rank() int {
	switch s {
	case SeverityDanger:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySafe:
		return 1
	default:
		return 0
	}
}

// Kind identifies the hazard a record describes.
type Kind string

const (
	KindFlood  Kind = "flood"
	KindHaze   Kind = "haze"
	KindDengue Kind = "dengue"
	KindWind   Kind = "wind"
	KindHeat   Kind = "heat"
	KindNone   Kind = "none"
)

// Kinds lists the classified hazards in grid order.
var Kinds = []Kind{KindFlood, KindHaze, KindDengue, KindWind, KindHeat}

// priority is the tie-break order used when severities are equal.
var priority = []Kind{KindFlood, KindHeat, KindHaze, KindDengue, KindWind}

// priorityIndex returns the kind's position in the tie-break order; kinds
// outside it sort last.
func priorityIndex(k Kind) int {
	for i, p := range priority {
		if p == k {
			return i
		}
	}
	return len(priority)
}

// Hazard is a classified hazard record. Kind and Severity are always set; the
// remaining fields are display metadata.
type Hazard struct {
	Kind         Kind     `json:"kind"`
	Severity     Severity `json:"severity"`
	Title        string   `json:"title"`
	LocationName string   `json:"location_name,omitempty"`
	Reason       string   `json:"reason,omitempty"`
	Metrics      Metrics  `json:"metrics,omitempty"`
}

// NoHazard is the sentinel returned when nothing hazardous is detected.
func NoHazard() Hazard {
	return Hazard{Kind: KindNone, Severity: SeveritySafe, Title: "No Hazard Detected"}
}

// Metrics carries the measurements behind a hazard record. Each hazard kind
// has its own variant.
type Metrics interface {
	Kind() Kind
	metrics()
}

// FloodMetrics holds the nearest rainfall reading and, when available, the
// nearest relative humidity.
type FloodMetrics struct {
	MM float64  `json:"mm"`
	RH *float64 `json:"rh,omitempty"`
}

// HazeMetrics holds the worst regional PM2.5 reading.
type HazeMetrics struct {
	PM25   float64 `json:"pm25"`
	Region string  `json:"region,omitempty"`
}

// DengueMetrics describes the nearest dengue cluster. Cases is nil when the
// cluster does not report a whole-number count.
type DengueMetrics struct {
	Cases    *int    `json:"cases,omitempty"`
	Km       float64 `json:"km"`
	Locality string  `json:"locality,omitempty"`
}

// WindMetrics holds the strongest station wind speed in knots.
type WindMetrics struct {
	KT     float64 `json:"kt"`
	Region string  `json:"region,omitempty"`
}

// HeatMetrics holds the worst heat index in °C.
type HeatMetrics struct {
	HI     float64 `json:"hi"`
	Region string  `json:"region,omitempty"`
}

func (FloodMetrics) Kind() Kind  { return KindFlood }
func (HazeMetrics) Kind() Kind   { return KindHaze }
func (DengueMetrics) Kind() Kind { return KindDengue }
func (WindMetrics) Kind() Kind   { return KindWind }
func (HeatMetrics) Kind() Kind   { return KindHeat }

func (FloodMetrics) metrics()  {}
func (HazeMetrics) metrics()   {}
func (DengueMetrics) metrics() {}
func (WindMetrics) metrics()   {}
func (HeatMetrics) metrics()   {}
