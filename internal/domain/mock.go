package domain

import (
	"fmt"
	"strings"
)

// MockFlags switches individual hazard kinds to canned test records. The zero
// value disables mocking.
type MockFlags struct {
	Flood  bool `json:"flood,omitempty"`
	Haze   bool `json:"haze,omitempty"`
	Dengue bool `json:"dengue,omitempty"`
	Wind   bool `json:"wind,omitempty"`
	Heat   bool `json:"heat,omitempty"`
}

// Any reports whether at least one flag is enabled.
func (f MockFlags) Any() bool {
	return f.Flood || f.Haze || f.Dengue || f.Wind || f.Heat
}

// String renders the enabled flags as a comma-separated list.
func (f MockFlags) String() string {
	var kinds []string
	for _, k := range Kinds {
		if f.enabled(k) {
			kinds = append(kinds, string(k))
		}
	}
	return strings.Join(kinds, ",")
}

func (f MockFlags) enabled(k Kind) bool {
	switch k {
	case KindFlood:
		return f.Flood
	case KindHaze:
		return f.Haze
	case KindDengue:
		return f.Dengue
	case KindWind:
		return f.Wind
	case KindHeat:
		return f.Heat
	default:
		return false
	}
}

// ParseMockFlags parses a comma-separated list of hazard kinds, such as
// "flood,heat". Names are case-insensitive and blanks are ignored.
func ParseMockFlags(s string) (MockFlags, error) {
	var f MockFlags
	for _, part := range strings.Split(s, ",") {
		switch Kind(strings.ToLower(strings.TrimSpace(part))) {
		case "":
		case KindFlood:
			f.Flood = true
		case KindHaze:
			f.Haze = true
		case KindDengue:
			f.Dengue = true
		case KindWind:
			f.Wind = true
		case KindHeat:
			f.Heat = true
		default:
			return MockFlags{}, fmt.Errorf("unknown mock hazard %q", strings.TrimSpace(part))
		}
	}
	return f, nil
}

// mockDengueCluster is where the canned dengue cluster sits.
var mockDengueCluster = Coordinate{Lat: 1.3546, Lon: 103.9436}

// MockedHazards returns one canned record per enabled flag, in grid order.
// Records do not depend on any reading; center only sets the reported
// distance to the canned dengue cluster.
func MockedHazards(flags MockFlags, center *Coordinate) []Hazard {
	var out []Hazard

	if flags.Flood {
		rh := 92.0
		out = append(out, Hazard{
			Kind:         KindFlood,
			Severity:     SeverityDanger,
			Title:        "Flash Flood Alert",
			LocationName: "Bukit Timah",
			Reason:       "24.5 mm of rain in the last 5 minutes nearby",
			Metrics:      FloodMetrics{MM: 24.5, RH: &rh},
		})
	}
	if flags.Haze {
		out = append(out, Hazard{
			Kind:         KindHaze,
			Severity:     SeverityWarning,
			Title:        "Haze Advisory",
			LocationName: "West Region",
			Reason:       "PM2.5 at 48 µg/m³",
			Metrics:      HazeMetrics{PM25: 48, Region: "West Region"},
		})
	}
	if flags.Dengue {
		km := 1.2
		if center != nil && center.Valid() {
			km = DistanceKm(*center, mockDengueCluster)
		}
		cases := 23
		out = append(out, Hazard{
			Kind:         KindDengue,
			Severity:     SeverityDanger,
			Title:        "Dengue Cluster Alert",
			LocationName: "Tampines St 81",
			Reason:       fmt.Sprintf("%d cases within %.1f km", cases, km),
			Metrics:      DengueMetrics{Cases: &cases, Km: km, Locality: "Tampines St 81"},
		})
	}
	if flags.Wind {
		out = append(out, Hazard{
			Kind:         KindWind,
			Severity:     SeverityWarning,
			Title:        "Strong Winds",
			LocationName: "East Region",
			Reason:       "Gusts of 19.4 kt",
			Metrics:      WindMetrics{KT: 19.4, Region: "East Region"},
		})
	}
	if flags.Heat {
		out = append(out, Hazard{
			Kind:         KindHeat,
			Severity:     SeverityDanger,
			Title:        "Extreme Heat Warning",
			LocationName: "Central Region",
			Reason:       "Feels like 42.6 °C",
			Metrics:      HeatMetrics{HI: 42.6, Region: "Central Region"},
		})
	}
	return out
}
