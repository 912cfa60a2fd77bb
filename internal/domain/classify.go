package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classification thresholds.
const (
	floodDangerMM   = 20.0
	floodWarningMM  = 10.0
	floodWarningRH  = 85.0
	hazeWarningPM25 = 36.0
	hazeDangerPM25  = 55.0
	windWarningKT   = 15.0
	windDangerKT    = 25.0
	heatWarningHI   = 32.0
	heatDangerHI    = 41.0
	dengueDangerMin = 10

	// DefaultDengueRadiusKm is used when no positive radius is supplied.
	DefaultDengueRadiusKm = 5.0
)

// ClassifyFlood rates flood risk from the rainfall station nearest to center.
// Heavy rain alone is a danger; moderate rain becomes a warning only when the
// nearest humidity reading is saturated. A nil center degrades to safe.
func ClassifyFlood(center *Coordinate, rainfall, humidity []Point) Hazard {
	h := Hazard{Kind: KindFlood, Severity: SeveritySafe, Title: "No Flood Risk"}
	if center == nil {
		return h
	}

	station, ok := NearestPoint(*center, rainfall)
	if !ok {
		return h
	}
	mm, ok := station.reading()
	if !ok {
		return h
	}

	m := FloodMetrics{MM: mm}
	if hum, ok := NearestPoint(*center, humidity); ok {
		if rh, ok := hum.reading(); ok {
			m.RH = &rh
		}
	}
	h.LocationName = station.Name
	h.Metrics = m

	switch {
	case mm >= floodDangerMM:
		h.Severity = SeverityDanger
		h.Title = "Flash Flood Alert"
		h.Reason = fmt.Sprintf("%.1f mm of rain in the last 5 minutes nearby", mm)
	case mm >= floodWarningMM && m.RH != nil && *m.RH >= floodWarningRH:
		h.Severity = SeverityWarning
		h.Title = "Flood Watch"
		h.Reason = fmt.Sprintf("%.1f mm of rain with %.0f%% humidity nearby", mm, *m.RH)
	default:
		h.Reason = fmt.Sprintf("%.1f mm of rain nearby", mm)
	}
	return h
}

// ClassifyHaze rates air quality from the worst regional PM2.5 reading.
func ClassifyHaze(pm25 []Point) Hazard {
	h := Hazard{Kind: KindHaze, Severity: SeveritySafe, Title: "Air Quality Good"}

	worst, v, ok := maxReading(pm25)
	if !ok {
		return h
	}

	region := regionLabel(worst.Name)
	h.LocationName = region
	h.Metrics = HazeMetrics{PM25: v, Region: region}
	h.Reason = fmt.Sprintf("PM2.5 at %.0f µg/m³", v)

	switch {
	case v < hazeWarningPM25:
	case v <= hazeDangerPM25:
		h.Severity = SeverityWarning
		h.Title = "Haze Advisory"
	default:
		h.Severity = SeverityDanger
		h.Title = "Unhealthy Haze"
	}
	return h
}

// ClassifyDengue rates dengue exposure from the cluster nearest to center.
// Clusters beyond kmRadius are ignored. A cluster in range with an unknown
// case count is still a warning. A non-positive kmRadius selects
// DefaultDengueRadiusKm.
func ClassifyDengue(center *Coordinate, clusters *FeatureCollection, kmRadius float64) Hazard {
	h := Hazard{Kind: KindDengue, Severity: SeveritySafe, Title: "No Dengue Clusters Nearby"}
	if center == nil || !center.Valid() || clusters == nil {
		return h
	}
	if !(kmRadius > 0) || !isFinite(kmRadius) {
		kmRadius = DefaultDengueRadiusKm
	}

	var (
		nearest *Feature
		bestKm  float64
	)
	for i := range clusters.Features {
		f := &clusters.Features[i]
		if f.Geometry == nil {
			continue
		}
		c, ok := PolygonCentroid(*f.Geometry)
		if !ok {
			continue
		}
		d := DistanceKm(*center, c)
		if nearest == nil || d < bestKm {
			nearest, bestKm = f, d
		}
	}
	if nearest == nil {
		return h
	}
	if bestKm > kmRadius {
		h.Reason = fmt.Sprintf("Nearest cluster is %.1f km away", bestKm)
		return h
	}

	m := DengueMetrics{Km: bestKm, Locality: locality(nearest.Properties)}
	count, known := caseCount(nearest.Properties)
	if n, ok := wholeCount(count); known && ok {
		m.Cases = &n
	}
	h.LocationName = m.Locality
	h.Metrics = m

	if known && count >= dengueDangerMin {
		h.Severity = SeverityDanger
		h.Title = "Dengue Cluster Alert"
		h.Reason = fmt.Sprintf("%g cases within %.1f km", count, bestKm)
		return h
	}

	h.Severity = SeverityWarning
	h.Title = "Dengue Cluster Nearby"
	if known {
		h.Reason = fmt.Sprintf("%g cases within %.1f km", count, bestKm)
	} else {
		h.Reason = fmt.Sprintf("Active cluster within %.1f km", bestKm)
	}
	return h
}

// ClassifyWind rates wind from the strongest station reading. The location is
// the PM2.5 region nearest to that station, or the station name when no
// regions are supplied.
func ClassifyWind(wind, regions []Point) Hazard {
	h := Hazard{Kind: KindWind, Severity: SeveritySafe, Title: "Calm Winds"}

	station, kt, ok := maxReading(wind)
	if !ok {
		return h
	}

	region := resolveRegion(station, regions)
	h.LocationName = region
	h.Metrics = WindMetrics{KT: kt, Region: region}
	h.Reason = fmt.Sprintf("Gusts of %.1f kt", kt)

	switch {
	case kt < windWarningKT:
	case kt < windDangerKT:
		h.Severity = SeverityWarning
		h.Title = "Strong Winds"
	default:
		h.Severity = SeverityDanger
		h.Title = "Gale Warning"
	}
	return h
}

// ClassifyHeat rates heat stress. Each temperature station is paired with the
// humidity station nearest to it and the worst heat index wins.
func ClassifyHeat(temperature, humidity, regions []Point) Hazard {
	h := Hazard{Kind: KindHeat, Severity: SeveritySafe, Title: "No Heat Stress"}

	var (
		hottest Point
		worst   float64
		found   bool
	)
	for _, t := range temperature {
		if _, ok := t.reading(); !ok {
			continue
		}
		hum, ok := NearestPoint(t.Coordinate(), humidity)
		if !ok {
			continue
		}
		hi := HeatIndexC(t.Value, hum.Value)
		if hi == nil || !isFinite(*hi) {
			continue
		}
		if !found || *hi > worst {
			hottest, worst, found = t, *hi, true
		}
	}
	if !found {
		return h
	}

	region := resolveRegion(hottest, regions)
	h.LocationName = region
	h.Metrics = HeatMetrics{HI: worst, Region: region}
	h.Reason = fmt.Sprintf("Feels like %.1f °C", worst)

	switch {
	case worst < heatWarningHI:
	case worst <= heatDangerHI:
		h.Severity = SeverityWarning
		h.Title = "Heat Caution"
	default:
		h.Severity = SeverityDanger
		h.Title = "Extreme Heat Warning"
	}
	return h
}

// maxReading returns the point with the largest reading. The first maximum
// wins on ties.
func maxReading(points []Point) (Point, float64, bool) {
	var (
		best  Point
		bestV float64
		found bool
	)
	for _, p := range points {
		v, ok := p.reading()
		if !ok {
			continue
		}
		if !found || v > bestV {
			best, bestV, found = p, v, true
		}
	}
	return best, bestV, found
}

const unknownRegion = "Unknown Region"

// resolveRegion labels a station by its nearest PM2.5 region, falling back to
// the station's own name.
func resolveRegion(station Point, regions []Point) string {
	if r, ok := NearestPoint(station.Coordinate(), regions); ok && strings.TrimSpace(r.Name) != "" {
		return regionLabel(r.Name)
	}
	return station.Name
}

// regionLabel turns a region key such as "central" into "Central Region".
// A blank key labels as "Unknown Region".
func regionLabel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return unknownRegion
	}
	titled := cases.Title(language.English).String(name)
	if strings.HasSuffix(titled, " Region") {
		return titled
	}
	return titled + " Region"
}
