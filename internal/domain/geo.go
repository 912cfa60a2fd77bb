package domain

import (
	"encoding/json"
	"math"
)

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371.0

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether both components are finite.
func (c Coordinate) Valid() bool {
	return isFinite(c.Lat) && isFinite(c.Lon)
}

// Point is one station or region reading. A nil Value means no reading.
type Point struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name,omitempty"`
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	Value *float64 `json:"value"`
}

// Coordinate returns the point's location.
func (p Point) Coordinate() Coordinate {
	return Coordinate{Lat: p.Lat, Lon: p.Lon}
}

// reading returns the point's value if it holds a finite number.
func (p Point) reading() (float64, bool) {
	if p.Value == nil || !isFinite(*p.Value) {
		return 0, false
	}
	return *p.Value, true
}

// DistanceKm returns the great-circle distance between a and b in kilometres.
func DistanceKm(a, b Coordinate) float64 {
	lat1 := degreesToRadians(a.Lat)
	lat2 := degreesToRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := degreesToRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// NearestPoint returns the point closest to ref by squared lat/lon difference.
// This is a planar shortcut, adequate at city scale. Points with non-finite
// coordinates are skipped. It returns false when ref is invalid or no point
// qualifies. On equal distances the earlier point wins.
func NearestPoint(ref Coordinate, points []Point) (Point, bool) {
	if !ref.Valid() {
		return Point{}, false
	}

	var (
		best  Point
		found bool
		bestD float64
	)
	for _, p := range points {
		if !p.Coordinate().Valid() {
			continue
		}
		dLat := p.Lat - ref.Lat
		dLon := p.Lon - ref.Lon
		d := dLat*dLat + dLon*dLon
		if !found || d < bestD {
			best, bestD, found = p, d, true
		}
	}
	return best, found
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature with free-form properties.
type Feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   *Geometry      `json:"geometry"`
}

// Geometry is a GeoJSON geometry. Coordinates are decoded lazily because
// their nesting depends on Type.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// PolygonCentroid approximates a geometry's location. A Point is returned as
// is. For Polygon and MultiPolygon it averages every vertex of each member's
// outer ring; this is a vertex mean, not an area centroid. It returns false
// for unsupported or malformed geometry.
func PolygonCentroid(g Geometry) (Coordinate, bool) {
	var rings [][][]float64

	switch g.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
			return Coordinate{}, false
		}
		c, ok := position(pos)
		return c, ok && c.Valid()
	case "Polygon":
		var poly [][][]float64
		if err := json.Unmarshal(g.Coordinates, &poly); err != nil || len(poly) == 0 {
			return Coordinate{}, false
		}
		rings = append(rings, poly[0])
	case "MultiPolygon":
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return Coordinate{}, false
		}
		for _, poly := range multi {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
	default:
		return Coordinate{}, false
	}

	var sumLat, sumLon float64
	n := 0
	for _, ring := range rings {
		for _, pos := range ring {
			c, ok := position(pos)
			if !ok {
				return Coordinate{}, false
			}
			sumLat += c.Lat
			sumLon += c.Lon
			n++
		}
	}
	if n == 0 {
		return Coordinate{}, false
	}

	c := Coordinate{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
	return c, c.Valid()
}

// position converts a GeoJSON [lon, lat] position.
func position(pos []float64) (Coordinate, bool) {
	if len(pos) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Lat: pos[1], Lon: pos[0]}, true
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
