// Package domain classifies environmental readings into hazard records.
//
// # Inputs
//
// Readings arrive as snapshots of station or region points, one slice per
// dataset:
//
//	Rainfall     mm per 5 minutes, per station
//	Wind         knots, per station
//	Temperature  degrees Celsius, per station
//	Humidity     relative humidity in percent, per station
//	PM25         µg/m³, per region (north, south, east, west, central)
//
// A point with a nil Value carries no reading and is never treated as zero.
// Points with non-finite coordinates are skipped wherever a location is needed.
//
// Dengue clusters arrive as a GeoJSON FeatureCollection of Polygon or
// MultiPolygon features. Coordinates follow GeoJSON order: [lon, lat]. A
// cluster is located by the mean of its outer-ring vertices, which is an
// approximation and not an area-weighted centroid.
//
// # Severity bands
//
//	Flood:  nearest rain >= 20 mm danger | >= 10 mm with nearest RH >= 85% warning
//	Haze:   worst region PM2.5 < 36 safe | <= 55 warning | > 55 danger
//	Dengue: nearest cluster within radius, cases >= 10 danger, otherwise warning
//	Wind:   strongest station < 15 kt safe | < 25 kt warning | >= 25 kt danger
//	Heat:   worst heat index < 32 °C safe | <= 41 °C warning | > 41 °C danger
//
// # Resolution
//
// [DecideGlobalHazard] picks a single record for a status banner: highest
// severity first, then the fixed priority flood > heat > haze > dengue > wind.
// When every classifier reports safe it returns the [NoHazard] sentinel.
// [EvaluateAllHazards] returns one record per kind in grid order.
//
// Any enabled mock flag replaces real classification entirely, in both
// functions. In the grid this also blanks kinds that were not mocked.
//
// Every function in this package is pure. Nothing here performs I/O or keeps
// state between calls, so all of it is safe for concurrent use.
package domain
