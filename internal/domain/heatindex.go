package domain

import "math"

// HeatIndexC returns the apparent temperature in °C for a dry-bulb temperature
// in °C and relative humidity in percent, using the NWS Rothfusz regression
// with its low- and high-humidity adjustments. It returns nil if either input
// is nil or non-finite.
func HeatIndexC(tempC, rh *float64) *float64 {
	if tempC == nil || rh == nil || !isFinite(*tempC) || !isFinite(*rh) {
		return nil
	}

	t := *tempC*9/5 + 32
	r := *rh

	hi := -42.379 +
		2.04901523*t +
		10.14333127*r -
		0.22475541*t*r -
		0.00683783*t*t -
		0.05481717*r*r +
		0.00122874*t*t*r +
		0.00085282*t*r*r -
		0.00000199*t*t*r*r

	switch {
	case r < 13 && t >= 80 && t <= 112:
		hi -= ((13 - r) / 4) * math.Sqrt((17-math.Abs(t-95))/17)
	case r > 85 && t >= 80 && t <= 87:
		hi += ((r - 85) / 10) * ((87 - t) / 5)
	}

	c := (hi - 32) * 5 / 9
	return &c
}
