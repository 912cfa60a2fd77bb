package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Upstream cluster datasets have renamed these properties over time. Aliases
// are tried in order and the first usable value wins.
var (
	caseCountKeys = []string{"CASE_SIZE", "case_size", "CaseSize", "cases", "CASES", "case_count", "caseCount"}
	localityKeys  = []string{"LOCALITY", "locality", "Locality", "Name", "name", "DESCRIPTION"}
)

// lookupProperty returns the first value among keys that parse accepts.
func lookupProperty[T any](props map[string]any, keys []string, parse func(any) (T, bool)) (T, bool) {
	for _, k := range keys {
		if v, ok := props[k]; ok && v != nil {
			if parsed, ok := parse(v); ok {
				return parsed, true
			}
		}
	}
	var zero T
	return zero, false
}

// caseCount extracts a cluster's case count as reported, without rounding.
// Counts may be JSON numbers or numeric strings; anything else, and any
// negative or non-finite value, is treated as unknown.
func caseCount(props map[string]any) (float64, bool) {
	return lookupProperty(props, caseCountKeys, parseCount)
}

func parseCount(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if !isFinite(f) || f < 0 {
		return 0, false
	}
	return f, true
}

// wholeCount converts a case count for display. Fractional counts and counts
// beyond int32 have no faithful integer form.
func wholeCount(f float64) (int, bool) {
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// locality extracts a cluster's locality name.
func locality(props map[string]any) string {
	s, _ := lookupProperty(props, localityKeys, func(v any) (string, bool) {
		s, ok := v.(string)
		s = strings.TrimSpace(s)
		return s, ok && s != ""
	})
	return s
}
