package domain

// Readings is one snapshot of every upstream dataset. Nil slices and a nil
// Dengue collection stand for datasets that are missing or failed to load.
type Readings struct {
	Rainfall    []Point            `json:"rainfall,omitempty"`
	Wind        []Point            `json:"wind,omitempty"`
	Temperature []Point            `json:"temperature,omitempty"`
	Humidity    []Point            `json:"humidity,omitempty"`
	PM25        []Point            `json:"pm25,omitempty"`
	Dengue      *FeatureCollection `json:"dengue,omitempty"`
}

// Inputs bundles everything a hazard decision reads.
type Inputs struct {
	// Center is the user's location. When nil, flood and dengue are safe.
	Center    *Coordinate `json:"center,omitempty"`
	Readings  Readings    `json:"readings"`
	MockFlags MockFlags   `json:"mock"`

	// DengueRadiusKm bounds the cluster search; zero selects the default.
	DengueRadiusKm float64 `json:"dengue_radius_km,omitempty"`
}

// PickTop returns the most severe candidate, breaking ties by hazard
// priority (flood, heat, haze, dengue, wind, then anything else). Among exact
// ties the earliest candidate wins. An empty list yields NoHazard.
func PickTop(candidates []Hazard) Hazard {
	if len(candidates) == 0 {
		return NoHazard()
	}
	top := candidates[0]
	for _, c := range candidates[1:] {
		if outranks(c, top) {
			top = c
		}
	}
	return top
}

// outranks reports whether a sorts strictly before b.
func outranks(a, b Hazard) bool {
	if ra, rb := a.Severity.Rank(), b.Severity.Rank(); ra != rb {
		return ra > rb
	}
	return priorityIndex(a.Kind) < priorityIndex(b.Kind)
}

// classifyAll runs every classifier and returns the results in grid order.
func classifyAll(in Inputs) []Hazard {
	r := in.Readings
	return []Hazard{
		ClassifyFlood(in.Center, r.Rainfall, r.Humidity),
		ClassifyHaze(r.PM25),
		ClassifyDengue(in.Center, r.Dengue, in.DengueRadiusKm),
		ClassifyWind(r.Wind, r.PM25),
		ClassifyHeat(r.Temperature, r.Humidity, r.PM25),
	}
}

// DecideGlobalHazard selects the single hazard shown in a status banner. When
// any mock flag is set, real readings are ignored and the canned records are
// resolved instead. When every classifier is safe the result is NoHazard.
func DecideGlobalHazard(in Inputs) Hazard {
	if in.MockFlags.Any() {
		return PickTop(MockedHazards(in.MockFlags, in.Center))
	}

	results := classifyAll(in)
	if allSafe(results) {
		return NoHazard()
	}
	return PickTop(results)
}

// EvaluateAllHazards returns exactly one record per kind, in the order of
// Kinds. When any mock flag is set, every kind without a canned record is
// reported as a bare safe placeholder, whatever the real readings say.
func EvaluateAllHazards(in Inputs) []Hazard {
	if !in.MockFlags.Any() {
		return classifyAll(in)
	}

	mocked := make(map[Kind]Hazard, len(Kinds))
	for _, h := range MockedHazards(in.MockFlags, in.Center) {
		mocked[h.Kind] = h
	}

	out := make([]Hazard, 0, len(Kinds))
	for _, k := range Kinds {
		if h, ok := mocked[k]; ok {
			out = append(out, h)
			continue
		}
		out = append(out, Hazard{Kind: k, Severity: SeveritySafe})
	}
	return out
}

func allSafe(hazards []Hazard) bool {
	for _, h := range hazards {
		if h.Severity != SeveritySafe {
			return false
		}
	}
	return true
}
