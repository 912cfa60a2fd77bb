package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// calmReadings is a snapshot in which every classifier reports safe.
func calmReadings() Readings {
	return Readings{
		Rainfall:    []Point{station("S108", 1.2799, 103.8703, 0.2)},
		Wind:        []Point{station("S43", 1.3399, 103.8878, 6)},
		Temperature: []Point{station("S109", 1.3764, 103.8492, 27)},
		Humidity:    []Point{station("S109", 1.3764, 103.8492, 55)},
		PM25:        regions,
	}
}

func kinds(hazards []Hazard) []Kind {
	out := make([]Kind, len(hazards))
	for i, h := range hazards {
		out[i] = h.Kind
	}
	return out
}

func TestPickTop(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, NoHazard(), PickTop(nil))
	})

	t.Run("severity first", func(t *testing.T) {
		top := PickTop([]Hazard{
			{Kind: KindFlood, Severity: SeverityWarning},
			{Kind: KindWind, Severity: SeverityDanger},
		})
		assert.Equal(t, KindWind, top.Kind)
	})

	t.Run("priority breaks ties", func(t *testing.T) {
		tests := []struct {
			name string
			in   []Kind
			want Kind
		}{
			{"flood over heat", []Kind{KindHeat, KindFlood}, KindFlood},
			{"heat over haze", []Kind{KindHaze, KindHeat}, KindHeat},
			{"haze over dengue", []Kind{KindDengue, KindHaze}, KindHaze},
			{"dengue over wind", []Kind{KindWind, KindDengue}, KindDengue},
			{"known over unknown", []Kind{"tsunami", KindWind}, KindWind},
			{"full order", []Kind{KindWind, KindDengue, KindHaze, KindHeat, KindFlood}, KindFlood},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var candidates []Hazard
				for _, k := range tt.in {
					candidates = append(candidates, Hazard{Kind: k, Severity: SeverityDanger})
				}
				assert.Equal(t, tt.want, PickTop(candidates).Kind)
			})
		}
	})

	t.Run("exact tie keeps first", func(t *testing.T) {
		top := PickTop([]Hazard{
			{Kind: KindHaze, Severity: SeverityWarning, Title: "first"},
			{Kind: KindHaze, Severity: SeverityWarning, Title: "second"},
		})
		assert.Equal(t, "first", top.Title)
	})

	t.Run("does not reorder input", func(t *testing.T) {
		in := []Hazard{
			{Kind: KindWind, Severity: SeveritySafe},
			{Kind: KindFlood, Severity: SeverityDanger},
		}
		PickTop(in)
		assert.Equal(t, []Kind{KindWind, KindFlood}, kinds(in))
	})
}

func TestDecideGlobalHazard(t *testing.T) {
	t.Run("all safe is none", func(t *testing.T) {
		got := DecideGlobalHazard(Inputs{Center: &marinaBay, Readings: calmReadings()})
		assert.Equal(t, NoHazard(), got)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Equal(t, KindNone, DecideGlobalHazard(Inputs{}).Kind)
	})

	t.Run("flood beats heat at equal severity", func(t *testing.T) {
		r := calmReadings()
		r.Rainfall = []Point{station("S108", 1.2799, 103.8703, 20.1)}
		r.Temperature = []Point{station("S109", 1.3764, 103.8492, 38)}
		r.Humidity = []Point{station("S109", 1.3764, 103.8492, 85)}

		got := DecideGlobalHazard(Inputs{Center: &marinaBay, Readings: r})

		assert.Equal(t, KindFlood, got.Kind)
		assert.Equal(t, SeverityDanger, got.Severity)
	})

	t.Run("danger beats warning", func(t *testing.T) {
		r := calmReadings()
		r.Wind = []Point{station("S43", 1.3399, 103.8878, 30)}
		r.PM25 = append([]Point{station("west", 1.35735, 103.70, 45)}, regions[:4]...)

		got := DecideGlobalHazard(Inputs{Center: &marinaBay, Readings: r})

		assert.Equal(t, KindWind, got.Kind)
	})

	t.Run("mock heat overrides calm readings", func(t *testing.T) {
		got := DecideGlobalHazard(Inputs{
			Center:    &marinaBay,
			Readings:  calmReadings(),
			MockFlags: MockFlags{Heat: true},
		})
		assert.Equal(t, KindHeat, got.Kind)
	})

	t.Run("mock ignores real danger", func(t *testing.T) {
		r := calmReadings()
		r.Rainfall = []Point{station("S108", 1.2799, 103.8703, 80)}

		got := DecideGlobalHazard(Inputs{
			Center:    &marinaBay,
			Readings:  r,
			MockFlags: MockFlags{Wind: true},
		})

		assert.Equal(t, KindWind, got.Kind)
		assert.Equal(t, SeverityWarning, got.Severity)
	})

	t.Run("mock flood wins over mock heat", func(t *testing.T) {
		got := DecideGlobalHazard(Inputs{MockFlags: MockFlags{Heat: true, Flood: true, Haze: true}})
		assert.Equal(t, KindFlood, got.Kind)
	})

	t.Run("no center degrades location hazards", func(t *testing.T) {
		r := calmReadings()
		r.Rainfall = []Point{station("S108", 1.2799, 103.8703, 80)}

		assert.Equal(t, KindNone, DecideGlobalHazard(Inputs{Readings: r}).Kind)
	})
}

func TestEvaluateAllHazards(t *testing.T) {
	danger := calmReadings()
	danger.Rainfall = []Point{station("S108", 1.2799, 103.8703, 25)}
	danger.Wind = []Point{station("S43", 1.3399, 103.8878, 30)}

	cases := []struct {
		name string
		in   Inputs
	}{
		{"empty", Inputs{}},
		{"calm", Inputs{Center: &marinaBay, Readings: calmReadings()}},
		{"dangerous", Inputs{Center: &marinaBay, Readings: danger}},
		{"mocked", Inputs{Center: &marinaBay, Readings: danger, MockFlags: MockFlags{Dengue: true}}},
		{"all mocked", Inputs{MockFlags: MockFlags{Flood: true, Haze: true, Dengue: true, Wind: true, Heat: true}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := EvaluateAllHazards(tc.in)
			require.Len(t, grid, 5)
			assert.Equal(t, Kinds, kinds(grid))
		})
	}
}

func TestEvaluateAllHazards_RealReadings(t *testing.T) {
	r := calmReadings()
	r.Rainfall = []Point{station("S108", 1.2799, 103.8703, 25)}
	in := Inputs{Center: &marinaBay, Readings: r}

	grid := EvaluateAllHazards(in)

	assert.Equal(t, SeverityDanger, grid[0].Severity)
	for _, h := range grid[1:] {
		assert.Equal(t, SeveritySafe, h.Severity, h.Kind)
	}
}

func TestEvaluateAllHazards_MockSuppressesEveryKind(t *testing.T) {
	r := calmReadings()
	r.Rainfall = []Point{station("S108", 1.2799, 103.8703, 80)}
	in := Inputs{Center: &marinaBay, Readings: r, MockFlags: MockFlags{Haze: true}}

	grid := EvaluateAllHazards(in)

	want := []Hazard{
		{Kind: KindFlood, Severity: SeveritySafe},
		MockedHazards(MockFlags{Haze: true}, &marinaBay)[0],
		{Kind: KindDengue, Severity: SeveritySafe},
		{Kind: KindWind, Severity: SeveritySafe},
		{Kind: KindHeat, Severity: SeveritySafe},
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestAssess(t *testing.T) {
	in := Inputs{Center: &marinaBay, Readings: calmReadings(), MockFlags: MockFlags{Flood: true}}

	a := Assess(in)

	assert.Equal(t, &marinaBay, a.Center)
	assert.Equal(t, KindFlood, a.Global.Kind)
	assert.Len(t, a.Grid, 5)
	assert.True(t, a.Mocked)
	assert.True(t, a.EvaluatedAt.IsZero())
}
