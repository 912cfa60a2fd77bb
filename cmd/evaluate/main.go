// Command evaluate runs the hazard engine over a snapshot file and prints the
// resulting assessment. It needs no upstream feed, which makes it handy for
// replaying captured datasets and checking threshold changes.
//
// Usage:
//
//	go run ./cmd/evaluate \
//	  -snapshot testdata/snapshot.json \
//	  -mock heat \
//	  -at 2025-12-03T14:30:00Z
//
// The snapshot is the JSON form of the engine inputs:
//
//	{"center": {"lat": 1.35, "lon": 103.82},
//	 "readings": {"rainfall": [...], "humidity": [...], "dengue": {...}},
//	 "mock": {"heat": true},
//	 "dengue_radius_km": 5}
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	snapshot := fs.String("snapshot", "", "path to snapshot JSON, or - for stdin")
	mock := fs.String("mock", "", "comma-separated hazard kinds to mock, overriding the snapshot")
	at := fs.String("at", "", "RFC3339 evaluation time (defaults to now)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *snapshot == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -snapshot")
	}

	clock := clockwork.NewRealClock()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	in, err := readInputs(*snapshot)
	if err != nil {
		return err
	}

	if *mock != "" {
		flags, err := domain.ParseMockFlags(*mock)
		if err != nil {
			return fmt.Errorf("invalid -mock: %w", err)
		}
		in.MockFlags = flags
	}

	a := domain.Assess(in)
	a.EvaluatedAt = clock.Now().UTC()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("writing assessment: %w", err)
	}
	return nil
}

func readInputs(path string) (domain.Inputs, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.Inputs{}, fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var in domain.Inputs
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return domain.Inputs{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return in, nil
}
