// Command validate performs end-to-end data integrity checks on a dashboard
// data directory: it parses every input, checks incident fields, runs the
// county join, and cross-checks the aggregations against the raw rows.
//
// File names are taken from the same environment variables as the server.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data/mock
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/couchcryptid/shooting-dashboard/internal/adapter/dataset"
	"github.com/couchcryptid/shooting-dashboard/internal/config"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
)

// phase tracks pass/fail for a validation phase. Warnings are reported but
// do not fail the run.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing the dashboard inputs (overrides DATA_DIR)")
	verbose := flag.Bool("v", false, "print warnings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if code := run(cfg, *verbose); code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config, verbose bool) int {
	fmt.Println("=== Mass Shooting Dashboard Data Validation ===")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ds, err := dataset.NewLoader(cfg, logger).Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	joined, err := spatial.NewJoiner(spatial.AxisOrder(cfg.AxisOrder)).Join(ds.Incidents, ds.Counties, ds.CountiesCRS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: spatial join: %v\n", err)
		return 1
	}

	a := domain.Analyze(ds, domain.AnalysisOptions{TopN: cfg.TopN, CorrelationSince: cfg.CorrelationSince})
	a.Counties = domain.AggregateCounties(joined.Counties, ds.CountyPopulations)

	phases := []*phase{
		validateInputs(ds),
		validateIncidents(ds.Incidents),
		validateCountyJoin(ds, joined),
		validateAggregations(ds, joined, a, cfg.TopN),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		if len(p.warnings) > 0 {
			status += fmt.Sprintf(" \033[33m%d warnings\033[0m", len(p.warnings))
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d incidents (%d invalid dates), %d school incidents, %d county populations, %d state populations, %d county boundaries\n",
		len(ds.Incidents), ds.InvalidDates, len(ds.SchoolIncidents), len(ds.CountyPopulations), len(ds.StatePopulations), len(ds.Counties))

	for _, p := range phases {
		if p.passed() && (!verbose || len(p.warnings) == 0) {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
		if verbose {
			for _, w := range p.warnings {
				fmt.Printf("  warning: %s\n", w)
			}
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Inputs ──

func validateInputs(ds domain.Datasets) *phase {
	p := &phase{name: "Phase 1: Inputs"}

	if len(ds.Incidents) == 0 {
		p.errorf("incident file has no data rows")
	}
	if len(ds.CountyPopulations) == 0 {
		p.errorf("county population file has no county rows")
	}
	if len(ds.Counties) == 0 {
		p.errorf("county boundary file has no features")
	}
	if len(ds.SchoolIncidents) == 0 {
		p.warnf("school incident file has no data rows")
	}
	if _, err := spatial.ParseCRS(ds.CountiesCRS); err != nil {
		p.errorf("county boundaries: %v", err)
	}

	seen := make(map[int]bool, len(ds.CountyPopulations))
	for _, c := range ds.CountyPopulations {
		if seen[c.FIPS] {
			p.errorf("county population FIPS %05d appears twice", c.FIPS)
		}
		seen[c.FIPS] = true
	}
	return p
}

// ── Phase 2: Incident fields ──

func validateIncidents(incidents []domain.Incident) *phase {
	p := &phase{name: "Phase 2: Incident Fields"}

	ids := make(map[string]int, len(incidents))
	for i, inc := range incidents {
		row := i + 1
		if inc.State == "" {
			p.errorf("incident %d: missing State", row)
		}
		if inc.ID != "" {
			if prev, dup := ids[inc.ID]; dup {
				p.errorf("incident %d: Incident ID %s already used by incident %d", row, inc.ID, prev)
			}
			ids[inc.ID] = row
		}
		if inc.Date.IsZero() {
			p.warnf("incident %d: Incident Date could not be parsed", row)
		}
		if !inc.HasCoords {
			p.warnf("incident %d: no coordinates", row)
			continue
		}
		if math.Abs(inc.Lat) > 90 || math.Abs(inc.Lon) > 180 {
			p.errorf("incident %d: coordinates (%g, %g) out of range", row, inc.Lat, inc.Lon)
		}
	}
	return p
}

// ── Phase 3: County join ──

func validateCountyJoin(ds domain.Datasets, joined spatial.Result) *phase {
	p := &phase{name: "Phase 3: County Join"}

	popByFIPS := make(map[int]bool, len(ds.CountyPopulations))
	for _, c := range ds.CountyPopulations {
		popByFIPS[c.FIPS] = true
	}

	seen := make(map[int]bool, len(joined.Counties))
	for _, c := range joined.Counties {
		if c.StateFP == domain.PuertoRicoStateFP {
			p.errorf("county %05d: Puerto Rico county kept in join", c.FIPS)
		}
		if seen[c.FIPS] {
			p.warnf("county %05d: boundary appears more than once", c.FIPS)
		}
		seen[c.FIPS] = true
		if !popByFIPS[c.FIPS] {
			p.warnf("county %05d (%s): no population estimate", c.FIPS, c.Name)
		}
	}

	if joined.Unmatched > 0 {
		p.warnf("%d incidents fell outside every county", joined.Unmatched)
	}
	if joined.Swapped > 0 {
		p.warnf("%d county boundaries were stored as (lat, lon) and swapped", joined.Swapped)
	}
	return p
}

// ── Phase 4: Aggregation consistency ──

func validateAggregations(ds domain.Datasets, joined spatial.Result, a domain.Analysis, topN int) *phase {
	p := &phase{name: "Phase 4: Aggregation Consistency"}

	shootings, top := 0, 0
	for i, s := range a.States {
		shootings += s.Shootings
		if s.Rank != i+1 {
			p.errorf("state %s: rank %d at position %d", s.State, s.Rank, i+1)
		}
		if s.Top {
			top++
		}
		if s.PctSuspectsInjured < 0 || s.PctSuspectsInjured > 100 || s.PctSuspectsKilled < 0 || s.PctSuspectsKilled > 100 {
			p.errorf("state %s: suspect percentages out of range", s.State)
		}
	}
	if shootings != len(ds.Incidents) {
		p.errorf("state totals: expected %d shootings, got %d", len(ds.Incidents), shootings)
	}
	if want := min(topN, len(a.States)); top != want {
		p.errorf("top states: expected %d, got %d", want, top)
	}

	withCoords := 0
	for _, inc := range ds.Incidents {
		if inc.HasCoords {
			withCoords++
		}
	}
	inCounties := 0
	for _, c := range a.Counties {
		inCounties += c.Shootings
	}
	if inCounties+joined.Unmatched != withCoords {
		p.errorf("county totals: %d in counties + %d unmatched != %d with coordinates", inCounties, joined.Unmatched, withCoords)
	}

	dated := len(ds.Incidents) - ds.InvalidDates
	compared := 0
	for _, pt := range a.Comparison {
		if pt.Series == domain.SeriesMassShootings {
			compared += pt.Count
		}
	}
	if compared != dated {
		p.errorf("monthly comparison: expected %d dated shootings, got %d", dated, compared)
	}
	trend := 0
	for _, b := range a.Trend.Buckets {
		trend += b.Count
	}
	if trend > dated {
		p.errorf("monthly trend: %d shootings exceed %d dated incidents", trend, dated)
	}

	for _, pt := range a.Correlation.Points {
		if pt.Population <= 0 {
			p.errorf("correlation %s: point without population", pt.State)
		}
	}
	if a.Correlation.Valid && math.Abs(a.Correlation.R) > 1+1e-9 {
		p.errorf("correlation: r=%g out of range", a.Correlation.R)
	}
	if !a.Correlation.Valid {
		p.warnf("correlation: no regression line (%d points)", len(a.Correlation.Points))
	}
	return p
}
