// Command genmock writes a deterministic synthetic dataset in the layout the
// dashboard reads: incidents, school incidents, county and state
// populations, and a grid of square county boundaries. Every
// -swap-every'th county is stored with its axes exchanged so the join's
// axis repair is exercised.
//
// Usage:
//
//	go run ./cmd/genmock -out data/synthetic -incidents 500 -seed 7
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// windowStart is the first day of the synthetic export window.
var windowStart = time.Date(2022, time.October, 1, 0, 0, 0, 0, time.UTC)

const windowMonths = 14

type stateDef struct {
	name       string
	abbrev     string
	fips       int
	population int
	bound      orb.Bound
	grid       int // counties per side
	weight     int
}

var states = []stateDef{
	{name: "Texas", abbrev: "TX", fips: 48, population: 30503301, bound: bound(-104, 27, -94, 35), grid: 4, weight: 6},
	{name: "California", abbrev: "CA", fips: 6, population: 38965193, bound: bound(-123, 33, -115, 41), grid: 4, weight: 5},
	{name: "Illinois", abbrev: "IL", fips: 17, population: 12549689, bound: bound(-91, 37.5, -88, 42), grid: 3, weight: 4},
	{name: "Florida", abbrev: "FL", fips: 12, population: 22610726, bound: bound(-87, 25.5, -80, 30.5), grid: 3, weight: 3},
	{name: "Georgia", abbrev: "GA", fips: 13, population: 11029227, bound: bound(-85, 31, -81.5, 34.5), grid: 3, weight: 2},
	{name: "Puerto Rico", abbrev: "PR", fips: 72, population: 3205691, bound: bound(-67, 18, -65.5, 18.5), grid: 1, weight: 0},
}

func bound(minX, minY, maxX, maxY float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
}

type county struct {
	state      *stateDef
	fips       int
	name       string
	bound      orb.Bound
	population int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory")
	incidents := flag.Int("incidents", 500, "number of mass-shooting rows")
	schools := flag.Int("schools", 150, "number of school-incident rows")
	seed := flag.Uint64("seed", 1, "random seed")
	swapEvery := flag.Int("swap-every", 7, "store every n-th county as (lat, lon); 0 disables")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	counties := buildCounties(rng)

	if err := writeCounties(filepath.Join(*out, "Counties.geojson"), counties, *swapEvery); err != nil {
		return fmt.Errorf("writing counties: %w", err)
	}
	if err := writeCountyPopulation(filepath.Join(*out, "CountyPopulation.csv"), counties); err != nil {
		return fmt.Errorf("writing county population: %w", err)
	}
	if err := writeStatePopulation(filepath.Join(*out, "state-pop-clean.csv")); err != nil {
		return fmt.Errorf("writing state population: %w", err)
	}
	rows, err := writeIncidents(filepath.Join(*out, "MassShootings.csv"), rng, counties, *incidents)
	if err != nil {
		return fmt.Errorf("writing incidents: %w", err)
	}
	if err := writeSchoolIncidents(filepath.Join(*out, "SchoolIncidents.csv"), rng, *schools); err != nil {
		return fmt.Errorf("writing school incidents: %w", err)
	}

	log.Printf("wrote %d counties, %d incidents, %d school incidents to %s", len(counties), *incidents, *schools, *out)
	printStats(rows)
	return nil
}

func buildCounties(rng *rand.Rand) []county {
	var out []county
	for si := range states {
		s := &states[si]
		dx := (s.bound.Max[0] - s.bound.Min[0]) / float64(s.grid)
		dy := (s.bound.Max[1] - s.bound.Min[1]) / float64(s.grid)
		n := s.grid * s.grid
		for i := range n {
			col, row := i%s.grid, i/s.grid
			minX := s.bound.Min[0] + float64(col)*dx
			minY := s.bound.Min[1] + float64(row)*dy
			out = append(out, county{
				state:      s,
				fips:       s.fips*1000 + 2*i + 1,
				name:       fmt.Sprintf("County %c%d", 'A'+rune(row), col+1),
				bound:      bound(minX, minY, minX+dx, minY+dy),
				population: s.population/n/2 + rng.IntN(s.population/n),
			})
		}
	}
	return out
}

func writeCounties(path string, counties []county, swapEvery int) error {
	fc := geojson.NewFeatureCollection()
	for i, c := range counties {
		var g orb.Geometry = c.bound.ToPolygon()
		if swapEvery > 0 && (i+1)%swapEvery == 0 {
			g = spatial.SwapAxes(g)
		}
		f := geojson.NewFeature(g)
		f.Properties["GEOID"] = fmt.Sprintf("%05d", c.fips)
		f.Properties["STATEFP"] = fmt.Sprintf("%02d", c.state.fips)
		f.Properties["NAME"] = c.name
		fc.Append(f)
	}
	fc.ExtraMembers = geojson.Properties{
		"crs": map[string]any{
			"type":       "name",
			"properties": map[string]string{"name": "urn:ogc:def:crs:EPSG::4269"},
		},
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func writeCountyPopulation(path string, counties []county) error {
	rows := [][]string{
		{"FIPStxt", "State", "Area_Name", "POP_ESTIMATE_2023"},
		{"0", "US", "United States", "334914895"},
	}
	for si, s := range states {
		rows = append(rows, []string{strconv.Itoa(s.fips * 1000), s.abbrev, s.name, strconv.Itoa(s.population)})
		for _, c := range counties {
			// Leave one county per state without an estimate.
			if c.state != &states[si] || c.fips == s.fips*1000+1 {
				continue
			}
			rows = append(rows, []string{strconv.Itoa(c.fips), s.abbrev, c.name, strconv.Itoa(c.population)})
		}
	}
	return writeCSV(path, rows)
}

func writeStatePopulation(path string) error {
	rows := [][]string{{"State", "Population"}}
	for _, s := range states {
		rows = append(rows, []string{s.name, strconv.Itoa(s.population)})
	}
	return writeCSV(path, rows)
}

// incidentRow is the subset of a generated incident used for the summary.
type incidentRow struct {
	state   string
	month   time.Time
	dated   bool
	located bool
}

func writeIncidents(path string, rng *rand.Rand, counties []county, n int) ([]incidentRow, error) {
	byState := map[int][]county{}
	for _, c := range counties {
		byState[c.state.fips] = append(byState[c.state.fips], c)
	}

	rows := [][]string{{
		"Incident ID", "Incident Date", "State", "City Or County", "Address",
		"Victims Killed", "Victims Injured", "Suspects Killed", "Suspects Injured", "Suspects Arrested",
		"Latitude", "Longitude", "FIPS", "Population",
	}}
	summary := make([]incidentRow, 0, n)
	for i := range n {
		s := pickState(rng)
		cs := byState[s.fips]
		c := cs[rng.IntN(len(cs))]
		date := windowStart.AddDate(0, 0, rng.IntN(windowMonths*30))

		dateStr := date.Format("January 2, 2006")
		dated := true
		if i%97 == 96 {
			dateStr, dated = "unknown", false
		}

		lat, lon := "", ""
		located := i%53 != 52
		if located {
			lon = strconv.FormatFloat(c.bound.Min[0]+rng.Float64()*(c.bound.Max[0]-c.bound.Min[0]), 'f', 5, 64)
			lat = strconv.FormatFloat(c.bound.Min[1]+rng.Float64()*(c.bound.Max[1]-c.bound.Min[1]), 'f', 5, 64)
		}

		rows = append(rows, []string{
			strconv.Itoa(2500000 + i),
			dateStr,
			s.name,
			c.name,
			fmt.Sprintf("%d Main St", 100+rng.IntN(9900)),
			strconv.Itoa(rng.IntN(4)),
			strconv.Itoa(4 + rng.IntN(8)),
			strconv.Itoa(boolInt(rng.IntN(10) == 0)),
			strconv.Itoa(boolInt(rng.IntN(8) == 0)),
			strconv.Itoa(rng.IntN(3)),
			lat,
			lon,
			strconv.Itoa(s.fips),
			strconv.Itoa(s.population),
		})
		summary = append(summary, incidentRow{state: s.name, month: firstOfMonth(date), dated: dated, located: located})
	}
	return summary, writeCSV(path, rows)
}

func writeSchoolIncidents(path string, rng *rand.Rand, n int) error {
	rows := [][]string{{"State", "Date", "School"}}
	for i := range n {
		s := pickState(rng)
		date := windowStart.AddDate(0, 0, rng.IntN(windowMonths*30))
		rows = append(rows, []string{s.name, date.Format(time.DateOnly), fmt.Sprintf("School %d", i+1)})
	}
	return writeCSV(path, rows)
}

func pickState(rng *rand.Rand) *stateDef {
	total := 0
	for _, s := range states {
		total += s.weight
	}
	n := rng.IntN(total)
	for i := range states {
		n -= states[i].weight
		if n < 0 {
			return &states[i]
		}
	}
	return &states[0]
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

type stateCount struct {
	state string
	count int
}

func printStats(rows []incidentRow) {
	byState := map[string]int{}
	byMonth := map[time.Time]int{}
	undated, unlocated := 0, 0
	for _, r := range rows {
		byState[r.state]++
		if !r.located {
			unlocated++
		}
		if !r.dated {
			undated++
			continue
		}
		byMonth[r.month]++
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d (invalid dates=%d, without coordinates=%d)\n", len(rows), undated, unlocated)

	sc := make([]stateCount, 0, len(byState))
	for s, c := range byState {
		sc = append(sc, stateCount{s, c})
	}
	sort.Slice(sc, func(i, j int) bool { return sc[i].count > sc[j].count })
	fmt.Printf("States (%d): ", len(sc))
	for _, s := range sc {
		fmt.Printf("%s=%d ", s.state, s.count)
	}
	fmt.Println()

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	fmt.Println("Months:")
	for _, m := range months {
		fmt.Printf("  %s: %d\n", m.Format("2006-01"), byMonth[m])
	}

	dates := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		if r.dated {
			dates = append(dates, r.month)
		}
	}
	fmt.Printf("Complete months in trend: %d\n", max(len(domain.BucketByMonth(dates))-2, 0))
}
