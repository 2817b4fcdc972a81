package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// table is a CSV file read into memory with a header index.
type table struct {
	name   string
	colIdx map[string]int
	rows   [][]string
}

func readTable(name string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: %w", name, errEmptyFile)
	}

	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		colIdx[h] = i
	}
	return &table{name: name, colIdx: colIdx, rows: rows[1:]}, nil
}

var errEmptyFile = errors.New("empty file")

// require fails with the first missing column.
func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.colIdx[c]; !ok {
			return fmt.Errorf("%s: missing column %q", t.name, c)
		}
	}
	return nil
}

// get returns the trimmed cell for col, or "" when the column or cell is absent.
func (t *table) get(row []string, col string) string {
	i, ok := t.colIdx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// first returns the value of the first present column among cols.
func (t *table) first(row []string, cols ...string) string {
	for _, c := range cols {
		if _, ok := t.colIdx[c]; ok {
			return t.get(row, c)
		}
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadIncidents parses the mass-shooting export. It returns the incidents
// and the number of rows whose date could not be parsed.
func ReadIncidents(name string, r io.Reader) ([]domain.Incident, int, error) {
	t, err := readTable(name, r)
	if err != nil {
		return nil, 0, err
	}
	if err := t.require("State", "Incident Date", "Latitude", "Longitude",
		"Suspects Injured", "Suspects Killed", "Suspects Arrested", "FIPS", "Population"); err != nil {
		return nil, 0, err
	}

	incidents := make([]domain.Incident, 0, len(t.rows))
	invalidDates := 0
	for _, row := range t.rows {
		if blank(row) {
			continue
		}
		date, ok := domain.ParseIncidentDate(t.get(row, "Incident Date"))
		if !ok {
			invalidDates++
		}
		latStr, lonStr := t.get(row, "Latitude"), t.get(row, "Longitude")
		incidents = append(incidents, domain.Incident{
			ID:               t.get(row, "Incident ID"),
			Date:             date,
			State:            t.get(row, "State"),
			CityOrCounty:     t.get(row, "City Or County"),
			Address:          t.get(row, "Address"),
			Lat:              domain.ParseFloatOrZero(latStr),
			Lon:              domain.ParseFloatOrZero(lonStr),
			HasCoords:        latStr != "" && lonStr != "",
			VictimsKilled:    domain.ParseCount(t.get(row, "Victims Killed")),
			VictimsInjured:   domain.ParseCount(t.get(row, "Victims Injured")),
			SuspectsInjured:  domain.ParseCount(t.get(row, "Suspects Injured")),
			SuspectsKilled:   domain.ParseCount(t.get(row, "Suspects Killed")),
			SuspectsArrested: domain.ParseCount(t.get(row, "Suspects Arrested")),
			StateFIPS:        domain.ParseCount(t.get(row, "FIPS")),
			Population:       domain.ParseCount(t.get(row, "Population")),
		})
	}
	return incidents, invalidDates, nil
}

// ReadSchoolIncidents parses the school-incident table. The date column is optional.
func ReadSchoolIncidents(name string, r io.Reader) ([]domain.SchoolIncident, error) {
	t, err := readTable(name, r)
	if err != nil {
		return nil, err
	}
	if err := t.require("State"); err != nil {
		return nil, err
	}

	out := make([]domain.SchoolIncident, 0, len(t.rows))
	for _, row := range t.rows {
		if blank(row) {
			continue
		}
		date, _ := domain.ParseIncidentDate(t.first(row, "Date", "Incident Date"))
		out = append(out, domain.SchoolIncident{State: t.get(row, "State"), Date: date})
	}
	return out, nil
}

// ReadCountyPopulations parses the county population estimates. National
// and state summary lines (FIPS 0 or a multiple of 1000) are skipped.
func ReadCountyPopulations(name string, r io.Reader) ([]domain.CountyPopulation, error) {
	t, err := readTable(name, r)
	if err != nil {
		return nil, err
	}
	if err := t.require("FIPStxt", "Area_Name", "State", "POP_ESTIMATE_2023"); err != nil {
		return nil, err
	}

	out := make([]domain.CountyPopulation, 0, len(t.rows))
	for _, row := range t.rows {
		fips := domain.ParseCount(t.get(row, "FIPStxt"))
		if fips%1000 == 0 {
			continue
		}
		out = append(out, domain.CountyPopulation{
			FIPS:       fips,
			AreaName:   t.get(row, "Area_Name"),
			State:      t.get(row, "State"),
			Population: domain.ParseCount(t.get(row, "POP_ESTIMATE_2023")),
		})
	}
	return out, nil
}

// ReadStatePopulations parses the optional State,Population table.
func ReadStatePopulations(name string, r io.Reader) ([]domain.StatePopulation, error) {
	t, err := readTable(name, r)
	if err != nil {
		return nil, err
	}
	if err := t.require("State", "Population"); err != nil {
		return nil, err
	}

	out := make([]domain.StatePopulation, 0, len(t.rows))
	for _, row := range t.rows {
		state := t.get(row, "State")
		if state == "" {
			continue
		}
		out = append(out, domain.StatePopulation{State: state, Population: domain.ParseCount(t.get(row, "Population"))})
	}
	return out, nil
}
