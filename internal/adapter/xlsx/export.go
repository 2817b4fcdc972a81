// Package xlsx writes the dashboard's tables to an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetStates      = "States"
	SheetCounties    = "Counties"
	SheetCorrelation = "Correlation"
	SheetMonthly     = "Monthly"
)

const monthLayout = "2006-01"

type sheet struct {
	name   string
	header []any
	rows   [][]any
	width  float64
}

// Write renders the analysis tables as a workbook to w.
func Write(w io.Writer, a domain.Analysis) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{
		statesSheet(a.States),
		countiesSheet(a.Counties),
		correlationSheet(a.Correlation),
		monthlySheet(a.Trend, a.Comparison),
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("xlsx: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("xlsx: new sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return fmt.Errorf("xlsx: %s header: %w", s.name, err)
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", s.name, i+2, err)
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", s.name, i+2, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(s.header))
	if err != nil {
		return fmt.Errorf("xlsx: %s columns: %w", s.name, err)
	}
	if err := f.SetColWidth(s.name, "A", last, s.width); err != nil {
		return fmt.Errorf("xlsx: %s column width: %w", s.name, err)
	}
	return nil
}

func statesSheet(states []domain.StateAggregate) sheet {
	s := sheet{
		name: SheetStates,
		header: []any{"Rank", "State", "FIPS", "Total Shootings", "Population", "Shootings per 1M Habitants",
			"Suspects", "Suspects Injured", "Suspects Killed", "% of Suspects Injured", "% of Suspects Killed", "Top"},
		width: 18,
	}
	for _, st := range states {
		s.rows = append(s.rows, []any{st.Rank, st.State, st.FIPS, st.Shootings, st.Population, st.ShootingsPerMillion,
			st.Suspects, st.SuspectsInjured, st.SuspectsKilled, st.PctSuspectsInjured, st.PctSuspectsKilled, st.Top})
	}
	return s
}

func countiesSheet(counties []domain.CountyAggregate) sheet {
	s := sheet{
		name:   SheetCounties,
		header: []any{"County FIPS", "County", "Total Shootings", "County Population", "Shootings per 100K habitants"},
		width:  22,
	}
	for _, c := range counties {
		s.rows = append(s.rows, []any{c.FIPS, c.County, c.Shootings, c.Population, c.ShootingsPerHundredK})
	}
	return s
}

func correlationSheet(c domain.Correlation) sheet {
	s := sheet{
		name:   SheetCorrelation,
		header: []any{"State", "Shootings_count", "School_count", "Population", "Ratio Mass Shootings", "Ratio School Incidents"},
		width:  20,
	}
	for _, p := range c.Points {
		s.rows = append(s.rows, []any{p.State, p.Shootings, p.SchoolIncidents, p.Population, p.ShootingRate, p.SchoolIncidentRate})
	}
	if c.Valid {
		s.rows = append(s.rows,
			[]any{"Slope", c.Slope},
			[]any{"Intercept", c.Intercept},
			[]any{"r", c.R},
		)
	}
	return s
}

// monthlySheet lists every month of the comparison series, with the trend
// count alongside for the complete months.
func monthlySheet(t domain.MonthlyTrend, points []domain.MonthlySeriesPoint) sheet {
	s := sheet{
		name:   SheetMonthly,
		header: []any{"Year_Month", "Mass Shootings", "School Incidents", "In Trend"},
		width:  16,
	}

	inTrend := make(map[string]bool, len(t.Buckets))
	for _, b := range t.Buckets {
		inTrend[b.Month.Format(monthLayout)] = true
	}

	type row struct{ shootings, schools int }
	var order []string
	byMonth := make(map[string]*row)
	for _, p := range points {
		key := p.Month.Format(monthLayout)
		r, ok := byMonth[key]
		if !ok {
			r = &row{}
			byMonth[key] = r
			order = append(order, key)
		}
		switch p.Series {
		case domain.SeriesMassShootings:
			r.shootings = p.Count
		case domain.SeriesSchoolIncidents:
			r.schools = p.Count
		}
	}
	for _, key := range order {
		r := byMonth[key]
		s.rows = append(s.rows, []any{key, r.shootings, r.schools, inTrend[key]})
	}
	return s
}
