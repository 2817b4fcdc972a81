package domain

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MonthlyCount is the number of incidents in one calendar month.
type MonthlyCount struct {
	Month time.Time `json:"Year_Month"` // first day of the month, UTC
	Count int       `json:"Count"`
}

// MonthlyTrend is the incident series with its extreme and mean markers.
type MonthlyTrend struct {
	Buckets   []MonthlyCount `json:"buckets"`
	Max       int            `json:"max"`
	Min       int            `json:"min"`
	MaxPoints []MonthlyCount `json:"max_points"`
	MinPoints []MonthlyCount `json:"min_points"`
	Mean      float64        `json:"mean"` // rounded to 2 decimals
}

// Empty reports whether the trend has no complete months.
func (t MonthlyTrend) Empty() bool { return len(t.Buckets) == 0 }

// MonthlySeriesPoint is one month of a named series.
type MonthlySeriesPoint struct {
	Month  time.Time `json:"year_month"`
	Count  int       `json:"count"`
	Series string    `json:"type"`
}

// Series names of the monthly comparison.
const (
	SeriesMassShootings   = "Mass Shootings"
	SeriesSchoolIncidents = "School Incidents"
)

// BucketByMonth counts dates per calendar month, ascending. Zero dates are skipped.
func BucketByMonth(dates []time.Time) []MonthlyCount {
	counts := make(map[time.Time]int)
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		counts[monthStart(d)]++
	}
	out := make([]MonthlyCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MonthlyCount{Month: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// Trend buckets incident dates by month and drops the first and last bucket,
// which are partial months of the export window.
func Trend(incidents []Incident) MonthlyTrend {
	dates := make([]time.Time, len(incidents))
	for i, inc := range incidents {
		dates[i] = inc.Date
	}
	buckets := BucketByMonth(dates)
	if len(buckets) <= 2 {
		return MonthlyTrend{Buckets: []MonthlyCount{}}
	}
	buckets = buckets[1 : len(buckets)-1]

	t := MonthlyTrend{Buckets: buckets, Max: buckets[0].Count, Min: buckets[0].Count}
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = float64(b.Count)
		t.Max = max(t.Max, b.Count)
		t.Min = min(t.Min, b.Count)
	}
	for _, b := range buckets {
		if b.Count == t.Max {
			t.MaxPoints = append(t.MaxPoints, b)
		}
		if b.Count == t.Min {
			t.MinPoints = append(t.MinPoints, b)
		}
	}
	t.Mean = math.Round(stat.Mean(values, nil)*100) / 100
	return t
}

// CompareMonthly returns the monthly counts of mass shootings and school
// incidents as one long-format series, ordered by month then series.
func CompareMonthly(incidents []Incident, schools []SchoolIncident) []MonthlySeriesPoint {
	shootingDates := make([]time.Time, len(incidents))
	for i, inc := range incidents {
		shootingDates[i] = inc.Date
	}
	schoolDates := make([]time.Time, len(schools))
	for i, s := range schools {
		schoolDates[i] = s.Date
	}

	var out []MonthlySeriesPoint
	for _, b := range BucketByMonth(shootingDates) {
		out = append(out, MonthlySeriesPoint{Month: b.Month, Count: b.Count, Series: SeriesMassShootings})
	}
	for _, b := range BucketByMonth(schoolDates) {
		out = append(out, MonthlySeriesPoint{Month: b.Month, Count: b.Count, Series: SeriesSchoolIncidents})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Series < out[j].Series
	})
	return out
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
