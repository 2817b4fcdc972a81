package domain

import "time"

// LoadStats records what happened to the input rows on the way in.
type LoadStats struct {
	Incidents          int `json:"incidents"`
	SchoolIncidents    int `json:"school_incidents"`
	Counties           int `json:"counties"`
	InvalidDates       int `json:"invalid_dates"`
	WithoutCoordinates int `json:"without_coordinates"`
	UnmatchedIncidents int `json:"unmatched_incidents"`
	ExcludedCounties   int `json:"excluded_counties"`
	SwappedCounties    int `json:"swapped_counties"`
}

// Analysis is everything the dashboard charts are drawn from. It is built
// fresh for every page load.
type Analysis struct {
	GeneratedAt time.Time            `json:"generated_at"`
	States      []StateAggregate     `json:"states"`
	Counties    []CountyAggregate    `json:"counties"`
	Correlation Correlation          `json:"correlation"`
	Trend       MonthlyTrend         `json:"trend"`
	Comparison  []MonthlySeriesPoint `json:"comparison"`
	Stats       LoadStats            `json:"stats"`
}

// AnalysisOptions tunes the non-spatial aggregations.
type AnalysisOptions struct {
	TopN             int
	CorrelationSince time.Time
}

// Analyze runs the state, correlation and monthly aggregations. County
// aggregates depend on the spatial join and are filled in by the caller.
func Analyze(ds Datasets, opts AnalysisOptions) Analysis {
	withoutCoords := 0
	for _, inc := range ds.Incidents {
		if !inc.HasCoords {
			withoutCoords++
		}
	}

	return Analysis{
		GeneratedAt: clock.Now().UTC(),
		States:      AggregateStates(ds.Incidents, ds.StatePopulations, opts.TopN),
		Correlation: Correlate(ds.Incidents, ds.SchoolIncidents, ds.StatePopulations, opts.CorrelationSince),
		Trend:       Trend(ds.Incidents),
		Comparison:  CompareMonthly(ds.Incidents, ds.SchoolIncidents),
		Stats: LoadStats{
			Incidents:          len(ds.Incidents),
			SchoolIncidents:    len(ds.SchoolIncidents),
			Counties:           len(ds.Counties),
			InvalidDates:       ds.InvalidDates,
			WithoutCoordinates: withoutCoords,
		},
	}
}
