package chart

import (
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// Chart IDs, in dashboard order.
const (
	IDStateRanking      = "state-ranking"
	IDStateMap          = "state-map"
	IDCountyMap         = "county-map"
	IDSuspectsInjured   = "suspects-injured-map"
	IDSuspectsKilled    = "suspects-killed-map"
	IDCorrelation       = "correlation"
	IDMonthlyTrend      = "monthly-trend"
	IDMonthlyComparison = "monthly-comparison"
)

// Info describes one dashboard chart.
type Info struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Catalog lists every chart the dashboard serves.
var Catalog = []Info{
	{ID: IDStateRanking, Title: "States ranked by shootings per 1M habitants"},
	{ID: IDStateMap, Title: "Shootings per 1M habitants, by state"},
	{ID: IDCountyMap, Title: "Shootings per 100K habitants, by county"},
	{ID: IDCorrelation, Title: "Mass shootings vs school incidents"},
	{ID: IDMonthlyTrend, Title: "Mass shootings per month"},
	{ID: IDMonthlyComparison, Title: "Mass shootings and school incidents per month"},
	{ID: IDSuspectsInjured, Title: "Suspects injured, by state"},
	{ID: IDSuspectsKilled, Title: "Suspects killed, by state"},
}

// Known reports whether id names a chart in the Catalog.
func Known(id string) bool {
	for _, c := range Catalog {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Options are the presentation settings shared by all charts.
type Options struct {
	TopoJSONURL string
}

// Set is the built dashboard keyed by chart ID.
type Set map[string]*Spec

// Build produces every chart in the Catalog from one analysis.
func Build(a domain.Analysis, opts Options) Set {
	return Set{
		IDStateRanking:      StateRanking(a.States),
		IDStateMap:          StateMap(a.States, opts.TopoJSONURL),
		IDCountyMap:         CountyMap(a.Counties, opts.TopoJSONURL),
		IDSuspectsInjured:   SuspectsInjuredMap(a.States, opts.TopoJSONURL),
		IDSuspectsKilled:    SuspectsKilledMap(a.States, opts.TopoJSONURL),
		IDCorrelation:       Correlation(a.Correlation),
		IDMonthlyTrend:      MonthlyTrend(a.Trend),
		IDMonthlyComparison: MonthlyComparison(a.Comparison),
	}
}
