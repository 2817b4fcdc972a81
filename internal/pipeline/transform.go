package pipeline

import (
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/couchcryptid/shooting-dashboard/internal/spatial"
)

// assemble combines the non-spatial aggregations with the county join into
// one Analysis.
func assemble(ds domain.Datasets, joined spatial.Result, opts Options) domain.Analysis {
	a := domain.Analyze(ds, domain.AnalysisOptions{
		TopN:             opts.TopN,
		CorrelationSince: opts.CorrelationSince,
	})
	a.Counties = domain.AggregateCounties(joined.Counties, ds.CountyPopulations)
	a.Stats.UnmatchedIncidents = joined.Unmatched
	a.Stats.ExcludedCounties = joined.Excluded
	a.Stats.SwappedCounties = joined.Swapped
	return a
}
