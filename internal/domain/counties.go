package domain

import "sort"

// PuertoRicoStateFP is excluded from the county analysis; it falls outside
// the albersUsa projection.
const PuertoRicoStateFP = "72"

// CountyIncidents is one county of the spatial join with the number of
// incident points it contains.
type CountyIncidents struct {
	FIPS      int
	StateFP   string
	Name      string
	Incidents int
}

// CountyAggregate is the per-county shooting count and rate.
type CountyAggregate struct {
	FIPS                   int     `json:"County FIPS"`
	County                 string  `json:"County"`
	Shootings              int     `json:"Total Shootings"`
	Population             int     `json:"County Population"`
	ShootingsPerHundredK   float64 `json:"Shootings per 100K habitants"`
	HasPopulationEstimates bool    `json:"-"`
}

// AggregateCounties merges joined counties with population estimates by
// FIPS. Every joined county appears exactly once; a county without an
// estimate keeps population 0, its boundary name, and a rate of 0.
func AggregateCounties(joined []CountyIncidents, pops []CountyPopulation) []CountyAggregate {
	popByFIPS := make(map[int]CountyPopulation, len(pops))
	for _, p := range pops {
		popByFIPS[p.FIPS] = p
	}

	seen := make(map[int]int, len(joined))
	out := make([]CountyAggregate, 0, len(joined))
	for _, c := range joined {
		if i, dup := seen[c.FIPS]; dup {
			// Multi-part counties split across features collapse into one row.
			out[i].Shootings += c.Incidents
			continue
		}
		agg := CountyAggregate{FIPS: c.FIPS, County: c.Name, Shootings: c.Incidents}
		if p, ok := popByFIPS[c.FIPS]; ok {
			agg.County = p.Label()
			agg.Population = p.Population
			agg.HasPopulationEstimates = true
		}
		seen[c.FIPS] = len(out)
		out = append(out, agg)
	}

	for i := range out {
		out[i].ShootingsPerHundredK = ratio(out[i].Shootings, out[i].Population, CountyRateScale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FIPS < out[j].FIPS })
	return out
}
