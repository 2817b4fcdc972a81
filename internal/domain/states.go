package domain

import (
	"sort"
)

// Scaling factors for the per-capita rates.
const (
	StateRateScale  = 1e6
	CountyRateScale = 1e5
)

// DistrictOfColumbiaFIPS is drawn apart from the state choropleth because its
// rate would otherwise flatten the colour range of every other state.
const DistrictOfColumbiaFIPS = 11

// DistrictOfColumbiaCenter is the marker position for the DC overlay (lat, lon).
var DistrictOfColumbiaCenter = [2]float64{38.89511, -77.03637}

// MissingState carries the identity of a state with no rows in the incident export.
type MissingState struct {
	Name       string
	FIPS       int
	Population int
}

// MissingStates are ranked and mapped with zero shootings.
var MissingStates = []MissingState{
	{Name: "Montana", FIPS: 30, Population: 1122878},
	{Name: "Wyoming", FIPS: 56, Population: 584057},
	{Name: "Vermont", FIPS: 50, Population: 643077},
}

// StateAggregate holds the per-state totals and derived rates.
type StateAggregate struct {
	State                string  `json:"State"`
	FIPS                 int     `json:"FIPS"`
	Shootings            int     `json:"Total Shootings"`
	Population           int     `json:"Population"`
	SuspectsInjured      int     `json:"Suspects Injured"`
	SuspectsKilled       int     `json:"Suspects Killed"`
	Suspects             int     `json:"Suspects"`
	IncidentsWithInjured int     `json:"Incidents With Suspects Injured"`
	IncidentsWithKilled  int     `json:"Incidents With Suspects Killed"`
	ShootingsPerMillion  float64 `json:"Shootings per 1M Habitants"`
	PctSuspectsInjured   float64 `json:"% of Suspects Injured"`
	PctSuspectsKilled    float64 `json:"% of Suspects Killed"`
	Rank                 int     `json:"Rank"`
	Top                  bool    `json:"Top"`
}

// AggregateStates groups incidents by state and derives rates and suspect
// percentages. The result is sorted by shootings per 1M habitants,
// descending, and the first topN entries are flagged Top. Populations missing
// from the incident rows are filled from statePops when given.
func AggregateStates(incidents []Incident, statePops []StatePopulation, topN int) []StateAggregate {
	byState := make(map[string]*StateAggregate)
	for _, m := range MissingStates {
		byState[m.Name] = &StateAggregate{State: m.Name, FIPS: m.FIPS, Population: m.Population}
	}

	for _, inc := range incidents {
		agg, ok := byState[inc.State]
		if !ok {
			agg = &StateAggregate{State: inc.State}
			byState[inc.State] = agg
		}
		if inc.StateFIPS != 0 {
			agg.FIPS = inc.StateFIPS
		}
		if inc.Population != 0 {
			agg.Population = inc.Population
		}
		agg.Shootings++
		agg.SuspectsInjured += inc.SuspectsInjured
		agg.SuspectsKilled += inc.SuspectsKilled
		agg.Suspects += inc.SuspectsInjured + inc.SuspectsKilled + inc.SuspectsArrested
		if inc.SuspectsInjured != 0 {
			agg.IncidentsWithInjured++
		}
		if inc.SuspectsKilled != 0 {
			agg.IncidentsWithKilled++
		}
	}

	fillStatePopulations(byState, statePops)

	out := make([]StateAggregate, 0, len(byState))
	for _, agg := range byState {
		agg.ShootingsPerMillion = ratio(agg.Shootings, agg.Population, StateRateScale)
		agg.PctSuspectsInjured = ratio(agg.SuspectsInjured, agg.Suspects, 100)
		agg.PctSuspectsKilled = ratio(agg.SuspectsKilled, agg.Suspects, 100)
		out = append(out, *agg)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ShootingsPerMillion != out[j].ShootingsPerMillion {
			return out[i].ShootingsPerMillion > out[j].ShootingsPerMillion
		}
		return out[i].State < out[j].State
	})
	for i := range out {
		out[i].Rank = i + 1
		out[i].Top = i < topN
	}
	return out
}

// ExcludeState returns the aggregates without the given state FIPS.
func ExcludeState(states []StateAggregate, fips int) []StateAggregate {
	out := make([]StateAggregate, 0, len(states))
	for _, s := range states {
		if s.FIPS != fips {
			out = append(out, s)
		}
	}
	return out
}

// FindState returns the aggregate for the given FIPS.
func FindState(states []StateAggregate, fips int) (StateAggregate, bool) {
	for _, s := range states {
		if s.FIPS == fips {
			return s, true
		}
	}
	return StateAggregate{}, false
}

// TopStates returns the aggregates flagged Top, in rank order.
func TopStates(states []StateAggregate) []StateAggregate {
	out := make([]StateAggregate, 0, len(states))
	for _, s := range states {
		if s.Top {
			out = append(out, s)
		}
	}
	return out
}

func fillStatePopulations(byState map[string]*StateAggregate, statePops []StatePopulation) {
	for _, sp := range statePops {
		if agg, ok := byState[sp.State]; ok && agg.Population == 0 {
			agg.Population = sp.Population
		}
	}
}

// ratio returns num/den*scale, or 0 when den is 0.
func ratio(num, den int, scale float64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * scale
}
