package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateIncident(state string, fips, pop, injured, killed, arrested int) Incident {
	return Incident{
		State:            state,
		StateFIPS:        fips,
		Population:       pop,
		SuspectsInjured:  injured,
		SuspectsKilled:   killed,
		SuspectsArrested: arrested,
	}
}

func TestAggregateStates(t *testing.T) {
	incidents := []Incident{
		stateIncident("Texas", 48, 30_000_000, 0, 0, 1),
		stateIncident("Texas", 48, 30_000_000, 1, 0, 1),
		stateIncident("Texas", 48, 30_000_000, 0, 1, 0),
		stateIncident("Illinois", 17, 12_000_000, 0, 0, 2),
		stateIncident("District of Columbia", 11, 600_000, 0, 0, 0),
	}

	states := AggregateStates(incidents, nil, 2)
	require.Len(t, states, 6, "three observed states plus the missing ones")

	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.State
		assert.Equal(t, i+1, s.Rank)
	}
	assert.Equal(t, []string{"District of Columbia", "Texas", "Illinois", "Montana", "Vermont", "Wyoming"}, names)

	dc := states[0]
	assert.True(t, dc.Top)
	assert.InDelta(t, 1/0.6, dc.ShootingsPerMillion, 1e-9)
	assert.Zero(t, dc.PctSuspectsInjured, "no suspects means 0, not NaN")

	assert.True(t, states[1].Top)
	assert.False(t, states[2].Top)

	tx, ok := FindState(states, 48)
	require.True(t, ok)
	assert.Equal(t, 3, tx.Shootings)
	assert.Equal(t, 4, tx.Suspects)
	assert.Equal(t, 1, tx.SuspectsInjured)
	assert.Equal(t, 1, tx.SuspectsKilled)
	assert.Equal(t, 1, tx.IncidentsWithInjured)
	assert.Equal(t, 1, tx.IncidentsWithKilled)
	assert.InDelta(t, 25.0, tx.PctSuspectsInjured, 1e-9)
	assert.InDelta(t, 25.0, tx.PctSuspectsKilled, 1e-9)
	assert.InDelta(t, 0.1, tx.ShootingsPerMillion, 1e-9)
}

func TestAggregateStates_MissingStatesHaveZeroShootings(t *testing.T) {
	states := AggregateStates(nil, nil, 10)
	require.Len(t, states, len(MissingStates))
	for _, s := range states {
		assert.Zero(t, s.Shootings)
		assert.Zero(t, s.ShootingsPerMillion)
		assert.Positive(t, s.Population)
	}
}

func TestAggregateStates_FillsPopulationFromStateTable(t *testing.T) {
	incidents := []Incident{{State: "Ohio", StateFIPS: 39}}

	without := AggregateStates(incidents, nil, 10)
	ohio, ok := FindState(without, 39)
	require.True(t, ok)
	assert.Zero(t, ohio.ShootingsPerMillion)

	with := AggregateStates(incidents, []StatePopulation{{State: "Ohio", Population: 2_000_000}}, 10)
	ohio, ok = FindState(with, 39)
	require.True(t, ok)
	assert.Equal(t, 2_000_000, ohio.Population)
	assert.InDelta(t, 0.5, ohio.ShootingsPerMillion, 1e-9)
}

func TestAggregateStates_TopNLargerThanStates(t *testing.T) {
	states := AggregateStates([]Incident{stateIncident("Ohio", 39, 1_000_000, 0, 0, 0)}, nil, 60)
	assert.Len(t, TopStates(states), len(states))
}

func TestExcludeState(t *testing.T) {
	states := AggregateStates([]Incident{
		stateIncident("District of Columbia", DistrictOfColumbiaFIPS, 600_000, 0, 0, 0),
		stateIncident("Ohio", 39, 1_000_000, 0, 0, 0),
	}, nil, 10)

	rest := ExcludeState(states, DistrictOfColumbiaFIPS)
	assert.Len(t, rest, len(states)-1)
	_, ok := FindState(rest, DistrictOfColumbiaFIPS)
	assert.False(t, ok)
}

func TestRatio(t *testing.T) {
	assert.Zero(t, ratio(5, 0, StateRateScale))
	assert.InDelta(t, 50.0, ratio(1, 2, 100), 1e-9)
}
