package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var since = time.Date(2022, time.November, 1, 0, 0, 0, 0, time.UTC)

func datedIncident(state string, pop int, date time.Time) Incident {
	return Incident{State: state, Population: pop, Date: date}
}

func TestCorrelate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	incidents := []Incident{
		datedIncident("Texas", 1_000_000, day(2023, 1, 5)),
		datedIncident("Texas", 1_000_000, day(2023, 2, 5)),
		datedIncident("Texas", 1_000_000, day(2022, 10, 1)), // before window
		datedIncident("Texas", 1_000_000, since),            // not strictly after
		datedIncident("Ohio", 2_000_000, day(2023, 3, 1)),
		datedIncident("Ohio", 2_000_000, time.Time{}), // invalid date
	}
	schools := []SchoolIncident{
		{State: "Texas"}, {State: "Texas"}, {State: "Texas"},
		{State: "Vermont"},
		{State: "Atlantis"}, // no population anywhere
	}

	c := Correlate(incidents, schools, nil, since)

	require.Len(t, c.Points, 3)
	assert.Equal(t, "Ohio", c.Points[0].State)
	assert.Equal(t, "Texas", c.Points[1].State)
	assert.Equal(t, "Vermont", c.Points[2].State)

	tx := c.Points[1]
	assert.Equal(t, 2, tx.Shootings)
	assert.Equal(t, 3, tx.SchoolIncidents)
	assert.InDelta(t, 2.0, tx.ShootingRate, 1e-9)
	assert.InDelta(t, 3.0, tx.SchoolIncidentRate, 1e-9)

	vt := c.Points[2]
	assert.Zero(t, vt.Shootings, "outer join fills missing counts with 0")
	assert.Equal(t, 643077, vt.Population)

	assert.True(t, c.Valid)
	assert.Equal(t, since, c.Since)
	assert.InDelta(t, 0.0, c.MinX, 1e-9)
	assert.InDelta(t, 2.0, c.MaxX, 1e-9)
}

func TestCorrelate_StatePopulationsFillGaps(t *testing.T) {
	schools := []SchoolIncident{{State: "California"}}

	c := Correlate(nil, schools, nil, since)
	assert.Empty(t, c.Points)

	c = Correlate(nil, schools, []StatePopulation{{State: "California", Population: 40_000_000}}, since)
	require.Len(t, c.Points, 1)
	assert.InDelta(t, 0.025, c.Points[0].SchoolIncidentRate, 1e-9)
	assert.False(t, c.Valid, "single point has no fit")
}

func TestCorrelate_PerfectLine(t *testing.T) {
	var incidents []Incident
	var schools []SchoolIncident
	after := since.AddDate(0, 1, 0)
	for i, state := range []string{"A", "B", "C"} {
		for range i + 1 {
			incidents = append(incidents, datedIncident(state, 1_000_000, after))
		}
		for range 2*(i+1) + 1 {
			schools = append(schools, SchoolIncident{State: state})
		}
	}

	c := Correlate(incidents, schools, nil, since)

	require.True(t, c.Valid)
	assert.InDelta(t, 2.0, c.Slope, 1e-9)
	assert.InDelta(t, 1.0, c.Intercept, 1e-9)
	assert.InDelta(t, 1.0, c.R, 1e-9)

	line := c.Line()
	assert.InDelta(t, 1.0, line[0][0], 1e-9)
	assert.InDelta(t, 3.0, line[0][1], 1e-9)
	assert.InDelta(t, 3.0, line[1][0], 1e-9)
	assert.InDelta(t, 7.0, line[1][1], 1e-9)
}

func TestCorrelate_NoSpreadIsNotFitted(t *testing.T) {
	after := since.AddDate(0, 1, 0)
	incidents := []Incident{
		datedIncident("A", 1_000_000, after),
		datedIncident("B", 1_000_000, after),
	}
	c := Correlate(incidents, nil, nil, since)
	require.Len(t, c.Points, 2)
	assert.False(t, c.Valid)
}
