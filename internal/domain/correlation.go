package domain

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StateCorrelation pairs the mass-shooting and school-incident rates of one state.
type StateCorrelation struct {
	State              string  `json:"State"`
	Shootings          int     `json:"Shootings_count"`
	SchoolIncidents    int     `json:"School_count"`
	Population         int     `json:"Population"`
	ShootingRate       float64 `json:"Ratio Mass Shootings"`
	SchoolIncidentRate float64 `json:"Ratio School Incidents"`
}

// Correlation is the scatter data plus its least-squares fit.
type Correlation struct {
	Since  time.Time          `json:"since"`
	Points []StateCorrelation `json:"points"`

	// Fit of SchoolIncidentRate on ShootingRate. Valid is false with fewer
	// than two points or no spread in ShootingRate.
	Valid     bool    `json:"valid"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R         float64 `json:"r"`
	MinX      float64 `json:"min_x"`
	MaxX      float64 `json:"max_x"`
}

// Line returns the two endpoints of the regression line over the observed
// shooting-rate range.
func (c Correlation) Line() [2][2]float64 {
	return [2][2]float64{
		{c.MinX, c.Intercept + c.Slope*c.MinX},
		{c.MaxX, c.Intercept + c.Slope*c.MaxX},
	}
}

// Correlate counts incidents dated strictly after since and all school
// incidents per state, outer-joins the two counts, and expresses both per
// 1M habitants. Population comes from the first incident row of the state,
// then MissingStates, then statePops. States with no known population are
// left out because no rate can be formed for them.
func Correlate(incidents []Incident, schools []SchoolIncident, statePops []StatePopulation, since time.Time) Correlation {
	shootings := make(map[string]int)
	schoolCounts := make(map[string]int)
	population := make(map[string]int)

	for _, inc := range incidents {
		if _, ok := population[inc.State]; !ok && inc.Population != 0 {
			population[inc.State] = inc.Population
		}
		if !inc.Date.IsZero() && inc.Date.After(since) {
			shootings[inc.State]++
		}
	}
	for _, s := range schools {
		schoolCounts[s.State]++
	}
	for _, m := range MissingStates {
		if _, ok := population[m.Name]; !ok {
			population[m.Name] = m.Population
		}
	}
	for _, sp := range statePops {
		if _, ok := population[sp.State]; !ok && sp.Population != 0 {
			population[sp.State] = sp.Population
		}
	}

	states := make(map[string]struct{}, len(shootings)+len(schoolCounts))
	for s := range shootings {
		states[s] = struct{}{}
	}
	for s := range schoolCounts {
		states[s] = struct{}{}
	}

	points := make([]StateCorrelation, 0, len(states))
	for s := range states {
		pop := population[s]
		if pop == 0 {
			continue
		}
		points = append(points, StateCorrelation{
			State:              s,
			Shootings:          shootings[s],
			SchoolIncidents:    schoolCounts[s],
			Population:         pop,
			ShootingRate:       ratio(shootings[s], pop, StateRateScale),
			SchoolIncidentRate: ratio(schoolCounts[s], pop, StateRateScale),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].State < points[j].State })

	c := Correlation{Since: since, Points: points}
	fitCorrelation(&c)
	return c
}

func fitCorrelation(c *Correlation) {
	if len(c.Points) < 2 {
		return
	}
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = p.ShootingRate
		ys[i] = p.SchoolIncidentRate
	}
	c.MinX = floats.Min(xs)
	c.MaxX = floats.Max(xs)
	if c.MinX == c.MaxX {
		return
	}
	c.Intercept, c.Slope = stat.LinearRegression(xs, ys, nil, false)
	if floats.Min(ys) != floats.Max(ys) {
		c.R = stat.Correlation(xs, ys, nil)
	}
	c.Valid = true
}
