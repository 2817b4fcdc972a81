package domain

import (
	"time"

	"github.com/paulmach/orb"
)

// Incident is one row of the mass-shooting export.
type Incident struct {
	ID               string    `json:"id,omitempty"`
	Date             time.Time `json:"date"` // zero when the source date was unparseable
	State            string    `json:"state"`
	CityOrCounty     string    `json:"city_or_county,omitempty"`
	Address          string    `json:"address,omitempty"`
	Lat              float64   `json:"lat"`
	Lon              float64   `json:"lon"`
	HasCoords        bool      `json:"-"`
	VictimsKilled    int       `json:"victims_killed"`
	VictimsInjured   int       `json:"victims_injured"`
	SuspectsInjured  int       `json:"suspects_injured"`
	SuspectsKilled   int       `json:"suspects_killed"`
	SuspectsArrested int       `json:"suspects_arrested"`
	StateFIPS        int       `json:"state_fips"`
	Population       int       `json:"population"` // population of the containing state
}

// Point returns the incident location as a lon/lat point.
func (i Incident) Point() orb.Point {
	return orb.Point{i.Lon, i.Lat}
}

// SchoolIncident is one row of the school-incident dataset. Only the state
// is required; the date feeds the monthly comparison series when present.
type SchoolIncident struct {
	State string
	Date  time.Time
}

// CountyPopulation is one row of the county population estimates.
type CountyPopulation struct {
	FIPS       int
	AreaName   string
	State      string // two-letter abbreviation
	Population int
}

// Label returns "Area_Name, ST", which keeps same-named counties in
// different states apart.
func (c CountyPopulation) Label() string {
	if c.State == "" {
		return c.AreaName
	}
	return c.AreaName + ", " + c.State
}

// StatePopulation is one row of the optional state population table.
type StatePopulation struct {
	State      string
	Population int
}

// CountyBoundary is a county polygon from the boundary file.
type CountyBoundary struct {
	GEOID    string
	FIPS     int
	StateFP  string
	Name     string
	Geometry orb.Geometry
}

// Datasets bundles every input the dashboards are computed from.
type Datasets struct {
	Incidents         []Incident
	SchoolIncidents   []SchoolIncident
	CountyPopulations []CountyPopulation
	StatePopulations  []StatePopulation
	Counties          []CountyBoundary
	CountiesCRS       string // crs name declared by the boundary file, empty for RFC 7946

	// Load bookkeeping.
	InvalidDates int
}
