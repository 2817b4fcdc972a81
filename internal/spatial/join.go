// Package spatial assigns incident points to county polygons.
package spatial

import (
	"fmt"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Result is the outcome of a county join.
type Result struct {
	// Counties lists every county kept for the join, in input order, with
	// the number of incidents it contains (0 when none).
	Counties []domain.CountyIncidents

	Unmatched int // incidents with coordinates that fell in no county
	Excluded  int // counties dropped before joining (Puerto Rico)
	Swapped   int // counties whose axes were exchanged
}

// Joiner performs the point-in-polygon right join of incidents onto counties.
type Joiner struct {
	order AxisOrder
}

// NewJoiner creates a Joiner using the given axis order mode.
func NewJoiner(order AxisOrder) *Joiner {
	if order == "" {
		order = AxisAuto
	}
	return &Joiner{order: order}
}

type preparedCounty struct {
	geom  orb.Geometry
	bound orb.Bound
}

// Join drops Puerto Rico, repairs axis order, normalises every county to
// WGS-84 and counts the incidents each county contains. Every remaining
// county appears in the result even when it contains no incident. An
// incident is assigned to the first county that contains it.
func (j *Joiner) Join(incidents []domain.Incident, counties []domain.CountyBoundary, crsName string) (Result, error) {
	crs, err := ParseCRS(crsName)
	if err != nil {
		return Result{}, fmt.Errorf("county boundaries: %w", err)
	}

	var res Result
	kept := make([]domain.CountyIncidents, 0, len(counties))
	prepared := make([]preparedCounty, 0, len(counties))
	for _, c := range counties {
		if c.StateFP == domain.PuertoRicoStateFP {
			res.Excluded++
			continue
		}
		g, swapped := RepairAxisOrder(c.Geometry, j.order, crs)
		if swapped {
			res.Swapped++
		}
		g = ToWGS84(g, crs)

		pc := preparedCounty{geom: g}
		if g != nil {
			pc.bound = g.Bound()
		}
		prepared = append(prepared, pc)
		kept = append(kept, domain.CountyIncidents{FIPS: c.FIPS, StateFP: c.StateFP, Name: c.Name})
	}

	for _, inc := range incidents {
		if !inc.HasCoords {
			continue
		}
		pt := inc.Point()
		idx := locate(prepared, pt)
		if idx < 0 {
			res.Unmatched++
			continue
		}
		kept[idx].Incidents++
	}

	res.Counties = kept
	return res, nil
}

func locate(counties []preparedCounty, pt orb.Point) int {
	for i, c := range counties {
		if c.geom == nil || !c.bound.Contains(pt) {
			continue
		}
		if Contains(c.geom, pt) {
			return i
		}
	}
	return -1
}

// Contains reports whether pt lies within a polygonal geometry.
func Contains(g orb.Geometry, pt orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	case orb.Bound:
		return g.Contains(pt)
	default:
		return false
	}
}
