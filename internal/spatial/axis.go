package spatial

import (
	"github.com/paulmach/orb"
)

// AxisOrder selects how county rings are read.
type AxisOrder string

const (
	// AxisAuto swaps only the geometries that look like (lat, lon) pairs.
	AxisAuto AxisOrder = "auto"
	// AxisLonLat trusts the file.
	AxisLonLat AxisOrder = "lonlat"
	// AxisLatLon swaps every geometry.
	AxisLatLon AxisOrder = "latlon"
)

// LooksSwapped reports whether a geographic geometry appears to be stored as
// (lat, lon). Either its Y range leaves the latitude domain, or its centre
// sits in the X >= 0, Y < 0 quadrant, which is where U.S. counties land once
// their axes are exchanged.
func LooksSwapped(g orb.Geometry) bool {
	if g == nil {
		return false
	}
	b := g.Bound()
	if b.Min[1] < -90 || b.Max[1] > 90 {
		return true
	}
	c := b.Center()
	return c[0] >= 0 && c[1] < 0
}

// SwapAxes rebuilds every ring of a Polygon or MultiPolygon with X and Y
// exchanged, holes included. Other geometry types are returned unchanged.
func SwapAxes(g orb.Geometry) orb.Geometry {
	switch g := g.(type) {
	case orb.Polygon:
		return swapPolygon(g)
	case orb.MultiPolygon:
		mp := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			mp[i] = swapPolygon(p)
		}
		return mp
	default:
		return g
	}
}

// RepairAxisOrder applies the axis order mode to g and reports whether it swapped.
// Auto detection is only meaningful for geographic coordinates.
func RepairAxisOrder(g orb.Geometry, order AxisOrder, crs CRS) (orb.Geometry, bool) {
	switch order {
	case AxisLatLon:
		return SwapAxes(g), true
	case AxisLonLat:
		return g, false
	default:
		if crs != Geographic || !LooksSwapped(g) {
			return g, false
		}
		return SwapAxes(g), true
	}
}

func swapPolygon(p orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		ring := make(orb.Ring, len(r))
		for j, pt := range r {
			ring[j] = orb.Point{pt[1], pt[0]}
		}
		out[i] = ring
	}
	return out
}
