package spatial

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// CRS identifies the coordinate reference systems the boundary file may use.
type CRS int

const (
	// Geographic covers EPSG:4326, EPSG:4269 (NAD83) and OGC CRS84. At county
	// scale the NAD83/WGS-84 datum shift is below a metre and is ignored.
	Geographic CRS = iota
	// WebMercator is EPSG:3857 (and its legacy alias 900913).
	WebMercator
)

func (c CRS) String() string {
	switch c {
	case Geographic:
		return "EPSG:4326"
	case WebMercator:
		return "EPSG:3857"
	default:
		return "unknown"
	}
}

// epsgRe extracts the code from "EPSG:4326", "urn:ogc:def:crs:EPSG::4269" and similar.
var epsgRe = regexp.MustCompile(`EPSG:+(?:[\d.]*:)?(\d+)$`)

// ParseCRS maps a GeoJSON crs name to a CRS. An empty name is geographic,
// as RFC 7946 mandates.
func ParseCRS(name string) (CRS, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" || strings.HasSuffix(n, "CRS84") {
		return Geographic, nil
	}
	m := epsgRe.FindStringSubmatch(n)
	if m == nil {
		return 0, fmt.Errorf("unsupported crs %q", name)
	}
	switch m[1] {
	case "4326", "4269":
		return Geographic, nil
	case "3857", "900913", "3785", "102100":
		return WebMercator, nil
	default:
		return 0, fmt.Errorf("unsupported crs %q", name)
	}
}

// ToWGS84 returns g expressed in lon/lat degrees. The input is not modified.
func ToWGS84(g orb.Geometry, crs CRS) orb.Geometry {
	if g == nil || crs == Geographic {
		return g
	}
	return project.Geometry(orb.Clone(g), project.Mercator.ToWGS84)
}
