package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// legacyCRS is the pre-RFC 7946 "crs" member still written by many GIS exports.
type legacyCRS struct {
	CRS *struct {
		Type       string `json:"type"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

// ReadCounties parses a county boundary FeatureCollection. It returns the
// boundaries and the declared crs name ("" when the file has none).
// Features without a GEOID or geometry are skipped.
func ReadCounties(name string, r io.Reader) ([]domain.CountyBoundary, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}

	var legacy legacyCRS
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	crs := ""
	if legacy.CRS != nil {
		crs = legacy.CRS.Properties.Name
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}

	out := make([]domain.CountyBoundary, 0, len(fc.Features))
	for _, f := range fc.Features {
		geoid := propString(f.Properties, "GEOID")
		if geoid == "" || f.Geometry == nil {
			continue
		}
		fips, err := strconv.Atoi(geoid)
		if err != nil {
			return nil, "", fmt.Errorf("%s: feature GEOID %q is not numeric", name, geoid)
		}
		out = append(out, domain.CountyBoundary{
			GEOID:    geoid,
			FIPS:     fips,
			StateFP:  propString(f.Properties, "STATEFP"),
			Name:     propString(f.Properties, "NAME"),
			Geometry: f.Geometry,
		})
	}
	return out, crs, nil
}

// propString reads a property that may be encoded as a string or a number.
func propString(p geojson.Properties, key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
