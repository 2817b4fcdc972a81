package spatial

import (
	"testing"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns a closed lon/lat ring covering [minX,maxX]x[minY,maxY].
func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func incidentAt(lon, lat float64) domain.Incident {
	return domain.Incident{Lat: lat, Lon: lon, HasCoords: true}
}

func testCounties() []domain.CountyBoundary {
	return []domain.CountyBoundary{
		{GEOID: "48001", FIPS: 48001, StateFP: "48", Name: "Anderson", Geometry: square(-100, 30, -99, 31)},
		{GEOID: "48003", FIPS: 48003, StateFP: "48", Name: "Andrews", Geometry: square(-99, 30, -98, 31)},
		{GEOID: "72001", FIPS: 72001, StateFP: "72", Name: "Adjuntas", Geometry: square(-67, 18, -66, 19)},
	}
}

func TestJoin_CountsIncidentsPerCounty(t *testing.T) {
	incidents := []domain.Incident{
		incidentAt(-99.5, 30.5),
		incidentAt(-99.2, 30.9),
		incidentAt(-98.5, 30.5),
		incidentAt(-50, 10), // nowhere
		{State: "Texas"},    // no coordinates
	}

	res, err := NewJoiner(AxisAuto).Join(incidents, testCounties(), "")
	require.NoError(t, err)

	require.Len(t, res.Counties, 2)
	assert.Equal(t, 48001, res.Counties[0].FIPS)
	assert.Equal(t, 2, res.Counties[0].Incidents)
	assert.Equal(t, 48003, res.Counties[1].FIPS)
	assert.Equal(t, 1, res.Counties[1].Incidents)
	assert.Equal(t, 1, res.Unmatched)
	assert.Equal(t, 1, res.Excluded)
	assert.Zero(t, res.Swapped)
}

func TestJoin_EveryCountyAppearsWithNonNegativeCount(t *testing.T) {
	res, err := NewJoiner(AxisAuto).Join(nil, testCounties(), "")
	require.NoError(t, err)

	require.Len(t, res.Counties, 2)
	for _, c := range res.Counties {
		assert.GreaterOrEqual(t, c.Incidents, 0)
		assert.NotEqual(t, domain.PuertoRicoStateFP, c.StateFP)
	}
}

func TestJoin_SwappedPolygonStillContainsPoint(t *testing.T) {
	// Stored as (lat, lon).
	swapped := orb.Polygon{orb.Ring{
		{30, -97}, {30, -96}, {31, -96}, {31, -97}, {30, -97},
	}}
	counties := []domain.CountyBoundary{
		{FIPS: 48005, StateFP: "48", Name: "Angelina", Geometry: swapped},
	}

	res, err := NewJoiner(AxisAuto).Join([]domain.Incident{incidentAt(-96.5, 30.5)}, counties, "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Swapped)
	assert.Equal(t, 1, res.Counties[0].Incidents)
	assert.Zero(t, res.Unmatched)
}

func TestJoin_SwappedMultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{
		SwapAxes(square(-97, 30, -96, 31)).(orb.Polygon),
		SwapAxes(square(-95, 30, -94, 31)).(orb.Polygon),
	}
	counties := []domain.CountyBoundary{{FIPS: 48007, StateFP: "48", Name: "Aransas", Geometry: mp}}

	res, err := NewJoiner(AxisAuto).Join([]domain.Incident{
		incidentAt(-96.5, 30.5),
		incidentAt(-94.5, 30.5),
	}, counties, "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Swapped)
	assert.Equal(t, 2, res.Counties[0].Incidents)
}

func TestJoin_LonLatModeNeverSwaps(t *testing.T) {
	swapped := SwapAxes(square(-97, 30, -96, 31))
	counties := []domain.CountyBoundary{{FIPS: 48005, StateFP: "48", Geometry: swapped}}

	res, err := NewJoiner(AxisLonLat).Join([]domain.Incident{incidentAt(-96.5, 30.5)}, counties, "")
	require.NoError(t, err)

	assert.Zero(t, res.Swapped)
	assert.Zero(t, res.Counties[0].Incidents)
	assert.Equal(t, 1, res.Unmatched)
}

func TestJoin_WebMercatorBoundaries(t *testing.T) {
	merc := project.Geometry(square(-100, 30, -99, 31), project.WGS84.ToMercator)
	counties := []domain.CountyBoundary{{FIPS: 48001, StateFP: "48", Geometry: merc}}

	res, err := NewJoiner(AxisAuto).Join([]domain.Incident{incidentAt(-99.5, 30.5)}, counties, "urn:ogc:def:crs:EPSG::3857")
	require.NoError(t, err)

	assert.Zero(t, res.Swapped)
	assert.Equal(t, 1, res.Counties[0].Incidents)
}

func TestJoin_UnknownCRS(t *testing.T) {
	_, err := NewJoiner(AxisAuto).Join(nil, testCounties(), "EPSG:2277")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EPSG:2277")
}

func TestParseCRS(t *testing.T) {
	cases := []struct {
		name string
		want CRS
	}{
		{"", Geographic},
		{"urn:ogc:def:crs:OGC:1.3:CRS84", Geographic},
		{"EPSG:4326", Geographic},
		{"urn:ogc:def:crs:EPSG::4269", Geographic},
		{"EPSG:3857", WebMercator},
		{"EPSG:900913", WebMercator},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCRS(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLooksSwapped(t *testing.T) {
	assert.False(t, LooksSwapped(square(-100, 30, -99, 31)), "continental county")
	assert.True(t, LooksSwapped(SwapAxes(square(-100, 30, -99, 31))), "mirrored county")
	assert.True(t, LooksSwapped(SwapAxes(square(-160, 20, -155, 22))), "latitude out of range")
	assert.False(t, LooksSwapped(square(172, 51, 179, 53)), "aleutians west of the antimeridian")
	assert.False(t, LooksSwapped(nil))
}

func TestSwapAxes_KeepsHoles(t *testing.T) {
	poly := orb.Polygon{
		square(-100, 30, -99, 31)[0],
		square(-99.6, 30.4, -99.4, 30.6)[0],
	}
	swapped := SwapAxes(poly).(orb.Polygon)

	require.Len(t, swapped, 2)
	assert.Equal(t, orb.Point{30, -100}, swapped[0][0])
	assert.Equal(t, orb.Point{30.4, -99.6}, swapped[1][0])
	// Input untouched.
	assert.Equal(t, orb.Point{-100, 30}, poly[0][0])
}

func TestContains_HoleExcluded(t *testing.T) {
	poly := orb.Polygon{
		square(-100, 30, -99, 31)[0],
		square(-99.6, 30.4, -99.4, 30.6)[0],
	}
	assert.True(t, Contains(poly, orb.Point{-99.9, 30.1}))
	assert.False(t, Contains(poly, orb.Point{-99.5, 30.5}))
	assert.False(t, Contains(orb.Point{-99.5, 30.5}, orb.Point{-99.5, 30.5}))
}
