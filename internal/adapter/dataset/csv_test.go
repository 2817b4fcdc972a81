package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockDir = filepath.Join("..", "..", "..", "data", "mock")

func openMock(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join(mockDir, name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadIncidents_MockFile(t *testing.T) {
	incidents, invalid, err := ReadIncidents("MassShootings.csv", openMock(t, "MassShootings.csv"))
	require.NoError(t, err)

	require.Len(t, incidents, 10)
	assert.Equal(t, 1, invalid)

	first := incidents[0]
	assert.Equal(t, "1001", first.ID)
	assert.Equal(t, "Texas", first.State)
	assert.Equal(t, time.Date(2022, time.December, 30, 0, 0, 0, 0, time.UTC), first.Date)
	assert.InDelta(t, 30.27, first.Lat, 1e-9)
	assert.InDelta(t, -97.74, first.Lon, 1e-9)
	assert.True(t, first.HasCoords)
	assert.Equal(t, 48, first.StateFIPS)
	assert.Equal(t, 30503301, first.Population)
	assert.Equal(t, 1, first.SuspectsArrested)

	third := incidents[2]
	assert.Equal(t, 1, third.SuspectsKilled)
	assert.Equal(t, 2, third.VictimsKilled)

	noDate := incidents[7]
	assert.True(t, noDate.Date.IsZero())
	assert.False(t, noDate.HasCoords)

	iso := incidents[9]
	assert.Equal(t, time.Date(2023, time.March, 25, 0, 0, 0, 0, time.UTC), iso.Date)
}

func TestReadIncidents_MissingColumn(t *testing.T) {
	_, _, err := ReadIncidents("bad.csv", strings.NewReader("State,Incident Date\nTexas,\"January 1, 2023\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing column "Latitude"`)
}

func TestReadIncidents_EmptyFile(t *testing.T) {
	_, _, err := ReadIncidents("empty.csv", strings.NewReader(""))
	require.ErrorIs(t, err, errEmptyFile)
}

func TestReadIncidents_BOMHeaderAndBlankRows(t *testing.T) {
	data := "\ufeffState,Incident Date,Latitude,Longitude,Suspects Injured,Suspects Killed,Suspects Arrested,FIPS,Population\n" +
		"Ohio,2023-05-01,40,-83,0,0,1,39,\"11,785,935\"\n" +
		",,,,,,,,\n"

	incidents, invalid, err := ReadIncidents("bom.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Zero(t, invalid)
	assert.Equal(t, "Ohio", incidents[0].State)
	assert.Equal(t, 11785935, incidents[0].Population)
}

func TestReadSchoolIncidents_MockFile(t *testing.T) {
	schools, err := ReadSchoolIncidents("SchoolIncidents.csv", openMock(t, "SchoolIncidents.csv"))
	require.NoError(t, err)

	require.Len(t, schools, 5)
	assert.Equal(t, "Texas", schools[0].State)
	assert.Equal(t, time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC), schools[0].Date)
	assert.Equal(t, "Vermont", schools[4].State)
}

func TestReadSchoolIncidents_DateColumnOptional(t *testing.T) {
	schools, err := ReadSchoolIncidents("s.csv", strings.NewReader("State\nOhio\nIowa\n"))
	require.NoError(t, err)
	require.Len(t, schools, 2)
	assert.True(t, schools[1].Date.IsZero())
}

func TestReadCountyPopulations_SkipsSummaryRows(t *testing.T) {
	pops, err := ReadCountyPopulations("CountyPopulation.csv", openMock(t, "CountyPopulation.csv"))
	require.NoError(t, err)

	require.Len(t, pops, 5)
	assert.Equal(t, 48453, pops[0].FIPS)
	assert.Equal(t, "Travis County", pops[0].AreaName)
	assert.Equal(t, "TX", pops[0].State)
	assert.Equal(t, 1334961, pops[0].Population)
	for _, p := range pops {
		assert.NotZero(t, p.FIPS%1000, "summary row %d kept", p.FIPS)
	}
}

func TestReadStatePopulations(t *testing.T) {
	pops, err := ReadStatePopulations("state-pop-clean.csv", openMock(t, "state-pop-clean.csv"))
	require.NoError(t, err)

	require.Len(t, pops, 2)
	assert.Equal(t, "California", pops[0].State)
	assert.Equal(t, 38965193, pops[0].Population)
}
