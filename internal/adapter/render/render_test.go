package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/chart"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func testAnalysis() domain.Analysis {
	day := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.UTC) }
	incidents := []domain.Incident{
		{State: "Texas", StateFIPS: 48, Population: 30_000_000, Date: day(1, 3)},
		{State: "Texas", StateFIPS: 48, Population: 30_000_000, Date: day(2, 3)},
		{State: "Texas", StateFIPS: 48, Population: 30_000_000, Date: day(2, 13)},
		{State: "Ohio", StateFIPS: 39, Population: 11_000_000, Date: day(3, 3)},
		{State: "Ohio", StateFIPS: 39, Population: 11_000_000, Date: day(4, 3)},
		{State: "Iowa", StateFIPS: 19, Population: 3_000_000, Date: day(4, 9)},
	}
	schools := []domain.SchoolIncident{
		{State: "Texas", Date: day(1, 9)},
		{State: "Iowa", Date: day(2, 9)},
		{State: "Iowa", Date: day(3, 9)},
	}
	return domain.Analyze(domain.Datasets{Incidents: incidents, SchoolIncidents: schools},
		domain.AnalysisOptions{TopN: 3, CorrelationSince: day(1, 1).AddDate(-1, 0, 0)})
}

func TestPNG_SupportedCharts(t *testing.T) {
	a := testAnalysis()
	r := NewRenderer()

	for _, id := range []string{chart.IDStateRanking, chart.IDCorrelation, chart.IDMonthlyTrend, chart.IDMonthlyComparison} {
		t.Run(id, func(t *testing.T) {
			require.True(t, Supports(id))
			var buf bytes.Buffer
			require.NoError(t, r.PNG(&buf, id, a))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
		})
	}
}

func TestPNG_EmptyAnalysis(t *testing.T) {
	a := domain.Analysis{Trend: domain.MonthlyTrend{Buckets: []domain.MonthlyCount{}}}
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().PNG(&buf, chart.IDMonthlyTrend, a))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPNG_MapsUnsupported(t *testing.T) {
	for _, id := range []string{chart.IDStateMap, chart.IDCountyMap, chart.IDSuspectsInjured, chart.IDSuspectsKilled, "nope"} {
		assert.False(t, Supports(id), id)
		err := NewRenderer().PNG(&bytes.Buffer{}, id, domain.Analysis{})
		require.ErrorIs(t, err, ErrUnsupported, id)
	}
}
