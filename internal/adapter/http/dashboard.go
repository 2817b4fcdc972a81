package http

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/shooting-dashboard/internal/adapter/render"
	"github.com/couchcryptid/shooting-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/shooting-dashboard/internal/chart"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"github.com/couchcryptid/shooting-dashboard/internal/pipeline"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// row is one band of the page: columns of stacked chart ids.
type row struct {
	Class   string
	Columns [][]string
}

var layout = []row{
	{Columns: [][]string{{chart.IDStateRanking}, {chart.IDStateMap, chart.IDCountyMap}}},
	{Columns: [][]string{{chart.IDMonthlyTrend}, {chart.IDCorrelation}}},
	{Class: "even", Columns: [][]string{{chart.IDSuspectsInjured}, {chart.IDSuspectsKilled}}},
	{Class: "single", Columns: [][]string{{chart.IDMonthlyComparison}}},
}

type pageData struct {
	Title       string
	Authors     string
	Rows        []row
	Specs       chart.Set
	GeneratedAt time.Time
	Stats       domain.LoadStats
}

// RenderPage writes the dashboard HTML page for d. Charts are embedded as
// Vega-Lite specs and drawn client-side.
func RenderPage(w io.Writer, page Page, d pipeline.Dashboard) error {
	return dashboardTmpl.Execute(w, pageData{
		Title:       page.Title,
		Authors:     page.Authors,
		Rows:        layout,
		Specs:       d.Charts,
		GeneratedAt: d.Analysis.GeneratedAt,
		Stats:       d.Analysis.Stats,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := RenderPage(&buf, s.page, d); err != nil {
		s.logger.Error("render dashboard page", "error", err)
		writeError(w, http.StatusInternalServerError, "render dashboard page")
		return
	}

	s.metrics.ChartRequests.WithLabelValues("dashboard", "html").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleChartList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, chart.Catalog)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !chart.Known(id) {
		writeError(w, http.StatusNotFound, "unknown chart "+id)
		return
	}
	d, ok := s.build(w, r)
	if !ok {
		return
	}
	s.metrics.ChartRequests.WithLabelValues(id, "json").Inc()
	writeJSON(w, http.StatusOK, d.Charts[id])
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	id, isPNG := strings.CutSuffix(r.PathValue("file"), ".png")
	if !isPNG || !render.Supports(id) {
		writeError(w, http.StatusNotFound, "no static rendering for "+r.PathValue("file"))
		return
	}
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.PNG(&buf, id, d.Analysis); err != nil {
		s.logger.Error("render png", "chart", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.ChartRequests.WithLabelValues(id, "png").Inc()
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf, d.Analysis); err != nil {
		s.logger.Error("export workbook", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.ChartRequests.WithLabelValues("export", "xlsx").Inc()
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="mass-shootings.xlsx"`)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}
