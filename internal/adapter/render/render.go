// Package render draws static PNG versions of the non-map dashboard charts.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/couchcryptid/shooting-dashboard/internal/chart"
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnsupported is returned for charts without a static rendering (the maps).
var ErrUnsupported = errors.New("chart has no static rendering")

var (
	tealColor    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	pointColor   = color.RGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 255}
	regressColor = color.RGBA{R: 0xa6, G: 0xce, B: 0xe3, A: 255}
	maxColor     = color.RGBA{R: 0xd9, G: 0x5f, B: 0x02, A: 255}
	minColor     = color.RGBA{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff}
	schoolColor  = color.RGBA{R: 0xe7, G: 0x29, B: 0x8a, A: 255}
)

// Renderer draws charts at a fixed canvas size.
type Renderer struct {
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a Renderer with a 10x6 inch canvas.
func NewRenderer() *Renderer {
	return &Renderer{width: 10 * vg.Inch, height: 6 * vg.Inch}
}

// Supports reports whether id has a static rendering.
func Supports(id string) bool {
	switch id {
	case chart.IDStateRanking, chart.IDCorrelation, chart.IDMonthlyTrend, chart.IDMonthlyComparison:
		return true
	default:
		return false
	}
}

// PNG writes the chart id drawn from a as a PNG image.
func (r *Renderer) PNG(w io.Writer, id string, a domain.Analysis) error {
	var (
		p   *plot.Plot
		err error
	)
	switch id {
	case chart.IDStateRanking:
		p, err = stateRanking(a.States)
	case chart.IDCorrelation:
		p, err = correlation(a.Correlation)
	case chart.IDMonthlyTrend:
		p, err = monthlyTrend(a.Trend)
	case chart.IDMonthlyComparison:
		p, err = monthlyComparison(a.Comparison)
	default:
		return fmt.Errorf("render %s: %w", id, ErrUnsupported)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}

	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	return nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func stateRanking(states []domain.StateAggregate) (*plot.Plot, error) {
	top := domain.TopStates(states)
	p := newPlot(fmt.Sprintf("Top %d States with most mass shootings per 1M habitants", len(top)),
		"Shootings per 1M Habitants", "")
	if len(top) == 0 {
		return p, nil
	}

	// Bars are laid out bottom-up, so the highest rate goes last.
	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	labels := plotter.XYLabels{XYs: make(plotter.XYs, len(top)), Labels: make([]string, len(top))}
	for i, s := range top {
		j := len(top) - 1 - i
		values[j] = s.ShootingsPerMillion
		names[j] = s.State
		labels.XYs[j] = plotter.XY{X: s.ShootingsPerMillion, Y: float64(j)}
		labels.Labels[j] = fmt.Sprintf("%.2f", s.ShootingsPerMillion)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = tealColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalY(names...)

	valueLabels, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].XAlign = draw.XLeft
		valueLabels.TextStyle[i].YAlign = draw.YCenter
	}
	valueLabels.Offset = vg.Point{X: vg.Points(3)}
	p.Add(valueLabels)
	return p, nil
}

func correlation(c domain.Correlation) (*plot.Plot, error) {
	p := newPlot("Relationship Between Mass Shootings and School Incidents",
		"Mass Shootings per million citizens", "School Incidents per million citizens")
	if len(c.Points) == 0 {
		return p, nil
	}

	pts := make(plotter.XYs, len(c.Points))
	for i, s := range c.Points {
		pts[i] = plotter.XY{X: s.ShootingRate, Y: s.SchoolIncidentRate}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	if c.Valid {
		ends := c.Line()
		line, err := plotter.NewLine(plotter.XYs{{X: ends[0][0], Y: ends[0][1]}, {X: ends[1][0], Y: ends[1][1]}})
		if err != nil {
			return nil, err
		}
		line.Color = regressColor
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("fit (r = %.2f)", c.R), line)
	}
	return p, nil
}

func monthXY(counts []domain.MonthlyCount) plotter.XYs {
	pts := make(plotter.XYs, len(counts))
	for i, b := range counts {
		pts[i] = plotter.XY{X: float64(b.Month.Unix()), Y: float64(b.Count)}
	}
	return pts
}

func monthlyTrend(t domain.MonthlyTrend) (*plot.Plot, error) {
	p := newPlot("Mass shootings during the last four years in the USA", "Month - Year", "Mass shootings")
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan-2006"}
	if t.Empty() {
		return p, nil
	}

	line, err := plotter.NewLine(monthXY(t.Buckets))
	if err != nil {
		return nil, err
	}
	line.Color = pointColor
	line.Width = vg.Points(2)
	p.Add(line)

	for _, m := range []struct {
		points []domain.MonthlyCount
		color  color.Color
		shape  draw.GlyphDrawer
		name   string
	}{
		{t.MaxPoints, maxColor, draw.PyramidGlyph{}, fmt.Sprintf("max %d", t.Max)},
		{t.MinPoints, minColor, draw.SquareGlyph{}, fmt.Sprintf("min %d", t.Min)},
	} {
		s, err := plotter.NewScatter(monthXY(m.points))
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = m.color
		s.GlyphStyle.Radius = vg.Points(6)
		s.GlyphStyle.Shape = m.shape
		p.Add(s)
		p.Legend.Add(m.name, s)
	}

	mean := plotter.NewFunction(func(float64) float64 { return t.Mean })
	mean.Color = regressColor
	mean.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(mean)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f", t.Mean), mean)
	return p, nil
}

func monthlyComparison(points []domain.MonthlySeriesPoint) (*plot.Plot, error) {
	p := newPlot("Mass shootings and school incidents per month", "Month - Year", "Incidents")
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan-2006"}

	series := map[string]plotter.XYs{}
	for _, pt := range points {
		series[pt.Series] = append(series[pt.Series], plotter.XY{X: float64(pt.Month.Unix()), Y: float64(pt.Count)})
	}
	for _, s := range []struct {
		name  string
		color color.Color
	}{
		{domain.SeriesMassShootings, pointColor},
		{domain.SeriesSchoolIncidents, schoolColor},
	} {
		xys := series[s.name]
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.Color = s.color
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	return p, nil
}
