package chart

import (
	"fmt"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

func monthAxis(title string) *Axis {
	a := axis(title)
	a.Format = monthAxisFormat
	a.LabelAngle = monthAxisLabelAngle
	return a
}

// MonthlyTrend is the monthly incident line with the maximum and minimum
// months marked and labelled and a rule at the mean.
func MonthlyTrend(t domain.MonthlyTrend) *Spec {
	x := &Channel{Field: fieldYearMonth, Type: "temporal"}
	y := &Channel{Field: fieldCount, Type: "quantitative"}
	point := func(values []domain.MonthlyCount, shape, color string) *Spec {
		return &Spec{
			Data:     &Data{Values: values},
			Mark:     &Mark{Type: "point", Size: 170, Color: color, Filled: true, Shape: shape},
			Encoding: &Encoding{X: x, Y: y, Tooltip: tooltip(fieldYearMonth, fieldCount)},
		}
	}
	label := func(values []domain.MonthlyCount, color string, dx, dy float64) *Spec {
		return &Spec{
			Data:     &Data{Values: values},
			Mark:     &Mark{Type: "text", Align: "left", Dx: dx, Dy: dy, FontSize: 14, Color: color},
			Encoding: &Encoding{X: x, Y: y, Text: quant(fieldCount)},
		}
	}

	line := &Spec{
		Data: &Data{Values: t.Buckets},
		Mark: &Mark{Type: "line"},
		Encoding: &Encoding{
			X: &Channel{Field: fieldYearMonth, Type: "temporal", Title: "Month - Year", Axis: monthAxis("Month - Year")},
			Y: &Channel{Field: fieldCount, Type: "quantitative", Title: "Mass shootings", Axis: axis("Mass shootings")},
		},
	}
	layers := []*Spec{line}

	if !t.Empty() {
		mean := []map[string]float64{{fieldMean: t.Mean}}
		layers = append(layers,
			point(t.MaxPoints, "triangle-up", maxColor),
			point(t.MinPoints, "triangle-down", minColor),
			&Spec{
				Data:     &Data{Values: mean},
				Mark:     &Mark{Type: "rule", Color: regressColor},
				Encoding: &Encoding{Y: quant(fieldMean)},
			},
			&Spec{
				Data: &Data{Values: mean},
				Mark: &Mark{Type: "text", Align: "left", Dx: 200, Dy: -10, Color: regressColor, FontSize: 18},
				Encoding: &Encoding{
					Y:    quant(fieldMean),
					Text: &Channel{Value: fmt.Sprintf("Mean: %.2f", t.Mean)},
				},
			},
			label(t.MaxPoints, maxColor, 7, -10),
			label(t.MinPoints, minColor, 12, 15),
		)
	}

	return &Spec{
		Schema:   SchemaURL,
		Title:    title("Mass shootings during the last four years in the USA"),
		Width:    fullWidth,
		Height:   lineHeight,
		Autosize: autosizeFit,
		Layer:    layers,
	}
}

// MonthlyComparison draws the monthly mass-shooting and school-incident
// counts as two coloured series.
func MonthlyComparison(points []domain.MonthlySeriesPoint) *Spec {
	if points == nil {
		points = []domain.MonthlySeriesPoint{}
	}
	return &Spec{
		Schema:   SchemaURL,
		Title:    title("Mass shootings and school incidents per month"),
		Width:    fullWidth,
		Height:   lineHeight,
		Autosize: autosizeFit,
		Data:     &Data{Values: points},
		Mark:     &Mark{Type: "line", Point: true},
		Encoding: &Encoding{
			X:       &Channel{Field: fieldSeriesMonth, Type: "temporal", Title: "Month - Year", Axis: monthAxis("Month - Year")},
			Y:       &Channel{Field: fieldSeriesCount, Type: "quantitative", Title: "Incidents", Axis: axis("Incidents")},
			Color:   &Channel{Field: fieldSeriesType, Type: "nominal", Legend: legend("Series")},
			Tooltip: tooltip(fieldSeriesMonth, fieldSeriesType, fieldSeriesCount),
		},
	}
}
