package chart

import (
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// Correlation is the scatter of per-state shooting and school-incident
// rates with the least-squares line drawn over the observed range.
func Correlation(c domain.Correlation) *Spec {
	scatter := &Spec{
		Data: &Data{Values: c.Points},
		Mark: &Mark{Type: "circle", Color: pointColor},
		Encoding: &Encoding{
			X:       &Channel{Field: fieldShootingRatio, Type: "quantitative", Title: "Mass Shootings per million citizens", Axis: axis("Mass Shootings per million citizens")},
			Y:       &Channel{Field: fieldSchoolRatio, Type: "quantitative", Title: "School Incidents per million citizens", Axis: axis("School Incidents per million citizens")},
			Tooltip: tooltip(fieldState, fieldShootingRatio, fieldSchoolRatio),
		},
	}
	layers := []*Spec{scatter}

	if c.Valid {
		line := c.Line()
		layers = append(layers, &Spec{
			Data: &Data{Values: []map[string]float64{
				{fieldShootingRatio: line[0][0], fieldSchoolRatio: line[0][1]},
				{fieldShootingRatio: line[1][0], fieldSchoolRatio: line[1][1]},
			}},
			Mark: &Mark{Type: "line", Color: regressColor},
			Encoding: &Encoding{
				X: quant(fieldShootingRatio),
				Y: quant(fieldSchoolRatio),
			},
		})
	}

	return &Spec{
		Schema:   SchemaURL,
		Title:    title("Relationship Between Mass Shootings and School Incidents"),
		Width:    fullWidth,
		Height:   mapHeight,
		Autosize: autosizeFit,
		Layer:    layers,
	}
}
