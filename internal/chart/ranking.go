package chart

import (
	"fmt"

	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// StateRanking is a horizontal bar chart of the states flagged Top, longest
// bar first, each labelled with its rate.
func StateRanking(states []domain.StateAggregate) *Spec {
	top := domain.TopStates(states)

	y := &Channel{Field: fieldState, Type: "nominal", Sort: "-x", Axis: axis(fieldState)}
	bars := &Spec{
		Mark: &Mark{Type: "bar"},
		Encoding: &Encoding{
			X: &Channel{Field: fieldStateRate, Type: "quantitative", Axis: axis(fieldStateRate)},
			Y: y,
			Color: &Channel{
				Field:  fieldStateRate,
				Type:   "quantitative",
				Scale:  &Scale{Scheme: colorScheme},
				Legend: &Legend{Hidden: true},
			},
			Tooltip: tooltip(fieldState, fieldShootings, fieldStateRate),
		},
	}
	labels := &Spec{
		Mark: &Mark{Type: "text", Align: "left", Baseline: "middle", Dx: 3, Color: textColor, FontSize: 12},
		Encoding: &Encoding{
			X:    quant(fieldStateRate),
			Y:    &Channel{Field: fieldState, Type: "nominal", Sort: "-x"},
			Text: &Channel{Field: fieldStateRate, Type: "quantitative", Format: ".2f"},
		},
	}

	t := title(fmt.Sprintf("Top %d States with most mass shootings per 1M habitants", len(top)))
	t.Offset = 12.5
	return &Spec{
		Schema:   SchemaURL,
		Title:    t,
		Width:    fullWidth,
		Height:   max(81*len(top), 120),
		Autosize: autosizeFit,
		Data:     &Data{Values: top},
		Layer:    []*Spec{bars, labels},
	}
}
