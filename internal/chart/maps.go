package chart

import (
	"github.com/couchcryptid/shooting-dashboard/internal/domain"
)

// StateMap is the state choropleth of shootings per 1M habitants. The
// District of Columbia is left out of the colour scale and drawn as a
// circle at its centre instead.
func StateMap(states []domain.StateAggregate, topoURL string) *Spec {
	choropleth := &Spec{
		Data:      topoFeature(topoURL, "states"),
		Transform: []Transform{lookupByID(domain.ExcludeState(states, domain.DistrictOfColumbiaFIPS), fieldFIPS, fieldState, fieldShootings, fieldStateRate)},
		Mark:      &Mark{Type: "geoshape", Stroke: mapStroke},
		Encoding: &Encoding{
			Color: &Channel{
				Field:  fieldStateRate,
				Type:   "quantitative",
				Scale:  &Scale{Scheme: colorScheme},
				Legend: legend(fieldStateRate),
			},
			Tooltip: []Channel{{Field: fieldState, Type: "nominal"}, {Field: fieldStateRate, Type: "quantitative"}},
		},
	}
	layers := []*Spec{choropleth}

	if dc, ok := domain.FindState(states, domain.DistrictOfColumbiaFIPS); ok {
		layers = append(layers, &Spec{
			Data: &Data{Values: []map[string]any{{
				fieldLatitude:  domain.DistrictOfColumbiaCenter[0],
				fieldLongitude: domain.DistrictOfColumbiaCenter[1],
				fieldState:     dc.State,
				fieldStateRate: dc.ShootingsPerMillion,
			}}},
			Mark: &Mark{Type: "circle", Size: 50, Opacity: 0.7},
			Encoding: &Encoding{
				Color:     &Channel{Field: fieldState, Type: "nominal", Scale: &Scale{Scheme: "reds"}, Legend: &Legend{TitleColor: textColor, LabelColor: textColor}},
				Longitude: quant(fieldLongitude),
				Latitude:  quant(fieldLatitude),
				Tooltip:   []Channel{{Field: fieldState, Type: "nominal"}, {Field: fieldStateRate, Type: "quantitative"}},
			},
		})
	}

	return &Spec{
		Schema:     SchemaURL,
		Title:      title("Distribution of shootings per million habitants, by state"),
		Width:      fullWidth,
		Height:     mapHeight,
		Autosize:   autosizeFit,
		Projection: &Projection{Type: projection},
		Layer:      layers,
	}
}

// CountyMap is the county choropleth of shootings per 100K habitants with
// state borders and county outlines drawn on top.
func CountyMap(counties []domain.CountyAggregate, topoURL string) *Spec {
	if counties == nil {
		counties = []domain.CountyAggregate{}
	}
	lookup := lookupByID(counties, fieldCountyFIPS, fieldCounty, fieldShootings, fieldCountyRate)
	countyTooltip := []Channel{{Field: fieldCounty, Type: "nominal"}, {Field: fieldCountyRate, Type: "quantitative"}}

	countyLegend := legend("Shootings per 100K Habitants")
	countyLegend.LabelLimit = 500

	choropleth := &Spec{
		Data:      topoFeature(topoURL, "counties"),
		Transform: []Transform{lookup},
		Mark:      &Mark{Type: "geoshape"},
		Encoding: &Encoding{
			Color: &Channel{
				Field:  fieldCountyRate,
				Type:   "quantitative",
				Scale:  &Scale{Scheme: colorScheme},
				Legend: countyLegend,
			},
			Tooltip: countyTooltip,
		},
	}
	stateBorders := &Spec{
		Data: topoFeature(topoURL, "states"),
		Mark: &Mark{Type: "geoshape", Stroke: "gray", Fill: "transparent"},
	}
	countyOutlines := &Spec{
		Data:      topoFeature(topoURL, "counties"),
		Transform: []Transform{lookup},
		Mark:      &Mark{Type: "geoshape", Stroke: "lightgray", StrokeWidth: 0.3, Fill: "transparent"},
		Encoding:  &Encoding{Tooltip: countyTooltip},
	}

	return &Spec{
		Schema:     SchemaURL,
		Title:      title("Distribution of shootings per 100k habitants, by county"),
		Width:      fullWidth,
		Height:     mapHeight,
		Autosize:   autosizeFit,
		Projection: &Projection{Type: projection},
		Layer:      []*Spec{choropleth, stateBorders, countyOutlines},
	}
}

// SuspectsInjuredMap is the state choropleth of the share of suspects injured.
func SuspectsInjuredMap(states []domain.StateAggregate, topoURL string) *Spec {
	return suspectsMap(states, topoURL, fieldPctInjured, "Percentage of suspects injured per shooting, by state")
}

// SuspectsKilledMap is the state choropleth of the share of suspects killed.
func SuspectsKilledMap(states []domain.StateAggregate, topoURL string) *Spec {
	return suspectsMap(states, topoURL, fieldPctKilled, "Percentage of suspects killed per shooting, by state")
}

func suspectsMap(states []domain.StateAggregate, topoURL, field, text string) *Spec {
	l := legend(field)
	l.Orient = "top"
	return &Spec{
		Schema:     SchemaURL,
		Title:      title(text),
		Width:      fullWidth,
		Height:     suspectsH,
		Autosize:   autosizeFit,
		Data:       topoFeature(topoURL, "states"),
		Transform:  []Transform{lookupByID(states, fieldFIPS, fieldState, field)},
		Projection: &Projection{Type: projection},
		Mark:       &Mark{Type: "geoshape", Stroke: mapStroke},
		Encoding: &Encoding{
			Color:   &Channel{Field: field, Type: "quantitative", Scale: &Scale{Scheme: colorScheme}, Legend: l},
			Tooltip: []Channel{{Field: fieldState, Type: "nominal"}, {Field: field, Type: "quantitative"}},
		},
	}
}
