package chart

// Shared look of the dashboard charts.
const (
	colorScheme  = "lighttealblue"
	textColor    = "black"
	mapStroke    = "darkgray"
	regressColor = "#a6cee3"
	pointColor   = "#1f78b4"
	maxColor     = "#d95f02"
	minColor     = "#1b9e77"
	mapHeight    = 400
	suspectsH    = 450
	lineHeight   = 400
	projection   = "albersUsa"
	fullWidth    = "container"
	autosizeFit  = "fit"
)

func title(text string) *Title {
	return &Title{Text: text, FontSize: 18, FontWeight: "bold", Color: textColor}
}

func axis(title string) *Axis {
	return &Axis{Title: title, TitleColor: textColor, LabelColor: textColor, TitleFontSize: 14, LabelFontSize: 12}
}

func legend(title string) *Legend {
	return &Legend{Title: title, TitleColor: textColor, LabelColor: textColor}
}

func quant(field string) *Channel { return &Channel{Field: field, Type: "quantitative"} }

func nominal(field string) *Channel { return &Channel{Field: field, Type: "nominal"} }

func tooltip(fields ...string) []Channel {
	out := make([]Channel, len(fields))
	for i, f := range fields {
		out[i] = Channel{Field: f}
	}
	return out
}

// topoFeature references one object of the us-10m topology.
func topoFeature(url, feature string) *Data {
	return &Data{URL: url, Format: &DataFormat{Type: "topojson", Feature: feature}}
}

// lookupByID joins tabular values onto topology features by their numeric FIPS id.
func lookupByID(values any, key string, fields ...string) Transform {
	return Transform{
		Lookup: "id",
		From:   &LookupData{Data: Data{Values: values}, Key: key, Fields: fields},
	}
}
