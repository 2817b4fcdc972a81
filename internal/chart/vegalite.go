// Package chart builds the dashboard's Vega-Lite v5 chart specifications.
package chart

import "encoding/json"

// SchemaURL is the Vega-Lite schema every top-level spec declares.
const SchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a Vega-Lite unit or layer specification. Layer children leave
// Schema empty.
type Spec struct {
	Schema     string      `json:"$schema,omitempty"`
	Title      *Title      `json:"title,omitempty"`
	Width      any         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Autosize   string      `json:"autosize,omitempty"`
	Data       *Data       `json:"data,omitempty"`
	Transform  []Transform `json:"transform,omitempty"`
	Projection *Projection `json:"projection,omitempty"`
	Mark       *Mark       `json:"mark,omitempty"`
	Encoding   *Encoding   `json:"encoding,omitempty"`
	Layer      []*Spec     `json:"layer,omitempty"`
}

// MarshalIndent renders the spec for the API and the batch output.
func (s *Spec) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

type Title struct {
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty"`
	Offset     float64 `json:"offset,omitempty"`
}

type Data struct {
	URL    string      `json:"url,omitempty"`
	Values any         `json:"values,omitempty"`
	Format *DataFormat `json:"format,omitempty"`
}

type DataFormat struct {
	Type    string `json:"type"`
	Feature string `json:"feature,omitempty"`
}

type Transform struct {
	Filter string      `json:"filter,omitempty"`
	Lookup string      `json:"lookup,omitempty"`
	From   *LookupData `json:"from,omitempty"`
}

type LookupData struct {
	Data   Data     `json:"data"`
	Key    string   `json:"key"`
	Fields []string `json:"fields,omitempty"`
}

type Projection struct {
	Type string `json:"type"`
}

type Mark struct {
	Type        string  `json:"type"`
	Color       string  `json:"color,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Filled      bool    `json:"filled,omitempty"`
	Shape       string  `json:"shape,omitempty"`
	Size        float64 `json:"size,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Align       string  `json:"align,omitempty"`
	Baseline    string  `json:"baseline,omitempty"`
	Dx          float64 `json:"dx,omitempty"`
	Dy          float64 `json:"dy,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"`
	Point       bool    `json:"point,omitempty"`
}

type Encoding struct {
	X         *Channel  `json:"x,omitempty"`
	Y         *Channel  `json:"y,omitempty"`
	Color     *Channel  `json:"color,omitempty"`
	Text      *Channel  `json:"text,omitempty"`
	Order     *Channel  `json:"order,omitempty"`
	Latitude  *Channel  `json:"latitude,omitempty"`
	Longitude *Channel  `json:"longitude,omitempty"`
	Tooltip   []Channel `json:"tooltip,omitempty"`
}

// Channel is a field or value definition of one encoding channel.
type Channel struct {
	Field  string  `json:"field,omitempty"`
	Type   string  `json:"type,omitempty"`
	Title  string  `json:"title,omitempty"`
	Sort   string  `json:"sort,omitempty"`
	Format string  `json:"format,omitempty"`
	Axis   *Axis   `json:"axis,omitempty"`
	Scale  *Scale  `json:"scale,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
	Value  any     `json:"value,omitempty"`
	Datum  any     `json:"datum,omitempty"`
}

type Axis struct {
	Title         string  `json:"title,omitempty"`
	Format        string  `json:"format,omitempty"`
	LabelAngle    float64 `json:"labelAngle,omitempty"`
	TitleColor    string  `json:"titleColor,omitempty"`
	LabelColor    string  `json:"labelColor,omitempty"`
	TitleFontSize float64 `json:"titleFontSize,omitempty"`
	LabelFontSize float64 `json:"labelFontSize,omitempty"`
}

type Scale struct {
	Scheme string `json:"scheme,omitempty"`
}

// Legend configures a colour legend. A Legend with Hidden set encodes as
// null, which suppresses the legend.
type Legend struct {
	Hidden     bool    `json:"-"`
	Title      string  `json:"title,omitempty"`
	TitleColor string  `json:"titleColor,omitempty"`
	LabelColor string  `json:"labelColor,omitempty"`
	LabelLimit float64 `json:"labelLimit,omitempty"`
	Orient     string  `json:"orient,omitempty"`
}

func (l Legend) MarshalJSON() ([]byte, error) {
	if l.Hidden {
		return []byte("null"), nil
	}
	type plain Legend
	return json.Marshal(plain(l))
}
