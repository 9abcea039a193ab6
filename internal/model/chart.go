package model

// ChartDocument is a declarative, renderer-independent description of one
// chart: its data traces plus layout. It is serialized as-is into API
// responses for client-side rendering.
type ChartDocument struct {
	Title  string  `json:"title"`
	Traces []Trace `json:"traces"`
	Layout Layout  `json:"layout"`
}

// Trace is a single drawable series within a chart.
type Trace struct {
	Name          string       `json:"name"`
	Type          string       `json:"type"`
	Mode          string       `json:"mode"`
	X             []string     `json:"x"`
	Y             []float64    `json:"y"`
	Line          *LineStyle   `json:"line,omitempty"`
	Marker        *MarkerStyle `json:"marker,omitempty"`
	HoverTemplate string       `json:"hovertemplate,omitempty"`
}

// LineStyle styles a line trace.
type LineStyle struct {
	Color string `json:"color"`
	Width int    `json:"width,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

// MarkerStyle styles a marker trace.
type MarkerStyle struct {
	Color        string `json:"color"`
	Size         int    `json:"size"`
	Symbol       string `json:"symbol,omitempty"`
	OutlineColor string `json:"outline_color,omitempty"`
	OutlineWidth int    `json:"outline_width,omitempty"`
}

// Layout holds chart-wide cosmetics.
type Layout struct {
	PaperBGColor string     `json:"paper_bgcolor"`
	PlotBGColor  string     `json:"plot_bgcolor"`
	XAxis        AxisStyle  `json:"xaxis"`
	YAxis        AxisStyle  `json:"yaxis"`
	HoverMode    string     `json:"hovermode"`
	HoverLabel   HoverLabel `json:"hoverlabel"`
	Legend       Legend     `json:"legend"`
	Margin       Margin     `json:"margin"`
	Shapes       []Shape    `json:"shapes,omitempty"`
}

// AxisStyle styles one axis.
type AxisStyle struct {
	Title         string `json:"title"`
	ShowGrid      bool   `json:"showgrid"`
	GridColor     string `json:"gridcolor"`
	LineColor     string `json:"linecolor"`
	Mirror        bool   `json:"mirror"`
	TitleFontSize int    `json:"title_font_size"`
	TickFontSize  int    `json:"tick_font_size"`
	TickFormat    string `json:"tickformat,omitempty"`
}

// HoverLabel styles the unified hover tooltip.
type HoverLabel struct {
	BGColor     string `json:"bgcolor"`
	FontColor   string `json:"font_color"`
	BorderColor string `json:"bordercolor"`
}

// Legend positions the chart legend.
type Legend struct {
	Orientation string  `json:"orientation"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
	BGColor     string  `json:"bgcolor"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Shape is a layout annotation such as a horizontal reference line.
type Shape struct {
	Type  string    `json:"type"`
	Name  string    `json:"name,omitempty"`
	Y     float64   `json:"y"`
	Line  LineStyle `json:"line"`
	XFull bool      `json:"x_full"`
}
