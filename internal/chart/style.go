// Package chart builds renderer-independent chart documents for the frontend
// and exports a static PNG of the price chart for narrative analysis.
package chart

import "cryptosentinel/internal/model"

const (
	priceLineColor   = "#8B5CF6"
	anomalyColor     = "#EF4444"
	volumeLineColor  = "teal"
	meanLineColor    = "red"
	axisLineColor    = "#666666"
	gridColor        = "rgba(255,255,255,0.1)"
	transparentColor = "rgba(0,0,0,0)"

	dateLayout = "2006-01-02"
)

// baseLayout is the styling contract shared by every chart the service
// produces: transparent background, unified hover, horizontal legend above
// the plot, mirrored axes with faint gridlines.
func baseLayout(xTitle, yTitle string) model.Layout {
	return model.Layout{
		PaperBGColor: transparentColor,
		PlotBGColor:  transparentColor,
		XAxis:        baseAxis(xTitle),
		YAxis:        baseAxis(yTitle),
		HoverMode:    "x unified",
		HoverLabel: model.HoverLabel{
			BGColor:     "#333333",
			FontColor:   "white",
			BorderColor: axisLineColor,
		},
		Legend: model.Legend{
			Orientation: "h",
			YAnchor:     "bottom",
			Y:           1.02,
			XAnchor:     "right",
			X:           1,
			BGColor:     transparentColor,
		},
		Margin: model.Margin{L: 50, R: 50, T: 80, B: 50},
	}
}

func baseAxis(title string) model.AxisStyle {
	return model.AxisStyle{
		Title:         title,
		ShowGrid:      true,
		GridColor:     gridColor,
		LineColor:     axisLineColor,
		Mirror:        true,
		TitleFontSize: 12,
		TickFontSize:  10,
	}
}
