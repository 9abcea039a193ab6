package chart

import (
	"fmt"
	"time"

	"cryptosentinel/internal/model"
)

// VolumeChart builds the trading-volume chart document: the volume line, a
// dashed horizontal reference line at the mean volume, and a marker on the
// single peak-volume day. No image is exported for this chart.
func VolumeChart(series model.Series, asset string, from, to time.Time) *model.ChartDocument {
	mean := meanVolume(series)
	peak := peakVolume(series)

	layout := baseLayout("Date", "Trading Volume (in USD)")
	layout.YAxis.TickFormat = ".2s"
	layout.Shapes = []model.Shape{
		{
			Type:  "line",
			Name:  "Average Volume",
			Y:     mean,
			Line:  model.LineStyle{Color: meanLineColor, Dash: "dash"},
			XFull: true,
		},
	}

	doc := &model.ChartDocument{
		Title: fmt.Sprintf(
			"%s Trading Volume Analysis (%s to %s)",
			capitalize(asset), from.Format(dateLayout), to.Format(dateLayout),
		),
		Layout: layout,
		Traces: []model.Trace{
			{
				Name: capitalize(asset),
				Type: "scatter",
				Mode: "lines",
				X:    dateStrings(series),
				Y:    series.Volumes(),
				Line: &model.LineStyle{Color: volumeLineColor, Width: 2},
			},
		},
	}

	if len(series) > 0 {
		doc.Traces = append(doc.Traces, model.Trace{
			Name:   "Peak Volume Day",
			Type:   "scatter",
			Mode:   "markers",
			X:      []string{peak.Timestamp.Format(dateLayout)},
			Y:      []float64{peak.Volume},
			Marker: &model.MarkerStyle{Color: meanLineColor, Size: 10, Symbol: "circle"},
		})
	}

	return doc
}

func meanVolume(s model.Series) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, p := range s {
		sum += p.Volume
	}
	return sum / float64(len(s))
}

func peakVolume(s model.Series) model.Point {
	if len(s) == 0 {
		return model.Point{}
	}
	peak := s[0]
	for _, p := range s[1:] {
		if p.Volume > peak.Volume {
			peak = p
		}
	}
	return peak
}
