package chart

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cryptosentinel/internal/model"
)

// PriceChart builds the price-with-anomalies chart document and renders the
// same chart as an in-memory PNG. The PNG never touches disk on the request
// path; the narrative step consumes the bytes directly.
func PriceChart(series, anomalies model.Series, asset string) (*model.ChartDocument, []byte, error) {
	doc := &model.ChartDocument{
		Title:  fmt.Sprintf("%s Price with Anomalies", capitalize(asset)),
		Layout: baseLayout("Date", "Price (USD)"),
		Traces: []model.Trace{
			{
				Name:          capitalize(asset),
				Type:          "scatter",
				Mode:          "lines",
				X:             dateStrings(series),
				Y:             series.Values(),
				Line:          &model.LineStyle{Color: priceLineColor, Width: 2},
				HoverTemplate: "<b>Date:</b> %{x|%b %d, %Y}<br><b>Price:</b> $%{y:.2f}<extra></extra>",
			},
		},
	}

	if len(anomalies) > 0 {
		doc.Traces = append(doc.Traces, model.Trace{
			Name: "Anomalies",
			Type: "scatter",
			Mode: "markers",
			X:    dateStrings(anomalies),
			Y:    anomalies.Values(),
			Marker: &model.MarkerStyle{
				Color:        anomalyColor,
				Size:         10,
				Symbol:       "circle",
				OutlineColor: "white",
				OutlineWidth: 1,
			},
			HoverTemplate: "<b>Anomaly Date:</b> %{x|%b %d, %Y}<br><b>Price:</b> $%{y:.2f}<extra></extra>",
		})
	}

	png, err := renderPricePNG(series, anomalies, doc.Title)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering price chart image: %w", err)
	}

	return doc, png, nil
}

func renderPricePNG(series, anomalies model.Series, title string) ([]byte, error) {
	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(dateLayout),
		},
		YAxis: chart.YAxis{
			Name: "Price (USD)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Price",
				XValues: series.Timestamps(),
				YValues: series.Values(),
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(priceLineColor, "#")),
					StrokeWidth: 2.0,
				},
			},
		},
	}

	if len(anomalies) > 0 {
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name:    "Anomalies",
			XValues: anomalies.Timestamps(),
			YValues: anomalies.Values(),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5.0,
				DotColor:    drawing.ColorFromHex(strings.TrimPrefix(anomalyColor, "#")),
			},
		})
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dateStrings(s model.Series) []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Timestamp.Format(dateLayout)
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
