package narrative

import (
	"strings"
	"time"
)

// The four section headers the model is instructed to structure its answer
// around. Compliance is requested, never validated: the response stays an
// opaque block of text.
const (
	SectionTrends     = "### Key Trends and Observations"
	SectionAnomalies  = "### Anomaly Breakdown"
	SectionActions    = "### Recommended Actions"
	SectionDisclaimer = "### Disclaimer"
)

const promptHeader = `Act as a crypto market analyzer and analyze the chart in the attached image.

The chart comes from Crypto Sentinel, a market manipulation detection tool. It plots the daily closing price of a cryptocurrency in USD over the last 30 days as a line, with statistically unusual days overlaid as red markers. The markers are produced by an unsupervised outlier model fitted jointly over price and trading volume, so a day can be flagged for volume behavior even when its price looks ordinary.
`

const promptInstructions = `Keep in mind the common kinds of market manipulation: pump-and-dump schemes, spoofing (placing and canceling orders to create a false sense of supply or demand), wash trading (simultaneous buy and sell orders of the same asset), cornering the market, and front-running.

Experienced traders can read the chart themselves; write for rookie traders who cannot. Explain what the chart shows, give an inference about the state of the market based on it, and say whether the flagged windows suggest a potential for market manipulation.

Structure your answer with exactly these section headers:
`

// BuildPrompt assembles the fixed instructional prompt. When anomaly dates
// exist they are embedded as a literal comma-joined list; otherwise the
// clause is omitted entirely.
func BuildPrompt(asset string, anomalyDates []time.Time) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\nThe asset under analysis is " + asset + ".\n")

	if len(anomalyDates) > 0 {
		dates := make([]string, len(anomalyDates))
		for i, d := range anomalyDates {
			dates[i] = d.Format("2006-01-02")
		}
		sb.WriteString("\nThe following dates show anomalies: ")
		sb.WriteString(strings.Join(dates, ", "))
		sb.WriteString(". Use these dates to reference the anomalies in your analysis.\n")
	}

	sb.WriteString("\n")
	sb.WriteString(promptInstructions)
	sb.WriteString(SectionTrends + "\n")
	sb.WriteString(SectionAnomalies + "\n")
	sb.WriteString(SectionActions + " (generalized, non-financial advice)\n")
	sb.WriteString(SectionDisclaimer + "\n")

	return sb.String()
}
