package model

// MarketChartResponse is the CoinGecko market_chart payload. Each entry is a
// [millisecond timestamp, value] pair.
type MarketChartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}
