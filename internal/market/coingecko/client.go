package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptosentinel/internal/market"
	"cryptosentinel/internal/model"
	platformhttp "cryptosentinel/internal/platform/http"
)

// SupportedCoins is the fixed allow-list of asset identifiers the service
// analyzes. Requests for anything else fail before a network call is made.
var SupportedCoins = []string{"bitcoin", "ethereum", "ripple", "cardano", "solana"}

// Client is the CoinGecko API client
type Client struct {
	baseURL    string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new CoinGecko client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
}

// NewClient creates a new CoinGecko API client
func NewClient(options ClientOptions) *Client {
	httpOpts := platformhttp.ClientOptions{
		Timeout:        options.RequestTimeout,
		RequestsPerSec: options.RequestsPerSec,
		MaxRetries:     options.MaxRetries,
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: platformhttp.NewClient(httpOpts),
		logger:     log.With().Str("component", "coingecko_client").Logger(),
	}
}

// Supported reports whether the coin identifier is on the allow-list.
func Supported(coinID string) bool {
	for _, id := range SupportedCoins {
		if id == coinID {
			return true
		}
	}
	return false
}

// PriceHistory fetches daily price and volume data for the last n days.
// The returned series is sorted ascending by timestamp.
func (c *Client) PriceHistory(ctx context.Context, coinID string, days int) (model.Series, error) {
	if !Supported(coinID) {
		return nil, fmt.Errorf("%w: %s", market.ErrUnsupportedAsset, coinID)
	}

	url := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d", c.baseURL, coinID, days)

	var data model.MarketChartResponse
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}

	if len(data.Prices) == 0 {
		c.logger.Warn().Str("coin", coinID).Msg("Response is missing price data")
		return nil, fmt.Errorf("%w: %s", market.ErrNoData, coinID)
	}

	series := make(model.Series, 0, len(data.Prices))
	for i, p := range data.Prices {
		// Volume rows can lag the price rows; missing entries become NaN
		// and are forward-filled before analysis.
		volume := math.NaN()
		if i < len(data.TotalVolumes) {
			volume = data.TotalVolumes[i][1]
		}
		series = append(series, model.Point{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Value:     p[1],
			Volume:    volume,
		})
	}
	series.SortByTime()

	c.logger.Debug().Str("coin", coinID).Int("points", len(series)).Msg("Fetched price history")
	return series, nil
}

// VolumeHistory fetches volume data between two instants. The returned series
// carries volumes only; the price column is zero.
func (c *Client) VolumeHistory(ctx context.Context, coinID string, from, to time.Time) (model.Series, error) {
	if !Supported(coinID) {
		return nil, fmt.Errorf("%w: %s", market.ErrUnsupportedAsset, coinID)
	}

	url := fmt.Sprintf(
		"%s/coins/%s/market_chart/range?vs_currency=usd&from=%d&to=%d",
		c.baseURL, coinID, from.Unix(), to.Unix(),
	)

	var data model.MarketChartResponse
	if err := c.getJSON(ctx, url, &data); err != nil {
		return nil, err
	}

	if len(data.TotalVolumes) == 0 {
		c.logger.Warn().Str("coin", coinID).Msg("Response is missing volume data")
		return nil, fmt.Errorf("%w: %s", market.ErrNoData, coinID)
	}

	series := make(model.Series, 0, len(data.TotalVolumes))
	for _, v := range data.TotalVolumes {
		series = append(series, model.Point{
			Timestamp: time.UnixMilli(int64(v[0])).UTC(),
			Volume:    v[1],
		})
	}
	series.SortByTime()

	c.logger.Debug().Str("coin", coinID).Int("points", len(series)).Msg("Fetched volume history")
	return series, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	c.logger.Debug().Str("url", url).Msg("Fetching market data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("Market data request failed")
		return fmt.Errorf("%w: %v", market.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %v", market.ErrUpstream, err)
	}

	// A body that does not parse means a broken upstream, not an empty
	// result; the empty-payload case is handled by the callers.
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing market data JSON")
		return fmt.Errorf("%w: parsing JSON: %v", market.ErrUpstream, err)
	}

	return nil
}
