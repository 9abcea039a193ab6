// Package service composes the analysis pipelines behind the HTTP handlers.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptosentinel/internal/anomaly"
	"cryptosentinel/internal/chart"
	"cryptosentinel/internal/market"
	"cryptosentinel/internal/model"
	"cryptosentinel/internal/narrative"
)

const dateLayout = "2006-01-02"

// MarketData is the upstream fetcher the analyzer depends on.
type MarketData interface {
	PriceHistory(ctx context.Context, coinID string, days int) (model.Series, error)
	VolumeHistory(ctx context.Context, coinID string, from, to time.Time) (model.Series, error)
}

// PriceAnalysis is the result of the price pipeline.
type PriceAnalysis struct {
	Chart     *model.ChartDocument `json:"chart"`
	Narrative string               `json:"narrative"`
}

// VolumeAnalysis is the result of the volume pipeline.
type VolumeAnalysis struct {
	Chart *model.ChartDocument `json:"chart"`
}

// Analyzer runs the two analysis pipelines: fetch → detect → chart → narrate
// for prices, fetch → chart for volumes.
type Analyzer struct {
	market    MarketData
	detector  *anomaly.Detector
	narrator  narrative.Narrator
	snapshots *chart.SnapshotStore
	priceDays int
	logger    zerolog.Logger
}

// NewAnalyzer wires the pipeline components together.
func NewAnalyzer(md MarketData, detector *anomaly.Detector, narrator narrative.Narrator, snapshots *chart.SnapshotStore, priceDays int) *Analyzer {
	if priceDays <= 0 {
		priceDays = 30
	}
	return &Analyzer{
		market:    md,
		detector:  detector,
		narrator:  narrator,
		snapshots: snapshots,
		priceDays: priceDays,
		logger:    log.With().Str("component", "analyzer").Logger(),
	}
}

// AnalyzePrice fetches the recent price history for an asset, labels
// anomalous days, renders the chart, and asks the narrator to describe it.
func (a *Analyzer) AnalyzePrice(ctx context.Context, asset string) (*PriceAnalysis, error) {
	series, err := a.market.PriceHistory(ctx, asset, a.priceDays)
	if err != nil {
		return nil, err
	}

	result, err := a.detector.Detect(series)
	if err != nil {
		return nil, fmt.Errorf("detecting anomalies for %s: %w", asset, err)
	}

	doc, png, err := chart.PriceChart(result.Series, result.Anomalies, asset)
	if err != nil {
		return nil, err
	}

	// Snapshot failures are not worth failing the request over; the
	// narrative step works from the in-memory bytes.
	if a.snapshots != nil {
		if _, err := a.snapshots.Save(asset, png); err != nil {
			a.logger.Warn().Err(err).Str("asset", asset).Msg("Failed to save chart snapshot")
		}
	}

	text, err := a.narrator.Describe(ctx, narrative.Request{
		Asset:        asset,
		AnomalyDates: result.Anomalies.Timestamps(),
		ImagePNG:     png,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("asset", asset).
		Int("points", len(result.Series)).
		Int("anomalies", len(result.Anomalies)).
		Msg("Price analysis complete")

	return &PriceAnalysis{Chart: doc, Narrative: text}, nil
}

// AnalyzeVolume fetches the volume history between two calendar dates and
// renders the volume chart. Dates must be YYYY-MM-DD.
func (a *Analyzer) AnalyzeVolume(ctx context.Context, asset, startDate, endDate string) (*VolumeAnalysis, error) {
	from, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", market.ErrInvalidDate, startDate)
	}
	to, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", market.ErrInvalidDate, endDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s", market.ErrInvalidDate, endDate, startDate)
	}

	series, err := a.market.VolumeHistory(ctx, asset, from, to)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", market.ErrNoData, asset)
	}

	doc := chart.VolumeChart(series, asset, from, to)

	a.logger.Info().
		Str("asset", asset).
		Int("points", len(series)).
		Msg("Volume analysis complete")

	return &VolumeAnalysis{Chart: doc}, nil
}
