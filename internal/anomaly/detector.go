// Package anomaly labels statistically unusual points in a price/volume
// series using an unsupervised isolation-forest model.
package anomaly

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/e-XpertSolutions/go-iforest/v2/iforest"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptosentinel/internal/model"
)

// Config holds the model parameters. It is passed in explicitly so callers
// and tests can vary contamination and seed independently.
type Config struct {
	// Contamination is the expected fraction of points treated as outliers.
	Contamination float64
	// Seed makes repeated fits over the same input produce identical labels.
	Seed int64
	// Trees is the number of isolation trees in the forest.
	Trees int
	// SampleSize is the per-tree subsample size, capped at the input length.
	SampleSize int
	// MinSamples is the minimum cleaned series length worth fitting a model
	// on. Below it the contamination target is degenerate, so detection is
	// skipped and no point is flagged.
	MinSamples int
}

// DefaultConfig returns the production model parameters.
func DefaultConfig() Config {
	return Config{
		Contamination: 0.05,
		Seed:          42,
		Trees:         100,
		SampleSize:    256,
		MinSamples:    20,
	}
}

// Result is the outcome of one detection run.
type Result struct {
	// Series is the cleaned input: sorted, deduplicated, forward-filled.
	Series model.Series
	// Flags marks each row of Series as anomalous or not.
	Flags []bool
	// Anomalies is the flagged subset of Series, in timestamp order.
	Anomalies model.Series
}

// fitMu serializes model fits across all detectors.
var fitMu sync.Mutex

// Detector fits the outlier model over joint (value, volume) vectors.
type Detector struct {
	cfg    Config
	logger zerolog.Logger
}

// NewDetector creates a detector with the given model parameters.
func NewDetector(cfg Config) *Detector {
	return &Detector{
		cfg:    cfg,
		logger: log.With().Str("component", "anomaly_detector").Logger(),
	}
}

// Detect labels each row of the series as normal or anomalous. A point can be
// flagged because of volume behavior even when its price looks ordinary, and
// vice versa. An empty input yields an empty result, not an error.
func (d *Detector) Detect(series model.Series) (Result, error) {
	if len(series) == 0 {
		return Result{}, nil
	}

	cleaned := make(model.Series, len(series))
	copy(cleaned, series)
	cleaned.SortByTime()
	cleaned = cleaned.Dedupe().ForwardFill()

	res := Result{
		Series: cleaned,
		Flags:  make([]bool, len(cleaned)),
	}

	if len(cleaned) < d.cfg.MinSamples {
		d.logger.Debug().
			Int("points", len(cleaned)).
			Int("min_samples", d.cfg.MinSamples).
			Msg("Series too short for outlier model, skipping detection")
		return res, nil
	}

	input := make([][]float64, len(cleaned))
	for i, p := range cleaned {
		input[i] = []float64{p.Value, p.Volume}
	}

	sampleSize := d.cfg.SampleSize
	if sampleSize > len(input) {
		sampleSize = len(input)
	}

	// The forest samples through the shared math/rand source (the reason
	// the deprecated rand.Seed is still the right call here) and its Train
	// writes library-level state, so fits must not overlap: the lock keeps
	// concurrent requests from racing and from unpinning the fixed seed.
	fitMu.Lock()
	rand.Seed(d.cfg.Seed)
	forest := iforest.NewForest(d.cfg.Trees, sampleSize, d.cfg.Contamination)
	forest.Train(input)
	err := forest.Test(input)
	fitMu.Unlock()
	if err != nil {
		return Result{}, fmt.Errorf("scoring series: %w", err)
	}

	for i, label := range forest.Labels {
		if label == 1 {
			res.Flags[i] = true
			res.Anomalies = append(res.Anomalies, cleaned[i])
		}
	}

	d.logger.Debug().
		Int("points", len(cleaned)).
		Int("anomalies", len(res.Anomalies)).
		Msg("Outlier detection complete")
	return res, nil
}
