// Package market defines the error taxonomy shared by the data and HTTP layers.
package market

import "errors"

var (
	// ErrUnsupportedAsset is returned for coin identifiers outside the
	// supported allow-list, before any network call is made.
	ErrUnsupportedAsset = errors.New("unsupported asset")

	// ErrInvalidDate is returned for date parameters that do not parse as
	// YYYY-MM-DD calendar dates.
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUpstream is returned when the market-data API cannot be reached or
	// answers with a failure status.
	ErrUpstream = errors.New("market data upstream unavailable")

	// ErrNoData is returned for a well-formed upstream response that carries
	// no usable series.
	ErrNoData = errors.New("no market data for the requested period")

	// ErrNarrative is returned when the narrative model call fails.
	ErrNarrative = errors.New("narrative service failure")
)
