package collector

import (
	"context"
	"errors"

	"TwseScreener/internal/model"
)

// ErrNotAvailable means the upstream source has no usable data for an
// instrument (empty history or missing current price). It is a normal
// skip-this-symbol outcome, not a batch failure.
var ErrNotAvailable = errors.New("instrument data not available")

// ErrNoData means the whole batch produced zero usable instruments.
var ErrNoData = errors.New("no usable instruments in batch")

// Fetcher defines the interface for fetching market data for one instrument.
type Fetcher interface {
	// FetchHistory returns up to `days` daily bars in chronological order.
	FetchHistory(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	// FetchFundamentals returns the valuation snapshot. Missing fields are
	// zero; implementations should not fail just because a ratio is absent.
	FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error)
	Name() string
}
