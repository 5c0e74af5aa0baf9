package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"TwseScreener/internal/calculator"
	"TwseScreener/internal/model"
)

const (
	// historyDays gives 20-period rolling windows and the 26-period MACD
	// room to stabilize.
	historyDays = 60
	// minHistory is the hard floor: MACD needs 26 closes.
	minHistory = 26
)

// Collector fetches and normalizes quote data for a watchlist, one symbol at
// a time. The limiter enforces the polite inter-request pause the upstream
// sources expect; a batch of N symbols takes at least ~0.1×N seconds by design.
type Collector struct {
	fetcher Fetcher
	limiter *rate.Limiter
}

// NewCollector creates a Collector over the given data source.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
}

// Source returns the name of the underlying data source.
func (c *Collector) Source() string { return c.fetcher.Name() }

// CollectAll fetches every watchlist symbol sequentially, skipping instruments
// whose data is unavailable. Records come back in watchlist order. Returns
// ErrNoData if nothing in the batch was usable.
func (c *Collector) CollectAll(ctx context.Context, symbols []string) ([]model.StockRecord, error) {
	records := make([]model.StockRecord, 0, len(symbols))
	for _, symbol := range symbols {
		if err := c.limiter.Wait(ctx); err != nil {
			return records, err
		}
		rec, err := c.collectOne(ctx, symbol)
		if err != nil {
			if errors.Is(err, ErrNotAvailable) {
				log.Info().Str("symbol", symbol).Msg("no data for instrument, skipping")
			} else {
				log.Warn().Err(err).Str("symbol", symbol).Msg("collect failed, skipping")
			}
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}
	return records, nil
}

func (c *Collector) collectOne(ctx context.Context, symbol string) (model.StockRecord, error) {
	bars, err := c.fetcher.FetchHistory(ctx, symbol, historyDays)
	if err != nil {
		return model.StockRecord{}, err
	}
	if len(bars) < minHistory {
		return model.StockRecord{}, ErrNotAvailable
	}

	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	price := closes[len(closes)-1]
	volume := volumes[len(volumes)-1]
	if price <= 0 || volume <= 0 {
		return model.StockRecord{}, ErrNotAvailable
	}

	ma20, err := calculator.CalculateSMA(closes, 20)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("ma20 %s: %w", symbol, err)
	}
	avgVol20, err := calculator.CalculateSMA(volumes, 20)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("avg volume %s: %w", symbol, err)
	}
	rsi, err := calculator.CalculateRSI(closes, 14)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("rsi %s: %w", symbol, err)
	}
	macd, err := calculator.CalculateMACD(closes)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("macd %s: %w", symbol, err)
	}
	changePct, err := calculator.CalculateChangePercent(closes)
	if err != nil {
		return model.StockRecord{}, fmt.Errorf("change percent %s: %w", symbol, err)
	}

	fundamentals, err := c.fetcher.FetchFundamentals(ctx, symbol)
	if err != nil {
		// Fundamentals are soft: ratios default to zero and the
		// fundamental gates will exclude the instrument.
		log.Warn().Err(err).Str("symbol", symbol).Msg("fundamentals unavailable, using zeros")
		fundamentals = model.Fundamentals{Name: symbol}
	}
	name := fundamentals.Name
	if name == "" {
		name = symbol
	}

	return model.StockRecord{
		Symbol:        strings.TrimSuffix(symbol, ".TW"),
		Name:          name,
		Price:         price,
		ChangePercent: changePct,
		MA20:          ma20,
		RSI:           rsi,
		MACD:          macd.MACD,
		MACDSignal:    macd.Signal,
		MACDHist:      macd.Histogram,
		Volume:        volume,
		AvgVolume20:   avgVol20,
		PERatio:       fundamentals.PERatio,
		PBRatio:       fundamentals.PBRatio,
		DividendYield: fundamentals.DividendYield,
		MarketCap:     fundamentals.MarketCap,
		ROE:           fundamentals.ROE,
	}, nil
}
