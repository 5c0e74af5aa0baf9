package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TwseScreener/internal/model"
)

func TestCollectAll_BuildsRecordsInWatchlistOrder(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.Bar{
			"2330": GenerateBars(580, 30000, 60),
			"2317": GenerateBars(105, 50000, 60),
		},
		Fundamentals: map[string]model.Fundamentals{
			"2330": {Name: "台積電", PERatio: 18.5, PBRatio: 5.1, DividendYield: 2.1, MarketCap: 15e12, ROE: 28},
			"2317": {Name: "鴻海", PERatio: 11.2, PBRatio: 1.3, DividendYield: 4.8, MarketCap: 1.4e12, ROE: 12},
		},
	}
	col := NewCollector(fetcher)

	records, err := col.CollectAll(context.Background(), []string{"2330", "2317"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2330", records[0].Symbol)
	assert.Equal(t, "2317", records[1].Symbol)
	assert.Equal(t, "台積電", records[0].Name)
	assert.InDelta(t, 18.5, records[0].PERatio, 1e-9)
	assert.Greater(t, records[0].Price, 0.0)
	assert.Greater(t, records[0].MA20, 0.0)
	assert.GreaterOrEqual(t, records[0].RSI, 0.0)
	assert.LessOrEqual(t, records[0].RSI, 100.0)
}

func TestCollectAll_SkipsUnavailableInstruments(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.Bar{
			"2330": GenerateBars(580, 30000, 60),
		},
		HistoryErr: map[string]error{
			"9999": ErrNotAvailable,
		},
	}
	col := NewCollector(fetcher)

	records, err := col.CollectAll(context.Background(), []string{"9999", "2330"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2330", records[0].Symbol)
}

func TestCollectAll_SkipsShortHistory(t *testing.T) {
	fetcher := &MockFetcher{
		Bars: map[string][]model.Bar{
			"2330": GenerateBars(580, 30000, 60),
			"1234": GenerateBars(50, 2000, 20), // below the MACD floor
		},
	}
	col := NewCollector(fetcher)

	records, err := col.CollectAll(context.Background(), []string{"1234", "2330"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2330", records[0].Symbol)
}

func TestCollectAll_AllUnavailableEscalates(t *testing.T) {
	fetcher := &MockFetcher{
		HistoryErr: map[string]error{
			"2330": ErrNotAvailable,
			"2317": errors.New("connection reset"),
		},
	}
	col := NewCollector(fetcher)

	_, err := col.CollectAll(context.Background(), []string{"2330", "2317"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCollectAll_FundamentalsFailureDefaultsToZero(t *testing.T) {
	fetcher := &failingFundamentalsFetcher{
		MockFetcher: MockFetcher{
			Bars: map[string][]model.Bar{"2330": GenerateBars(580, 30000, 60)},
		},
	}
	col := NewCollector(fetcher)

	records, err := col.CollectAll(context.Background(), []string{"2330"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Zero(t, rec.PERatio)
	assert.Zero(t, rec.PBRatio)
	assert.Zero(t, rec.DividendYield)
	assert.Zero(t, rec.MarketCap)
	assert.Zero(t, rec.ROE)
	assert.Greater(t, rec.Price, 0.0, "price stays a hard requirement")
}

func TestCollectAll_EmptyWatchlist(t *testing.T) {
	col := NewCollector(&MockFetcher{})
	_, err := col.CollectAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoData)
}

type failingFundamentalsFetcher struct {
	MockFetcher
}

func (f *failingFundamentalsFetcher) FetchFundamentals(context.Context, string) (model.Fundamentals, error) {
	return model.Fundamentals{}, errors.New("quote summary throttled")
}

func TestYahooSymbolMapping(t *testing.T) {
	assert.Equal(t, "2330.TW", yahooSymbol("2330"))
	assert.Equal(t, "2330.TW", yahooSymbol("2330.TW"))
	assert.Equal(t, "^TWII", yahooSymbol("^TWII"))
}
