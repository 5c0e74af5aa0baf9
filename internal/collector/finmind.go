package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"TwseScreener/internal/model"
)

// FinMindFetcher implements Fetcher using the FinMind Taiwan market API.
// FinMind has no market-cap or ROE dataset in the free tier; those fields
// stay zero and the fundamental gates treat them accordingly.
type FinMindFetcher struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewFinMindFetcher creates a FinMind fetcher with optional proxy support.
func NewFinMindFetcher(baseURL, token, proxyURL string) *FinMindFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FinMindFetcher{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FinMindFetcher) Name() string { return "finmind" }

type finMindPriceRow struct {
	Date          string  `json:"date"`
	StockID       string  `json:"stock_id"`
	TradingVolume float64 `json:"Trading_Volume"`
	Open          float64 `json:"open"`
	Max           float64 `json:"max"`
	Min           float64 `json:"min"`
	Close         float64 `json:"close"`
}

type finMindPERRow struct {
	Date          string  `json:"date"`
	DividendYield float64 `json:"dividend_yield"`
	PER           float64 `json:"PER"`
	PBR           float64 `json:"PBR"`
}

func (f *FinMindFetcher) query(ctx context.Context, dataset, symbol string, days int, out interface{}) error {
	start := time.Now().AddDate(0, 0, -days*2).Format("2006-01-02") // margin for non-trading days
	u := fmt.Sprintf("%s?dataset=%s&data_id=%s&start_date=%s&token=%s",
		f.BaseURL, url.QueryEscape(dataset), url.QueryEscape(symbol), start, url.QueryEscape(f.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("finmind fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finmind: status %d", resp.StatusCode)
	}

	var envelope struct {
		Msg    string          `json:"msg"`
		Status int             `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("finmind decode: %w", err)
	}
	if envelope.Status != 200 {
		return fmt.Errorf("finmind: status %d, msg %q", envelope.Status, envelope.Msg)
	}
	return json.Unmarshal(envelope.Data, out)
}

func (f *FinMindFetcher) FetchHistory(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	var rows []finMindPriceRow
	if err := f.query(ctx, "TaiwanStockPrice", symbol, days, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotAvailable
	}

	bars := make([]model.Bar, 0, len(rows))
	for _, row := range rows {
		ts, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		bars = append(bars, model.Bar{
			Time:   ts,
			Open:   row.Open,
			High:   row.Max,
			Low:    row.Min,
			Close:  row.Close,
			Volume: row.TradingVolume,
		})
	}
	if len(bars) == 0 {
		return nil, ErrNotAvailable
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *FinMindFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	var rows []finMindPERRow
	if err := f.query(ctx, "TaiwanStockPER", symbol, 10, &rows); err != nil {
		return model.Fundamentals{}, err
	}
	if len(rows) == 0 {
		return model.Fundamentals{}, ErrNotAvailable
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	latest := rows[len(rows)-1]
	return model.Fundamentals{
		Name:          symbol,
		PERatio:       latest.PER,
		PBRatio:       latest.PBR,
		DividendYield: latest.DividendYield,
	}, nil
}
