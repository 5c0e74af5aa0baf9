package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"TwseScreener/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol maps a bare TWSE code to its Yahoo ticker. Symbols that already
// carry an exchange suffix or an index prefix pass through unchanged.
func yahooSymbol(symbol string) string {
	if strings.ContainsAny(symbol, ".^") {
		return symbol
	}
	return symbol + ".TW"
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	rng := "1y"
	if days <= 30 {
		rng = "1mo"
	} else if days <= 90 {
		rng = "3mo"
	} else if days <= 180 {
		rng = "6mo"
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(yahooSymbol(symbol)), rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, ErrNotAvailable
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNotAvailable
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
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

// yahooValue is Yahoo's {raw, fmt} number wrapper.
type yahooValue struct {
	Raw float64 `json:"raw"`
}

// yahooSummary is the quoteSummary response, trimmed to the modules we read.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string     `json:"longName"`
				MarketCap yahooValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    yahooValue `json:"trailingPE"`
				DividendYield yahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (f *YahooFetcher) FetchFundamentals(ctx context.Context, symbol string) (model.Fundamentals, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=price,summaryDetail,defaultKeyStatistics,financialData",
		url.PathEscape(yahooSymbol(symbol)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Fundamentals{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Fundamentals{}, fmt.Errorf("yahoo fundamentals: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Fundamentals{}, fmt.Errorf("yahoo fundamentals: status %d", resp.StatusCode)
	}

	var summary yahooSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return model.Fundamentals{}, fmt.Errorf("yahoo fundamentals decode: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return model.Fundamentals{}, fmt.Errorf("yahoo fundamentals: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return model.Fundamentals{}, ErrNotAvailable
	}

	r := summary.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = symbol
	}
	// Yahoo reports yield and ROE as fractions; the record carries percents.
	return model.Fundamentals{
		Name:          name,
		PERatio:       r.SummaryDetail.TrailingPE.Raw,
		PBRatio:       r.DefaultKeyStatistics.PriceToBook.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw * 100,
		MarketCap:     r.Price.MarketCap.Raw,
		ROE:           r.FinancialData.ReturnOnEquity.Raw * 100,
	}, nil
}
