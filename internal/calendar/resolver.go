package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// Config controls how the holiday set is resolved.
type Config struct {
	HolidayURL   string
	FallbackYear int
	Proxy        string
	Timeout      time.Duration
}

// Resolver answers trading-day questions for the TWSE. The holiday set is
// resolved once at construction and never refreshed; per-date verdicts are
// cached for the lifetime of the resolver.
type Resolver struct {
	mu       sync.Mutex
	holidays map[string]struct{}
	cache    map[string]bool
	source   string
}

// New builds a Resolver by fetching the TWSE holiday schedule, falling back to
// the static table for the configured year on any failure. A resolver is always
// returned; with no holiday data at all it degrades to the weekend rule alone.
func New(ctx context.Context, cfg Config) *Resolver {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	holidays, err := fetchHolidaySchedule(ctx, cfg)
	source := "twse"
	if err != nil {
		log.Warn().Err(err).Msg("holiday schedule fetch failed, using fallback table")
		holidays = fallbackHolidays(cfg.FallbackYear)
		source = "fallback"
	}
	if len(holidays) == 0 {
		// Fail open: weekend rule alone decides. Better to run on an
		// unannounced holiday than to silently skip a trading day.
		log.Warn().Int("fallback_year", cfg.FallbackYear).
			Msg("no holiday data available, weekend rule only")
		source = "none"
	}

	set := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		set[d] = struct{}{}
	}
	log.Info().Str("source", source).Int("holidays", len(set)).Msg("trading calendar resolved")

	return &Resolver{
		holidays: set,
		cache:    make(map[string]bool),
		source:   source,
	}
}

// NewStatic builds a Resolver from a fixed holiday list, skipping the feed.
func NewStatic(holidays []string) *Resolver {
	set := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		set[d] = struct{}{}
	}
	return &Resolver{holidays: set, cache: make(map[string]bool), source: "static"}
}

// Source reports where the holiday set came from: "twse", "fallback",
// "static", or "none".
func (r *Resolver) Source() string { return r.source }

// IsTradingDay reports whether the TWSE is open for regular trading on d.
// Saturdays and Sundays are always closed regardless of the holiday set.
func (r *Resolver) IsTradingDay(d time.Time) bool {
	key := d.Format(dateLayout)

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[key]; ok {
		return v
	}

	trading := true
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		trading = false
	} else if _, holiday := r.holidays[key]; holiday {
		trading = false
	}

	r.cache[key] = trading
	return trading
}

// NextTradingDay returns the first trading day strictly after d.
func (r *Resolver) NextTradingDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for !r.IsTradingDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// PreviousTradingDay returns the last trading day strictly before d.
func (r *Resolver) PreviousTradingDay(d time.Time) time.Time {
	prev := d.AddDate(0, 0, -1)
	for !r.IsTradingDay(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// TradingDaysBetween returns all trading days in [start, end], in order.
func (r *Resolver) TradingDaysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if r.IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// HolidayInfo describes why a date is or is not a trading day.
type HolidayInfo struct {
	IsHoliday bool
	Date      string
	Reason    string
}

// Info returns the holiday verdict and a human-readable reason for d.
func (r *Resolver) Info(d time.Time) HolidayInfo {
	key := d.Format(dateLayout)
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return HolidayInfo{IsHoliday: true, Date: key, Reason: "週末休市"}
	}
	if _, ok := r.holidays[key]; ok {
		return HolidayInfo{IsHoliday: true, Date: key, Reason: "台灣證交所公告休市日"}
	}
	return HolidayInfo{Date: key, Reason: "正常交易日"}
}

// holidayFeed is the TWSE holiday-schedule response shape.
type holidayFeed struct {
	Stat string     `json:"stat"`
	Data [][]string `json:"data"`
}

func fetchHolidaySchedule(ctx context.Context, cfg Config) ([]string, error) {
	transport := &http.Transport{}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	client := &http.Client{Timeout: cfg.Timeout, Transport: transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.HolidayURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holiday schedule: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch holiday schedule: status %d", resp.StatusCode)
	}

	var feed holidayFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode holiday schedule: %w", err)
	}
	if feed.Stat != "ok" {
		return nil, fmt.Errorf("holiday schedule: stat %q", feed.Stat)
	}

	var holidays []string
	for _, entry := range feed.Data {
		if len(entry) < 2 {
			continue
		}
		date, name := entry[0], entry[1]
		if isMarketClosure(name) {
			holidays = append(holidays, date)
		}
	}
	return holidays, nil
}

// closureKeywords are schedule-entry names that mean the market is shut:
// national holidays, settlement-only days, and make-up closures.
var closureKeywords = []string{
	"市場無交易",
	"放假",
	"紀念日",
	"國慶日",
	"勞動節",
	"除夕",
	"春節",
	"兒童節",
	"清明節",
	"端午節",
	"中秋節",
	"教師節",
	"光復",
	"行憲",
}

// isMarketClosure classifies a holiday-schedule entry name. Explicit trading-day
// markers win; unknown names default to trading day.
func isMarketClosure(name string) bool {
	if strings.Contains(name, "開始交易日") || strings.Contains(name, "最後交易日") {
		return false
	}
	for _, kw := range closureKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	// A festival name without a trading-day marker closes the market.
	if strings.Contains(name, "節") && !strings.Contains(name, "交易日") {
		return true
	}
	return false
}
