package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TwseScreener/internal/calendar"
	"TwseScreener/internal/collector"
	"TwseScreener/internal/model"
	"TwseScreener/internal/notifier"
	"TwseScreener/internal/runstate"
	"TwseScreener/internal/strategy"
)

func testRunner(t *testing.T, webhookURL string) *Runner {
	t.Helper()
	dir := t.TempDir()

	fetcher := &collector.MockFetcher{
		Bars: map[string][]model.Bar{
			"2330": collector.GenerateBars(120, 30000, 60),
			"2317": collector.GenerateBars(95, 50000, 60),
		},
		Fundamentals: map[string]model.Fundamentals{
			"2330": {Name: "台積電", PERatio: 18, PBRatio: 1.4, DividendYield: 4.5, MarketCap: 1e12, ROE: 22},
			"2317": {Name: "鴻海", PERatio: 12, PBRatio: 1.1, DividendYield: 5, MarketCap: 9e11, ROE: 16},
		},
	}
	state, err := runstate.NewManager(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	return &Runner{
		Calendar:  calendar.NewStatic([]string{"2026-05-01"}),
		Collector: collector.NewCollector(fetcher),
		Criteria:  strategy.DefaultCriteria(),
		Watchlist: []string{"2330", "2317"},
		Notifier:  notifier.NewDiscordNotifier(webhookURL, ""),
		RunState:  state,
		ReportDir: filepath.Join(dir, "reports"),
		WebDir:    filepath.Join(dir, "web"),
	}
}

func TestRun_ProducesReportsAndMarksState(t *testing.T) {
	var sends atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sends.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := testRunner(t, srv.URL)
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC) // Monday

	require.NoError(t, r.Run(context.Background(), now, false))

	_, err := os.Stat(filepath.Join(r.ReportDir, "four_strategy_report_2026-03-02.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.WebDir, "four_strategy_report_2026-03-02.html"))
	assert.NoError(t, err)
	assert.Equal(t, int32(1), sends.Load())
	assert.True(t, r.RunState.AlreadyReported("2026-03-02"))
}

func TestRun_SkipsSecondRunSameDay(t *testing.T) {
	var sends atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sends.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := testRunner(t, srv.URL)
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	require.NoError(t, r.Run(context.Background(), now, false))
	require.NoError(t, r.Run(context.Background(), now, false))
	assert.Equal(t, int32(1), sends.Load(), "second run must not re-notify")
}

func TestRun_NonTradingDaySendsNotice(t *testing.T) {
	var sends atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sends.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := testRunner(t, srv.URL)
	holiday := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

	require.NoError(t, r.Run(context.Background(), holiday, false))

	_, err := os.Stat(filepath.Join(r.ReportDir, "four_strategy_report_2026-05-01.json"))
	assert.True(t, os.IsNotExist(err), "no report on a holiday")
	assert.Equal(t, int32(1), sends.Load(), "notice still goes out")
}

func TestRun_ForceBypassesGate(t *testing.T) {
	r := testRunner(t, "")
	holiday := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

	require.NoError(t, r.Run(context.Background(), holiday, true))

	_, err := os.Stat(filepath.Join(r.ReportDir, "four_strategy_report_2026-05-01.json"))
	assert.NoError(t, err)
}

func TestRun_EmptyBatchEscalates(t *testing.T) {
	r := testRunner(t, "")
	r.Collector = collector.NewCollector(&collector.MockFetcher{
		HistoryErr: map[string]error{
			"2330": collector.ErrNotAvailable,
			"2317": collector.ErrNotAvailable,
		},
	})
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)

	err := r.Run(context.Background(), now, false)
	assert.ErrorIs(t, err, collector.ErrNoData)
}
