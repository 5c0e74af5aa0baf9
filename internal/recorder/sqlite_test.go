package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TwseScreener/internal/model"
)

func testResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Date:          "2026-03-02",
		TotalAnalyzed: 18,
		DataSource:    "yahoo",
		Technical: []model.ScoredStock{
			{StockRecord: model.StockRecord{Symbol: "2330", Name: "台積電", Price: 580, ChangePercent: 1.2}, StrategyScore: 75, Strategy: "technical"},
			{StockRecord: model.StockRecord{Symbol: "2317", Name: "鴻海", Price: 102, ChangePercent: -0.4}, StrategyScore: 55, Strategy: "technical"},
		},
		Thematic: model.ThematicPicks{
			HighDividend: []model.ScoredStock{
				{StockRecord: model.StockRecord{Symbol: "2412", Name: "中華電", Price: 122}, StrategyScore: 22, Strategy: "high_dividend"},
			},
		},
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(&RunRecord{
		Result:   testResult(),
		JSONPath: "reports/four_strategy_report_2026-03-02.json",
		HTMLPath: "web/four_strategy_report_2026-03-02.html",
		Notified: true,
	}))

	var runs, notified int
	require.NoError(t, r.db.QueryRow(
		`SELECT COUNT(*), SUM(notified) FROM run_history WHERE report_date = ?`, "2026-03-02",
	).Scan(&runs, &notified))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, notified)

	var picks int
	require.NoError(t, r.db.QueryRow(
		`SELECT COUNT(*) FROM strategy_picks WHERE report_date = ?`, "2026-03-02",
	).Scan(&picks))
	assert.Equal(t, 3, picks)

	var rank int
	var score float64
	require.NoError(t, r.db.QueryRow(
		`SELECT rank, score FROM strategy_picks WHERE strategy = 'technical' AND symbol = '2317'`,
	).Scan(&rank, &score))
	assert.Equal(t, 2, rank)
	assert.Equal(t, 55.0, score)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(&RunRecord{Result: testResult()}))
	require.NoError(t, r.Close())

	r2, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r2.Close()

	var runs int
	require.NoError(t, r2.db.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&runs))
	assert.Equal(t, 1, runs)
}
