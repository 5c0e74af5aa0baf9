package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TwseScreener/internal/model"
	"TwseScreener/internal/strategy"
)

func sampleResults() strategy.Results {
	pick := model.ScoredStock{
		StockRecord: model.StockRecord{
			Symbol: "2330", Name: "台積電", Price: 580, ChangePercent: 0.87,
			RSI: 45, PERatio: 18.5, DividendYield: 2.1,
		},
		StrategyScore: 85,
		Strategy:      "technical",
	}
	return strategy.Results{Technical: []model.ScoredStock{pick}}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	result := Build(sampleResults(), 18, "yahoo", now)

	assert.Equal(t, "2026-03-02", result.Date)
	assert.Equal(t, "2026-03-02 08:30:00", result.ReportTime)
	assert.Equal(t, 18, result.TotalAnalyzed)
	assert.Equal(t, "yahoo", result.DataSource)
	require.Len(t, result.Technical, 1)
	assert.Empty(t, result.Fundamental)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	result := Build(sampleResults(), 18, "yahoo", time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))

	path, err := WriteJSON(dir, result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "four_strategy_report_2026-03-02.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result.Date, decoded.Date)
	require.Len(t, decoded.Technical, 1)
	assert.Equal(t, "2330", decoded.Technical[0].Symbol)
	assert.Equal(t, 85.0, decoded.Technical[0].StrategyScore)
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	result := Build(sampleResults(), 18, "yahoo", time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))

	path, err := WriteHTML(dir, result)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.True(t, strings.Contains(html, "2026-03-02"))
	assert.True(t, strings.Contains(html, "2330"))
	assert.True(t, strings.Contains(html, "台積電"))
	assert.True(t, strings.Contains(html, "85.00"))
	// Empty sections render the placeholder rather than a bare table.
	assert.True(t, strings.Contains(html, "今日無符合條件的股票"))
}
