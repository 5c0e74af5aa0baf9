package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"TwseScreener/internal/model"
	"TwseScreener/internal/strategy"
)

// Build assembles the full analysis result envelope for one run.
func Build(results strategy.Results, total int, source string, now time.Time) *model.AnalysisResult {
	return &model.AnalysisResult{
		Date:          now.Format("2006-01-02"),
		ReportTime:    now.Format("2006-01-02 15:04:05"),
		Timestamp:     now.Format(time.RFC3339),
		TotalAnalyzed: total,
		Technical:     results.Technical,
		Fundamental:   results.Fundamental,
		Hybrid:        results.Hybrid,
		Thematic:      results.Thematic,
		DataSource:    source,
	}
}

// WriteJSON writes the result as an indented JSON report file and returns its path.
func WriteJSON(dir string, result *model.AnalysisResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("four_strategy_report_%s.json", result.Date))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
