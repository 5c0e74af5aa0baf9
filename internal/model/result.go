package model

// ThematicPicks holds the three independently ranked thematic buckets.
type ThematicPicks struct {
	HighDividend []ScoredStock `json:"high_dividend"`
	Growth       []ScoredStock `json:"growth_stocks"`
	Value        []ScoredStock `json:"value_stocks"`
}

// AnalysisResult is the full output of one screening run.
type AnalysisResult struct {
	Date           string        `json:"date"`
	ReportTime     string        `json:"report_time"`
	Timestamp      string        `json:"timestamp"`
	TotalAnalyzed  int           `json:"total_stocks_analyzed"`
	Technical      []ScoredStock `json:"technical_strategy"`
	Fundamental    []ScoredStock `json:"fundamental_strategy"`
	Hybrid         []ScoredStock `json:"hybrid_strategy"`
	Thematic       ThematicPicks `json:"thematic_strategy"`
	DataSource     string        `json:"data_source"`
}
