package recorder

import "TwseScreener/internal/model"

// RunRecord holds everything worth persisting about one screening run.
type RunRecord struct {
	Result   *model.AnalysisResult
	JSONPath string
	HTMLPath string
	Notified bool
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}
