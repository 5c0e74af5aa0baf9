package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"TwseScreener/internal/calendar"
	"TwseScreener/internal/collector"
	"TwseScreener/internal/model"
	"TwseScreener/internal/notifier"
	"TwseScreener/internal/recorder"
	"TwseScreener/internal/report"
	"TwseScreener/internal/runstate"
	"TwseScreener/internal/strategy"
)

// Runner executes the daily screening pipeline: calendar gate, collect,
// score, render, notify, record. Per-step failures after collection are
// logged and the run continues; only an empty batch aborts.
type Runner struct {
	Calendar  *calendar.Resolver
	Collector *collector.Collector
	Criteria  strategy.Criteria
	Watchlist []string
	Notifier  *notifier.DiscordNotifier
	Recorder  recorder.Recorder
	RunState  *runstate.Manager

	ReportDir     string
	WebDir        string
	ReportBaseURL string
}

// Run performs one screening run for the given date. When force is set the
// trading-day gate and the already-reported check are both bypassed.
func (r *Runner) Run(ctx context.Context, now time.Time, force bool) error {
	date := now.Format("2006-01-02")

	if !force {
		if !r.Calendar.IsTradingDay(now) {
			info := r.Calendar.Info(now)
			log.Info().Str("date", date).Str("reason", info.Reason).Msg("non-trading day, skipping analysis")
			if err := r.Notifier.SendNonTradingDayNotice(ctx, date, info.Reason); err != nil {
				log.Error().Err(err).Msg("send non-trading-day notice")
			}
			return nil
		}
		if r.RunState != nil && r.RunState.AlreadyReported(date) {
			log.Info().Str("date", date).Msg("report already produced today, skipping")
			return nil
		}
	}

	log.Info().Int("watchlist", len(r.Watchlist)).Str("source", r.Collector.Source()).Msg("collecting quote data")
	records, err := r.Collector.CollectAll(ctx, r.Watchlist)
	if err != nil {
		if notifyErr := r.Notifier.SendErrorNotice(ctx, fmt.Sprintf("數據收集失敗: %v", err)); notifyErr != nil {
			log.Error().Err(notifyErr).Msg("send error notice")
		}
		return fmt.Errorf("collect watchlist: %w", err)
	}
	log.Info().Int("collected", len(records)).Msg("quote data collected")

	results := strategy.Analyze(records, r.Criteria)
	result := report.Build(results, len(records), r.Collector.Source(), now)

	jsonPath, err := report.WriteJSON(r.ReportDir, result)
	if err != nil {
		log.Error().Err(err).Msg("write json report")
	} else {
		log.Info().Str("path", jsonPath).Msg("json report written")
	}

	htmlPath, err := report.WriteHTML(r.WebDir, result)
	if err != nil {
		log.Error().Err(err).Msg("write html report")
	} else {
		log.Info().Str("path", htmlPath).Msg("html report written")
	}

	notified := false
	if err := r.Notifier.SendDailyReport(ctx, result, r.reportURL(htmlPath)); err != nil {
		log.Error().Err(err).Msg("send daily report notification")
	} else {
		notified = true
	}

	if r.Recorder != nil {
		if err := r.Recorder.RecordRun(&recorder.RunRecord{
			Result:   result,
			JSONPath: jsonPath,
			HTMLPath: htmlPath,
			Notified: notified,
		}); err != nil {
			log.Error().Err(err).Msg("record run history")
		}
	}

	if r.RunState != nil {
		if err := r.RunState.MarkReported(date, len(records)); err != nil {
			log.Error().Err(err).Msg("persist run state")
		}
	}

	logSummary(result)
	return nil
}

func (r *Runner) reportURL(htmlPath string) string {
	if r.ReportBaseURL == "" || htmlPath == "" {
		return ""
	}
	return r.ReportBaseURL + "/" + filepath.Base(htmlPath)
}

func logSummary(result *model.AnalysisResult) {
	log.Info().
		Str("date", result.Date).
		Int("analyzed", result.TotalAnalyzed).
		Int("technical", len(result.Technical)).
		Int("fundamental", len(result.Fundamental)).
		Int("hybrid", len(result.Hybrid)).
		Int("high_dividend", len(result.Thematic.HighDividend)).
		Int("growth", len(result.Thematic.Growth)).
		Int("value", len(result.Thematic.Value)).
		Msg("four-strategy analysis complete")
}
