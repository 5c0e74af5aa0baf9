package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"TwseScreener/internal/pipeline"
)

// Scheduler runs the screening pipeline on a cron schedule.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *pipeline.Runner
	Ctx    context.Context
}

// NewScheduler creates a Scheduler around the given runner.
func NewScheduler(ctx context.Context, runner *pipeline.Runner) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: runner,
		Ctx:    ctx,
	}
}

// Register adds the daily report job. The pipeline itself decides whether the
// day is a trading day, so the cron expression only needs to pick the hour.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyReport); err != nil {
		return fmt.Errorf("register daily report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the daily report immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyReport()
}

func (s *Scheduler) dailyReport() {
	log.Info().Msg("running daily report task")
	if err := s.Runner.Run(s.Ctx, time.Now(), false); err != nil {
		log.Error().Err(err).Msg("daily report run failed")
	}
}
