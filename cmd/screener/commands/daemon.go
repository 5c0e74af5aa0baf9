package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TwseScreener/internal/scheduler"
)

var daemonRunOnStart bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the cron daemon producing the daily report",
	Long: `Run the cron daemon producing the daily report.

Schedules the screening pipeline at schedule.daily_cron and blocks until
SIGINT or SIGTERM. The pipeline itself skips non-trading days and days that
already have a report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		runner, cleanup, err := buildRunner(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		sched := scheduler.NewScheduler(ctx, runner)
		if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
			return err
		}

		sched.Start()
		log.Info().Str("cron", cfg.Schedule.DailyCron).Msg("daemon running")

		if daemonRunOnStart {
			sched.RunNow()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("shutting down")

		cancel()
		sched.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.Flags().BoolVar(&daemonRunOnStart, "run-on-start", false, "run one screening pass immediately at startup")
}
