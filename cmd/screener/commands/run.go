package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	runForce bool
	runDate  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one screening pass and exit",
	Long: `Run one screening pass and exit.

Respects the trading-day gate and the once-per-day marker unless --force is
set. --date analyzes as if today were the given date (YYYY-MM-DD).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		now := time.Now()
		if runDate != "" {
			d, err := time.ParseInLocation("2006-01-02", runDate, now.Location())
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", runDate, err)
			}
			now = d
		}

		ctx := context.Background()
		runner, cleanup, err := buildRunner(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return runner.Run(ctx, now, runForce)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runForce, "force", false, "bypass the trading-day gate and the once-per-day marker")
	runCmd.Flags().StringVar(&runDate, "date", "", "analyze as of this date (YYYY-MM-DD, default today)")
}
