package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	calDate  string
	calNext  bool
	calRange string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Look up TWSE trading days",
	Long: `Look up TWSE trading days.

Examples:
  screener calendar --date 2026-01-01
  screener calendar --date 2026-04-30 --next
  screener calendar --range 2026-02-14:2026-02-23`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()
		resolver := buildCalendar(ctx, cfg)

		if calRange != "" {
			startStr, endStr, ok := strings.Cut(calRange, ":")
			if !ok {
				return fmt.Errorf("invalid --range %q, want START:END", calRange)
			}
			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid range start: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid range end: %w", err)
			}
			days := resolver.TradingDaysBetween(start, end)
			for _, d := range days {
				fmt.Println(d.Format("2006-01-02"))
			}
			fmt.Printf("%d trading days\n", len(days))
			return nil
		}

		day := time.Now()
		if calDate != "" {
			day, err = time.Parse("2006-01-02", calDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", calDate, err)
			}
		}

		info := resolver.Info(day)
		fmt.Printf("%s: %s\n", info.Date, info.Reason)
		if calNext {
			fmt.Printf("next trading day: %s\n", resolver.NextTradingDay(day).Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().StringVar(&calDate, "date", "", "date to check (YYYY-MM-DD, default today)")
	calendarCmd.Flags().BoolVar(&calNext, "next", false, "also print the next trading day")
	calendarCmd.Flags().StringVar(&calRange, "range", "", "list trading days in START:END (inclusive)")
}
