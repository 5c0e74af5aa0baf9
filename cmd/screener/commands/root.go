package commands

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "TWSE four-strategy stock screener",
	Long: `TWSE four-strategy stock screener.

Collects daily quotes for a Taiwan stock watchlist, runs the technical,
fundamental, hybrid and thematic strategies, writes JSON/HTML reports and
notifies a Discord channel.

Examples:
  screener run
  screener run --force --date 2026-03-02
  screener daemon
  screener calendar --date 2026-01-01`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real deployments use environment variables.
		_ = godotenv.Load()

		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
