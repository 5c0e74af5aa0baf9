package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"TwseScreener/internal/calendar"
	"TwseScreener/internal/collector"
	"TwseScreener/internal/config"
	"TwseScreener/internal/notifier"
	"TwseScreener/internal/pipeline"
	"TwseScreener/internal/recorder"
	"TwseScreener/internal/runstate"
	"TwseScreener/internal/strategy"
)

// buildRunner assembles the full pipeline from configuration. The returned
// cleanup closes the recorder and must be called before exit.
func buildRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, func(), error) {
	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return nil, nil, err
	}

	state, err := runstate.NewManager(cfg.Output.StateFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load run state: %w", err)
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sqlRec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open run history database: %w", err)
		}
		rec = sqlRec
	}

	runner := &pipeline.Runner{
		Calendar:      buildCalendar(ctx, cfg),
		Collector:     collector.NewCollector(fetcher),
		Criteria:      toCriteria(cfg.Criteria),
		Watchlist:     cfg.Watchlist,
		Notifier:      notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy),
		Recorder:      rec,
		RunState:      state,
		ReportDir:     cfg.Output.ReportDir,
		WebDir:        cfg.Output.WebDir,
		ReportBaseURL: cfg.Discord.ReportBaseURL,
	}
	cleanup := func() {
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("close recorder")
		}
	}
	return runner, cleanup, nil
}

func buildFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case "finmind":
		return collector.NewFinMindFetcher(cfg.DataSource.FinMindURL, cfg.DataSource.FinMindToken, cfg.Proxy), nil
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy), nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataSource.Provider)
	}
}

func buildCalendar(ctx context.Context, cfg *config.Config) *calendar.Resolver {
	return calendar.New(ctx, calendar.Config{
		HolidayURL:   cfg.Calendar.HolidayURL,
		FallbackYear: cfg.Calendar.FallbackYear,
		Proxy:        cfg.Proxy,
	})
}

func toCriteria(c config.Criteria) strategy.Criteria {
	return strategy.Criteria{
		MinVolume:          c.MinVolume,
		MinPrice:           c.MinPrice,
		MaxPrice:           c.MaxPrice,
		MinMarketCap:       c.MinMarketCap,
		GrowthMinMarketCap: c.GrowthMinMarketCap,
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
