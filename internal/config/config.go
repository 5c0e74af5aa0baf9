package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Criteria holds the screening thresholds shared by all strategies.
type Criteria struct {
	MinVolume          float64 `yaml:"min_volume"`
	MinPrice           float64 `yaml:"min_price"`
	MaxPrice           float64 `yaml:"max_price"`
	MinMarketCap       float64 `yaml:"min_market_cap"`
	GrowthMinMarketCap float64 `yaml:"growth_min_market_cap"`
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string `yaml:"provider"` // "yahoo" or "finmind"
		FinMindURL   string `yaml:"finmind_url"`
		FinMindToken string `yaml:"finmind_token"`
	} `yaml:"data_source"`
	Watchlist []string `yaml:"watchlist"`
	Criteria  Criteria `yaml:"criteria"`
	Calendar  struct {
		HolidayURL   string `yaml:"holiday_url"`
		FallbackYear int    `yaml:"fallback_year"`
	} `yaml:"calendar"`
	Discord struct {
		WebhookURL    string `yaml:"webhook_url"`
		ReportBaseURL string `yaml:"report_base_url"`
	} `yaml:"discord"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Output struct {
		ReportDir string `yaml:"report_dir"`
		WebDir    string `yaml:"web_dir"`
		StateFile string `yaml:"state_file"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
	if v := os.Getenv("FINMIND_TOKEN"); v != "" {
		cfg.DataSource.FinMindToken = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FALLBACK_YEAR"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			cfg.Calendar.FallbackYear = y
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.FinMindURL == "" {
		cfg.DataSource.FinMindURL = "https://api.finmindtrade.com/api/v4/data"
	}
	if len(cfg.Watchlist) == 0 {
		cfg.Watchlist = DefaultWatchlist()
	}
	if cfg.Criteria.MinVolume == 0 {
		cfg.Criteria.MinVolume = 1000
	}
	if cfg.Criteria.MinPrice == 0 {
		cfg.Criteria.MinPrice = 10
	}
	if cfg.Criteria.MaxPrice == 0 {
		cfg.Criteria.MaxPrice = 500
	}
	if cfg.Criteria.MinMarketCap == 0 {
		cfg.Criteria.MinMarketCap = 10_000_000_000
	}
	if cfg.Criteria.GrowthMinMarketCap == 0 {
		cfg.Criteria.GrowthMinMarketCap = 50_000_000_000
	}
	if cfg.Calendar.HolidayURL == "" {
		cfg.Calendar.HolidayURL = "https://www.twse.com.tw/holidaySchedule/holidaySchedule"
	}
	if cfg.Calendar.FallbackYear == 0 {
		cfg.Calendar.FallbackYear = 2026
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 8 * * 1-5" // 08:30 Taipei, weekdays
	}
	if cfg.Output.ReportDir == "" {
		cfg.Output.ReportDir = "reports"
	}
	if cfg.Output.WebDir == "" {
		cfg.Output.WebDir = "web"
	}
	if cfg.Output.StateFile == "" {
		cfg.Output.StateFile = "data/run_state.json"
	}
}

// DefaultWatchlist returns the built-in TWSE large-cap watchlist.
func DefaultWatchlist() []string {
	return []string{
		"2330", "2317", "2454", "2308", "2881", "2882",
		"1301", "1303", "2002", "2412", "1216", "2357",
		"2382", "3008", "3711", "2303", "2886", "5880",
		"2891", "2892",
	}
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("watchlist must not be empty")
	}
	if c.Criteria.MinPrice >= c.Criteria.MaxPrice {
		return fmt.Errorf("criteria.min_price must be below criteria.max_price")
	}
	if c.DataSource.Provider != "yahoo" && c.DataSource.Provider != "finmind" {
		return fmt.Errorf("data_source.provider must be %q or %q, got %q", "yahoo", "finmind", c.DataSource.Provider)
	}
	if c.DataSource.Provider == "finmind" && c.DataSource.FinMindToken == "" {
		return fmt.Errorf("data_source.finmind_token is required for the finmind provider")
	}
	return nil
}
