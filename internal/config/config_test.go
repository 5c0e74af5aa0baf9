package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, DefaultWatchlist(), cfg.Watchlist)
	assert.Equal(t, 1000.0, cfg.Criteria.MinVolume)
	assert.Equal(t, 10.0, cfg.Criteria.MinPrice)
	assert.Equal(t, 500.0, cfg.Criteria.MaxPrice)
	assert.Equal(t, 1e10, cfg.Criteria.MinMarketCap)
	assert.Equal(t, 5e10, cfg.Criteria.GrowthMinMarketCap)
	assert.Equal(t, "0 30 8 * * 1-5", cfg.Schedule.DailyCron)
	assert.Equal(t, 2026, cfg.Calendar.FallbackYear)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_source:
  provider: finmind
  finmind_token: file-token
watchlist: ["2330", "2317"]
criteria:
  min_price: 20
  max_price: 300
schedule:
  daily_cron: "0 0 9 * * 1-5"
`), 0644))

	t.Setenv("FINMIND_TOKEN", "env-token")
	t.Setenv("CRON_DAILY", "0 15 8 * * 1-5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "finmind", cfg.DataSource.Provider)
	assert.Equal(t, "env-token", cfg.DataSource.FinMindToken, "env wins over file")
	assert.Equal(t, "0 15 8 * * 1-5", cfg.Schedule.DailyCron)
	assert.Equal(t, []string{"2330", "2317"}, cfg.Watchlist)
	assert.Equal(t, 20.0, cfg.Criteria.MinPrice)
	assert.Equal(t, 1000.0, cfg.Criteria.MinVolume, "unset fields still defaulted")
	require.NoError(t, cfg.Validate())
}

func TestValidate_Rejections(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Watchlist = nil
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Criteria.MinPrice = 600
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.DataSource.Provider = "bloomberg"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.DataSource.Provider = "finmind"
	cfg.DataSource.FinMindToken = ""
	assert.Error(t, cfg.Validate())
}
