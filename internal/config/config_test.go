package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
database:
  sqlite_path: /tmp/test.db
data:
  tickers: [SPY, AAPL]
  start_date: "2021-06-01"
schedule:
  daily_cron: "0 0 23 * * 1-5"
pipeline:
  workers: 4
logger:
  level: debug
  encoding: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	require.Equal(t, []string{"SPY", "AAPL"}, cfg.Data.Tickers)
	require.Equal(t, "0 0 23 * * 1-5", cfg.Schedule.DailyCron)
	require.Equal(t, 4, cfg.Pipeline.Workers)
	require.Equal(t, "debug", cfg.Logger.Level)

	start, err := cfg.StartTime()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "data/stock_indicators.db", cfg.Database.SQLitePath)
	require.Equal(t, "2020-01-01", cfg.Data.StartDate)
	require.Equal(t, "0 30 22 * * 1-5", cfg.Schedule.DailyCron)
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, "console", cfg.Logger.Encoding)
	require.Zero(t, cfg.Pipeline.Workers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
data:
  tickers: [SPY]
`)
	t.Setenv("TICKERS", "QQQ, IWM")
	t.Setenv("SQLITE_PATH", "/var/db/ind.db")
	t.Setenv("START_DATE", "2019-01-01")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"QQQ", "IWM"}, cfg.Data.Tickers)
	require.Equal(t, "/var/db/ind.db", cfg.Database.SQLitePath)
	require.Equal(t, "2019-01-01", cfg.Data.StartDate)
	require.Equal(t, "warn", cfg.Logger.Level)
}

func TestValidate_Errors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	// No tickers configured.
	require.Error(t, cfg.Validate())

	cfg.Data.Tickers = []string{"SPY"}
	require.NoError(t, cfg.Validate())

	cfg.Data.StartDate = "01/02/2020"
	require.Error(t, cfg.Validate())

	cfg.Data.StartDate = "2020-01-01"
	cfg.Pipeline.Workers = -1
	require.Error(t, cfg.Validate())
}
