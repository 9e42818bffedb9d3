package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT"}, cfg.App.Symbols)
	assert.Equal(t, "1h", cfg.App.Interval)
	assert.Equal(t, 30, cfg.App.LookbackDays)
	assert.Equal(t, 60.0, cfg.App.MinConfluence)
	assert.Equal(t, 10, cfg.App.MaxAlertsPerHour)
	assert.Equal(t, 120, cfg.App.CooldownMinutes)
	assert.Equal(t, 10000.0, cfg.App.Backtest.InitialCapital)
	assert.Equal(t, 0.1, cfg.App.Backtest.PositionSizeFraction)
}

func TestLoad_ReadsYAMLAndFillsGaps(t *testing.T) {
	path := writeConfig(t, `
symbols: [solusdt, " adausdt "]
interval: 4h
min_confluence: 75
backtest:
  initial_capital: 5000
  use_dca: true
  trailing_stop_percent: 1.5
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"SOLUSDT", "ADAUSDT"}, cfg.App.Symbols)
	assert.Equal(t, "4h", cfg.App.Interval)
	assert.Equal(t, 75.0, cfg.App.MinConfluence)
	assert.Equal(t, 5000.0, cfg.App.Backtest.InitialCapital)
	assert.True(t, cfg.App.Backtest.UseDCA)
	assert.Equal(t, 1.5, cfg.App.Backtest.TrailingStopPercent)
	// unset fields fall back to defaults
	assert.Equal(t, 30, cfg.App.LookbackDays)
	assert.Equal(t, 0.1, cfg.App.Backtest.PositionSizeFraction)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
backtest:
  position_size_fraction: 1.5
`)
	_, err := Load(path)
	assert.Error(t, err)

	path = writeConfig(t, `
backtest:
  trailing_stop_percent: 100
`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_ReadsCredentialsFromEnvironment(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_SECRET_KEY", "secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "chat")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("EMAIL_SMTP_PORT", "587")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "key", cfg.Exchange.APIKey)
	assert.Equal(t, "secret", cfg.Exchange.SecretKey)
	assert.Equal(t, "token", cfg.Telegram.Token)
	assert.Equal(t, "chat", cfg.Telegram.ChatID)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestEnvtoInt(t *testing.T) {
	assert.Equal(t, 42, EnvtoInt("42"))
	assert.Equal(t, 0, EnvtoInt(""))
	assert.Equal(t, 0, EnvtoInt("not-a-number"))
}
