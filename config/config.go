package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads credentials from the environment (.env is optional) and the
// application settings from a YAML file. A missing YAML file falls back
// to defaults so the tool works out of the box.
func Load(configPath string) (*Config, error) {
	// .env is a convenience for local runs, not a requirement
	_ = godotenv.Load()

	app, err := loadAppConfig(configPath)
	if err != nil {
		return nil, err
	}

	return &Config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Telegram: TelegramConfig{
			Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		},
		Email: EmailConfig{
			SMTPHost: os.Getenv("EMAIL_SMTP_HOST"),
			SMTPPort: EnvtoInt(os.Getenv("EMAIL_SMTP_PORT")),
			Sender:   os.Getenv("EMAIL_SENDER"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			Receiver: os.Getenv("EMAIL_RECEIVER"),
		},
		App: *app,
	}, nil
}

func loadAppConfig(configPath string) (*AppConfig, error) {
	app := defaultAppConfig()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return app, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, app); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	app.applyDefaults()
	if err := app.validate(); err != nil {
		return nil, err
	}
	return app, nil
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Symbols:          []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT"},
		Interval:         "1h",
		LookbackDays:     30,
		MinConfluence:    60,
		MaxAlertsPerHour: 10,
		CooldownMinutes:  120,
		TimeFrames:       []string{"15m", "1h", "4h"},
		Backtest: BacktestConfig{
			InitialCapital:       10000,
			PositionSizeFraction: 0.1,
			UseDCA:               true,
			TrailingStopPercent:  0,
		},
	}
}

func (a *AppConfig) applyDefaults() {
	defaults := defaultAppConfig()
	if len(a.Symbols) == 0 {
		a.Symbols = defaults.Symbols
	}
	if a.Interval == "" {
		a.Interval = defaults.Interval
	}
	if a.LookbackDays <= 0 {
		a.LookbackDays = defaults.LookbackDays
	}
	if a.MinConfluence <= 0 {
		a.MinConfluence = defaults.MinConfluence
	}
	if a.MaxAlertsPerHour <= 0 {
		a.MaxAlertsPerHour = defaults.MaxAlertsPerHour
	}
	if a.CooldownMinutes <= 0 {
		a.CooldownMinutes = defaults.CooldownMinutes
	}
	if len(a.TimeFrames) == 0 {
		a.TimeFrames = defaults.TimeFrames
	}
	if a.Backtest.InitialCapital <= 0 {
		a.Backtest.InitialCapital = defaults.Backtest.InitialCapital
	}
	if a.Backtest.PositionSizeFraction <= 0 {
		a.Backtest.PositionSizeFraction = defaults.Backtest.PositionSizeFraction
	}
}

func (a *AppConfig) validate() error {
	for i, symbol := range a.Symbols {
		trimmed := strings.ToUpper(strings.TrimSpace(symbol))
		if trimmed == "" {
			return fmt.Errorf("empty symbol at index %d", i)
		}
		a.Symbols[i] = trimmed
	}
	if a.Backtest.PositionSizeFraction > 1 {
		return fmt.Errorf("position_size_fraction must be at most 1, got %v", a.Backtest.PositionSizeFraction)
	}
	if a.Backtest.TrailingStopPercent < 0 || a.Backtest.TrailingStopPercent >= 100 {
		return fmt.Errorf("trailing_stop_percent must be in [0, 100), got %v", a.Backtest.TrailingStopPercent)
	}
	return nil
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
