package config

type Config struct {
	Exchange ExchangeConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Email    EmailConfig
	App      AppConfig
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type TelegramConfig struct {
	Token  string
	ChatID string
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	Sender   string
	Password string
	Receiver string
}

// AppConfig is the non-secret part of the configuration, loaded from
// config.yaml
type AppConfig struct {
	Symbols          []string `yaml:"symbols"`
	Interval         string   `yaml:"interval"`
	LookbackDays     int      `yaml:"lookback_days"`
	MinConfluence    float64  `yaml:"min_confluence"`
	MaxAlertsPerHour int      `yaml:"max_alerts_per_hour"`
	CooldownMinutes  int      `yaml:"cooldown_minutes"`
	TimeFrames       []string `yaml:"timeframes"`

	Backtest BacktestConfig `yaml:"backtest"`
}

type BacktestConfig struct {
	InitialCapital       float64 `yaml:"initial_capital"`
	PositionSizeFraction float64 `yaml:"position_size_fraction"`
	UseDCA               bool    `yaml:"use_dca"`
	TrailingStopPercent  float64 `yaml:"trailing_stop_percent"`

	FilterTrend  bool `yaml:"filter_trend"`
	FilterVolume bool `yaml:"filter_volume"`
	FilterADX    bool `yaml:"filter_adx"`
	FilterMACD   bool `yaml:"filter_macd"`
}
