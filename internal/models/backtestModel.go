package models

import "time"

// BacktestRecord stores the aggregate result of one backtest run,
// keyed by symbol, timeframe and parameter set for later comparison.
// Parameters is the JSON-encoded engine configuration.
type BacktestRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index;autoCreateTime"`
	Symbol    string    `gorm:"index"`
	TimeFrame string
	StartDate time.Time
	EndDate   time.Time

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 `gorm:"type:decimal(20,8)"`
	TotalPnL      float64 `gorm:"type:decimal(20,8)"`
	MaxDrawdown   float64 `gorm:"type:decimal(20,8)"`

	Parameters string
}

func (BacktestRecord) TableName() string {
	return "backtest_results"
}
