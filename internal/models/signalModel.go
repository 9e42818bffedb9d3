package models

import "time"

// Signal is a persisted trade setup produced by the screener.
// ConfluenceReasons and ChartPatterns are stored as JSON strings.
type Signal struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index;autoCreateTime"`
	Symbol    string    `gorm:"index;not null"`
	TimeFrame string    `gorm:"not null"`
	Side      string    `gorm:"not null"`

	EntryPrice float64 `gorm:"type:decimal(20,8);not null"`
	StopLoss   float64 `gorm:"type:decimal(20,8)"`
	TakeProfit float64 `gorm:"type:decimal(20,8)"`
	DCA1       float64 `gorm:"type:decimal(20,8)"`
	DCA2       float64 `gorm:"type:decimal(20,8)"`
	DCA3       float64 `gorm:"type:decimal(20,8)"`

	ConfluenceScore   int
	ConfluenceReasons string
	ChartPatterns     string

	Status    string `gorm:"default:NEW"`
	AlertedAt *time.Time
}

const (
	SignalStatusNew     = "NEW"
	SignalStatusAlerted = "ALERTED"
	SignalStatusTaken   = "TAKEN"
	SignalStatusIgnored = "IGNORED"
)

func (Signal) TableName() string {
	return "signals"
}
