package models

import "time"

// TradeRecord is a journal entry for a manually taken trade,
// optionally linked to the signal that produced it.
type TradeRecord struct {
	ID       uint   `gorm:"primaryKey"`
	SignalID *uint  `gorm:"index"`
	Symbol   string `gorm:"index;not null"`
	Side     string `gorm:"not null"`

	EntryTime  time.Time `gorm:"index"`
	EntryPrice float64   `gorm:"type:decimal(20,8)"`
	ExitTime   *time.Time
	ExitPrice  *float64 `gorm:"type:decimal(20,8)"`

	Quantity   float64 `gorm:"type:decimal(20,8)"`
	PnL        float64 `gorm:"type:decimal(20,8)"`
	PnLPercent float64 `gorm:"type:decimal(20,8)"`
	Outcome    string
	Notes      string
}

const (
	TradeOutcomeWin       = "WIN"
	TradeOutcomeLoss      = "LOSS"
	TradeOutcomeBreakeven = "BREAKEVEN"
)

const (
	PositionSideLong  = "long"
	PositionSideShort = "short"
)

func (TradeRecord) TableName() string {
	return "trades"
}
