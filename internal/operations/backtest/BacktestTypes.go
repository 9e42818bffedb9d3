package backtest

import (
	"fmt"
	"time"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/strategy"
)

// Exit reasons for a closed trade
const (
	ExitStopLoss   = "stop_loss"
	ExitTakeProfit = "take_profit"
	ExitEndOfData  = "end_of_data"
)

// WarmupBars is the number of leading candles skipped so the
// indicators have stabilized; histories shorter than WarmupBars+1
// produce an empty result.
const WarmupBars = 21

// Config fixes the parameters of one backtest run
type Config struct {
	InitialCapital       float64
	PositionSizeFraction float64 // fraction of current capital per new position, (0, 1]
	UseDCA               bool
	TrailingStopPercent  float64 // 0 disables trailing; e.g. 1.0 tightens to 1% below the extreme

	// Entry filters forwarded to the setup provider; the engine does
	// not re-derive them.
	Filters strategy.Filters
}

// Validate rejects unusable configuration before a run starts
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %.2f", c.InitialCapital)
	}
	if c.PositionSizeFraction <= 0 || c.PositionSizeFraction > 1 {
		return fmt.Errorf("position size fraction must be in (0, 1], got %.4f", c.PositionSizeFraction)
	}
	if c.TrailingStopPercent < 0 || c.TrailingStopPercent >= 100 {
		return fmt.Errorf("trailing stop percent must be in [0, 100), got %.4f", c.TrailingStopPercent)
	}
	return nil
}

// Position is the state of the single open trade. The engine owns it
// exclusively; a nil Position means the engine is flat.
type Position struct {
	Side       string
	EntryTime  time.Time
	EntryPrice float64 // size-weighted average across DCA fills
	Size       float64 // currency units committed
	// InitialSize sizes each DCA add; it never changes after open
	InitialSize float64

	StopLoss   float64 // mutable: tightened by the trailing stop
	TakeProfit float64 // fixed at open

	// Remaining DCA prices, consumed front-to-back
	DCALevels []float64

	// Most favorable price since entry: highest high for long,
	// lowest low for short. Only meaningful with a trailing stop.
	Extreme float64
}

// PnL is the profit of closing the full position at exitPrice
func (p *Position) PnL(exitPrice float64) float64 {
	if p.Side == models.PositionSideLong {
		return p.Size * (exitPrice - p.EntryPrice) / p.EntryPrice
	}
	return p.Size * (p.EntryPrice - exitPrice) / p.EntryPrice
}

// ClosedTrade is the immutable record of one completed trade
type ClosedTrade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	Side       string
	EntryPrice float64 // average entry if DCA fills occurred
	ExitPrice  float64
	ExitReason string
	Size       float64
	PnL        float64
	PnLPercent float64 // PnL relative to position size
	// Capital balance immediately after this trade closed
	CapitalAfter float64
}

// EquityPoint samples realized capital plus unrealized PnL once per
// processed candle.
type EquityPoint struct {
	Timestamp time.Time
	Equity    float64
}

// Metrics summarizes a trade list and equity curve
type Metrics struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // percent

	ProfitFactor   float64
	TotalReturn    float64
	TotalReturnPct float64

	MaxDrawdown    float64
	MaxDrawdownPct float64

	AvgWin      float64
	AvgLoss     float64
	LargestWin  float64
	LargestLoss float64

	AvgTradeDurationHours float64
	FinalCapital          float64
}

// Result is the complete output of one backtest run
type Result struct {
	Trades      []ClosedTrade
	EquityCurve []EquityPoint
	Metrics     Metrics
}
