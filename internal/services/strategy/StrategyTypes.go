package strategy

// Setup is a proposed trade derived from the enriched candle history.
// It is stateless: each candle's history produces at most one Setup,
// independent of any open position.
type Setup struct {
	Signal string // human-readable signal label
	Side   string // models.PositionSideLong or models.PositionSideShort

	Entry      float64
	StopLoss   float64
	TakeProfit float64

	// Laddered dollar-cost-average prices, nearest first
	DCALevels [3]float64
}

// Filters restrict which signals qualify as entries. A filter that
// cannot be evaluated (indicator still warming up) rejects the setup.
type Filters struct {
	Trend  bool // trade only with the SMA 200 trend
	Volume bool // trade only above-average volume
	ADX    bool // trade only in strong trends (ADX > 25)
	MACD   bool // trade only with histogram momentum alignment
}
