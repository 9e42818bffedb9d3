package analysis

import "time"

// Candlestick pattern labels
const (
	PatternBullishEngulfing = "Bullish Engulfing"
	PatternBearishEngulfing = "Bearish Engulfing"
	PatternHammer           = "Hammer"
)

// Level is a detected support or resistance pivot
type Level struct {
	Time  time.Time
	Price float64
}

// FVG directions
const (
	FVGBullish = "bullish"
	FVGBearish = "bearish"
)

// FVG is a fair value gap left by a three-candle displacement
type FVG struct {
	Direction string
	Top       float64
	Bottom    float64
	StartTime time.Time
	EndTime   time.Time
}
