package analysis

import (
	"fmt"
	"math"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/indicators"
)

// Confluence weights; the total is capped at 100
const (
	weightTrend   = 20
	weightRSI     = 20
	weightVolume  = 10
	weightPattern = 15
	weightLevel   = 20
	weightFVG     = 15

	levelProximity = 0.01 // within 1% of a pivot counts as confluence
)

// ConfidenceAnalyzer scores how many independent factors line up
// behind a proposed setup direction.
type ConfidenceAnalyzer struct {
	patterns *PatternAnalyzer
	levels   *LevelAnalyzer
}

func NewConfidenceAnalyzer() *ConfidenceAnalyzer {
	return &ConfidenceAnalyzer{
		patterns: NewPatternAnalyzer(),
		levels:   NewLevelAnalyzer(),
	}
}

// Score rates a setup direction 0-100 against the enriched history and
// returns the contributing reasons. NaN indicator values simply fail
// their comparison and contribute nothing.
func (a *ConfidenceAnalyzer) Score(prices []models.Price, snaps []indicators.Snapshot, side string) (float64, []string) {
	if len(prices) == 0 || len(snaps) != len(prices) {
		return 0, nil
	}

	last := snaps[len(snaps)-1]
	currentPrice := prices[len(prices)-1].Close

	score := 0.0
	var reasons []string

	// Trend alignment against the long-term SMA
	if side == models.PositionSideLong && currentPrice > last.SMA200 {
		score += weightTrend
		reasons = append(reasons, "Trend is Bullish (Price > SMA 200)")
	} else if side == models.PositionSideShort && currentPrice < last.SMA200 {
		score += weightTrend
		reasons = append(reasons, "Trend is Bearish (Price < SMA 200)")
	}

	// Momentum has room to run
	if side == models.PositionSideLong && last.RSI < 60 {
		score += weightRSI
		reasons = append(reasons, "RSI has room to grow")
	} else if side == models.PositionSideShort && last.RSI > 40 {
		score += weightRSI
		reasons = append(reasons, "RSI has room to drop")
	}

	// Above-average volume
	if prices[len(prices)-1].Volume > last.VolSMA20 {
		score += weightVolume
		reasons = append(reasons, "High Volume")
	}

	// Candlestick pattern on the last candle
	if pattern := a.patterns.Last(prices); pattern != "" {
		score += weightPattern
		reasons = append(reasons, fmt.Sprintf("Candlestick Pattern: %s", pattern))
	}

	// Price near a support (long) or resistance (short) pivot
	supports, resistances := a.levels.SupportResistance(prices)
	if side == models.PositionSideLong {
		if nearLevel(currentPrice, supports) {
			score += weightLevel
			reasons = append(reasons, "Near Support Level")
		}
	} else if nearLevel(currentPrice, resistances) {
		score += weightLevel
		reasons = append(reasons, "Near Resistance Level")
	}

	// Price sitting in a directional fair value gap
	if a.inDirectionalFVG(prices, currentPrice, side) {
		score += weightFVG
		if side == models.PositionSideLong {
			reasons = append(reasons, "In/Near Bullish FVG")
		} else {
			reasons = append(reasons, "In/Near Bearish FVG")
		}
	}

	return math.Min(score, 100), reasons
}

func nearLevel(price float64, levels []Level) bool {
	for _, level := range levels {
		if math.Abs(price-level.Price)/price < levelProximity {
			return true
		}
	}
	return false
}

func (a *ConfidenceAnalyzer) inDirectionalFVG(prices []models.Price, currentPrice float64, side string) bool {
	for _, fvg := range a.levels.FairValueGaps(prices) {
		if side == models.PositionSideLong && fvg.Direction == FVGBullish {
			if fvg.Bottom <= currentPrice && currentPrice <= fvg.Top*1.01 {
				return true
			}
		} else if side == models.PositionSideShort && fvg.Direction == FVGBearish {
			if fvg.Bottom*0.99 <= currentPrice && currentPrice <= fvg.Top {
				return true
			}
		}
	}
	return false
}
