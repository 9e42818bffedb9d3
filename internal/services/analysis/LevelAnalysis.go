package analysis

import (
	"CryptoTradeLab/internal/models"
)

// LevelAnalyzer finds support/resistance pivots and fair value gaps
type LevelAnalyzer struct {
	window int // neighbors checked on each side of a pivot
}

func NewLevelAnalyzer() *LevelAnalyzer {
	return &LevelAnalyzer{window: 20}
}

// SupportResistance scans for local extrema: a high that is the
// highest of its surrounding window is a resistance, a low that is
// the lowest is a support.
func (a *LevelAnalyzer) SupportResistance(prices []models.Price) (supports, resistances []Level) {
	if len(prices) < a.window*2+1 {
		return nil, nil
	}

	for i := a.window; i < len(prices)-a.window; i++ {
		isResistance := true
		isSupport := true

		for j := i - a.window; j <= i+a.window; j++ {
			if prices[j].High > prices[i].High {
				isResistance = false
			}
			if prices[j].Low < prices[i].Low {
				isSupport = false
			}
		}

		if isResistance {
			resistances = append(resistances, Level{Time: prices[i].OpenTime, Price: prices[i].High})
		}
		if isSupport {
			supports = append(supports, Level{Time: prices[i].OpenTime, Price: prices[i].Low})
		}
	}

	return supports, resistances
}

// FairValueGaps finds three-candle displacement gaps: bullish when a
// candle's low clears the high of two candles before, bearish for the
// mirrored case.
func (a *LevelAnalyzer) FairValueGaps(prices []models.Price) []FVG {
	if len(prices) < 3 {
		return nil
	}

	var fvgs []FVG
	for i := 2; i < len(prices); i++ {
		if prices[i].Low > prices[i-2].High {
			fvgs = append(fvgs, FVG{
				Direction: FVGBullish,
				Top:       prices[i].Low,
				Bottom:    prices[i-2].High,
				StartTime: prices[i-2].OpenTime,
				EndTime:   prices[i].OpenTime,
			})
		} else if prices[i].High < prices[i-2].Low {
			fvgs = append(fvgs, FVG{
				Direction: FVGBearish,
				Top:       prices[i-2].Low,
				Bottom:    prices[i].High,
				StartTime: prices[i-2].OpenTime,
				EndTime:   prices[i].OpenTime,
			})
		}
	}

	return fvgs
}
