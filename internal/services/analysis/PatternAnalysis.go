package analysis

import (
	"math"

	"CryptoTradeLab/internal/models"
)

// PatternAnalyzer detects simple candlestick patterns
type PatternAnalyzer struct{}

func NewPatternAnalyzer() *PatternAnalyzer {
	return &PatternAnalyzer{}
}

// Detect returns one pattern label per candle (empty string when no
// pattern). A hammer on the same candle as an engulfing wins, matching
// the detection order.
func (a *PatternAnalyzer) Detect(prices []models.Price) []string {
	patterns := make([]string, len(prices))
	if len(prices) < 2 {
		return patterns
	}

	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		curr := prices[i]

		prevRed := prev.Close < prev.Open
		prevGreen := prev.Close > prev.Open
		currGreen := curr.Close > curr.Open
		currRed := curr.Close < curr.Open

		if prevRed && currGreen && curr.Open <= prev.Close && curr.Close >= prev.Open {
			patterns[i] = PatternBullishEngulfing
		}
		if prevGreen && currRed && curr.Open >= prev.Close && curr.Close <= prev.Open {
			patterns[i] = PatternBearishEngulfing
		}

		body := math.Abs(curr.Close - curr.Open)
		upperWick := curr.High - math.Max(curr.Open, curr.Close)
		lowerWick := math.Min(curr.Open, curr.Close) - curr.Low
		if lowerWick > 2*body && upperWick < body*0.5 {
			patterns[i] = PatternHammer
		}
	}

	return patterns
}

// Last returns the pattern on the most recent candle, if any
func (a *PatternAnalyzer) Last(prices []models.Price) string {
	patterns := a.Detect(prices)
	if len(patterns) == 0 {
		return ""
	}
	return patterns[len(patterns)-1]
}
