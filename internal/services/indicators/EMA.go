package indicators

import "math"

// EMAService provides Exponential Moving Average calculations
type EMAService struct{}

// CrossSignal represents EMA crossover status
type CrossSignal struct {
	Crossed   bool    // Whether cross occurred on the last bar
	Direction int     // 1 (bullish), -1 (bearish)
	Strength  float64 // Distance between the EMAs relative to the slow one
}

// NewEMAService creates a new EMA service instance
func NewEMAService() *EMAService {
	return &EMAService{}
}

// Calculate computes EMA for the entire series. The series is seeded
// with the first value, so every output element is defined. Leading
// NaN inputs stay NaN and the seed moves to the first defined value.
func (s *EMAService) Calculate(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	ema := make([]float64, len(values))
	multiplier := s.getMultiplier(period)

	seeded := false
	for i, v := range values {
		if !seeded {
			ema[i] = v
			if !math.IsNaN(v) {
				seeded = true
			}
			continue
		}
		ema[i] = s.calculatePoint(v, ema[i-1], multiplier)
	}

	return ema
}

// CalculateWilder computes a Wilder-smoothed average (alpha = 1/period),
// used by RSI, ATR and ADX. Same seeding rules as Calculate.
func (s *EMAService) CalculateWilder(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	smoothed := make([]float64, len(values))
	alpha := 1.0 / float64(period)

	seeded := false
	for i, v := range values {
		if !seeded {
			smoothed[i] = v
			if !math.IsNaN(v) {
				seeded = true
			}
			continue
		}
		smoothed[i] = alpha*v + (1-alpha)*smoothed[i-1]
	}

	return smoothed
}

// CheckCrossover detects a crossover between two EMA series on the last bar
func (s *EMAService) CheckCrossover(fastEMA, slowEMA []float64) *CrossSignal {
	if len(fastEMA) < 2 || len(slowEMA) < 2 {
		return &CrossSignal{Crossed: false}
	}

	currFast := fastEMA[len(fastEMA)-1]
	prevFast := fastEMA[len(fastEMA)-2]
	currSlow := slowEMA[len(slowEMA)-1]
	prevSlow := slowEMA[len(slowEMA)-2]

	bullishCross := prevFast <= prevSlow && currFast > currSlow
	bearishCross := prevFast >= prevSlow && currFast < currSlow

	if !bullishCross && !bearishCross {
		return &CrossSignal{Crossed: false}
	}

	strength := math.Abs((currFast - currSlow) / currSlow)
	direction := 1
	if bearishCross {
		direction = -1
	}

	return &CrossSignal{
		Crossed:   true,
		Direction: direction,
		Strength:  strength,
	}
}

func (s *EMAService) getMultiplier(period int) float64 {
	return 2.0 / float64(period+1)
}

func (s *EMAService) calculatePoint(value, prevEMA, multiplier float64) float64 {
	return (value-prevEMA)*multiplier + prevEMA
}
