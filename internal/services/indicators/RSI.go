package indicators

import "math"

// RSIService calculates the Relative Strength Index with Wilder's
// smoothing of gains and losses.
type RSIService struct {
	ema *EMAService
}

func NewRSIService() *RSIService {
	return &RSIService{
		ema: NewEMAService(),
	}
}

// Calculate returns the RSI series. The first element is NaN (no
// previous close to diff against); elements where no movement has
// been seen at all are NaN as well.
func (s *RSIService) Calculate(closes []float64, period int) []float64 {
	if len(closes) == 0 || period <= 0 {
		return nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	avgGain := s.ema.CalculateWilder(gains, period)
	avgLoss := s.ema.CalculateWilder(losses, period)

	rsi := make([]float64, len(closes))
	rsi[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		switch {
		case avgLoss[i] == 0 && avgGain[i] == 0:
			rsi[i] = math.NaN()
		case avgLoss[i] == 0:
			rsi[i] = 100
		default:
			rs := avgGain[i] / avgLoss[i]
			rsi[i] = 100 - (100 / (1 + rs))
		}
	}

	return rsi
}
