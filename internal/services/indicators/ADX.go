package indicators

import (
	"math"

	"CryptoTradeLab/internal/models"
)

// ADXService calculates the Average Directional Index (Wilder).
type ADXService struct {
	ema *EMAService
	atr *ATRService
}

func NewADXService() *ADXService {
	return &ADXService{
		ema: NewEMAService(),
		atr: NewATRService(),
	}
}

// Calculate returns the ADX series. The first element is NaN and the
// value is unreliable until roughly two smoothing periods have passed;
// consumers are expected to treat early bars as warm-up.
func (s *ADXService) Calculate(prices []models.Price, period int) []float64 {
	if len(prices) == 0 || period <= 0 {
		return nil
	}

	plusDM := make([]float64, len(prices))
	minusDM := make([]float64, len(prices))
	plusDM[0] = math.NaN()
	minusDM[0] = math.NaN()
	for i := 1; i < len(prices); i++ {
		upMove := prices[i].High - prices[i-1].High
		downMove := prices[i-1].Low - prices[i].Low

		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	smoothedPlus := s.ema.CalculateWilder(plusDM, period)
	smoothedMinus := s.ema.CalculateWilder(minusDM, period)
	smoothedTR := s.atr.Calculate(prices, period)

	dx := make([]float64, len(prices))
	for i := range prices {
		if smoothedTR[i] == 0 || math.IsNaN(smoothedPlus[i]) || math.IsNaN(smoothedMinus[i]) {
			dx[i] = math.NaN()
			continue
		}
		plusDI := 100 * smoothedPlus[i] / smoothedTR[i]
		minusDI := 100 * smoothedMinus[i] / smoothedTR[i]

		sum := plusDI + minusDI
		if sum == 0 {
			dx[i] = math.NaN()
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
	}

	return s.ema.CalculateWilder(dx, period)
}
