package indicators

import (
	"math"

	"CryptoTradeLab/internal/models"
)

// ATRService calculates Average True Range with Wilder's smoothing
type ATRService struct {
	ema *EMAService
}

func NewATRService() *ATRService {
	return &ATRService{
		ema: NewEMAService(),
	}
}

// Calculate returns the ATR series. The first bar's true range falls
// back to high-low since there is no previous close.
func (s *ATRService) Calculate(prices []models.Price, period int) []float64 {
	if len(prices) == 0 || period <= 0 {
		return nil
	}

	tr := make([]float64, len(prices))
	for i, p := range prices {
		if i == 0 {
			tr[i] = p.High - p.Low
			continue
		}
		prevClose := prices[i-1].Close
		tr[i] = math.Max(p.High-p.Low,
			math.Max(math.Abs(p.High-prevClose), math.Abs(p.Low-prevClose)))
	}

	return s.ema.CalculateWilder(tr, period)
}
