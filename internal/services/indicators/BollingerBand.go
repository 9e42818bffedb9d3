package indicators

type BBandsService struct {
	sma *SMAService
}

type BBandsResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

func NewBBandsService() *BBandsService {
	return &BBandsService{
		sma: NewSMAService(),
	}
}

// Calculate computes Bollinger Bands over a rolling window. NaN until
// the window fills.
func (s *BBandsService) Calculate(closes []float64, period int, deviations float64) *BBandsResult {
	if len(closes) < 1 || period < 2 {
		return nil
	}

	middle := s.sma.Calculate(closes, period)
	stdDev := s.sma.CalculateStdDev(closes, period)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		upper[i] = middle[i] + deviations*stdDev[i]
		lower[i] = middle[i] - deviations*stdDev[i]
	}

	return &BBandsResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}
}
