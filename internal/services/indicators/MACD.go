package indicators

type MACDService struct {
	ema *EMAService
}

type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

func NewMACDService() *MACDService {
	return &MACDService{
		ema: NewEMAService(),
	}
}

// Calculate returns MACD line, signal line, and histogram.
// Default periods: fast=12, slow=26, signal=9
func (s *MACDService) Calculate(closes []float64, fastPeriod, slowPeriod, signalPeriod int) *MACDResult {
	if len(closes) == 0 || fastPeriod <= 0 || slowPeriod <= fastPeriod || signalPeriod <= 0 {
		return nil
	}

	fastEMA := s.ema.Calculate(closes, fastPeriod)
	slowEMA := s.ema.Calculate(closes, slowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := s.ema.Calculate(macdLine, signalPeriod)

	histogram := make([]float64, len(closes))
	for i := range closes {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return &MACDResult{
		MACD:      macdLine,
		Signal:    signalLine,
		Histogram: histogram,
	}
}
