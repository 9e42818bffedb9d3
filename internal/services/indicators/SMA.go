package indicators

import "math"

// SMAService provides rolling Simple Moving Average calculations
type SMAService struct{}

func NewSMAService() *SMAService {
	return &SMAService{}
}

// Calculate computes a rolling SMA. Elements before the window fills
// are NaN.
func (s *SMAService) Calculate(values []float64, period int) []float64 {
	if len(values) == 0 || period <= 0 {
		return nil
	}

	sma := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			sma[i] = sum / float64(period)
		} else {
			sma[i] = math.NaN()
		}
	}
	return sma
}

// CalculateStdDev computes the rolling sample standard deviation
// (n-1 denominator) over the same window as Calculate.
func (s *SMAService) CalculateStdDev(values []float64, period int) []float64 {
	if len(values) == 0 || period < 2 {
		return nil
	}

	std := make([]float64, len(values))
	for i := range values {
		if i < period-1 {
			std[i] = math.NaN()
			continue
		}
		window := values[i-period+1 : i+1]

		mean := 0.0
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		squareSum := 0.0
		for _, v := range window {
			diff := v - mean
			squareSum += diff * diff
		}
		std[i] = math.Sqrt(squareSum / float64(period-1))
	}
	return std
}
