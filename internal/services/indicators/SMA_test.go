package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMACalculate_NaNUntilWindowFills(t *testing.T) {
	service := NewSMAService()

	sma := service.Calculate([]float64{1, 2, 3, 4, 5}, 3)

	require.Len(t, sma, 5)
	assert.True(t, math.IsNaN(sma[0]))
	assert.True(t, math.IsNaN(sma[1]))
	assert.InDelta(t, 2.0, sma[2], 1e-9)
	assert.InDelta(t, 3.0, sma[3], 1e-9)
	assert.InDelta(t, 4.0, sma[4], 1e-9)
}

func TestSMACalculate_WindowEqualToSeries(t *testing.T) {
	service := NewSMAService()

	sma := service.Calculate([]float64{2, 4, 6}, 3)

	require.Len(t, sma, 3)
	assert.True(t, math.IsNaN(sma[1]))
	assert.InDelta(t, 4.0, sma[2], 1e-9)
}

func TestCalculateStdDev_SampleVariance(t *testing.T) {
	service := NewSMAService()

	std := service.CalculateStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8)

	require.Len(t, std, 8)
	assert.True(t, math.IsNaN(std[6]))
	// Sample std (n-1) of the full window
	assert.InDelta(t, 2.13809, std[7], 1e-4)
}

func TestCalculateStdDev_ConstantWindowIsZero(t *testing.T) {
	service := NewSMAService()

	std := service.CalculateStdDev([]float64{5, 5, 5, 5}, 3)

	assert.InDelta(t, 0.0, std[2], 1e-9)
	assert.InDelta(t, 0.0, std[3], 1e-9)
}
