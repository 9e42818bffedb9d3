package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMACalculate_SeedsWithFirstValue(t *testing.T) {
	service := NewEMAService()

	ema := service.Calculate([]float64{10, 11, 12, 13}, 3)

	require.Len(t, ema, 4)
	assert.Equal(t, 10.0, ema[0])
	// multiplier = 2/(3+1) = 0.5
	assert.InDelta(t, 10.5, ema[1], 1e-9)
	assert.InDelta(t, 11.25, ema[2], 1e-9)
	assert.InDelta(t, 12.125, ema[3], 1e-9)
}

func TestEMACalculate_SkipsLeadingNaN(t *testing.T) {
	service := NewEMAService()
	values := []float64{math.NaN(), math.NaN(), 10, 12}

	ema := service.Calculate(values, 3)

	require.Len(t, ema, 4)
	assert.True(t, math.IsNaN(ema[0]))
	assert.True(t, math.IsNaN(ema[1]))
	assert.Equal(t, 10.0, ema[2])
	assert.InDelta(t, 11.0, ema[3], 1e-9)
}

func TestEMACalculate_EmptyInput(t *testing.T) {
	service := NewEMAService()

	assert.Nil(t, service.Calculate(nil, 9))
	assert.Nil(t, service.Calculate([]float64{1, 2}, 0))
}

func TestCalculateWilder_UsesOneOverPeriodAlpha(t *testing.T) {
	service := NewEMAService()

	smoothed := service.CalculateWilder([]float64{10, 20, 30}, 5)

	require.Len(t, smoothed, 3)
	assert.Equal(t, 10.0, smoothed[0])
	// 0.2*20 + 0.8*10
	assert.InDelta(t, 12.0, smoothed[1], 1e-9)
	// 0.2*30 + 0.8*12
	assert.InDelta(t, 15.6, smoothed[2], 1e-9)
}

func TestCheckCrossover_BullishCross(t *testing.T) {
	service := NewEMAService()

	signal := service.CheckCrossover([]float64{9, 11}, []float64{10, 10})

	require.True(t, signal.Crossed)
	assert.Equal(t, 1, signal.Direction)
	assert.InDelta(t, 0.1, signal.Strength, 1e-9)
}

func TestCheckCrossover_BearishCross(t *testing.T) {
	service := NewEMAService()

	signal := service.CheckCrossover([]float64{11, 9}, []float64{10, 10})

	require.True(t, signal.Crossed)
	assert.Equal(t, -1, signal.Direction)
}

func TestCheckCrossover_NoCrossWhenAlreadyAbove(t *testing.T) {
	service := NewEMAService()

	signal := service.CheckCrossover([]float64{11, 12}, []float64{10, 10})

	assert.False(t, signal.Crossed)
}

func TestCheckCrossover_TooShortSeries(t *testing.T) {
	service := NewEMAService()

	signal := service.CheckCrossover([]float64{11}, []float64{10})

	assert.False(t, signal.Crossed)
}
