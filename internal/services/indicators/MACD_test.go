package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACDCalculate_FlatSeriesIsZero(t *testing.T) {
	service := NewMACDService()
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}

	result := service.Calculate(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignal)

	require.NotNil(t, result)
	require.Len(t, result.MACD, 40)
	assert.InDelta(t, 0.0, result.MACD[39], 1e-9)
	assert.InDelta(t, 0.0, result.Signal[39], 1e-9)
	assert.InDelta(t, 0.0, result.Histogram[39], 1e-9)
}

func TestMACDCalculate_UptrendHasPositiveHistogram(t *testing.T) {
	service := NewMACDService()
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	result := service.Calculate(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignal)

	require.NotNil(t, result)
	// The fast EMA tracks a steady uptrend more closely than the slow one
	assert.Greater(t, result.MACD[39], 0.0)
	assert.InDelta(t, result.MACD[39]-result.Signal[39], result.Histogram[39], 1e-9)
}

func TestMACDCalculate_InvalidPeriods(t *testing.T) {
	service := NewMACDService()

	assert.Nil(t, service.Calculate([]float64{1, 2, 3}, 12, 12, 9))
	assert.Nil(t, service.Calculate(nil, 12, 26, 9))
}

func TestBBandsCalculate_BandsAroundMiddle(t *testing.T) {
	service := NewBBandsService()
	closes := []float64{1, 2, 3, 4, 5}

	result := service.Calculate(closes, 3, 2.0)

	require.NotNil(t, result)
	assert.True(t, math.IsNaN(result.Middle[1]))
	assert.True(t, math.IsNaN(result.Upper[1]))

	// window {3,4,5}: mean 4, sample std 1
	assert.InDelta(t, 4.0, result.Middle[4], 1e-9)
	assert.InDelta(t, 6.0, result.Upper[4], 1e-9)
	assert.InDelta(t, 2.0, result.Lower[4], 1e-9)
}
