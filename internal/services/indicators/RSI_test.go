package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSICalculate_FirstElementIsNaN(t *testing.T) {
	service := NewRSIService()

	rsi := service.Calculate([]float64{10, 11, 12}, 14)

	require.Len(t, rsi, 3)
	assert.True(t, math.IsNaN(rsi[0]))
}

func TestRSICalculate_AllGainsIsHundred(t *testing.T) {
	service := NewRSIService()

	rsi := service.Calculate([]float64{10, 11, 12, 13}, 2)

	assert.Equal(t, 100.0, rsi[1])
	assert.Equal(t, 100.0, rsi[2])
	assert.Equal(t, 100.0, rsi[3])
}

func TestRSICalculate_FlatSeriesIsNaN(t *testing.T) {
	service := NewRSIService()

	rsi := service.Calculate([]float64{10, 10, 10}, 2)

	assert.True(t, math.IsNaN(rsi[1]))
	assert.True(t, math.IsNaN(rsi[2]))
}

func TestRSICalculate_AlternatingSeries(t *testing.T) {
	service := NewRSIService()

	rsi := service.Calculate([]float64{10, 11, 10, 11, 10}, 2)

	require.Len(t, rsi, 5)
	assert.Equal(t, 100.0, rsi[1])
	assert.InDelta(t, 33.3333, rsi[2], 1e-3)
	assert.InDelta(t, 71.4286, rsi[3], 1e-3)
	assert.InDelta(t, 33.3333, rsi[4], 1e-3)
}
