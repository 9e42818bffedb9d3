package analysis

import (
	"math"
	"testing"
	"time"

	"CryptoTradeLab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vShapedCandles puts the lowest low and the highest high at the pivot
// index, sloping away on both sides.
func vShapedCandles(n, pivot int) []models.Price {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]models.Price, n)
	for i := range prices {
		distance := math.Abs(float64(i - pivot))
		prices[i] = models.Price{
			OpenTime: base.Add(time.Duration(i) * time.Hour),
			Low:      100 + 0.5*distance,
			High:     200 - 0.5*distance,
			Open:     150,
			Close:    150,
		}
	}
	return prices
}

func TestSupportResistance_FindsPivots(t *testing.T) {
	analyzer := NewLevelAnalyzer()
	prices := vShapedCandles(45, 22)

	supports, resistances := analyzer.SupportResistance(prices)

	require.Len(t, supports, 1)
	assert.Equal(t, 100.0, supports[0].Price)
	assert.Equal(t, prices[22].OpenTime, supports[0].Time)

	require.Len(t, resistances, 1)
	assert.Equal(t, 200.0, resistances[0].Price)
}

func TestSupportResistance_TooLittleHistory(t *testing.T) {
	analyzer := NewLevelAnalyzer()

	supports, resistances := analyzer.SupportResistance(vShapedCandles(40, 20))

	assert.Nil(t, supports)
	assert.Nil(t, resistances)
}

func TestFairValueGaps_Bullish(t *testing.T) {
	analyzer := NewLevelAnalyzer()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := []models.Price{
		{OpenTime: base, High: 100, Low: 95},
		{OpenTime: base.Add(time.Hour), High: 104, Low: 99},
		{OpenTime: base.Add(2 * time.Hour), High: 110, Low: 105},
	}

	fvgs := analyzer.FairValueGaps(prices)

	require.Len(t, fvgs, 1)
	assert.Equal(t, FVGBullish, fvgs[0].Direction)
	assert.Equal(t, 105.0, fvgs[0].Top)
	assert.Equal(t, 100.0, fvgs[0].Bottom)
	assert.Equal(t, prices[0].OpenTime, fvgs[0].StartTime)
	assert.Equal(t, prices[2].OpenTime, fvgs[0].EndTime)
}

func TestFairValueGaps_Bearish(t *testing.T) {
	analyzer := NewLevelAnalyzer()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := []models.Price{
		{OpenTime: base, High: 100, Low: 95},
		{OpenTime: base.Add(time.Hour), High: 96, Low: 91},
		{OpenTime: base.Add(2 * time.Hour), High: 90, Low: 85},
	}

	fvgs := analyzer.FairValueGaps(prices)

	require.Len(t, fvgs, 1)
	assert.Equal(t, FVGBearish, fvgs[0].Direction)
	assert.Equal(t, 95.0, fvgs[0].Top)
	assert.Equal(t, 90.0, fvgs[0].Bottom)
}

func TestFairValueGaps_NoGapOnOverlap(t *testing.T) {
	analyzer := NewLevelAnalyzer()
	prices := []models.Price{
		{High: 100, Low: 95},
		{High: 101, Low: 96},
		{High: 102, Low: 97},
	}

	assert.Empty(t, analyzer.FairValueGaps(prices))
}
