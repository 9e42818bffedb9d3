package analysis

import (
	"math"
	"testing"
	"time"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/indicators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralHistory(n int, price float64) ([]models.Price, []indicators.Snapshot) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]models.Price, n)
	snaps := make([]indicators.Snapshot, n)
	for i := range prices {
		prices[i] = models.Price{
			OpenTime: base.Add(time.Duration(i) * time.Hour),
			Open:     price,
			High:     price + 1,
			Low:      price - 1,
			Close:    price,
			Volume:   100,
		}
		snaps[i] = indicators.Snapshot{
			SMA200:   math.NaN(),
			RSI:      math.NaN(),
			VolSMA20: math.NaN(),
		}
	}
	return prices, snaps
}

func TestScore_EmptyOrMisalignedInput(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)

	score, reasons := analyzer.Score(nil, nil, models.PositionSideLong)
	assert.Equal(t, 0.0, score)
	assert.Nil(t, reasons)

	score, _ = analyzer.Score(prices, snaps[:9], models.PositionSideLong)
	assert.Equal(t, 0.0, score)
}

func TestScore_NaNIndicatorsContributeNothing(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 0.0, score)
	assert.Empty(t, reasons)
}

func TestScore_LongTrendAndMomentum(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)
	snaps[9].SMA200 = 90
	snaps[9].RSI = 50

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 40.0, score)
	require.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "Bullish")
	assert.Contains(t, reasons[1], "room to grow")
}

func TestScore_ShortTrendAndMomentum(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)
	snaps[9].SMA200 = 110
	snaps[9].RSI = 50

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideShort)

	assert.Equal(t, 40.0, score)
	require.Len(t, reasons, 2)
	assert.Contains(t, reasons[0], "Bearish")
}

func TestScore_HighVolume(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)
	snaps[9].VolSMA20 = 50 // last candle volume is 100

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 10.0, score)
	require.Len(t, reasons, 1)
	assert.Equal(t, "High Volume", reasons[0])
}

func TestScore_CandlestickPattern(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices, snaps := neutralHistory(10, 100)
	// Turn the last two candles into a bullish engulfing
	prices[8] = models.Price{Open: 105, High: 106, Low: 99, Close: 100, Volume: 100}
	prices[9] = models.Price{Open: 99, High: 107, Low: 98, Close: 106, Volume: 100}

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 15.0, score)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], PatternBullishEngulfing)
}

func TestScore_NearSupportLevel(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	prices := vShapedCandles(45, 22)
	// Close within 1% of the support pivot at 100
	prices[44].Close = 100.5
	snaps := make([]indicators.Snapshot, len(prices))
	for i := range snaps {
		snaps[i] = indicators.Snapshot{SMA200: math.NaN(), RSI: math.NaN(), VolSMA20: math.NaN()}
	}

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 20.0, score)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Near Support Level", reasons[0])
}

func TestScore_InBullishFVG(t *testing.T) {
	analyzer := NewConfidenceAnalyzer()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := []models.Price{
		{OpenTime: base, Open: 96, High: 100, Low: 95, Close: 97},
		{OpenTime: base.Add(time.Hour), Open: 100, High: 104, Low: 99, Close: 103},
		// Gap between 100 and 105; close lands inside it
		{OpenTime: base.Add(2 * time.Hour), Open: 106, High: 110, Low: 105, Close: 104},
	}
	snaps := make([]indicators.Snapshot, 3)
	for i := range snaps {
		snaps[i] = indicators.Snapshot{SMA200: math.NaN(), RSI: math.NaN(), VolSMA20: math.NaN()}
	}

	score, reasons := analyzer.Score(prices, snaps, models.PositionSideLong)

	assert.Equal(t, 15.0, score)
	require.Len(t, reasons, 1)
	assert.Equal(t, "In/Near Bullish FVG", reasons[0])
}
