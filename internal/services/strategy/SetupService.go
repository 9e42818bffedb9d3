package strategy

import (
	"fmt"
	"math"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/indicators"
)

const (
	// MinimumHistory is the number of candles needed before a setup
	// can be proposed (slow EMA plus one candle for cross detection).
	MinimumHistory = 22

	rsiOversold   = 30
	rsiOverbought = 70
	adxThreshold  = 25

	// Stop distance falls back to 2% of price when ATR is undefined
	atrFallbackPct = 0.02
	atrMultiplier  = 2.0
	rewardRatio    = 2.0 // 1:2 risk/reward
	swingLookback  = 5
)

// SetupService turns enriched candle history into trade setups
type SetupService struct{}

func NewSetupService() *SetupService {
	return &SetupService{}
}

// TradeSetup proposes at most one setup for the last candle of the
// history. It returns (nil, nil) when no signal fires, when the
// history is too short, or when required indicator values are still
// warming up; an error means the inputs were unusable. The history
// must be truncated to the candle under evaluation; the service never
// looks ahead.
func (s *SetupService) TradeSetup(prices []models.Price, snaps []indicators.Snapshot, currentPrice float64, filters Filters) (*Setup, error) {
	if len(snaps) != len(prices) {
		return nil, fmt.Errorf("indicator history misaligned: %d snapshots for %d candles", len(snaps), len(prices))
	}
	if len(prices) < MinimumHistory {
		return nil, nil
	}

	last := snaps[len(snaps)-1]
	prev := snaps[len(snaps)-2]

	if math.IsNaN(last.EMA9) || math.IsNaN(last.EMA21) || math.IsNaN(last.RSI) {
		return nil, nil
	}

	emaCrossUp := prev.EMA9 <= prev.EMA21 && last.EMA9 > last.EMA21
	emaCrossDown := prev.EMA9 >= prev.EMA21 && last.EMA9 < last.EMA21

	var signal, side string
	switch {
	case emaCrossUp:
		signal = "EMA Cross UP (Long)"
		side = models.PositionSideLong
	case last.RSI < rsiOversold:
		signal = "RSI Oversold (Long)"
		side = models.PositionSideLong
	case emaCrossDown:
		signal = "EMA Cross DOWN (Short)"
		side = models.PositionSideShort
	case last.RSI > rsiOverbought:
		signal = "RSI Overbought (Short)"
		side = models.PositionSideShort
	default:
		return nil, nil
	}

	if !s.passesFilters(prices, last, side, filters) {
		return nil, nil
	}

	atr := last.ATR
	if math.IsNaN(atr) {
		atr = currentPrice * atrFallbackPct
	}

	setup := &Setup{
		Signal: signal,
		Side:   side,
		Entry:  currentPrice,
	}

	if side == models.PositionSideLong {
		// Stop below the recent swing low or 2 ATR, whichever is wider
		swingLow := lowestLow(prices, swingLookback)
		setup.StopLoss = math.Min(swingLow, currentPrice-atrMultiplier*atr)
		risk := currentPrice - setup.StopLoss
		setup.TakeProfit = currentPrice + rewardRatio*risk
		setup.DCALevels = [3]float64{currentPrice * 0.98, currentPrice * 0.95, currentPrice * 0.90}
	} else {
		swingHigh := highestHigh(prices, swingLookback)
		setup.StopLoss = math.Max(swingHigh, currentPrice+atrMultiplier*atr)
		risk := setup.StopLoss - currentPrice
		setup.TakeProfit = currentPrice - rewardRatio*risk
		setup.DCALevels = [3]float64{currentPrice * 1.02, currentPrice * 1.05, currentPrice * 1.10}
	}

	return setup, nil
}

// passesFilters applies the configured entry filters. NaN comparisons
// fail, so an indicator still warming up rejects the signal.
func (s *SetupService) passesFilters(prices []models.Price, last indicators.Snapshot, side string, filters Filters) bool {
	currentPrice := prices[len(prices)-1].Close

	if filters.Trend {
		if side == models.PositionSideLong && !(currentPrice > last.SMA200) {
			return false
		}
		if side == models.PositionSideShort && !(currentPrice < last.SMA200) {
			return false
		}
	}

	if filters.Volume && !(prices[len(prices)-1].Volume > last.VolSMA20) {
		return false
	}

	if filters.ADX && !(last.ADX > adxThreshold) {
		return false
	}

	if filters.MACD {
		if side == models.PositionSideLong && !(last.MACDHist > 0) {
			return false
		}
		if side == models.PositionSideShort && !(last.MACDHist < 0) {
			return false
		}
	}

	return true
}

func lowestLow(prices []models.Price, lookback int) float64 {
	start := len(prices) - lookback
	if start < 0 {
		start = 0
	}
	low := prices[start].Low
	for _, p := range prices[start:] {
		if p.Low < low {
			low = p.Low
		}
	}
	return low
}

func highestHigh(prices []models.Price, lookback int) float64 {
	start := len(prices) - lookback
	if start < 0 {
		start = 0
	}
	high := prices[start].High
	for _, p := range prices[start:] {
		if p.High > high {
			high = p.High
		}
	}
	return high
}
