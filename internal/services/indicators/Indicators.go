package indicators

import (
	"math"
	"time"

	"CryptoTradeLab/internal/models"
)

// Standard periods used across the toolchain
const (
	EMAFastPeriod   = 9
	EMASlowPeriod   = 21
	SMATrendPeriod  = 200
	BBandsPeriod    = 20
	BBandsDeviation = 2.0
	RSIPeriod       = 14
	MACDFastPeriod  = 12
	MACDSlowPeriod  = 26
	MACDSignal      = 9
	VolumeSMAPeriod = 20
	ATRPeriod       = 14
	ADXPeriod       = 14
)

// Snapshot holds the derived indicator values for a single candle.
// Fields are NaN until enough history has accumulated (e.g. SMA200
// needs 200 candles).
type Snapshot struct {
	Time time.Time

	EMA9   float64
	EMA21  float64
	SMA200 float64

	BBUpper  float64
	BBMiddle float64
	BBLower  float64

	RSI float64

	MACD       float64
	MACDSignal float64
	MACDHist   float64

	VolSMA20 float64
	ATR      float64
	ADX      float64
	VWAP     float64
}

// Service computes all indicator series for a candle history
type Service struct {
	ema    *EMAService
	sma    *SMAService
	bbands *BBandsService
	rsi    *RSIService
	macd   *MACDService
	atr    *ATRService
	adx    *ADXService
}

func NewService() *Service {
	return &Service{
		ema:    NewEMAService(),
		sma:    NewSMAService(),
		bbands: NewBBandsService(),
		rsi:    NewRSIService(),
		macd:   NewMACDService(),
		atr:    NewATRService(),
		adx:    NewADXService(),
	}
}

// Calculate enriches the candle history with one Snapshot per candle,
// aligned 1:1 with the input. Candles must be in chronological order.
func (s *Service) Calculate(prices []models.Price) []Snapshot {
	if len(prices) == 0 {
		return nil
	}

	closes := make([]float64, len(prices))
	volumes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
		volumes[i] = p.Volume
	}

	ema9 := s.ema.Calculate(closes, EMAFastPeriod)
	ema21 := s.ema.Calculate(closes, EMASlowPeriod)
	sma200 := s.sma.Calculate(closes, SMATrendPeriod)
	bbands := s.bbands.Calculate(closes, BBandsPeriod, BBandsDeviation)
	rsi := s.rsi.Calculate(closes, RSIPeriod)
	macd := s.macd.Calculate(closes, MACDFastPeriod, MACDSlowPeriod, MACDSignal)
	volSMA := s.sma.Calculate(volumes, VolumeSMAPeriod)
	atr := s.atr.Calculate(prices, ATRPeriod)
	adx := s.adx.Calculate(prices, ADXPeriod)
	vwap := calculateVWAP(prices)

	snapshots := make([]Snapshot, len(prices))
	for i := range prices {
		snapshots[i] = Snapshot{
			Time:       prices[i].OpenTime,
			EMA9:       ema9[i],
			EMA21:      ema21[i],
			SMA200:     sma200[i],
			BBUpper:    bbands.Upper[i],
			BBMiddle:   bbands.Middle[i],
			BBLower:    bbands.Lower[i],
			RSI:        rsi[i],
			MACD:       macd.MACD[i],
			MACDSignal: macd.Signal[i],
			MACDHist:   macd.Histogram[i],
			VolSMA20:   volSMA[i],
			ATR:        atr[i],
			ADX:        adx[i],
			VWAP:       vwap[i],
		}
	}

	return snapshots
}

// calculateVWAP is the cumulative typical-price VWAP over the loaded
// history (session equivalent for intraday data).
func calculateVWAP(prices []models.Price) []float64 {
	vwap := make([]float64, len(prices))
	var cumPV, cumVol float64

	for i, p := range prices {
		typical := (p.High + p.Low + p.Close) / 3
		cumPV += typical * p.Volume
		cumVol += p.Volume

		if cumVol == 0 {
			vwap[i] = math.NaN()
			continue
		}
		vwap[i] = cumPV / cumVol
	}
	return vwap
}
