package analytics

import (
	"encoding/json"
	"sort"
	"time"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/repositories"
)

// OverallStats summarizes the signal log and the trade journal together
type OverallStats struct {
	TotalSignals   int64
	SignalsAlerted int64
	SignalsTaken   int64
	TotalTrades    int
	WinRate        float64
	TotalPnL       float64
	BestSymbol     string
}

// SymbolStats is realized performance for one symbol
type SymbolStats struct {
	Symbol      string
	TotalTrades int
	Wins        int
	WinRate     float64
	TotalPnL    float64
}

// ConfluenceBucket groups signals by confluence score range
type ConfluenceBucket struct {
	Label    string
	Low      int
	High     int
	Count    int
	AvgScore float64
}

// ReasonCount is how often one confluence reason appeared
type ReasonCount struct {
	Reason string
	Count  int
}

// ConversionStats tracks how signals turn into journal trades
type ConversionStats struct {
	SignalsAlerted    int64
	SignalsTaken      int64
	TradesFromSignals int
	ConversionRate    float64
}

// DailyPnL is one day of realized results for the equity curve
type DailyPnL struct {
	Date          time.Time
	PnL           float64
	CumulativePnL float64
}

type Service struct {
	signals *repositories.SignalRepository
	trades  *repositories.TradeRepository
}

func NewService(signalRepo *repositories.SignalRepository, tradeRepo *repositories.TradeRepository) *Service {
	return &Service{signals: signalRepo, trades: tradeRepo}
}

// OverallStats aggregates signal counts and closed-trade performance
func (s *Service) OverallStats() (*OverallStats, error) {
	stats := &OverallStats{BestSymbol: "N/A"}

	var err error
	if stats.TotalSignals, err = s.signals.CountByStatus(""); err != nil {
		return nil, err
	}
	if stats.SignalsAlerted, err = s.signals.CountByStatus(models.SignalStatusAlerted); err != nil {
		return nil, err
	}
	if stats.SignalsTaken, err = s.signals.CountByStatus(models.SignalStatusTaken); err != nil {
		return nil, err
	}

	symbolStats, err := s.WinRateBySymbol()
	if err != nil {
		return nil, err
	}

	wins := 0
	for _, ss := range symbolStats {
		stats.TotalTrades += ss.TotalTrades
		stats.TotalPnL += ss.TotalPnL
		wins += ss.Wins
	}
	if stats.TotalTrades > 0 {
		stats.WinRate = float64(wins) / float64(stats.TotalTrades) * 100
	}
	if len(symbolStats) > 0 {
		stats.BestSymbol = symbolStats[0].Symbol
	}
	return stats, nil
}

// WinRateBySymbol computes per-symbol performance from closed trades,
// best total PnL first
func (s *Service) WinRateBySymbol() ([]SymbolStats, error) {
	trades, err := s.trades.FindClosed("", 0)
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]*SymbolStats)
	for _, trade := range trades {
		ss, ok := bySymbol[trade.Symbol]
		if !ok {
			ss = &SymbolStats{Symbol: trade.Symbol}
			bySymbol[trade.Symbol] = ss
		}
		ss.TotalTrades++
		ss.TotalPnL += trade.PnL
		if trade.Outcome == models.TradeOutcomeWin {
			ss.Wins++
		}
	}

	results := make([]SymbolStats, 0, len(bySymbol))
	for _, ss := range bySymbol {
		if ss.TotalTrades > 0 {
			ss.WinRate = float64(ss.Wins) / float64(ss.TotalTrades) * 100
		}
		results = append(results, *ss)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].TotalPnL > results[j].TotalPnL
	})
	return results, nil
}

// ConfluenceEffectiveness buckets recent signals by confluence score
func (s *Service) ConfluenceEffectiveness() ([]ConfluenceBucket, error) {
	signals, err := s.signals.FindSignals(repositories.SignalFilter{Limit: 1000})
	if err != nil {
		return nil, err
	}

	buckets := []ConfluenceBucket{
		{Label: "60-70%", Low: 60, High: 70},
		{Label: "70-80%", Low: 70, High: 80},
		{Label: "80-90%", Low: 80, High: 90},
		{Label: "90-100%", Low: 90, High: 101},
	}

	totals := make([]int, len(buckets))
	for _, signal := range signals {
		for i := range buckets {
			if signal.ConfluenceScore >= buckets[i].Low && signal.ConfluenceScore < buckets[i].High {
				buckets[i].Count++
				totals[i] += signal.ConfluenceScore
				break
			}
		}
	}
	for i := range buckets {
		if buckets[i].Count > 0 {
			buckets[i].AvgScore = float64(totals[i]) / float64(buckets[i].Count)
		}
	}
	return buckets, nil
}

// TopConfluenceReasons counts the reasons behind high-confluence signals
func (s *Service) TopConfluenceReasons(limit int) ([]ReasonCount, error) {
	signals, err := s.signals.FindSignals(repositories.SignalFilter{Limit: 500, MinConfluence: 70})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, signal := range signals {
		if signal.ConfluenceReasons == "" {
			continue
		}
		var reasons []string
		if err := json.Unmarshal([]byte(signal.ConfluenceReasons), &reasons); err != nil {
			continue
		}
		for _, reason := range reasons {
			counts[reason]++
		}
	}

	results := make([]ReasonCount, 0, len(counts))
	for reason, count := range counts {
		results = append(results, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Reason < results[j].Reason
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SignalToTradeConversion measures how many alerted signals became trades
func (s *Service) SignalToTradeConversion() (*ConversionStats, error) {
	stats := &ConversionStats{}

	var err error
	if stats.SignalsAlerted, err = s.signals.CountByStatus(models.SignalStatusAlerted); err != nil {
		return nil, err
	}
	if stats.SignalsTaken, err = s.signals.CountByStatus(models.SignalStatusTaken); err != nil {
		return nil, err
	}

	trades, err := s.trades.FindClosed("", 0)
	if err != nil {
		return nil, err
	}
	for _, trade := range trades {
		if trade.SignalID != nil {
			stats.TradesFromSignals++
		}
	}

	if stats.SignalsAlerted > 0 {
		stats.ConversionRate = float64(stats.SignalsTaken) / float64(stats.SignalsAlerted) * 100
	}
	return stats, nil
}

// EquityCurve groups realized PnL by exit day and accumulates it
func (s *Service) EquityCurve(days int) ([]DailyPnL, error) {
	trades, err := s.trades.FindClosed("", 0)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	byDay := make(map[time.Time]float64)
	for _, trade := range trades {
		if trade.ExitTime == nil || trade.ExitTime.Before(cutoff) {
			continue
		}
		day := trade.ExitTime.Truncate(24 * time.Hour)
		byDay[day] += trade.PnL
	}

	curve := make([]DailyPnL, 0, len(byDay))
	for day, pnl := range byDay {
		curve = append(curve, DailyPnL{Date: day, PnL: pnl})
	}
	sort.Slice(curve, func(i, j int) bool {
		return curve[i].Date.Before(curve[j].Date)
	})

	cumulative := 0.0
	for i := range curve {
		cumulative += curve[i].PnL
		curve[i].CumulativePnL = cumulative
	}
	return curve, nil
}
