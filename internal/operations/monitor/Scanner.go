package monitor

import (
	"context"
	"sort"

	"CryptoTradeLab/internal/operations/price"
	"CryptoTradeLab/internal/services/analysis"
	"CryptoTradeLab/internal/services/indicators"
	"CryptoTradeLab/internal/services/strategy"

	"go.uber.org/zap"
)

// ScanResult is one qualified setup found during a market scan
type ScanResult struct {
	Symbol             string
	TimeFrame          string
	Price              float64
	Setup              *strategy.Setup
	Confidence         float64
	WeightedConfidence float64
	Reasons            []string
}

type Scanner struct {
	fetcher    *price.Fetcher
	indicators *indicators.Service
	setups     *strategy.SetupService
	confidence *analysis.ConfidenceAnalyzer
	filters    strategy.Filters
	logger     *zap.Logger
}

func NewScanner(fetcher *price.Fetcher, indicatorService *indicators.Service,
	setupService *strategy.SetupService, confidenceAnalyzer *analysis.ConfidenceAnalyzer,
	filters strategy.Filters, logger *zap.Logger) *Scanner {
	return &Scanner{
		fetcher:    fetcher,
		indicators: indicatorService,
		setups:     setupService,
		confidence: confidenceAnalyzer,
		filters:    filters,
		logger:     logger,
	}
}

// Scan fetches candles for every symbol on one timeframe and returns the
// setups found, best confidence first. A symbol that fails to fetch or
// evaluate is logged and skipped so one bad symbol cannot kill the scan.
func (s *Scanner) Scan(ctx context.Context, symbols []string, timeFrame string, lookbackDays int) ([]ScanResult, error) {
	var results []ScanResult

	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		result, err := s.scanSymbol(ctx, symbol, timeFrame, lookbackDays)
		if err != nil {
			s.logger.Warn("failed to scan symbol",
				zap.String("symbol", symbol),
				zap.String("timeframe", timeFrame),
				zap.Error(err))
			continue
		}
		if result != nil {
			results = append(results, *result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	return results, nil
}

func (s *Scanner) scanSymbol(ctx context.Context, symbol, timeFrame string, lookbackDays int) (*ScanResult, error) {
	prices, err := s.fetcher.FetchKlines(ctx, symbol, timeFrame, lookbackDays)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, nil
	}

	snaps := s.indicators.Calculate(prices)
	currentPrice := prices[len(prices)-1].Close

	setup, err := s.setups.TradeSetup(prices, snaps, currentPrice, s.filters)
	if err != nil {
		return nil, err
	}
	if setup == nil {
		return nil, nil
	}

	confidence, reasons := s.confidence.Score(prices, snaps, setup.Side)

	return &ScanResult{
		Symbol:     symbol,
		TimeFrame:  timeFrame,
		Price:      currentPrice,
		Setup:      setup,
		Confidence: confidence,
		Reasons:    reasons,
	}, nil
}
