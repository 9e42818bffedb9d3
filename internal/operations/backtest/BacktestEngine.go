package backtest

import (
	"fmt"
	"math"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/indicators"
	"CryptoTradeLab/internal/services/strategy"
)

// IndicatorProvider enriches a candle history with derived series
type IndicatorProvider interface {
	Calculate(prices []models.Price) []indicators.Snapshot
}

// SetupProvider proposes at most one trade setup for the last candle
// of the given history. Implementations must be deterministic and must
// not look past the supplied candles. (nil, nil) means no signal;
// an error means the computation itself failed.
type SetupProvider interface {
	TradeSetup(prices []models.Price, snaps []indicators.Snapshot, currentPrice float64, filters strategy.Filters) (*strategy.Setup, error)
}

// Engine replays a candle history and simulates position management:
// layered DCA entries, trailing stops, and stop/target exits. It holds
// no state between runs; each Run starts fresh from the configuration.
type Engine struct {
	config     Config
	indicators IndicatorProvider
	setups     SetupProvider
}

func NewEngine(config Config, indicatorProvider IndicatorProvider, setupProvider SetupProvider) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if indicatorProvider == nil || setupProvider == nil {
		return nil, fmt.Errorf("indicator and setup providers are required")
	}
	return &Engine{
		config:     config,
		indicators: indicatorProvider,
		setups:     setupProvider,
	}, nil
}

// Run replays the candles in chronological order. Histories with
// fewer than WarmupBars+1 candles return (nil, nil): too little data
// for the indicators to stabilize, which is not an error.
func (e *Engine) Run(prices []models.Price) (*Result, error) {
	if len(prices) <= WarmupBars {
		return nil, nil
	}

	snaps := e.indicators.Calculate(prices)
	if len(snaps) != len(prices) {
		return nil, fmt.Errorf("indicator provider returned %d snapshots for %d candles", len(snaps), len(prices))
	}

	capital := e.config.InitialCapital
	var open *Position
	var trades []ClosedTrade
	equityCurve := make([]EquityPoint, 0, len(prices)-WarmupBars)

	for i := WarmupBars; i < len(prices); i++ {
		bar := prices[i]

		if open != nil {
			e.updateTrailingStop(open, bar)
			e.executeDCA(open, bar)

			if exitPrice, reason, exited := checkExit(open, bar); exited {
				pnl := open.PnL(exitPrice)
				capital += pnl
				trades = append(trades, newClosedTrade(open, bar, exitPrice, reason, pnl, capital))
				open = nil
			}
		}

		// An entry may open on the same candle a previous position
		// closed on.
		if open == nil {
			setup, err := e.setups.TradeSetup(prices[:i+1], snaps[:i+1], bar.Close, e.config.Filters)
			if err != nil {
				return nil, fmt.Errorf("setup generation failed at bar %d: %w", i, err)
			}
			if setup != nil {
				open = e.openPosition(setup, bar, capital)
			}
		}

		equity := capital
		if open != nil {
			equity += open.PnL(bar.Close)
		}
		equityCurve = append(equityCurve, EquityPoint{Timestamp: bar.OpenTime, Equity: equity})
	}

	// Force-close anything still open at the final close
	if open != nil {
		lastBar := prices[len(prices)-1]
		pnl := open.PnL(lastBar.Close)
		capital += pnl
		trades = append(trades, newClosedTrade(open, lastBar, lastBar.Close, ExitEndOfData, pnl, capital))
	}

	return &Result{
		Trades:      trades,
		EquityCurve: equityCurve,
		Metrics:     CalculateMetrics(trades, equityCurve, e.config.InitialCapital, capital),
	}, nil
}

func (e *Engine) openPosition(setup *strategy.Setup, bar models.Price, capital float64) *Position {
	size := capital * e.config.PositionSizeFraction

	position := &Position{
		Side:        setup.Side,
		EntryTime:   bar.OpenTime,
		EntryPrice:  setup.Entry,
		Size:        size,
		InitialSize: size,
		StopLoss:    setup.StopLoss,
		TakeProfit:  setup.TakeProfit,
	}

	if e.config.UseDCA {
		position.DCALevels = setup.DCALevels[:]
	}

	if setup.Side == models.PositionSideLong {
		position.Extreme = bar.High
	} else {
		position.Extreme = bar.Low
	}

	return position
}

// updateTrailingStop tracks the most favorable price since entry and
// tightens the stop toward it. The stop never loosens.
func (e *Engine) updateTrailingStop(p *Position, bar models.Price) {
	if e.config.TrailingStopPercent <= 0 {
		return
	}

	fraction := e.config.TrailingStopPercent / 100
	if p.Side == models.PositionSideLong {
		p.Extreme = math.Max(p.Extreme, bar.High)
		p.StopLoss = math.Max(p.StopLoss, p.Extreme*(1-fraction))
	} else {
		p.Extreme = math.Min(p.Extreme, bar.Low)
		p.StopLoss = math.Min(p.StopLoss, p.Extreme*(1+fraction))
	}
}

// executeDCA fills at most the front of the DCA queue per candle,
// adding the initial position size at the level's price and
// recomputing the size-weighted average entry.
func (e *Engine) executeDCA(p *Position, bar models.Price) {
	if !e.config.UseDCA || len(p.DCALevels) == 0 {
		return
	}

	next := p.DCALevels[0]
	triggered := (p.Side == models.PositionSideLong && bar.Low <= next) ||
		(p.Side == models.PositionSideShort && bar.High >= next)
	if !triggered {
		return
	}

	added := p.InitialSize
	totalValue := p.EntryPrice*p.Size + next*added
	p.Size += added
	p.EntryPrice = totalValue / p.Size
	p.DCALevels = p.DCALevels[1:]
}

// checkExit fires the stop loss before the take profit: the intrabar
// path is unknown, so when both levels fall inside one candle the
// conservative outcome wins.
func checkExit(p *Position, bar models.Price) (exitPrice float64, reason string, exited bool) {
	if p.Side == models.PositionSideLong {
		if bar.Low <= p.StopLoss {
			return p.StopLoss, ExitStopLoss, true
		}
		if bar.High >= p.TakeProfit {
			return p.TakeProfit, ExitTakeProfit, true
		}
		return 0, "", false
	}

	if bar.High >= p.StopLoss {
		return p.StopLoss, ExitStopLoss, true
	}
	if bar.Low <= p.TakeProfit {
		return p.TakeProfit, ExitTakeProfit, true
	}
	return 0, "", false
}

func newClosedTrade(p *Position, bar models.Price, exitPrice float64, reason string, pnl, capitalAfter float64) ClosedTrade {
	return ClosedTrade{
		EntryTime:    p.EntryTime,
		ExitTime:     bar.OpenTime,
		Side:         p.Side,
		EntryPrice:   p.EntryPrice,
		ExitPrice:    exitPrice,
		ExitReason:   reason,
		Size:         p.Size,
		PnL:          pnl,
		PnLPercent:   pnl / p.Size * 100,
		CapitalAfter: capitalAfter,
	}
}
