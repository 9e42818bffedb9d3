package backtest

// CalculateMetrics reduces a trade list and equity curve to summary
// statistics. Pure function: recomputed from scratch each run.
//
// A breakeven trade (pnl == 0) counts as a loss; the win threshold is
// strictly positive PnL.
func CalculateMetrics(trades []ClosedTrade, equityCurve []EquityPoint, initialCapital, finalCapital float64) Metrics {
	if len(trades) == 0 {
		return Metrics{}
	}

	m := Metrics{
		TotalTrades:  len(trades),
		FinalCapital: finalCapital,
	}

	var grossProfit, grossLoss float64
	var totalDurationHours float64
	for _, trade := range trades {
		if trade.PnL > 0 {
			m.WinningTrades++
			grossProfit += trade.PnL
			if trade.PnL > m.LargestWin {
				m.LargestWin = trade.PnL
			}
		} else {
			m.LosingTrades++
			grossLoss += -trade.PnL
			if trade.PnL < m.LargestLoss {
				m.LargestLoss = trade.PnL
			}
		}
		totalDurationHours += trade.ExitTime.Sub(trade.EntryTime).Hours()
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100

	switch {
	case grossLoss > 0:
		m.ProfitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		m.ProfitFactor = grossProfit
	}

	m.TotalReturn = finalCapital - initialCapital
	m.TotalReturnPct = m.TotalReturn / initialCapital * 100

	if m.WinningTrades > 0 {
		m.AvgWin = grossProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = grossLoss / float64(m.LosingTrades)
	}

	m.MaxDrawdown, m.MaxDrawdownPct = maxDrawdown(equityCurve, initialCapital)
	m.AvgTradeDurationHours = totalDurationHours / float64(m.TotalTrades)

	return m
}

// maxDrawdown scans the equity curve once, tracking the running peak.
// The percentage reported is the one observed at the deepest absolute
// drawdown.
func maxDrawdown(equityCurve []EquityPoint, initialCapital float64) (drawdown, drawdownPct float64) {
	peak := initialCapital

	for _, point := range equityCurve {
		if point.Equity > peak {
			peak = point.Equity
		}
		dd := peak - point.Equity
		if dd > drawdown {
			drawdown = dd
			if peak > 0 {
				drawdownPct = dd / peak * 100
			}
		}
	}

	return drawdown, drawdownPct
}
