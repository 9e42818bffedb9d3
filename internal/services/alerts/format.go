package alerts

import (
	"fmt"
	"strings"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/services/strategy"
)

// FormatSetupMessage renders a setup as a Telegram Markdown alert.
// The same text doubles as the email body.
func FormatSetupMessage(symbol, timeFrame string, currentPrice float64, setup *strategy.Setup, confidence float64, reasons []string) string {
	icon := "🟢"
	side := "LONG"
	if setup.Side == models.PositionSideShort {
		icon = "🔴"
		side = "SHORT"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *Trade Setup: %s* (%s %s)\n\n", icon, symbol, side, timeFrame)
	fmt.Fprintf(&b, "*Signal:* %s\n", setup.Signal)
	fmt.Fprintf(&b, "*Price:* $%.5f\n", currentPrice)
	fmt.Fprintf(&b, "*Entry:* $%.5f\n", setup.Entry)
	fmt.Fprintf(&b, "*Stop Loss:* $%.5f\n", setup.StopLoss)
	fmt.Fprintf(&b, "*Take Profit:* $%.5f\n\n", setup.TakeProfit)

	b.WriteString("*DCA Levels:*\n")
	for i, level := range setup.DCALevels {
		fmt.Fprintf(&b, "%d. $%.5f\n", i+1, level)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Confidence:* %.1f%% %s\n", confidence, confidenceStars(confidence))
	if rr := riskReward(setup); rr > 0 {
		fmt.Fprintf(&b, "*R:R:* %.1f\n", rr)
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&b, "_Reasons: %s_", strings.Join(reasons, ", "))
	}

	return b.String()
}

func confidenceStars(confidence float64) string {
	stars := int(confidence / 20)
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("⭐", stars)
}

func riskReward(setup *strategy.Setup) float64 {
	risk := setup.Entry - setup.StopLoss
	reward := setup.TakeProfit - setup.Entry
	if setup.Side == models.PositionSideShort {
		risk, reward = -risk, -reward
	}
	if risk <= 0 {
		return 0
	}
	return reward / risk
}
