package monitor

import (
	"context"
	"encoding/json"
	"time"

	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/repositories"
	"CryptoTradeLab/internal/services/alerts"

	"go.uber.org/zap"
)

// TimeFrameConfig weights a timeframe's confidence and sets how often it
// is rescanned. Higher timeframes carry more weight and scan less often.
type TimeFrameConfig struct {
	Weight       float64
	ScanInterval time.Duration
}

// DefaultTimeFrames lists the supported scan timeframes in ascending order
var DefaultTimeFrames = map[string]TimeFrameConfig{
	"5m":  {Weight: 0.8, ScanInterval: 5 * time.Minute},
	"15m": {Weight: 1.0, ScanInterval: 15 * time.Minute},
	"1h":  {Weight: 1.2, ScanInterval: time.Hour},
	"4h":  {Weight: 1.5, ScanInterval: 4 * time.Hour},
	"1d":  {Weight: 2.0, ScanInterval: 24 * time.Hour},
}

// scanOrder fixes the iteration order over DefaultTimeFrames
var scanOrder = []string{"5m", "15m", "1h", "4h", "1d"}

type Config struct {
	Symbols          []string
	TimeFrames       []string
	LookbackDays     int
	MinConfluence    float64
	CycleInterval    time.Duration
	SymbolCooldown   time.Duration
	MaxAlertsPerHour int
}

type Monitor struct {
	scanner  *Scanner
	signals  *repositories.SignalRepository
	telegram *alerts.TelegramService
	email    *alerts.EmailService
	state    *AlertState
	logger   *zap.Logger
	cfg      Config

	lastScan map[string]time.Time
}

func NewMonitor(scanner *Scanner, signalRepo *repositories.SignalRepository,
	telegram *alerts.TelegramService, email *alerts.EmailService,
	cfg Config, logger *zap.Logger) *Monitor {
	if cfg.CycleInterval <= 0 {
		cfg.CycleInterval = 5 * time.Minute
	}
	if len(cfg.TimeFrames) == 0 {
		cfg.TimeFrames = scanOrder
	}
	return &Monitor{
		scanner:  scanner,
		signals:  signalRepo,
		telegram: telegram,
		email:    email,
		state:    NewAlertState(cfg.SymbolCooldown, cfg.MaxAlertsPerHour),
		logger:   logger,
		cfg:      cfg,
		lastScan: make(map[string]time.Time),
	}
}

// Run scans until the context is cancelled. Timeframes are staggered:
// each one is rescanned only after its own interval has passed.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		zap.Strings("symbols", m.cfg.Symbols),
		zap.Strings("timeframes", m.cfg.TimeFrames),
		zap.Float64("min_confluence", m.cfg.MinConfluence))

	ticker := time.NewTicker(m.cfg.CycleInterval)
	defer ticker.Stop()

	m.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			m.runCycle(ctx)
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context) {
	alertsSent := 0

	for _, timeFrame := range scanOrder {
		if ctx.Err() != nil {
			return
		}
		if !m.timeFrameEnabled(timeFrame) {
			continue
		}

		tfConfig := DefaultTimeFrames[timeFrame]
		if time.Since(m.lastScan[timeFrame]) < tfConfig.ScanInterval {
			continue
		}

		results, err := m.scanner.Scan(ctx, m.cfg.Symbols, timeFrame, m.cfg.LookbackDays)
		if err != nil {
			m.logger.Error("scan failed", zap.String("timeframe", timeFrame), zap.Error(err))
			continue
		}
		m.lastScan[timeFrame] = time.Now()

		for _, result := range results {
			if result.Confidence < m.cfg.MinConfluence {
				continue
			}
			if !m.state.WithinHourlyLimit() {
				m.logger.Warn("hourly alert limit reached, skipping remaining setups")
				break
			}

			result.WeightedConfidence = weightConfidence(result.Confidence, tfConfig.Weight)
			if m.processSetup(ctx, result) {
				alertsSent++
			}
		}
	}

	m.logger.Info("cycle finished", zap.Int("alerts_sent", alertsSent))
}

// processSetup dedupes, persists and alerts one qualified setup.
// Returns true when an alert actually went out.
func (m *Monitor) processSetup(ctx context.Context, result ScanResult) bool {
	duplicate, err := m.signals.IsDuplicate(result.Symbol, result.TimeFrame, result.Setup.Side, result.Setup.Entry)
	if err != nil {
		m.logger.Error("duplicate check failed", zap.String("symbol", result.Symbol), zap.Error(err))
		return false
	}
	if duplicate {
		m.logger.Debug("skipping duplicate signal", zap.String("symbol", result.Symbol))
		return false
	}
	if m.state.OnCooldown(result.Symbol) {
		m.logger.Debug("symbol on cooldown", zap.String("symbol", result.Symbol))
		return false
	}

	signal := m.buildSignal(result)
	if err := m.signals.Create(signal); err != nil {
		m.logger.Error("failed to save signal", zap.String("symbol", result.Symbol), zap.Error(err))
	}

	message := alerts.FormatSetupMessage(result.Symbol, result.TimeFrame,
		result.Price, result.Setup, result.WeightedConfidence, result.Reasons)

	sent := false
	if m.telegram != nil && m.telegram.Configured() {
		if err := m.telegram.Send(ctx, message); err != nil {
			m.logger.Error("telegram alert failed", zap.String("symbol", result.Symbol), zap.Error(err))
		} else {
			sent = true
		}
	}
	if m.email != nil && m.email.Configured() {
		subject := "Trade Setup: " + result.Symbol
		if err := m.email.Send(subject, message); err != nil {
			m.logger.Error("email alert failed", zap.String("symbol", result.Symbol), zap.Error(err))
		} else {
			sent = true
		}
	}

	if sent {
		m.state.RecordAlert(result.Symbol)
		if signal.ID != 0 {
			if err := m.signals.UpdateStatus(signal.ID, models.SignalStatusAlerted); err != nil {
				m.logger.Error("failed to update signal status", zap.Uint("id", signal.ID), zap.Error(err))
			}
		}
		m.logger.Info("alert sent",
			zap.String("symbol", result.Symbol),
			zap.String("timeframe", result.TimeFrame),
			zap.Float64("confidence", result.Confidence),
			zap.Float64("weighted", result.WeightedConfidence))
	}
	return sent
}

func (m *Monitor) buildSignal(result ScanResult) *models.Signal {
	reasons, _ := json.Marshal(result.Reasons)
	return &models.Signal{
		Symbol:            result.Symbol,
		TimeFrame:         result.TimeFrame,
		Side:              result.Setup.Side,
		EntryPrice:        result.Setup.Entry,
		StopLoss:          result.Setup.StopLoss,
		TakeProfit:        result.Setup.TakeProfit,
		DCA1:              result.Setup.DCALevels[0],
		DCA2:              result.Setup.DCALevels[1],
		DCA3:              result.Setup.DCALevels[2],
		ConfluenceScore:   int(result.Confidence),
		ConfluenceReasons: string(reasons),
		Status:            models.SignalStatusNew,
	}
}

func (m *Monitor) timeFrameEnabled(timeFrame string) bool {
	for _, tf := range m.cfg.TimeFrames {
		if tf == timeFrame {
			return true
		}
	}
	return false
}

// weightConfidence scales the base score by the timeframe weight, capped
// at 100
func weightConfidence(confidence, weight float64) float64 {
	weighted := confidence * weight
	if weighted > 100 {
		return 100
	}
	return weighted
}
