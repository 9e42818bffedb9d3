package repositories

import (
	"errors"
	"time"

	"CryptoTradeLab/internal/models"

	"gorm.io/gorm"
)

type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new instance of TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create adds a new TradeRecord to the journal
func (r *TradeRepository) Create(trade *models.TradeRecord) error {
	if trade == nil {
		return errors.New("trade cannot be nil")
	}
	return r.db.Create(trade).Error
}

// FindByID finds a TradeRecord by its ID
func (r *TradeRepository) FindByID(id uint) (*models.TradeRecord, error) {
	var trade models.TradeRecord
	err := r.db.First(&trade, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &trade, err
}

// CloseTrade records the exit of an open trade and computes its result.
// A zero PnL counts as breakeven in the journal even though the backtester
// treats it as a loss for win rate purposes.
func (r *TradeRepository) CloseTrade(id uint, exitPrice float64, exitTime time.Time) (*models.TradeRecord, error) {
	if exitPrice <= 0 {
		return nil, errors.New("invalid exit price")
	}

	trade, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, errors.New("trade not found")
	}
	if trade.ExitTime != nil {
		return nil, errors.New("trade already closed")
	}

	var pnl float64
	if trade.Side == models.PositionSideLong {
		pnl = trade.Quantity * (exitPrice - trade.EntryPrice) / trade.EntryPrice
	} else {
		pnl = trade.Quantity * (trade.EntryPrice - exitPrice) / trade.EntryPrice
	}

	trade.ExitTime = &exitTime
	trade.ExitPrice = &exitPrice
	trade.PnL = pnl
	if trade.Quantity > 0 {
		trade.PnLPercent = pnl / trade.Quantity * 100
	}
	switch {
	case pnl > 0:
		trade.Outcome = models.TradeOutcomeWin
	case pnl < 0:
		trade.Outcome = models.TradeOutcomeLoss
	default:
		trade.Outcome = models.TradeOutcomeBreakeven
	}

	if err := r.db.Save(trade).Error; err != nil {
		return nil, err
	}
	return trade, nil
}

// FindOpen returns trades that have not been closed yet. Symbol is optional.
func (r *TradeRepository) FindOpen(symbol string) ([]models.TradeRecord, error) {
	query := r.db.Where("exit_time IS NULL")
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	var trades []models.TradeRecord
	err := query.Order("entry_time ASC").Find(&trades).Error
	return trades, err
}

// FindClosed returns completed trades, newest first. Symbol is optional.
func (r *TradeRepository) FindClosed(symbol string, limit int) ([]models.TradeRecord, error) {
	query := r.db.Where("exit_time IS NOT NULL")
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var trades []models.TradeRecord
	err := query.Order("exit_time DESC").Find(&trades).Error
	return trades, err
}

// GetTotalPnL sums realized PnL across the whole journal
func (r *TradeRepository) GetTotalPnL() (float64, error) {
	var total float64
	err := r.db.Model(&models.TradeRecord{}).
		Where("exit_time IS NOT NULL").
		Select("COALESCE(SUM(pn_l), 0)").
		Scan(&total).Error
	return total, err
}
