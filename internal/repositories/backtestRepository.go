package repositories

import (
	"errors"

	"CryptoTradeLab/internal/models"

	"gorm.io/gorm"
)

type BacktestRepository struct {
	db *gorm.DB
}

// NewBacktestRepository creates a new instance of BacktestRepository
func NewBacktestRepository(db *gorm.DB) *BacktestRepository {
	return &BacktestRepository{db: db}
}

// Create stores a finished backtest run
func (r *BacktestRepository) Create(record *models.BacktestRecord) error {
	if record == nil {
		return errors.New("backtest record cannot be nil")
	}
	return r.db.Create(record).Error
}

// FindBySymbol returns past runs for a symbol, newest first
func (r *BacktestRepository) FindBySymbol(symbol string, limit int) ([]models.BacktestRecord, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	query := r.db.Where("symbol = ?", symbol)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.BacktestRecord
	err := query.Order("timestamp DESC").Find(&records).Error
	return records, err
}

// FindLatest returns the most recent run for a symbol and timeframe
func (r *BacktestRepository) FindLatest(symbol, timeFrame string) (*models.BacktestRecord, error) {
	var record models.BacktestRecord
	err := r.db.Where("symbol = ? AND time_frame = ?", symbol, timeFrame).
		Order("timestamp DESC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}
