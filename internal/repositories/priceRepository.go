package repositories

import (
	"errors"
	"time"

	"CryptoTradeLab/internal/models"

	"gorm.io/gorm"
)

type PriceRepository struct {
	db *gorm.DB
}

// NewPriceRepository creates a new instance of PriceRepository
func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Create adds a new Price record to the database
func (r *PriceRepository) Create(price *models.Price) error {
	if price == nil {
		return errors.New("price cannot be nil")
	}
	return r.db.Create(price).Error
}

// SaveBatch stores a fetched candle batch in one insert
func (r *PriceRepository) SaveBatch(prices []models.Price) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.Create(&prices).Error
}

// GetPricesByTimeFrame gets candles for a symbol and timeframe in
// chronological order
func (r *PriceRepository) GetPricesByTimeFrame(symbol, timeFrame string, start, end time.Time) ([]models.Price, error) {
	if symbol == "" || timeFrame == "" {
		return nil, errors.New("invalid symbol or timeframe")
	}

	var prices []models.Price
	err := r.db.Where("symbol = ? AND time_frame = ? AND open_time BETWEEN ? AND ?",
		symbol, timeFrame, start, end).
		Order("open_time ASC").
		Find(&prices).Error
	return prices, err
}

// GetLatestPriceByTimeFrame gets the most recent candle for a symbol
// and timeframe
func (r *PriceRepository) GetLatestPriceByTimeFrame(symbol, timeFrame string) (*models.Price, error) {
	if symbol == "" || timeFrame == "" {
		return nil, errors.New("invalid symbol or timeframe")
	}

	var price models.Price
	err := r.db.Where("symbol = ? AND time_frame = ?", symbol, timeFrame).
		Order("open_time DESC").
		First(&price).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}
