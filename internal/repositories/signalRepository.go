package repositories

import (
	"errors"
	"time"

	"CryptoTradeLab/internal/models"

	"gorm.io/gorm"
)

// DuplicateWindow is how far back a matching signal suppresses a new one.
const DuplicateWindow = 24 * time.Hour

// DuplicatePriceTolerance is the relative entry price band for duplicates.
const DuplicatePriceTolerance = 0.01

type SignalRepository struct {
	db *gorm.DB
}

// NewSignalRepository creates a new instance of SignalRepository
func NewSignalRepository(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Create adds a new Signal record to the database
func (r *SignalRepository) Create(signal *models.Signal) error {
	if signal == nil {
		return errors.New("signal cannot be nil")
	}
	return r.db.Create(signal).Error
}

// FindByID finds a Signal by its ID
func (r *SignalRepository) FindByID(id uint) (*models.Signal, error) {
	var signal models.Signal
	err := r.db.First(&signal, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &signal, err
}

// UpdateStatus transitions a signal to a new status. When the status is
// ALERTED the alert timestamp is recorded as well.
func (r *SignalRepository) UpdateStatus(id uint, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == models.SignalStatusAlerted {
		now := time.Now()
		updates["alerted_at"] = &now
	}
	return r.db.Model(&models.Signal{}).Where("id = ?", id).Updates(updates).Error
}

// IsDuplicate reports whether a signal with the same symbol, timeframe and
// side, at an entry price within tolerance, was already recorded inside the
// duplicate window.
func (r *SignalRepository) IsDuplicate(symbol, timeFrame, side string, entryPrice float64) (bool, error) {
	if symbol == "" || entryPrice <= 0 {
		return false, errors.New("invalid symbol or entry price")
	}

	since := time.Now().Add(-DuplicateWindow)
	band := entryPrice * DuplicatePriceTolerance

	var count int64
	err := r.db.Model(&models.Signal{}).
		Where("symbol = ? AND time_frame = ? AND side = ?", symbol, timeFrame, side).
		Where("timestamp > ?", since).
		Where("entry_price BETWEEN ? AND ?", entryPrice-band, entryPrice+band).
		Count(&count).Error
	return count > 0, err
}

// SignalFilter narrows FindSignals queries. Zero values are ignored.
type SignalFilter struct {
	Symbol        string
	Status        string
	MinConfluence int
	Since         time.Time
	Limit         int
}

// FindSignals returns signals matching the filter, newest first
func (r *SignalRepository) FindSignals(filter SignalFilter) ([]models.Signal, error) {
	query := r.db.Model(&models.Signal{})
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", filter.Symbol)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinConfluence > 0 {
		query = query.Where("confluence_score >= ?", filter.MinConfluence)
	}
	if !filter.Since.IsZero() {
		query = query.Where("timestamp >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var signals []models.Signal
	err := query.Order("timestamp DESC").Find(&signals).Error
	return signals, err
}

// CountByStatus returns how many signals hold the given status.
// An empty status counts every signal.
func (r *SignalRepository) CountByStatus(status string) (int64, error) {
	query := r.db.Model(&models.Signal{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
