package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-floor/models"
	"gorm.io/gorm"
)

type cleaningLogRepo struct {
	db *gorm.DB
}

func NewCleaningLogRepo(db *gorm.DB) CleaningLogStore {
	return &cleaningLogRepo{db: db}
}

// List returns the logs of one table, or of every table when tableID is empty.
func (r *cleaningLogRepo) List(ctx context.Context, tableID string) ([]models.CleaningLog, error) {
	var logs []models.CleaningLog
	db := r.db.WithContext(ctx)
	if tableID != "" {
		db = db.Where("table_id = ?", tableID)
	}
	err := db.Order("started_at DESC, id DESC").Find(&logs).Error
	return logs, err
}

func (r *cleaningLogRepo) FindOpen(ctx context.Context, tableID string) (*models.CleaningLog, error) {
	var entry models.CleaningLog
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND status = ?", tableID, models.CleaningPending).
		Order("started_at DESC").
		First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (r *cleaningLogRepo) Insert(ctx context.Context, l *models.CleaningLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *cleaningLogRepo) Update(ctx context.Context, l *models.CleaningLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}
