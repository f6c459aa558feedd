package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-floor/models"
	"gorm.io/gorm"
)

type tableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) TableStore {
	return &tableRepo{db: db}
}

func (r *tableRepo) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepo) GetByID(ctx context.Context, id string) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		return nil, notFound(err)
	}
	return &table, nil
}

func (r *tableRepo) Insert(ctx context.Context, t *models.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tableRepo) Update(ctx context.Context, t *models.Table) error {
	oldVersion := t.Version
	t.Version = oldVersion + 1
	result := r.db.WithContext(ctx).
		Model(t).
		Where("version = ?", oldVersion).
		Select("*").
		Omit("created_at").
		Updates(t)
	if result.Error != nil {
		t.Version = oldVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		t.Version = oldVersion
		return ErrOptimisticLock
	}
	return nil
}
