package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-floor/models"
	"gorm.io/gorm"
)

type reservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) ReservationStore {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) List(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, notFound(err)
	}
	return &reservation, nil
}

func (r *reservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	oldVersion := res.Version
	res.Version = oldVersion + 1
	result := r.db.WithContext(ctx).
		Model(res).
		Where("version = ?", oldVersion).
		Select("*").
		Omit("created_at").
		Updates(res)
	if result.Error != nil {
		res.Version = oldVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		res.Version = oldVersion
		return ErrOptimisticLock
	}
	return nil
}

func (r *reservationRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Reservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
