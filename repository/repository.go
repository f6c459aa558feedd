package repository

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-floor/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")
)

// TableStore persists tables. List returns inactive tables too, ordered by
// number ascending. Update succeeds only when the stored version equals
// t.Version, and bumps t.Version on success.
type TableStore interface {
	List(ctx context.Context) ([]models.Table, error)
	GetByID(ctx context.Context, id string) (*models.Table, error)
	Insert(ctx context.Context, t *models.Table) error
	Update(ctx context.Context, t *models.Table) error
}

// ReservationStore persists reservations. List is ordered most recent first.
type ReservationStore interface {
	List(ctx context.Context) ([]models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	Insert(ctx context.Context, r *models.Reservation) error
	Update(ctx context.Context, r *models.Reservation) error
	Delete(ctx context.Context, id string) error
}

// CleaningLogStore persists cleaning periods, newest first.
type CleaningLogStore interface {
	List(ctx context.Context, tableID string) ([]models.CleaningLog, error)
	FindOpen(ctx context.Context, tableID string) (*models.CleaningLog, error)
	Insert(ctx context.Context, l *models.CleaningLog) error
	Update(ctx context.Context, l *models.CleaningLog) error
}

// Repository groups every store the floor services depend on.
type Repository struct {
	Tables       TableStore
	Reservations ReservationStore
	CleaningLogs CleaningLogStore
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Tables:       NewTableRepo(db),
		Reservations: NewReservationRepo(db),
		CleaningLogs: NewCleaningLogRepo(db),
	}
}

func NewMemoryRepository() *Repository {
	return &Repository{
		Tables:       NewMemoryTableStore(),
		Reservations: NewMemoryReservationStore(),
		CleaningLogs: NewMemoryCleaningLogStore(),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
