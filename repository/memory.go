package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/yeremiapane/restaurant-floor/models"
)

// The memory stores keep values, never pointers handed out to callers, so a
// caller mutating a returned entity cannot change stored state.

type memoryTableStore struct {
	mu     sync.RWMutex
	tables map[string]models.Table
}

func NewMemoryTableStore() TableStore {
	return &memoryTableStore{tables: make(map[string]models.Table)}
}

func (s *memoryTableStore) List(_ context.Context) ([]models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Table, 0, len(s.tables))
	for _, t := range s.tables {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Number != result[j].Number {
			return result[i].Number < result[j].Number
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *memoryTableStore) GetByID(_ context.Context, id string) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *memoryTableStore) Insert(_ context.Context, t *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Version == 0 {
		t.Version = 1
	}
	s.tables[t.ID] = *t
	return nil
}

func (s *memoryTableStore) Update(_ context.Context, t *models.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tables[t.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != t.Version {
		return ErrOptimisticLock
	}
	t.Version++
	s.tables[t.ID] = *t
	return nil
}

type memoryReservationStore struct {
	mu           sync.RWMutex
	reservations map[string]models.Reservation
}

func NewMemoryReservationStore() ReservationStore {
	return &memoryReservationStore{reservations: make(map[string]models.Reservation)}
}

func (s *memoryReservationStore) List(_ context.Context) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *memoryReservationStore) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *memoryReservationStore) Insert(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Version == 0 {
		r.Version = 1
	}
	s.reservations[r.ID] = *r
	return nil
}

func (s *memoryReservationStore) Update(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reservations[r.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != r.Version {
		return ErrOptimisticLock
	}
	r.Version++
	s.reservations[r.ID] = *r
	return nil
}

func (s *memoryReservationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(s.reservations, id)
	return nil
}

type memoryCleaningLogStore struct {
	mu     sync.RWMutex
	nextID uint
	logs   []models.CleaningLog
}

func NewMemoryCleaningLogStore() CleaningLogStore {
	return &memoryCleaningLogStore{}
}

func (s *memoryCleaningLogStore) List(_ context.Context, tableID string) ([]models.CleaningLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.CleaningLog, 0, len(s.logs))
	for i := len(s.logs) - 1; i >= 0; i-- {
		if tableID == "" || s.logs[i].TableID == tableID {
			result = append(result, s.logs[i])
		}
	}
	return result, nil
}

func (s *memoryCleaningLogStore) FindOpen(_ context.Context, tableID string) (*models.CleaningLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.logs) - 1; i >= 0; i-- {
		entry := s.logs[i]
		if entry.TableID == tableID && entry.Status == models.CleaningPending {
			return &entry, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryCleaningLogStore) Insert(_ context.Context, l *models.CleaningLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	l.ID = s.nextID
	s.logs = append(s.logs, *l)
	return nil
}

func (s *memoryCleaningLogStore) Update(_ context.Context, l *models.CleaningLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.logs {
		if s.logs[i].ID == l.ID {
			s.logs[i] = *l
			return nil
		}
	}
	return ErrNotFound
}
