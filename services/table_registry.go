package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/repository"
	"github.com/yeremiapane/restaurant-floor/utils"
)

const DefaultCleaningEtaMinutes = 10

type TableInput struct {
	Number   int    `json:"number" validate:"gte=1"`
	Capacity int    `json:"capacity" validate:"gte=1"`
	Location string `json:"location" validate:"max=100"`
}

// TransitionPayload carries the fields a target state needs. Which ones are
// required depends on the target.
type TransitionPayload struct {
	Occupants          int     `json:"occupants"`
	Server             string  `json:"server"`
	ReservationTime    string  `json:"reservation_time"`
	CleaningEtaMinutes *int    `json:"cleaning_eta_minutes"`
	Notes              *string `json:"notes"`
	ExpectedVersion    *int    `json:"expected_version"`

	// Actor is the staff member performing the change, recorded on cleaning logs.
	Actor string `json:"-"`
}

// TableRegistry is the only path by which a table's state changes.
type TableRegistry struct {
	store       repository.TableStore
	cleaning    repository.CleaningLogStore
	clock       Clock
	validate    *validator.Validate
	locks       *keyedMutex
	createMu    sync.Mutex
	cleaningEta int
}

func NewTableRegistry(store repository.TableStore, cleaning repository.CleaningLogStore, clock Clock, cleaningEta int) *TableRegistry {
	if clock == nil {
		clock = SystemClock
	}
	if cleaningEta <= 0 {
		cleaningEta = DefaultCleaningEtaMinutes
	}
	return &TableRegistry{
		store:       store,
		cleaning:    cleaning,
		clock:       clock,
		validate:    newValidator(),
		locks:       newKeyedMutex(),
		cleaningEta: cleaningEta,
	}
}

// ListActive returns every active table ordered by number.
func (r *TableRegistry) ListActive(ctx context.Context) ([]models.Table, error) {
	tables, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	active := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

func (r *TableRegistry) ListByState(ctx context.Context, state models.TableState) ([]models.Table, error) {
	if !state.Valid() {
		return nil, errPayload("state", "unknown table state")
	}
	tables, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Table, 0, len(tables))
	for _, t := range tables {
		if t.State == state {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (r *TableRegistry) GetByID(ctx context.Context, id string) (*models.Table, error) {
	table, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTableNotFound(id)
		}
		return nil, fmt.Errorf("get table %s: %w", id, err)
	}
	if !table.Active {
		return nil, errTableNotFound(id)
	}
	return table, nil
}

// AddTable registers a new free table. Numbers are unique among active tables.
func (r *TableRegistry) AddTable(ctx context.Context, in TableInput) (*models.Table, error) {
	in.Location = strings.TrimSpace(in.Location)
	if err := r.validate.Struct(in); err != nil {
		return nil, errValidation(fieldErrors(err))
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	active, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range active {
		if t.Number == in.Number {
			return nil, errValidation([]FieldError{{Field: "number", Reason: "is already used by another active table"}})
		}
	}

	now := r.clock.Now()
	table := models.Table{
		ID:        uuid.NewString(),
		Number:    in.Number,
		Capacity:  in.Capacity,
		Location:  in.Location,
		Active:    true,
		State:     models.TableFree,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.store.Insert(ctx, &table); err != nil {
		return nil, fmt.Errorf("insert table: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id": table.ID,
		"number":   table.Number,
		"capacity": table.Capacity,
	}).Info("table added")
	return &table, nil
}

// Transition moves a table to target. Any state may move to any other; the
// payload contract of the target state is what gates the change.
func (r *TableRegistry) Transition(ctx context.Context, id string, target models.TableState, p TransitionPayload) (*models.Table, error) {
	if !target.Valid() {
		return nil, errPayload("state", "unknown table state")
	}

	unlock := r.locks.Lock(id)
	defer unlock()

	table, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ExpectedVersion != nil && *p.ExpectedVersion != table.Version {
		return nil, errConflict("table")
	}

	previous := table.State
	now := r.clock.Now()
	next := *table

	switch target {
	case models.TableOccupied:
		server := strings.TrimSpace(p.Server)
		if p.Occupants < 1 {
			return nil, errPayload("occupants", "must be at least 1")
		}
		if server == "" {
			return nil, errPayload("server", "is required")
		}
		if p.Occupants > table.Capacity {
			return nil, errCapacity(table.Capacity)
		}
		// re-seating an occupied table needs the caller to prove which seating it saw
		if table.State == models.TableOccupied && p.ExpectedVersion == nil {
			return nil, errAlreadyOccupied()
		}
		next.Occupants = p.Occupants
		next.Server = server
		next.OccupiedAt = &now

	case models.TableReserved:
		reservationTime := strings.TrimSpace(p.ReservationTime)
		if reservationTime == "" {
			return nil, errPayload("reservation_time", "is required")
		}
		if !hhmmPattern.MatchString(reservationTime) {
			return nil, errPayload("reservation_time", "must use 24h HH:MM format")
		}
		next.ReservationTime = reservationTime
		next.ReservedAt = &now
		if server := strings.TrimSpace(p.Server); server != "" {
			next.Server = server
		}

	case models.TableCleaning:
		eta := r.cleaningEta
		if p.CleaningEtaMinutes != nil {
			if *p.CleaningEtaMinutes < 1 {
				return nil, errPayload("cleaning_eta_minutes", "must be at least 1")
			}
			eta = *p.CleaningEtaMinutes
		}
		next.CleaningEtaMinutes = eta

	case models.TableFree:
	}

	next.State = target
	if p.Notes != nil {
		next.Notes = strings.TrimSpace(*p.Notes)
	}
	next.ClearForeign()
	next.UpdatedAt = now

	if err := r.save(ctx, &next); err != nil {
		return nil, err
	}
	r.recordCleaning(ctx, previous, &next, p.Actor)

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id": next.ID,
		"number":   next.Number,
		"from":     previous,
		"to":       next.State,
	}).Info("table transitioned")
	return &next, nil
}

// AssignServer changes who serves the table without touching its state.
func (r *TableRegistry) AssignServer(ctx context.Context, id, server string) (*models.Table, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, errPayload("server", "is required")
	}

	unlock := r.locks.Lock(id)
	defer unlock()

	table, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.State != models.TableOccupied && table.State != models.TableReserved {
		return nil, errPayload("server", fmt.Sprintf("a %s table has no server", table.State))
	}

	next := *table
	next.Server = server
	next.UpdatedAt = r.clock.Now()
	if err := r.save(ctx, &next); err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id": next.ID,
		"server":   server,
	}).Info("server assigned")
	return &next, nil
}

// CheckCapacity fails when the active table id cannot seat partySize guests.
func (r *TableRegistry) CheckCapacity(ctx context.Context, id string, partySize int) error {
	table, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if table.Capacity < partySize {
		return errCapacity(table.Capacity)
	}
	return nil
}

// deactivate soft-deletes a table. Callers must release reservation bindings
// first; see AssignmentCoordinator.RetireTable.
func (r *TableRegistry) deactivate(ctx context.Context, id, actor string) (*models.Table, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	table, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := table.State
	next := *table
	next.Active = false
	next.State = models.TableFree
	next.ClearForeign()
	next.UpdatedAt = r.clock.Now()
	if err := r.save(ctx, &next); err != nil {
		return nil, err
	}
	r.recordCleaning(ctx, previous, &next, actor)

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id": next.ID,
		"number":   next.Number,
	}).Info("table deactivated")
	return &next, nil
}

// CleaningLogs lists cleaning periods for one table, or all when tableID is empty.
func (r *TableRegistry) CleaningLogs(ctx context.Context, tableID string) ([]models.CleaningLog, error) {
	logs, err := r.cleaning.List(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("list cleaning logs: %w", err)
	}
	return logs, nil
}

func (r *TableRegistry) save(ctx context.Context, t *models.Table) error {
	err := r.store.Update(ctx, t)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOptimisticLock):
		return errConflict("table")
	case errors.Is(err, repository.ErrNotFound):
		return errTableNotFound(t.ID)
	}
	return fmt.Errorf("update table %s: %w", t.ID, err)
}

// recordCleaning opens a log when a table enters cleaning and closes it when
// the table leaves. The table change is already committed, so failures here
// are logged and not returned.
func (r *TableRegistry) recordCleaning(ctx context.Context, previous models.TableState, t *models.Table, actor string) {
	if r.cleaning == nil {
		return
	}
	entering := previous != models.TableCleaning && t.State == models.TableCleaning
	leaving := previous == models.TableCleaning && t.State != models.TableCleaning
	if !entering && !leaving {
		return
	}

	fields := logrus.Fields{"table_id": t.ID}
	if entering {
		entry := models.CleaningLog{
			TableID:    t.ID,
			StartedBy:  actor,
			EtaMinutes: t.CleaningEtaMinutes,
			Status:     models.CleaningPending,
			StartedAt:  t.UpdatedAt,
		}
		if err := r.cleaning.Insert(ctx, &entry); err != nil {
			utils.ErrorLogger.WithFields(fields).WithError(err).Error("cannot open cleaning log")
		}
		return
	}

	entry, err := r.cleaning.FindOpen(ctx, t.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			utils.ErrorLogger.WithFields(fields).WithError(err).Error("cannot load open cleaning log")
		}
		return
	}
	finished := t.UpdatedAt
	entry.Status = models.CleaningDone
	entry.FinishedAt = &finished
	if err := r.cleaning.Update(ctx, entry); err != nil {
		utils.ErrorLogger.WithFields(fields).WithError(err).Error("cannot close cleaning log")
	}
}
