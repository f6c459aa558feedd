package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/repository"
	"github.com/yeremiapane/restaurant-floor/utils"
)

type ReservationInput struct {
	CustomerName    string           `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail   string           `json:"customer_email" validate:"required,email"`
	CustomerPhone   string           `json:"customer_phone" validate:"required,phone"`
	Date            string           `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string           `json:"time" validate:"required,hhmm"`
	PartySize       int              `json:"party_size" validate:"gte=1,lte=20"`
	EventType       models.EventType `json:"event_type" validate:"omitempty,oneof=birthday anniversary business family other"`
	Notes           string           `json:"notes" validate:"max=500"`
	SpecialRequests string           `json:"special_requests" validate:"max=500"`
}

func (in *ReservationInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)
	in.SpecialRequests = strings.TrimSpace(in.SpecialRequests)
	if in.EventType == "" {
		in.EventType = models.EventOther
	}
}

// ReservationPatch is a partial edit; nil fields are left untouched.
type ReservationPatch struct {
	CustomerName    *string                  `json:"customer_name"`
	CustomerEmail   *string                  `json:"customer_email"`
	CustomerPhone   *string                  `json:"customer_phone"`
	Date            *string                  `json:"date"`
	Time            *string                  `json:"time"`
	PartySize       *int                     `json:"party_size"`
	EventType       *models.EventType        `json:"event_type"`
	Notes           *string                  `json:"notes"`
	SpecialRequests *string                  `json:"special_requests"`
	State           *models.ReservationState `json:"state"`
}

type ReservationFilter struct {
	Date  string
	State models.ReservationState
}

// CapacityChecker reports whether a table can seat a party.
type CapacityChecker interface {
	CheckCapacity(ctx context.Context, tableID string, partySize int) error
}

// ReservationRegistry owns reservation creation and the linear lifecycle
// pending -> confirmed -> completed, with cancellation from either open state.
type ReservationRegistry struct {
	store    repository.ReservationStore
	tables   CapacityChecker
	clock    Clock
	validate *validator.Validate
	locks    *keyedMutex
}

func NewReservationRegistry(store repository.ReservationStore, tables CapacityChecker, clock Clock) *ReservationRegistry {
	if clock == nil {
		clock = SystemClock
	}
	return &ReservationRegistry{
		store:    store,
		tables:   tables,
		clock:    clock,
		validate: newValidator(),
		locks:    newKeyedMutex(),
	}
}

func (r *ReservationRegistry) Create(ctx context.Context, in ReservationInput) (*models.Reservation, error) {
	in.normalize()
	if fields := r.check(in, true); len(fields) > 0 {
		return nil, errValidation(fields)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate reservation id: %w", err)
	}

	now := r.clock.Now()
	reservation := models.Reservation{
		ID:              id.String(),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		Date:            in.Date,
		Time:            in.Time,
		PartySize:       in.PartySize,
		EventType:       in.EventType,
		Notes:           in.Notes,
		SpecialRequests: in.SpecialRequests,
		State:           models.ReservationPending,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := r.store.Insert(ctx, &reservation); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"date":           reservation.Date,
		"time":           reservation.Time,
		"party_size":     reservation.PartySize,
	}).Info("reservation created")
	return &reservation, nil
}

// List returns every reservation, most recently created first.
func (r *ReservationRegistry) List(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRegistry) ListFiltered(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	if f.State != "" && !f.State.Valid() {
		return nil, errValidation([]FieldError{{Field: "state", Reason: "is not a reservation state"}})
	}
	reservations, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if f.Date != "" && res.Date != f.Date {
			continue
		}
		if f.State != "" && res.State != f.State {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered, nil
}

func (r *ReservationRegistry) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errReservationNotFound(id)
		}
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return reservation, nil
}

func (r *ReservationRegistry) Confirm(ctx context.Context, id string) (*models.Reservation, error) {
	return r.transition(ctx, id, models.ReservationConfirmed)
}

func (r *ReservationRegistry) Complete(ctx context.Context, id string) (*models.Reservation, error) {
	return r.transition(ctx, id, models.ReservationCompleted)
}

func (r *ReservationRegistry) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	return r.transition(ctx, id, models.ReservationCancelled)
}

// Update applies a partial edit. A state in the patch follows the same edge
// rules as Confirm/Complete/Cancel, and terminal reservations reject edits.
func (r *ReservationRegistry) Update(ctx context.Context, id string, patch ReservationPatch) (*models.Reservation, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.State.Terminal() {
		return nil, &BusinessError{
			Kind:    KindInvalidStateTransition,
			Message: fmt.Sprintf("reservation is %s and can no longer be edited", current.State),
		}
	}

	in := ReservationInput{
		CustomerName:    pick(patch.CustomerName, current.CustomerName),
		CustomerEmail:   pick(patch.CustomerEmail, current.CustomerEmail),
		CustomerPhone:   pick(patch.CustomerPhone, current.CustomerPhone),
		Date:            pick(patch.Date, current.Date),
		Time:            pick(patch.Time, current.Time),
		PartySize:       pick(patch.PartySize, current.PartySize),
		EventType:       pick(patch.EventType, current.EventType),
		Notes:           pick(patch.Notes, current.Notes),
		SpecialRequests: pick(patch.SpecialRequests, current.SpecialRequests),
	}
	in.normalize()
	dateChanged := in.Date != current.Date
	if fields := r.check(in, dateChanged); len(fields) > 0 {
		return nil, errValidation(fields)
	}

	next := *current
	if patch.State != nil && *patch.State != current.State {
		if !patch.State.Valid() {
			return nil, errValidation([]FieldError{{Field: "state", Reason: "is not a reservation state"}})
		}
		if !current.State.CanTransition(*patch.State) {
			return nil, errIllegalTransition(string(current.State), string(*patch.State))
		}
		next.State = *patch.State
	}

	if r.tables != nil && next.AssignedTableID != nil && !next.State.Terminal() && in.PartySize != current.PartySize {
		if err := r.tables.CheckCapacity(ctx, *next.AssignedTableID, in.PartySize); err != nil {
			return nil, err
		}
	}

	next.CustomerName = in.CustomerName
	next.CustomerEmail = in.CustomerEmail
	next.CustomerPhone = in.CustomerPhone
	next.Date = in.Date
	next.Time = in.Time
	next.PartySize = in.PartySize
	next.EventType = in.EventType
	next.Notes = in.Notes
	next.SpecialRequests = in.SpecialRequests
	next.UpdatedAt = r.clock.Now()

	if err := r.save(ctx, &next); err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": next.ID,
		"state":          next.State,
	}).Info("reservation updated")
	return &next, nil
}

// Delete removes a reservation in any state. Who may call it is decided at
// the transport boundary.
func (r *ReservationRegistry) Delete(ctx context.Context, id string) error {
	unlock := r.locks.Lock(id)
	defer unlock()

	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errReservationNotFound(id)
		}
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}

	utils.InfoLogger.WithField("reservation_id", id).Info("reservation deleted")
	return nil
}

func (r *ReservationRegistry) transition(ctx context.Context, id string, target models.ReservationState) (*models.Reservation, error) {
	unlock := r.locks.Lock(id)
	defer unlock()

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.State.CanTransition(target) {
		return nil, errIllegalTransition(string(current.State), string(target))
	}

	next := *current
	next.State = target
	next.UpdatedAt = r.clock.Now()
	if err := r.save(ctx, &next); err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": next.ID,
		"from":           current.State,
		"to":             next.State,
	}).Info("reservation transitioned")
	return &next, nil
}

func (r *ReservationRegistry) save(ctx context.Context, res *models.Reservation) error {
	err := r.store.Update(ctx, res)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOptimisticLock):
		return errConflict("reservation")
	case errors.Is(err, repository.ErrNotFound):
		return errReservationNotFound(res.ID)
	}
	return fmt.Errorf("update reservation %s: %w", res.ID, err)
}

// check validates in field by field. The past-date rule applies only when
// checkPast is set, i.e. when the date is new.
func (r *ReservationRegistry) check(in ReservationInput, checkPast bool) []FieldError {
	var fields []FieldError
	if err := r.validate.Struct(in); err != nil {
		fields = fieldErrors(err)
	}

	if checkPast && !hasField(fields, "date") {
		now := r.clock.Now()
		day, err := time.ParseInLocation(dateLayout, in.Date, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if err == nil && day.Before(today) {
			fields = append(fields, FieldError{Field: "date", Reason: "cannot be in the past"})
		}
	}
	return fields
}

func hasField(fields []FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func pick[T any](patch *T, current T) T {
	if patch != nil {
		return *patch
	}
	return current
}
