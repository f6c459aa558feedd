package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/utils"
)

// AssignmentCoordinator is the only writer of Reservation.AssignedTableID.
// Assigning never changes the table's state; reserving or seating the table
// stays an explicit staff action.
type AssignmentCoordinator struct {
	tables       *TableRegistry
	reservations *ReservationRegistry
	clock        Clock

	// bindMu orders binding changes against table retirement.
	bindMu sync.Mutex
}

type Seating struct {
	Reservation *models.Reservation `json:"reservation"`
	Table       *models.Table       `json:"table"`
}

func NewAssignmentCoordinator(tables *TableRegistry, reservations *ReservationRegistry, clock Clock) *AssignmentCoordinator {
	if clock == nil {
		clock = SystemClock
	}
	return &AssignmentCoordinator{tables: tables, reservations: reservations, clock: clock}
}

func (c *AssignmentCoordinator) AssignTable(ctx context.Context, reservationID, tableID string) (*models.Reservation, error) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	unlock := c.reservations.locks.Lock(reservationID)
	defer unlock()

	reservation, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.State.Terminal() {
		return nil, &BusinessError{
			Kind:    KindInvalidStateTransition,
			Message: fmt.Sprintf("cannot assign a table to a %s reservation", reservation.State),
		}
	}

	table, err := c.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table.Capacity < reservation.PartySize {
		return nil, errCapacity(table.Capacity)
	}

	next := *reservation
	next.AssignedTableID = &table.ID
	next.UpdatedAt = c.clock.Now()
	if err := c.reservations.save(ctx, &next); err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": next.ID,
		"table_id":       table.ID,
		"number":         table.Number,
	}).Info("table assigned to reservation")
	return &next, nil
}

// ReleaseTable clears the binding. Releasing an unbound reservation returns
// it unchanged.
func (c *AssignmentCoordinator) ReleaseTable(ctx context.Context, reservationID string) (*models.Reservation, error) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()
	unlock := c.reservations.locks.Lock(reservationID)
	defer unlock()

	return c.release(ctx, reservationID)
}

func (c *AssignmentCoordinator) release(ctx context.Context, reservationID string) (*models.Reservation, error) {
	reservation, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.AssignedTableID == nil {
		return reservation, nil
	}

	previous := *reservation.AssignedTableID
	next := *reservation
	next.AssignedTableID = nil
	next.UpdatedAt = c.clock.Now()
	if err := c.reservations.save(ctx, &next); err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": next.ID,
		"table_id":       previous,
	}).Info("table released from reservation")
	return &next, nil
}

// OccupyFromReservation seats the party at its assigned table. The
// reservation is left as is; completing it happens at checkout.
func (c *AssignmentCoordinator) OccupyFromReservation(ctx context.Context, reservationID string, occupants int, server string) (*Seating, error) {
	unlock := c.reservations.locks.Lock(reservationID)
	defer unlock()

	reservation, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.State.Terminal() {
		return nil, &BusinessError{
			Kind:    KindInvalidStateTransition,
			Message: fmt.Sprintf("cannot seat a %s reservation", reservation.State),
		}
	}
	if reservation.AssignedTableID == nil {
		return nil, errPayload("assigned_table_id", "reservation has no table assigned")
	}

	table, err := c.tables.Transition(ctx, *reservation.AssignedTableID, models.TableOccupied, TransitionPayload{
		Occupants: occupants,
		Server:    server,
		Actor:     server,
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"table_id":       table.ID,
		"occupants":      occupants,
	}).Info("reservation seated")
	return &Seating{Reservation: reservation, Table: table}, nil
}

// RetireTable releases every reservation bound to the table, whatever its
// state, and then deactivates it. Assigned tables are always active.
func (c *AssignmentCoordinator) RetireTable(ctx context.Context, tableID, actor string) (*models.Table, error) {
	c.bindMu.Lock()
	defer c.bindMu.Unlock()

	if _, err := c.tables.GetByID(ctx, tableID); err != nil {
		return nil, err
	}

	reservations, err := c.reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, res := range reservations {
		if res.AssignedTableID == nil || *res.AssignedTableID != tableID {
			continue
		}
		unlock := c.reservations.locks.Lock(res.ID)
		_, err := c.release(ctx, res.ID)
		unlock()
		if err != nil {
			return nil, err
		}
	}

	return c.tables.deactivate(ctx, tableID, actor)
}
