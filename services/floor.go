package services

import (
	"github.com/yeremiapane/restaurant-floor/repository"
)

// Floor wires the registries, the coordinator and the projector over one
// repository.
type Floor struct {
	Tables       *TableRegistry
	Reservations *ReservationRegistry
	Assignments  *AssignmentCoordinator
	Stats        *StatisticsProjector
}

type FloorOptions struct {
	Clock              Clock
	CleaningEtaMinutes int
}

func NewFloor(repo *repository.Repository, opts FloorOptions) *Floor {
	tables := NewTableRegistry(repo.Tables, repo.CleaningLogs, opts.Clock, opts.CleaningEtaMinutes)
	reservations := NewReservationRegistry(repo.Reservations, tables, opts.Clock)
	return &Floor{
		Tables:       tables,
		Reservations: reservations,
		Assignments:  NewAssignmentCoordinator(tables, reservations, opts.Clock),
		Stats:        NewStatisticsProjector(tables, reservations),
	}
}
