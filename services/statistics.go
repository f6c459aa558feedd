package services

import (
	"context"
	"math"

	"github.com/yeremiapane/restaurant-floor/models"
)

type TableStats struct {
	Total            int `json:"total"`
	Occupied         int `json:"occupied"`
	Free             int `json:"free"`
	Reserved         int `json:"reserved"`
	Cleaning         int `json:"cleaning"`
	TotalCapacity    int `json:"total_capacity"`
	OccupancyPercent int `json:"occupancy_percent"`
}

type ReservationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type DashboardStats struct {
	Tables       TableStats       `json:"tables"`
	Reservations ReservationStats `json:"reservations"`
}

// StatisticsProjector recomputes aggregates from the registries on every
// call. Nothing is cached.
type StatisticsProjector struct {
	tables       *TableRegistry
	reservations *ReservationRegistry
}

func NewStatisticsProjector(tables *TableRegistry, reservations *ReservationRegistry) *StatisticsProjector {
	return &StatisticsProjector{tables: tables, reservations: reservations}
}

func (p *StatisticsProjector) TableStats(ctx context.Context) (TableStats, error) {
	tables, err := p.tables.ListActive(ctx)
	if err != nil {
		return TableStats{}, err
	}
	return projectTables(tables), nil
}

func (p *StatisticsProjector) ReservationStats(ctx context.Context) (ReservationStats, error) {
	reservations, err := p.reservations.List(ctx)
	if err != nil {
		return ReservationStats{}, err
	}
	return projectReservations(reservations), nil
}

func (p *StatisticsProjector) Dashboard(ctx context.Context) (DashboardStats, error) {
	tables, err := p.TableStats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	reservations, err := p.ReservationStats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	return DashboardStats{Tables: tables, Reservations: reservations}, nil
}

func projectTables(tables []models.Table) TableStats {
	var s TableStats
	for _, t := range tables {
		s.Total++
		s.TotalCapacity += t.Capacity
		switch t.State {
		case models.TableOccupied:
			s.Occupied++
		case models.TableFree:
			s.Free++
		case models.TableReserved:
			s.Reserved++
		case models.TableCleaning:
			s.Cleaning++
		}
	}
	if s.Total > 0 {
		s.OccupancyPercent = int(math.Round(float64(s.Occupied) / float64(s.Total) * 100))
	}
	return s
}

func projectReservations(reservations []models.Reservation) ReservationStats {
	var s ReservationStats
	for _, r := range reservations {
		s.Total++
		switch r.State {
		case models.ReservationPending:
			s.Pending++
		case models.ReservationConfirmed:
			s.Confirmed++
		case models.ReservationCompleted:
			s.Completed++
		case models.ReservationCancelled:
			s.Cancelled++
		}
	}
	return s
}
