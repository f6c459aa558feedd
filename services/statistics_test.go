package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floor/models"
)

func TestTableStatsEmptyFloor(t *testing.T) {
	f, _ := newTestFloor(t)

	stats, err := f.Stats.TableStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, TableStats{}, stats)
}

func TestTableStats(t *testing.T) {
	f, _ := newTestFloor(t)
	ctx := context.Background()
	t1 := addTable(t, f, 1, 2)
	t2 := addTable(t, f, 2, 4)
	t3 := addTable(t, f, 3, 6)
	retired := addTable(t, f, 4, 10)

	_, err := f.Tables.Transition(ctx, t1.ID, models.TableOccupied, TransitionPayload{Occupants: 2, Server: "Ana"})
	require.NoError(t, err)
	_, err = f.Tables.Transition(ctx, t2.ID, models.TableReserved, TransitionPayload{ReservationTime: "19:00"})
	require.NoError(t, err)
	_, err = f.Tables.Transition(ctx, t3.ID, models.TableCleaning, TransitionPayload{})
	require.NoError(t, err)
	_, err = f.Assignments.RetireTable(ctx, retired.ID, "Floor Admin")
	require.NoError(t, err)

	stats, err := f.Stats.TableStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, TableStats{
		Total:            3,
		Occupied:         1,
		Free:             0,
		Reserved:         1,
		Cleaning:         1,
		TotalCapacity:    12,
		OccupancyPercent: 33,
	}, stats)
	assert.Equal(t, stats.Total, stats.Occupied+stats.Free+stats.Reserved+stats.Cleaning)
}

func TestOccupancyPercentRounds(t *testing.T) {
	tables := []models.Table{
		{State: models.TableOccupied, Capacity: 2},
		{State: models.TableOccupied, Capacity: 2},
		{State: models.TableFree, Capacity: 2},
	}
	assert.Equal(t, 67, projectTables(tables).OccupancyPercent)

	tables = append(tables, models.Table{State: models.TableFree, Capacity: 2})
	assert.Equal(t, 50, projectTables(tables).OccupancyPercent)
}

func TestReservationStats(t *testing.T) {
	f, _ := newTestFloor(t)
	ctx := context.Background()

	createReservation(t, f, 2)
	confirmed := createReservation(t, f, 2)
	completed := createReservation(t, f, 2)
	cancelled := createReservation(t, f, 2)

	_, err := f.Reservations.Confirm(ctx, confirmed.ID)
	require.NoError(t, err)
	_, err = f.Reservations.Confirm(ctx, completed.ID)
	require.NoError(t, err)
	_, err = f.Reservations.Complete(ctx, completed.ID)
	require.NoError(t, err)
	_, err = f.Reservations.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	stats, err := f.Stats.ReservationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReservationStats{Total: 4, Pending: 1, Confirmed: 1, Completed: 1, Cancelled: 1}, stats)
}

func TestDashboardCombinesBoth(t *testing.T) {
	f, _ := newTestFloor(t)
	addTable(t, f, 1, 4)
	createReservation(t, f, 2)

	dash, err := f.Stats.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Tables.Total)
	assert.Equal(t, 1, dash.Tables.Free)
	assert.Equal(t, 1, dash.Reservations.Pending)
}
