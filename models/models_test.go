package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationEdges(t *testing.T) {
	all := []ReservationState{ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled}
	legal := map[[2]ReservationState]bool{
		{ReservationPending, ReservationConfirmed}:   true,
		{ReservationPending, ReservationCancelled}:   true,
		{ReservationConfirmed, ReservationCompleted}: true,
		{ReservationConfirmed, ReservationCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]ReservationState{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, ReservationCompleted.Terminal())
	assert.True(t, ReservationCancelled.Terminal())
	assert.False(t, ReservationPending.Terminal())
	assert.False(t, ReservationState("seated").Valid())
}

func TestClearForeign(t *testing.T) {
	now := time.Now()
	full := Table{
		Occupants:          3,
		Server:             "Ana",
		OccupiedAt:         &now,
		ReservedAt:         &now,
		ReservationTime:    "19:00",
		CleaningEtaMinutes: 10,
		Notes:              "keep",
	}

	occupied := full
	occupied.State = TableOccupied
	occupied.ClearForeign()
	assert.Equal(t, 3, occupied.Occupants)
	assert.Equal(t, "Ana", occupied.Server)
	assert.Nil(t, occupied.ReservedAt)
	assert.Empty(t, occupied.ReservationTime)
	assert.Zero(t, occupied.CleaningEtaMinutes)

	reserved := full
	reserved.State = TableReserved
	reserved.ClearForeign()
	assert.Zero(t, reserved.Occupants)
	assert.Nil(t, reserved.OccupiedAt)
	assert.Equal(t, "Ana", reserved.Server)
	assert.Equal(t, "19:00", reserved.ReservationTime)

	cleaning := full
	cleaning.State = TableCleaning
	cleaning.ClearForeign()
	assert.Empty(t, cleaning.Server)
	assert.Equal(t, 10, cleaning.CleaningEtaMinutes)

	free := full
	free.State = TableFree
	free.ClearForeign()
	assert.Equal(t, Table{State: TableFree, Notes: "keep"}, free)
}
