package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/repository"
	"github.com/yeremiapane/restaurant-floor/utils"
)

func TestMain(m *testing.M) {
	utils.SilenceLoggers()
	os.Exit(m.Run())
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestFloor(t *testing.T) (*Floor, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return NewFloor(repository.NewMemoryRepository(), FloorOptions{Clock: clock}), clock
}

func addTable(t *testing.T, f *Floor, number, capacity int) *models.Table {
	t.Helper()
	table, err := f.Tables.AddTable(context.Background(), TableInput{Number: number, Capacity: capacity})
	require.NoError(t, err)
	return table
}

func validReservation() ReservationInput {
	return ReservationInput{
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+55 11 91234-5678",
		Date:          "2025-06-02",
		Time:          "19:00",
		PartySize:     4,
	}
}

func createReservation(t *testing.T, f *Floor, partySize int) *models.Reservation {
	t.Helper()
	in := validReservation()
	in.PartySize = partySize
	res, err := f.Reservations.Create(context.Background(), in)
	require.NoError(t, err)
	return res
}

func fieldNames(fields []FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
