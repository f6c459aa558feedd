package models

import "time"

type TableState string

const (
	TableFree     TableState = "free"
	TableOccupied TableState = "occupied"
	TableReserved TableState = "reserved"
	TableCleaning TableState = "cleaning"
)

// Valid reports whether s is one of the four table states.
func (s TableState) Valid() bool {
	switch s {
	case TableFree, TableOccupied, TableReserved, TableCleaning:
		return true
	}
	return false
}

type Table struct {
	ID       string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Number   int        `gorm:"not null;index" json:"number"`
	Capacity int        `gorm:"not null" json:"capacity"`
	Location string     `gorm:"type:varchar(100)" json:"location,omitempty"`
	Active   bool       `gorm:"not null;default:true;index" json:"active"`
	State    TableState `gorm:"type:varchar(20);not null;default:'free';index" json:"state"`

	// occupied
	Occupants  int        `gorm:"not null;default:0" json:"occupants"`
	Server     string     `gorm:"type:varchar(100)" json:"server,omitempty"`
	OccupiedAt *time.Time `json:"occupied_at,omitempty"`

	// reserved
	ReservedAt      *time.Time `json:"reserved_at,omitempty"`
	ReservationTime string     `gorm:"type:varchar(5)" json:"reservation_time,omitempty"`

	// cleaning
	CleaningEtaMinutes int `gorm:"not null;default:0" json:"cleaning_eta_minutes,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// ClearForeign zeroes every state-scoped attribute that the current state
// does not own.
func (t *Table) ClearForeign() {
	if t.State != TableOccupied {
		t.Occupants = 0
		t.OccupiedAt = nil
	}
	if t.State != TableOccupied && t.State != TableReserved {
		t.Server = ""
	}
	if t.State != TableReserved {
		t.ReservedAt = nil
		t.ReservationTime = ""
	}
	if t.State != TableCleaning {
		t.CleaningEtaMinutes = 0
	}
}
