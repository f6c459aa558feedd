package models

import "time"

type ReservationState string

const (
	ReservationPending   ReservationState = "pending"
	ReservationConfirmed ReservationState = "confirmed"
	ReservationCompleted ReservationState = "completed"
	ReservationCancelled ReservationState = "cancelled"
)

var reservationEdges = map[ReservationState][]ReservationState{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransition reports whether the lifecycle permits moving from s to next.
func (s ReservationState) CanTransition(next ReservationState) bool {
	for _, to := range reservationEdges[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is legal from s.
func (s ReservationState) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

func (s ReservationState) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

type EventType string

const (
	EventBirthday    EventType = "birthday"
	EventAnniversary EventType = "anniversary"
	EventBusiness    EventType = "business"
	EventFamily      EventType = "family"
	EventOther       EventType = "other"
)

type Reservation struct {
	ID              string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerName    string           `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail   string           `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone   string           `gorm:"type:varchar(30);not null" json:"customer_phone"`
	Date            string           `gorm:"type:varchar(10);not null;index" json:"date"`
	Time            string           `gorm:"type:varchar(5);not null" json:"time"`
	PartySize       int              `gorm:"not null" json:"party_size"`
	EventType       EventType        `gorm:"type:varchar(20);not null;default:'other'" json:"event_type"`
	Notes           string           `gorm:"type:text" json:"notes,omitempty"`
	SpecialRequests string           `gorm:"type:text" json:"special_requests,omitempty"`
	State           ReservationState `gorm:"type:varchar(20);not null;default:'pending';index" json:"state"`
	AssignedTableID *string          `gorm:"type:varchar(36);index" json:"assigned_table_id,omitempty"`
	Version         int              `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time        `gorm:"not null;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}
