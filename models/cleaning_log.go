package models

import (
	"time"
)

const (
	CleaningPending = "pending"
	CleaningDone    = "done"
)

type CleaningLog struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	TableID    string     `gorm:"type:varchar(36);not null;index" json:"table_id"`
	StartedBy  string     `gorm:"type:varchar(100)" json:"started_by,omitempty"`
	EtaMinutes int        `gorm:"not null" json:"eta_minutes"`
	Status     string     `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
