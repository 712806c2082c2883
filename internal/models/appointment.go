package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public booking reference handed to the client.
	Reference uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"reference"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ExecutorID *uint `json:"executor_id"`
	Executor   *User `gorm:"foreignKey:ExecutorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"executor,omitempty"`

	AppointmentDate time.Time `gorm:"type:date" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5" json:"appointment_time"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`

	// Price and duration are snapshotted from the service at booking time so
	// later service edits never drift existing appointments.
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`

	Notes       string     `gorm:"size:255" json:"notes"`
	StartedAt   *time.Time `json:"started_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
