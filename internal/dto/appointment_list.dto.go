package dto

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	Reference       uuid.UUID `json:"reference"`
	AppointmentDate time.Time `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"service_name"`
	ClientName      string    `json:"client_name"`
	ExecutorName    string    `json:"executor_name,omitempty"`
	Price           float64   `json:"price"`
}
