package appointment

import (
	"context"
	"time"

	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

type ListFilter struct {
	Status     *Status
	ExecutorID *uint
	ClientID   *uint
}

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Blocked dates --------
	ListBlockedDates(
		ctx context.Context,
	) ([]models.BlockedDate, error)

	// -------- Appointment (create / read) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------

	// TransitionStatus atomically moves an appointment from the expected
	// current status to target. It reports false when the row was not in
	// the expected status anymore (lost race) or does not exist.
	TransitionStatus(
		ctx context.Context,
		id uint,
		current Status,
		target Status,
		at time.Time,
	) (bool, error)

	AssignExecutor(
		ctx context.Context,
		id uint,
		executorID uint,
	) error

	// DeleteAppointment is the administrative hard remove. It bypasses the
	// transition graph entirely.
	DeleteAppointment(
		ctx context.Context,
		id uint,
	) (bool, error)
}
