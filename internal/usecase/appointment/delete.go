package appointment

import (
	"context"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
)

// DeleteAppointment is the administrative hard remove. Unlike cancellation
// it erases the row and is irreversible; it deliberately skips the
// transition graph.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
) error {

	ok, err := uc.repo.DeleteAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusinessMsg(httperr.CodeNotFound, "appointment not found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
