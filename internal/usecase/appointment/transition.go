package appointment

import (
	"context"
	"time"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/metrics"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	target domain.Status,
	actorID uint,
) (*models.Appointment, error) {

	if !target.Valid() {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "unknown appointment status")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	current := domain.Status(ap.Status)
	if err := domain.CanTransition(current, target); err != nil {
		return nil, err
	}

	ok, err := uc.repo.TransitionStatus(ctx, appointmentID, current, target, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race: the row moved out of the expected status between the
		// read and the guarded update. Re-read so the error names the truth.
		ap, err = uc.repo.GetAppointment(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if tErr := domain.CanTransition(domain.Status(ap.Status), target); tErr != nil {
			return nil, tErr
		}
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeInvalidTransition,
			"appointment status changed concurrently, retry",
		)
	}

	metrics.AppointmentTransitions.WithLabelValues(string(target)).Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"from": string(current), "to": string(target)},
	})

	return uc.repo.GetAppointment(ctx, appointmentID)
}
