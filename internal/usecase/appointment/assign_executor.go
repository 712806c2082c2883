package appointment

import (
	"context"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

type AssignExecutor struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignExecutor(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignExecutor {
	return &AssignExecutor{
		repo:  repo,
		audit: audit,
	}
}

// Execute sets (or overwrites) the executor on any non-terminal appointment.
func (uc *AssignExecutor) Execute(
	ctx context.Context,
	appointmentID uint,
	executorID uint,
	actorID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if domain.Status(ap.Status).Terminal() {
		return nil, httperr.ErrBusinessDetails(
			httperr.CodeInvalidTransition,
			"cannot assign an executor to a finished appointment",
			map[string]any{"current_status": ap.Status},
		)
	}

	executor, err := uc.repo.GetUser(ctx, executorID)
	if err != nil {
		return nil, err
	}
	if executor.Role != models.RoleExecutor {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "user is not an executor")
	}

	if err := uc.repo.AssignExecutor(ctx, appointmentID, executorID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "appointment_executor_assigned",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"executor_id": executorID},
	})

	return uc.repo.GetAppointment(ctx, appointmentID)
}
