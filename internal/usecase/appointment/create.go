package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/metrics"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID uint
	ClientID  uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	date, err := time.ParseInLocation("2006-01-02", in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid appointment date")
	}

	if _, err := time.Parse("15:04", in.Time); err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid appointment time")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.GetUser(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	blockedDates, err := uc.repo.ListBlockedDates(ctx)
	if err != nil {
		return nil, err
	}

	today := uc.now().In(uc.loc)
	if err := domain.ValidateBooking(svc, date, today, domain.NewDateSet(blockedDates)); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Reference:       uuid.New(),
		ServiceID:       svc.ID,
		ClientID:        client.ID,
		AppointmentDate: date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Price:           svc.Price,
		DurationMin:     svc.DurationMin,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	metrics.AppointmentsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"service_id": svc.ID,
			"date":       in.Date,
			"time":       in.Time,
		},
	})

	return ap, nil
}
