package stock

import (
	"context"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	apDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/metrics"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

// ======================================================
// USE CASE — material usage recorder
// ======================================================

// RecordUsage ties a consumption batch to an in-progress appointment. The
// batch is all-or-nothing: one short line rolls everything back.
type RecordUsage struct {
	appointments apDomain.Repository
	stock        domain.Repository
	audit        *audit.Dispatcher
}

func NewRecordUsage(
	appointments apDomain.Repository,
	stock domain.Repository,
	audit *audit.Dispatcher,
) *RecordUsage {
	return &RecordUsage{
		appointments: appointments,
		stock:        stock,
		audit:        audit,
	}
}

func (uc *RecordUsage) Execute(
	ctx context.Context,
	appointmentID uint,
	lines []domain.UsageLine,
	actorID uint,
) ([]models.MaterialUsage, error) {

	if len(lines) == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "no usage lines submitted")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, httperr.ErrBusinessDetails(
				httperr.CodeValidation,
				"quantity used must be positive",
				map[string]any{"material_id": line.MaterialID},
			)
		}
	}

	ap, err := uc.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if apDomain.Status(ap.Status) != apDomain.StatusInProgress {
		return nil, httperr.ErrBusinessDetails(
			httperr.CodeNotInProgress,
			"materials can only be recorded against an in-progress appointment",
			map[string]any{"current_status": ap.Status},
		)
	}

	usages, err := uc.stock.ConsumeBatch(ctx, appointmentID, lines)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeInsufficientStock) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.UsageRecords.Add(float64(len(usages)))

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "materials_consumed",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"lines": len(usages)},
	})

	return usages, nil
}
