package appointment

import (
	"context"

	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	"github.com/AutoCareServices/carcare-scheduler/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			Reference:       ap.Reference,
			AppointmentDate: ap.AppointmentDate,
			AppointmentTime: ap.AppointmentTime,
			Status:          ap.Status,
			ServiceName:     ap.Service.Name,
			ClientName:      ap.Client.Name,
			Price:           ap.Price,
		}
		if ap.Executor != nil {
			item.ExecutorName = ap.Executor.Name
		}
		out = append(out, item)
	}

	return out, nil
}
