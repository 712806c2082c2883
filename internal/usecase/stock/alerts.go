package stock

import (
	"context"

	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/metrics"
)

type ComputeAlerts struct {
	repo domain.Repository
}

func NewComputeAlerts(
	repo domain.Repository,
) *ComputeAlerts {
	return &ComputeAlerts{
		repo: repo,
	}
}

// Execute derives the alert counters over the active material set. Nothing
// is cached; every dashboard poll sees current stock.
func (uc *ComputeAlerts) Execute(
	ctx context.Context,
) (domain.AlertSummary, error) {

	materials, err := uc.repo.ListActiveMaterials(ctx)
	if err != nil {
		return domain.AlertSummary{}, err
	}

	summary := domain.ComputeAlerts(materials)
	metrics.CriticalStockMaterials.Set(float64(summary.LowStockCount))

	return summary, nil
}
