package stock

import (
	"context"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/metrics"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

type RestockInput struct {
	MaterialID   uint
	Quantity     float64
	CostPerUnit  float64
	SupplierInfo string
}

type RestockResult struct {
	Material    *models.Material           `json:"material"`
	Transaction *models.RestockTransaction `json:"transaction"`
}

type RestockMaterial struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRestockMaterial(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RestockMaterial {
	return &RestockMaterial{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RestockMaterial) Execute(
	ctx context.Context,
	in RestockInput,
	actorID uint,
) (*RestockResult, error) {

	if in.Quantity <= 0 {
		return nil, httperr.ErrBusinessDetails(
			httperr.CodeInvalidQuantity,
			"restock quantity must be positive",
			map[string]any{"quantity": in.Quantity},
		)
	}

	material, tx, err := uc.repo.Restock(
		ctx,
		in.MaterialID,
		in.Quantity,
		in.CostPerUnit,
		in.SupplierInfo,
	)
	if err != nil {
		return nil, err
	}

	metrics.Restocks.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "material_restocked",
		Entity:   "material",
		EntityID: &in.MaterialID,
		Metadata: map[string]any{
			"quantity":      in.Quantity,
			"cost_per_unit": in.CostPerUnit,
		},
	})

	return &RestockResult{Material: material, Transaction: tx}, nil
}
