package stock

import (
	"context"

	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/dto"
)

type ListMaterials struct {
	repo domain.Repository
}

func NewListMaterials(
	repo domain.Repository,
) *ListMaterials {
	return &ListMaterials{
		repo: repo,
	}
}

func (uc *ListMaterials) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.MaterialListDTO, error) {

	materials, err := uc.repo.ListMaterials(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MaterialListDTO, 0, len(materials))
	for _, m := range materials {
		out = append(out, dto.MaterialListDTO{
			ID:              m.ID,
			Name:            m.Name,
			Unit:            string(m.Unit),
			QuantityInStock: m.QuantityInStock,
			MinStockLevel:   m.MinStockLevel,
			PricePerUnit:    m.PricePerUnit,
			Supplier:        m.Supplier,
			Active:          m.Active,
			StockStatus:     string(domain.StatusOf(m.QuantityInStock, m.MinStockLevel)),
		})
	}

	return out, nil
}
