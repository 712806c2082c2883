package stock

import (
	"context"

	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

// UsageLine is one submitted consumption item.
type UsageLine struct {
	MaterialID uint
	Quantity   float64
	Notes      string
}

type ListFilter struct {
	Search       string
	LowStockOnly bool
}

type Repository interface {
	GetMaterial(
		ctx context.Context,
		id uint,
	) (*models.Material, error)

	ListMaterials(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Material, error)

	ListActiveMaterials(
		ctx context.Context,
	) ([]models.Material, error)

	// Consume atomically decrements stock for a single material, failing
	// with insufficient_stock when the result would go negative. Returns
	// the new quantity on success.
	Consume(
		ctx context.Context,
		materialID uint,
		quantity float64,
	) (float64, error)

	// ConsumeBatch applies a whole usage submission in one transaction:
	// either every line is consumed and recorded, or stock is untouched.
	ConsumeBatch(
		ctx context.Context,
		appointmentID uint,
		lines []UsageLine,
	) ([]models.MaterialUsage, error)

	// Restock atomically increments stock and appends the transaction row.
	Restock(
		ctx context.Context,
		materialID uint,
		quantity float64,
		costPerUnit float64,
		supplierInfo string,
	) (*models.Material, *models.RestockTransaction, error)

	ListRestocks(
		ctx context.Context,
		materialID uint,
	) ([]models.RestockTransaction, error)

	ListUsageForAppointment(
		ctx context.Context,
		appointmentID uint,
	) ([]models.MaterialUsage, error)
}
