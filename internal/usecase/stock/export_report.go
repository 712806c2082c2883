package stock

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
)

type ExportStockReport struct {
	repo domain.Repository
}

func NewExportStockReport(
	repo domain.Repository,
) *ExportStockReport {
	return &ExportStockReport{
		repo: repo,
	}
}

// Execute builds an XLSX snapshot of the active material set: one row per
// material with its quantity, threshold, health status and value on hand.
func (uc *ExportStockReport) Execute(
	ctx context.Context,
) (*excelize.File, error) {

	materials, err := uc.repo.ListActiveMaterials(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"material_id",
		"name",
		"unit",
		"quantity_in_stock",
		"min_stock_level",
		"stock_status",
		"price_per_unit",
		"stock_value",
		"supplier",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	row := 2
	for _, m := range materials {
		cells := []interface{}{
			m.ID,
			m.Name,
			string(m.Unit),
			m.QuantityInStock,
			m.MinStockLevel,
			string(domain.StatusOf(m.QuantityInStock, m.MinStockLevel)),
			m.PricePerUnit,
			m.QuantityInStock * m.PricePerUnit,
			m.Supplier,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
			_ = f.Close()
			return nil, err
		}
		row++
	}

	return f, nil
}
