package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

type MaterialGormRepository struct {
	db *gorm.DB
}

func NewMaterialGormRepository(db *gorm.DB) *MaterialGormRepository {
	return &MaterialGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *MaterialGormRepository) GetMaterial(
	ctx context.Context,
	id uint,
) (*models.Material, error) {
	return getMaterial(r.db.WithContext(ctx), id)
}

func getMaterial(db *gorm.DB, id uint) (*models.Material, error) {
	var m models.Material
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusinessDetails(
				httperr.CodeNotFound,
				"material not found",
				map[string]any{"material_id": id},
			)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialGormRepository) ListMaterials(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Material, error) {

	q := r.db.WithContext(ctx).Model(&models.Material{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(supplier) LIKE LOWER(?)", like, like)
	}
	if filter.LowStockOnly {
		// Critical and warning bands; the threshold mirrors stock.StatusOf.
		q = q.Where("quantity_in_stock <= min_stock_level * 1.5")
	}

	var mats []models.Material
	if err := q.Order("id ASC").Find(&mats).Error; err != nil {
		return nil, err
	}
	return mats, nil
}

func (r *MaterialGormRepository) ListActiveMaterials(
	ctx context.Context,
) ([]models.Material, error) {

	var mats []models.Material
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&mats).Error; err != nil {
		return nil, err
	}
	return mats, nil
}

// --------------------------------------------------
// Consume
// --------------------------------------------------

// Consume decrements stock with a guarded UPDATE so the non-negative check
// and the write are one atomic statement. RowsAffected == 0 means either the
// material is missing or the decrement would go negative; the re-read below
// tells the two apart and reports the shortfall.
func (r *MaterialGormRepository) Consume(
	ctx context.Context,
	materialID uint,
	quantity float64,
) (float64, error) {

	db := r.db.WithContext(ctx)

	newQty, err := consumeOne(db, materialID, quantity)
	if err != nil {
		return 0, err
	}
	return newQty, nil
}

func consumeOne(db *gorm.DB, materialID uint, quantity float64) (float64, error) {
	res := db.
		Model(&models.Material{}).
		Where("id = ? AND quantity_in_stock >= ?", materialID, quantity).
		UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", quantity))

	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		m, err := getMaterial(db, materialID)
		if err != nil {
			return 0, err
		}
		return 0, httperr.ErrBusinessDetails(
			httperr.CodeInsufficientStock,
			"not enough stock to consume",
			map[string]any{
				"material_id": materialID,
				"requested":   quantity,
				"available":   m.QuantityInStock,
			},
		)
	}

	m, err := getMaterial(db, materialID)
	if err != nil {
		return 0, err
	}
	return m.QuantityInStock, nil
}

// ConsumeBatch runs a whole usage submission inside one transaction. Lines
// are applied in material-ID order; the first shortfall aborts and rolls
// back every prior decrement, so partial application is never observable.
func (r *MaterialGormRepository) ConsumeBatch(
	ctx context.Context,
	appointmentID uint,
	lines []domain.UsageLine,
) ([]models.MaterialUsage, error) {

	ordered := make([]domain.UsageLine, len(lines))
	copy(ordered, lines)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].MaterialID < ordered[j].MaterialID
	})

	now := time.Now()
	var created []models.MaterialUsage

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range ordered {
			m, err := getMaterial(tx, line.MaterialID)
			if err != nil {
				return err
			}

			if _, err := consumeOne(tx, line.MaterialID, line.Quantity); err != nil {
				return err
			}

			usage := models.MaterialUsage{
				AppointmentID: appointmentID,
				MaterialID:    line.MaterialID,
				QuantityUsed:  line.Quantity,
				TotalCost:     line.Quantity * m.PricePerUnit,
				Notes:         line.Notes,
				UsedAt:        now,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
			created = append(created, usage)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// --------------------------------------------------
// Restock
// --------------------------------------------------

func (r *MaterialGormRepository) Restock(
	ctx context.Context,
	materialID uint,
	quantity float64,
	costPerUnit float64,
	supplierInfo string,
) (*models.Material, *models.RestockTransaction, error) {

	var (
		updated *models.Material
		rec     models.RestockTransaction
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Material{}).
			Where("id = ?", materialID).
			UpdateColumn("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", quantity))

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusinessDetails(
				httperr.CodeNotFound,
				"material not found",
				map[string]any{"material_id": materialID},
			)
		}

		rec = models.RestockTransaction{
			MaterialID:   materialID,
			Quantity:     quantity,
			CostPerUnit:  costPerUnit,
			SupplierInfo: supplierInfo,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		m, err := getMaterial(tx, materialID)
		if err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, &rec, nil
}

func (r *MaterialGormRepository) ListRestocks(
	ctx context.Context,
	materialID uint,
) ([]models.RestockTransaction, error) {

	var recs []models.RestockTransaction
	if err := r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at DESC, id DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *MaterialGormRepository) ListUsageForAppointment(
	ctx context.Context,
	appointmentID uint,
) ([]models.MaterialUsage, error) {

	var usages []models.MaterialUsage
	if err := r.db.WithContext(ctx).
		Preload("Material").
		Where("appointment_id = ?", appointmentID).
		Order("used_at ASC, id ASC").
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// Compile-time check
var _ domain.Repository = (*MaterialGormRepository)(nil)
