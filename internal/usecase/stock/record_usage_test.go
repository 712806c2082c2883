package stock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AutoCareServices/carcare-scheduler/internal/audit"
	dbpkg "github.com/AutoCareServices/carcare-scheduler/internal/db"
	apDomain "github.com/AutoCareServices/carcare-scheduler/internal/domain/appointment"
	domain "github.com/AutoCareServices/carcare-scheduler/internal/domain/stock"
	"github.com/AutoCareServices/carcare-scheduler/internal/httperr"
	infraRepo "github.com/AutoCareServices/carcare-scheduler/internal/infra/repository"
	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newDispatcher(gdb *gorm.DB) *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(gdb), zap.NewNop())
}

func seedMaterial(t *testing.T, gdb *gorm.DB, name string, qty, price float64) *models.Material {
	t.Helper()

	m := models.Material{
		Name:            name,
		Unit:            models.UnitLiter,
		QuantityInStock: qty,
		MinStockLevel:   1,
		PricePerUnit:    price,
		Active:          true,
	}
	if err := gdb.Create(&m).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}
	return &m
}

func seedAppointment(t *testing.T, gdb *gorm.DB, status apDomain.Status) *models.Appointment {
	t.Helper()

	client := models.User{
		Name:         "Dana",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleClient,
	}
	if err := gdb.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	svc := models.Service{Name: "Polish", Price: 90, DurationMin: 60, Active: true}
	if err := gdb.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	ap := models.Appointment{
		Reference: uuid.New(),
		ServiceID: svc.ID,
		ClientID:  client.ID,
		Status:    string(status),
	}
	if err := gdb.Create(&ap).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return &ap
}

func newRecordUsageUC(gdb *gorm.DB) *RecordUsage {
	return NewRecordUsage(
		infraRepo.NewAppointmentGormRepository(gdb),
		infraRepo.NewMaterialGormRepository(gdb),
		newDispatcher(gdb),
	)
}

func stockOf(t *testing.T, gdb *gorm.DB, id uint) float64 {
	t.Helper()

	var m models.Material
	if err := gdb.First(&m, id).Error; err != nil {
		t.Fatalf("reload material: %v", err)
	}
	return m.QuantityInStock
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestRecordUsage_OK(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)
	shampoo := seedMaterial(t, gdb, "ph shampoo", 20, 2)

	uc := newRecordUsageUC(gdb)

	usages, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
		{MaterialID: wax.ID, Quantity: 2, Notes: "full body"},
		{MaterialID: shampoo.ID, Quantity: 5},
	}, 1)
	if err != nil {
		t.Fatalf("expected batch to succeed, got %v", err)
	}

	if len(usages) != 2 {
		t.Fatalf("expected 2 usage rows, got %d", len(usages))
	}
	for _, u := range usages {
		if u.AppointmentID != ap.ID {
			t.Errorf("usage row not tied to appointment: %+v", u)
		}
	}

	if got := stockOf(t, gdb, wax.ID); got != 8 {
		t.Errorf("expected wax stock 8, got %v", got)
	}
	if got := stockOf(t, gdb, shampoo.ID); got != 15 {
		t.Errorf("expected shampoo stock 15, got %v", got)
	}
}

func TestRecordUsage_TotalCostSnapshotsPrice(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)

	uc := newRecordUsageUC(gdb)

	usages, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
		{MaterialID: wax.ID, Quantity: 2},
	}, 1)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if usages[0].TotalCost != 9 {
		t.Fatalf("expected total_cost 9, got %v", usages[0].TotalCost)
	}

	// A later price change must not touch the recorded cost.
	gdb.Model(wax).Update("price_per_unit", 100)

	var stored models.MaterialUsage
	gdb.First(&stored, usages[0].ID)
	if stored.TotalCost != 9 {
		t.Errorf("expected recorded cost 9 after price edit, got %v", stored.TotalCost)
	}
}

func TestRecordUsage_BatchIsAllOrNothing(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)
	clay := seedMaterial(t, gdb, "clay bar", 1, 12)

	uc := newRecordUsageUC(gdb)

	_, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
		{MaterialID: wax.ID, Quantity: 2},
		{MaterialID: clay.ID, Quantity: 3}, // exceeds stock of 1
	}, 1)
	if !httperr.IsBusiness(err, httperr.CodeInsufficientStock) {
		t.Fatalf("expected insufficient_stock, got %v", err)
	}

	be, _ := httperr.AsBusiness(err)
	if be.Details["requested"] != float64(3) || be.Details["available"] != float64(1) {
		t.Errorf("expected requested/available 3/1, got %v", be.Details)
	}

	// The wax line came first but must be rolled back too.
	if got := stockOf(t, gdb, wax.ID); got != 10 {
		t.Errorf("expected wax stock untouched at 10, got %v", got)
	}
	if got := stockOf(t, gdb, clay.ID); got != 1 {
		t.Errorf("expected clay stock untouched at 1, got %v", got)
	}

	var count int64
	gdb.Model(&models.MaterialUsage{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no usage rows, got %d", count)
	}
}

func TestRecordUsage_AppointmentNotInProgress(t *testing.T) {
	gdb := newTestDB(t)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)
	uc := newRecordUsageUC(gdb)

	for _, status := range []apDomain.Status{
		apDomain.StatusBooked,
		apDomain.StatusCompleted,
		apDomain.StatusCancelled,
	} {
		ap := seedAppointment(t, gdb, status)

		_, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
			{MaterialID: wax.ID, Quantity: 1},
		}, 1)
		if !httperr.IsBusiness(err, httperr.CodeNotInProgress) {
			t.Errorf("status %s: expected appointment_not_in_progress, got %v", status, err)
		}
	}

	if got := stockOf(t, gdb, wax.ID); got != 10 {
		t.Errorf("expected stock untouched at 10, got %v", got)
	}
}

func TestRecordUsage_RejectsNonPositiveQuantity(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)

	uc := newRecordUsageUC(gdb)

	for _, qty := range []float64{0, -2} {
		_, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
			{MaterialID: wax.ID, Quantity: qty},
		}, 1)
		if !httperr.IsBusiness(err, httperr.CodeValidation) {
			t.Errorf("quantity %v: expected validation_error, got %v", qty, err)
		}
	}
}

func TestRecordUsage_EmptyBatch(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)

	uc := newRecordUsageUC(gdb)

	_, err := uc.Execute(context.Background(), ap.ID, nil, 1)
	if !httperr.IsBusiness(err, httperr.CodeValidation) {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestRecordUsage_UnknownMaterial(t *testing.T) {
	gdb := newTestDB(t)
	ap := seedAppointment(t, gdb, apDomain.StatusInProgress)
	wax := seedMaterial(t, gdb, "carnauba wax", 10, 4.5)

	uc := newRecordUsageUC(gdb)

	_, err := uc.Execute(context.Background(), ap.ID, []domain.UsageLine{
		{MaterialID: wax.ID, Quantity: 2},
		{MaterialID: 999, Quantity: 1},
	}, 1)
	if !httperr.IsBusiness(err, httperr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	if got := stockOf(t, gdb, wax.ID); got != 10 {
		t.Errorf("expected wax stock untouched at 10, got %v", got)
	}
}

// --------------------------------------------------
// Ledger-level properties
// --------------------------------------------------

func TestConsume_CompetingConsumesNeverDriveStockNegative(t *testing.T) {
	gdb := newTestDB(t)
	mat := seedMaterial(t, gdb, "sealant", 10, 8)

	repo := infraRepo.NewMaterialGormRepository(gdb)
	ctx := context.Background()

	// Two consumers both saw stock=10 and both ask for 6. The guarded
	// update admits exactly one.
	newQty, err := repo.Consume(ctx, mat.ID, 6)
	if err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	if newQty != 4 {
		t.Fatalf("expected new quantity 4, got %v", newQty)
	}

	_, err = repo.Consume(ctx, mat.ID, 6)
	if !httperr.IsBusiness(err, httperr.CodeInsufficientStock) {
		t.Fatalf("expected insufficient_stock, got %v", err)
	}

	be, _ := httperr.AsBusiness(err)
	if be.Details["requested"] != float64(6) || be.Details["available"] != float64(4) {
		t.Errorf("expected requested/available 6/4, got %v", be.Details)
	}

	if got := stockOf(t, gdb, mat.ID); got != 4 {
		t.Errorf("expected final stock 4, got %v", got)
	}
}

func TestConsume_ExactStockDrainsToZero(t *testing.T) {
	gdb := newTestDB(t)
	mat := seedMaterial(t, gdb, "sealant", 5, 8)

	repo := infraRepo.NewMaterialGormRepository(gdb)

	newQty, err := repo.Consume(context.Background(), mat.ID, 5)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if newQty != 0 {
		t.Fatalf("expected stock 0, got %v", newQty)
	}
}
