package stock

import (
	"testing"

	"github.com/AutoCareServices/carcare-scheduler/internal/models"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		min      float64
		want     Level
	}{
		{"above warning band", 5, 2, LevelNormal},
		{"exactly at minimum", 2, 2, LevelCritical},
		{"below minimum", 1, 2, LevelCritical},
		{"inside warning band", 3, 2, LevelWarning},
		{"exactly at warning edge", 3, 2, LevelWarning},
		{"just above warning edge", 3.1, 2, LevelNormal},
		{"zero stock zero minimum", 0, 0, LevelCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusOf(tc.quantity, tc.min); got != tc.want {
				t.Errorf("StatusOf(%v, %v) = %v, want %v", tc.quantity, tc.min, got, tc.want)
			}
		})
	}
}

func TestStatusOf_ConsumptionCrossesIntoCritical(t *testing.T) {
	// Stock 5 with minimum 2 sits above the warning edge (3).
	if got := StatusOf(5, 2); got != LevelNormal {
		t.Fatalf("expected normal before consumption, got %v", got)
	}
	// Consuming 3 lands exactly on the minimum.
	if got := StatusOf(2, 2); got != LevelCritical {
		t.Fatalf("expected critical after consumption, got %v", got)
	}
}

func TestComputeAlerts(t *testing.T) {
	materials := []models.Material{
		{QuantityInStock: 5, MinStockLevel: 2},   // normal
		{QuantityInStock: 2, MinStockLevel: 2},   // critical
		{QuantityInStock: 0, MinStockLevel: 1},   // critical
		{QuantityInStock: 3, MinStockLevel: 2},   // warning
		{QuantityInStock: 14, MinStockLevel: 10}, // warning
	}

	got := ComputeAlerts(materials)
	if got.LowStockCount != 2 {
		t.Errorf("expected 2 critical materials, got %d", got.LowStockCount)
	}
	if got.WarningStockCount != 2 {
		t.Errorf("expected 2 warning materials, got %d", got.WarningStockCount)
	}
}

func TestComputeAlerts_Empty(t *testing.T) {
	got := ComputeAlerts(nil)
	if got.LowStockCount != 0 || got.WarningStockCount != 0 {
		t.Fatalf("expected zero counts, got %+v", got)
	}
}
