package stock

import "github.com/AutoCareServices/carcare-scheduler/internal/models"

// ===============================
// Stock health classification
// ===============================

type Level string

const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelNormal   Level = "normal"
)

// warningFactor widens the minimum level into the warning band.
const warningFactor = 1.5

// StatusOf classifies current stock against the minimum level. It is a pure
// function of its arguments and is recomputed on every read.
func StatusOf(quantityInStock, minStockLevel float64) Level {
	switch {
	case quantityInStock <= minStockLevel:
		return LevelCritical
	case quantityInStock <= minStockLevel*warningFactor:
		return LevelWarning
	default:
		return LevelNormal
	}
}

type AlertSummary struct {
	LowStockCount     int `json:"low_stock_count"`
	WarningStockCount int `json:"warning_stock_count"`
}

// ComputeAlerts derives the alert counters over a material set. Nothing is
// persisted; dashboards call this on demand.
func ComputeAlerts(materials []models.Material) AlertSummary {
	var out AlertSummary
	for _, m := range materials {
		switch StatusOf(m.QuantityInStock, m.MinStockLevel) {
		case LevelCritical:
			out.LowStockCount++
		case LevelWarning:
			out.WarningStockCount++
		}
	}
	return out
}
