package models

import "time"

// MaterialUsage is an immutable audit row tying consumed stock to the
// appointment it was spent on. TotalCost captures the material price at the
// moment of use.
type MaterialUsage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MaterialID uint     `gorm:"index" json:"material_id"`
	Material   Material `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"material"`

	QuantityUsed float64 `json:"quantity_used"`
	TotalCost    float64 `json:"total_cost"`
	Notes        string  `gorm:"size:255" json:"notes"`

	UsedAt time.Time `json:"used_at"`
}
