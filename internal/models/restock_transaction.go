package models

import "time"

// RestockTransaction is an append-only record of stock arriving out of band.
type RestockTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MaterialID uint     `gorm:"index" json:"material_id"`
	Material   Material `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Quantity     float64 `json:"quantity"`
	CostPerUnit  float64 `json:"cost_per_unit"`
	SupplierInfo string  `gorm:"size:255" json:"supplier_info"`

	CreatedAt time.Time `json:"created_at"`
}
