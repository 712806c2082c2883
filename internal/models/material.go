package models

import "time"

type Unit string

const (
	UnitPiece Unit = "piece"
	UnitLiter Unit = "liter"
	UnitMl    Unit = "ml"
	UnitKg    Unit = "kg"
	UnitG     Unit = "g"
	UnitM     Unit = "m"
	UnitCm    Unit = "cm"
	UnitM2    Unit = "m2"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitLiter, UnitMl, UnitKg, UnitG, UnitM, UnitCm, UnitM2:
		return true
	}
	return false
}

type Material struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Unit Unit   `gorm:"size:10;not null" json:"unit"`

	// Mutated only through the stock ledger, never written directly.
	QuantityInStock float64 `gorm:"default:0" json:"quantity_in_stock"`

	MinStockLevel float64 `gorm:"default:0" json:"min_stock_level"`
	PricePerUnit  float64 `json:"price_per_unit"`
	Supplier      string  `gorm:"size:100" json:"supplier"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
