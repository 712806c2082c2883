package dto

type MaterialListDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	QuantityInStock float64 `json:"quantity_in_stock"`
	MinStockLevel   float64 `json:"min_stock_level"`
	PricePerUnit    float64 `json:"price_per_unit"`
	Supplier        string  `json:"supplier"`
	Active          bool    `json:"active"`
	StockStatus     string  `json:"stock_status"`
}
