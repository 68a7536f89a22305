package dto

import "github.com/shopspring/decimal"

// DashboardSummary métricas de inventario sobre el catálogo visible del llamador.
// La rotación de stock queda fuera a propósito: la fuente nunca la calculó.
type DashboardSummary struct {
	TotalProducts  int             `json:"total_products"`
	LowStockCount  int             `json:"low_stock_count"`
	OutOfStock     int             `json:"out_of_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ stock × purchase_price
}
