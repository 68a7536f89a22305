package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Visibility clasifica quién puede ver un producto en el marketplace.
// Variante única + OwnerID: imposible tener combinaciones contradictorias de flags.
type Visibility string

const (
	VisibilityPrivate   Visibility = "private"   // solo el dueño (y admin)
	VisibilityWholesale Visibility = "wholesale" // catálogo mayorista compartido
	VisibilityRetail    Visibility = "retail"    // catálogo minorista compartido
	VisibilityPublic    Visibility = "public"    // visible para compradores individuales
)

// Estados de ciclo de vida del producto. El borrado es lógico: nunca se elimina la fila.
const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"
	StatusDeleted    = "deleted"
)

// Product representa un producto del catálogo (insumos de laboratorio e inventario general).
// OwnerName se denormaliza en lectura desde profiles; no se persiste en products.
type Product struct {
	ID            string
	Name          string
	Description   string
	Category      string
	SKU           string
	Stock         int // siempre >= 0
	MinStock      int
	MaxStock      *int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Supplier      string
	ExpiryDate    *time.Time
	BatchID       string
	Status        string // in-stock, low-stock, out-of-stock, deleted
	Visibility    Visibility
	OwnerID       string
	OwnerName     string // business_name del dueño o placeholder "Unknown ..."
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockStatus calcula la etiqueta de estado a partir del stock y el umbral mínimo.
// El estado es un label denormalizado: debe recalcularse en cada mutación de stock.
func StockStatus(stock, minStock int) string {
	switch {
	case stock == 0:
		return StatusOutOfStock
	case stock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// IsDeleted indica si el producto fue borrado lógicamente.
func (p *Product) IsDeleted() bool {
	return p.Status == StatusDeleted
}
