package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La visibilidad y el dueño
// NO vienen en el body: se derivan del rol del llamador.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku"`
	Stock         int             `json:"stock" validate:"gte=0"`
	MinStock      int             `json:"min_stock" validate:"gte=0"`
	MaxStock      *int            `json:"max_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Supplier      string          `json:"supplier"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	BatchID       string          `json:"batch_id"`
}

// UpdateProductRequest entrada para actualización parcial (sin Stock: va por UpdateStock).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	SKU           *string          `json:"sku"`
	MinStock      *int             `json:"min_stock"`
	MaxStock      *int             `json:"max_stock"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Supplier      *string          `json:"supplier"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	BatchID       *string          `json:"batch_id"`
}

// UpdateStockRequest entrada para ajustar el stock.
type UpdateStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// ProductResponse salida de un producto, con el nombre comercial del dueño resuelto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	SKU           string          `json:"sku,omitempty"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	MaxStock      *int            `json:"max_stock,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Supplier      string          `json:"supplier,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	BatchID       string          `json:"batch_id,omitempty"`
	Status        string          `json:"status"`
	Visibility    string          `json:"visibility"`
	OwnerID       string          `json:"owner_id,omitempty"`
	OwnerName     string          `json:"owner_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos visibles para el llamador.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// CategoryListResponse categorías distintas presentes en el catálogo visible.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
