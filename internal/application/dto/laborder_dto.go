package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLabOrderItem línea de entrada de una orden.
type CreateLabOrderItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateLabOrderRequest entrada para crear una orden de laboratorio.
type CreateLabOrderRequest struct {
	AssigneeID string               `json:"assignee_id" validate:"required"`
	Items      []CreateLabOrderItem `json:"items" validate:"required,min=1"`
	Notes      string               `json:"notes"`
}

// UpdateOrderStatusRequest entrada para transicionar el estado de una orden.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LabOrderItemResponse línea de la orden en salida.
type LabOrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// LabOrderResponse salida de una orden.
type LabOrderResponse struct {
	ID          string                 `json:"id"`
	OrderNumber string                 `json:"order_number"`
	RequesterID string                 `json:"requester_id"`
	AssigneeID  string                 `json:"assignee_id"`
	Items       []LabOrderItemResponse `json:"items"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Total       decimal.Decimal        `json:"total"`
	Status      string                 `json:"status"`
	Notes       string                 `json:"notes,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// LabOrderListResponse lista de órdenes del llamador.
type LabOrderListResponse struct {
	Items []LabOrderResponse `json:"items"`
	Total int                `json:"total"`
}
