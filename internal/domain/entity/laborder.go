package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de laboratorio y sus transiciones legales:
// pending -> processing | cancelled; processing -> completed | cancelled.
// completed y cancelled son terminales.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// LabOrder representa un pedido de insumos a un laboratorio/mayorista.
type LabOrder struct {
	ID          string
	OrderNumber string
	RequesterID string
	AssigneeID  string
	Items       []LabOrderItem
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	Status      string // pending, processing, completed, cancelled
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LabOrderItem línea de la orden. ProductName es snapshot al momento de crearla.
type LabOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// CanTransition valida una transición de estado de la orden.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	default:
		return false
	}
}
