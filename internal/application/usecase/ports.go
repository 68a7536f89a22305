package usecase

import (
	"context"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
)

// OrderTxRunner ejecuta un callback con repos atados a una transacción:
// la creación de una orden descuenta stock e inserta la orden atómicamente.
type OrderTxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.LabOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// OrderReportGenerator genera la representación imprimible (PDF) de una orden.
type OrderReportGenerator interface {
	GenerateOrderPDF(order *entity.LabOrder, requester, assignee *entity.Profile) ([]byte, error)
}
