package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
)

// DashboardUseCase métricas de inventario sobre el catálogo visible del llamador.
// Usa el MISMO predicado que el resto de lecturas; solo difiere en que incluye
// los productos agotados (stock == 0) para poder contarlos.
type DashboardUseCase struct {
	repo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Summary agrega conteos y valor de inventario a precio de compra.
func (uc *DashboardUseCase) Summary(role, userID string) (*dto.DashboardSummary, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Predicate:        visibility.ForRole(role, userID),
		IncludeZeroStock: true,
	})
	if err != nil {
		return nil, err
	}
	summary := &dto.DashboardSummary{InventoryValue: decimal.Zero}
	for _, p := range list {
		summary.TotalProducts++
		switch {
		case p.Stock == 0:
			summary.OutOfStock++
		case p.Stock <= p.MinStock:
			summary.LowStockCount++
		}
		value := p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Stock)))
		summary.InventoryValue = summary.InventoryValue.Add(value)
	}
	return summary, nil
}
