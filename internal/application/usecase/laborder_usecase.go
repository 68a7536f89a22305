package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
	"github.com/tu-usuario/labstock-api/pkg/logger"
)

// LabOrderUseCase casos de uso de órdenes de laboratorio: creación transaccional
// (descuento de stock + inserción), listado por rol, transiciones de estado y
// reporte PDF.
type LabOrderUseCase struct {
	tx       OrderTxRunner
	orders   repository.LabOrderRepository
	profiles repository.ProfileRepository
	shareLog repository.ShareLogRepository
	report   OrderReportGenerator
	log      *logger.Logger
}

// NewLabOrderUseCase construye el caso de uso.
func NewLabOrderUseCase(
	tx OrderTxRunner,
	orders repository.LabOrderRepository,
	profiles repository.ProfileRepository,
	shareLog repository.ShareLogRepository,
	report OrderReportGenerator,
	log *logger.Logger,
) *LabOrderUseCase {
	return &LabOrderUseCase{tx: tx, orders: orders, profiles: profiles, shareLog: shareLog, report: report, log: log}
}

// Create crea una orden: cada ítem debe ser visible para el llamador y tener
// stock suficiente. Totales con aritmética decimal. Todo dentro de una tx;
// los eventos de bitácora "order" se registran después del commit (no críticos).
func (uc *LabOrderUseCase) Create(ctx context.Context, in dto.CreateLabOrderRequest, role, userID string) (*dto.LabOrderResponse, error) {
	if len(in.Items) == 0 || in.AssigneeID == "" {
		return nil, domain.ErrInvalidInput
	}
	pred := visibility.ForRole(role, userID)
	now := time.Now()
	order := &entity.LabOrder{
		ID:          uuid.New().String(),
		OrderNumber: newOrderNumber(),
		RequesterID: userID,
		AssigneeID:  in.AssigneeID,
		Status:      entity.OrderStatusPending,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var sharedProductIDs []string
	err := uc.tx.Run(ctx, func(orderRepo repository.LabOrderRepository, productRepo repository.ProductRepository) error {
		subtotal := decimal.Zero
		for _, item := range in.Items {
			if item.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(item.ProductID, pred)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock < item.Quantity {
				return domain.ErrInsufficientStock
			}
			lineTotal := product.SalePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, entity.LabOrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.SalePrice,
				LineTotal:   lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)

			newStock := product.Stock - item.Quantity
			status := entity.StockStatus(newStock, product.MinStock)
			if err := productRepo.UpdateStock(product.ID, newStock, status); err != nil {
				return err
			}
			if product.OwnerID != "" && product.OwnerID != userID {
				sharedProductIDs = append(sharedProductIDs, product.ID)
			}
		}
		order.Subtotal = subtotal
		order.Total = subtotal
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	for _, productID := range sharedProductIDs {
		uc.logShare(productID, userID, role, entity.ShareActionOrder)
	}
	return toLabOrderResponse(order), nil
}

// GetByID devuelve la orden si el llamador es requester, assignee o admin;
// en cualquier otro caso es indistinguible de una orden inexistente.
func (uc *LabOrderUseCase) GetByID(id, role, userID string) (*dto.LabOrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || !canSeeOrder(order, role, userID) {
		return nil, nil
	}
	return toLabOrderResponse(order), nil
}

// ListForCaller lista las órdenes del llamador: admin ve todas; el resto ve las
// que pidió más las que tiene asignadas, ordenadas por fecha descendente.
func (uc *LabOrderUseCase) ListForCaller(role, userID string) (*dto.LabOrderListResponse, error) {
	var list []*entity.LabOrder
	if role == entity.RoleAdmin {
		all, err := uc.orders.ListAll()
		if err != nil {
			return nil, err
		}
		list = all
	} else {
		requested, err := uc.orders.ListByRequester(userID)
		if err != nil {
			return nil, err
		}
		assigned, err := uc.orders.ListByAssignee(userID)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{}, len(requested))
		for _, o := range requested {
			seen[o.ID] = struct{}{}
			list = append(list, o)
		}
		for _, o := range assigned {
			if _, ok := seen[o.ID]; !ok {
				list = append(list, o)
			}
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	items := make([]dto.LabOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toLabOrderResponse(o))
	}
	return &dto.LabOrderListResponse{Items: items, Total: len(items)}, nil
}

// UpdateStatus transiciona el estado de la orden. Estados terminales son
// inmutables: la transición ilegal devuelve ErrConflict.
func (uc *LabOrderUseCase) UpdateStatus(id, status string) (*dto.LabOrderResponse, error) {
	switch status {
	case entity.OrderStatusProcessing, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !entity.CanTransition(order.Status, status) {
		return nil, domain.ErrConflict
	}
	if err := uc.orders.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	return toLabOrderResponse(order), nil
}

// Report genera el PDF de la orden, con los perfiles de las partes si existen.
func (uc *LabOrderUseCase) Report(id, role, userID string) ([]byte, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || !canSeeOrder(order, role, userID) {
		return nil, domain.ErrNotFound
	}
	requester, err := uc.profiles.GetByID(order.RequesterID)
	if err != nil {
		return nil, err
	}
	assignee, err := uc.profiles.GetByID(order.AssigneeID)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateOrderPDF(order, requester, assignee)
}

func (uc *LabOrderUseCase) logShare(productID, sharedBy, role, action string) {
	err := uc.shareLog.Insert(&entity.ShareLog{
		ID:             uuid.New().String(),
		ProductID:      productID,
		SharedBy:       sharedBy,
		SharedWithRole: role,
		Action:         action,
		CreatedAt:      time.Now(),
	})
	if err != nil && uc.log != nil {
		uc.log.Warn().Err(err).
			Str("product_id", productID).
			Str("action", action).
			Msg("bitácora de compartición falló, se descarta")
	}
}

func canSeeOrder(o *entity.LabOrder, role, userID string) bool {
	return role == entity.RoleAdmin || o.RequesterID == userID || o.AssigneeID == userID
}

// newOrderNumber genera un consecutivo legible: LO-<fecha>-<sufijo aleatorio>.
func newOrderNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return "LO-" + time.Now().Format("20060102") + "-" + suffix
}

func toLabOrderResponse(o *entity.LabOrder) *dto.LabOrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.LabOrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.LabOrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.LabOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		RequesterID: o.RequesterID,
		AssigneeID:  o.AssigneeID,
		Items:       items,
		Subtotal:    o.Subtotal,
		Total:       o.Total,
		Status:      o.Status,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
