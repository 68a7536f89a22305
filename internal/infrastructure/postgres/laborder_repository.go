package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
)

var _ repository.LabOrderRepository = (*LabOrderRepo)(nil)

// LabOrderRepo implementación del puerto LabOrderRepository sobre PostgreSQL (usable con pool o tx).
type LabOrderRepo struct {
	q Querier
}

// NewLabOrderRepository construye el adaptador de persistencia para órdenes.
func NewLabOrderRepository(q Querier) *LabOrderRepo {
	return &LabOrderRepo{q: q}
}

const orderColumns = `id, order_number, requester_id, assignee_id, subtotal, total, status, notes, created_at, updated_at`

// Create persiste la orden y sus líneas. Debe llamarse dentro de una tx
// (el TxRunner pasa el Querier transaccional).
func (r *LabOrderRepo) Create(order *entity.LabOrder) error {
	query := `
		INSERT INTO lab_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.RequesterID, order.AssigneeID,
		order.Subtotal, order.Total, order.Status, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lab order: %w", err)
	}
	for _, item := range order.Items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO lab_order_items (id, order_id, product_id, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, order.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert lab order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas. No encontrada: (nil, nil).
func (r *LabOrderRepo) GetByID(id string) (*entity.LabOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM lab_orders WHERE id = $1`
	var o entity.LabOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.RequesterID, &o.AssigneeID,
		&o.Subtotal, &o.Total, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lab order: %w", err)
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByRequester lista las órdenes pedidas por un usuario.
func (r *LabOrderRepo) ListByRequester(requesterID string) ([]*entity.LabOrder, error) {
	return r.list(`WHERE requester_id = $1`, requesterID)
}

// ListByAssignee lista las órdenes asignadas a un usuario.
func (r *LabOrderRepo) ListByAssignee(assigneeID string) ([]*entity.LabOrder, error) {
	return r.list(`WHERE assignee_id = $1`, assigneeID)
}

// ListAll lista todas las órdenes (solo admin).
func (r *LabOrderRepo) ListAll() ([]*entity.LabOrder, error) {
	return r.list(``)
}

func (r *LabOrderRepo) list(where string, args ...any) ([]*entity.LabOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM lab_orders ` + where + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lab orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.LabOrder
	for rows.Next() {
		var o entity.LabOrder
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.RequesterID, &o.AssigneeID,
			&o.Subtotal, &o.Total, &o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lab order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateStatus cambia el estado de la orden (la validez de la transición se
// decide en el usecase).
func (r *LabOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lab_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update lab order status: %w", err)
	}
	return nil
}

func (r *LabOrderRepo) loadItems(o *entity.LabOrder) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total
		FROM lab_order_items WHERE order_id = $1`, o.ID)
	if err != nil {
		return fmt.Errorf("list lab order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.LabOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return fmt.Errorf("scan lab order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
