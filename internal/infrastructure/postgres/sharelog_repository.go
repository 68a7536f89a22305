package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
)

var _ repository.ShareLogRepository = (*ShareLogRepo)(nil)

// ShareLogRepo bitácora de compartición de productos. Escritura simple, sin lecturas
// desde la API (se consulta directo en la DB cuando hace falta auditar).
type ShareLogRepo struct {
	q Querier
}

// NewShareLogRepository construye el adaptador de la bitácora.
func NewShareLogRepository(q Querier) *ShareLogRepo {
	return &ShareLogRepo{q: q}
}

// Insert registra un evento de compartición.
func (r *ShareLogRepo) Insert(log *entity.ShareLog) error {
	query := `
		INSERT INTO product_share_logs (id, product_id, shared_by, shared_with_role, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.ProductID, log.SharedBy, log.SharedWithRole, log.Action, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert share log: %w", err)
	}
	return nil
}
