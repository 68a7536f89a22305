package repository

import "github.com/tu-usuario/labstock-api/internal/domain/entity"

// LabOrderRepository define el puerto de persistencia para LabOrder (DIP).
type LabOrderRepository interface {
	Create(order *entity.LabOrder) error
	GetByID(id string) (*entity.LabOrder, error)
	ListByRequester(requesterID string) ([]*entity.LabOrder, error)
	ListByAssignee(assigneeID string) ([]*entity.LabOrder, error)
	ListAll() ([]*entity.LabOrder, error)
	UpdateStatus(id, status string) error
}
