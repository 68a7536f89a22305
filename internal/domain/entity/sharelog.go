package entity

import "time"

// Acciones registrables en la bitácora de compartición de productos.
const (
	ShareActionView   = "view"
	ShareActionOrder  = "order"
	ShareActionUpdate = "update"
)

// ShareLog evento de auditoría: quién accedió a un producto compartido y con qué rol.
// Es no-crítico: su escritura nunca debe abortar la operación principal.
type ShareLog struct {
	ID             string
	ProductID      string
	SharedBy       string
	SharedWithRole string
	Action         string // view, order, update
	CreatedAt      time.Time
}
