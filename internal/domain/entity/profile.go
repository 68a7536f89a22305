package entity

import "time"

// Roles válidos para Profile. Cualquier otro valor se trata como acceso público por defecto.
const (
	RoleWholesale  = "wholesale"
	RoleRetail     = "retail"
	RoleIndividual = "individual"
	RoleAdmin      = "admin"
)

// Profile representa un usuario del sistema con su nombre comercial.
// Es la contraparte que se "joinea" para enriquecer los productos con OwnerName.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	BusinessName string
	Role         string // wholesale, retail, individual, admin
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
