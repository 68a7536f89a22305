package repository

import "github.com/tu-usuario/labstock-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile (DIP).
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByEmail(email string) (*entity.Profile, error)
}
