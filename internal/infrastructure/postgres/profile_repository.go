package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, email, password_hash, business_name, role, active, created_at, updated_at`

// Create persiste un nuevo perfil. Email duplicado: ErrEmailAlreadyExists.
func (r *ProfileRepo) Create(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		profile.ID, profile.Email, profile.PasswordHash, profile.BusinessName,
		profile.Role, profile.Active, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID. No encontrado: (nil, nil).
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return r.getBy("id", id)
}

// GetByEmail obtiene un perfil por email. No encontrado: (nil, nil).
func (r *ProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	return r.getBy("email", email)
}

func (r *ProfileRepo) getBy(column, value string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + column + ` = $1`
	var p entity.Profile
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.BusinessName, &p.Role, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by %s: %w", column, err)
	}
	return &p, nil
}
