package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	profiles repository.ProfileRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profiles repository.ProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profiles: profiles, jwtCfg: jwtCfg}
}

// Register crea un perfil: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
// Rol vacío se registra como individual; rol no reconocido es entrada inválida.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	existing, _ := uc.profiles.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleIndividual
	}
	switch role {
	case entity.RoleWholesale, entity.RoleRetail, entity.RoleIndividual, entity.RoleAdmin:
	default:
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.BusinessName
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		BusinessName: name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profiles.Create(profile); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

// Login verifica email/password, genera JWT con el claim de rol y retorna token + perfil.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profiles.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !profile.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Profile: *toProfileResponse(profile)}, nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:           p.ID,
		Email:        p.Email,
		BusinessName: p.BusinessName,
		Role:         p.Role,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
