package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/labstock-api/internal/application/auth"
	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/labstock-api/pkg/jwt"
)

type memProfileRepo struct {
	profiles map[string]*entity.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (m *memProfileRepo) Create(p *entity.Profile) error {
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *memProfileRepo) GetByID(id string) (*entity.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func testAuthUC(repo *memProfileRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "labstock-test",
	})
}

func TestRegister_HasheaYPersiste(t *testing.T) {
	repo := newMemProfileRepo()
	uc := testAuthUC(repo)

	out, err := uc.Register(dto.RegisterRequest{
		Email:        "mayorista@demo.local",
		Password:     "super-secreta",
		BusinessName: "Distribuidora Central",
		Role:         entity.RoleWholesale,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.RoleWholesale, out.Role)
	assert.True(t, out.Active)

	stored := repo.profiles[out.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "super-secreta", stored.PasswordHash, "el password nunca se guarda en claro")
}

func TestRegister_RolVacioEsIndividual(t *testing.T) {
	uc := testAuthUC(newMemProfileRepo())

	out, err := uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleIndividual, out.Role)
}

func TestRegister_RolDesconocidoEsInvalido(t *testing.T) {
	uc := testAuthUC(newMemProfileRepo())

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "12345678", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newMemProfileRepo()
	uc := testAuthUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConRol(t *testing.T) {
	repo := newMemProfileRepo()
	uc := testAuthUC(repo)

	reg, err := uc.Register(dto.RegisterRequest{
		Email:    "minorista@demo.local",
		Password: "clave-larga",
		Role:     entity.RoleRetail,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "minorista@demo.local", Password: "clave-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, reg.ID, out.Profile.ID)

	// El rol viaja dentro del token: es lo que alimenta el resolver de visibilidad.
	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleRetail, role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := testAuthUC(newMemProfileRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "clave-larga"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.local", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := testAuthUC(newMemProfileRepo())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@b.local", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PerfilInactivo(t *testing.T) {
	repo := newMemProfileRepo()
	uc := testAuthUC(repo)

	reg, err := uc.Register(dto.RegisterRequest{Email: "a@b.local", Password: "clave-larga"})
	require.NoError(t, err)
	repo.profiles[reg.ID].Active = false

	_, err = uc.Login(dto.LoginRequest{Email: "a@b.local", Password: "clave-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
