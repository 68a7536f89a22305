package visibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
)

// producto auxiliar con visibilidad y dueño dados.
func prod(v entity.Visibility, ownerID string) *entity.Product {
	return &entity.Product{ID: "p-" + string(v), Visibility: v, OwnerID: ownerID}
}

// Tabla completa rol × visibilidad × propiedad: debe coincidir exactamente con la
// matriz de visibilidad del dominio. Ningún producto fuera del predicado aparece,
// ninguno que lo cumpla se omite.
func TestForRole_TablaCompleta(t *testing.T) {
	const me = "U1"
	const other = "U2"

	cases := []struct {
		name    string
		role    string
		product *entity.Product
		visible bool
	}{
		// wholesale: propio OR catálogo mayorista
		{"wholesale ve mayorista ajeno", entity.RoleWholesale, prod(entity.VisibilityWholesale, other), true},
		{"wholesale ve privado propio", entity.RoleWholesale, prod(entity.VisibilityPrivate, me), true},
		{"wholesale no ve privado ajeno", entity.RoleWholesale, prod(entity.VisibilityPrivate, other), false},
		{"wholesale no ve minorista ajeno", entity.RoleWholesale, prod(entity.VisibilityRetail, other), false},
		{"wholesale ve minorista propio", entity.RoleWholesale, prod(entity.VisibilityRetail, me), true},
		{"wholesale no ve público ajeno", entity.RoleWholesale, prod(entity.VisibilityPublic, other), false},

		// retail: mayorista OR propio OR minorista
		{"retail ve mayorista ajeno", entity.RoleRetail, prod(entity.VisibilityWholesale, other), true},
		{"retail ve minorista ajeno", entity.RoleRetail, prod(entity.VisibilityRetail, other), true},
		{"retail ve privado propio", entity.RoleRetail, prod(entity.VisibilityPrivate, me), true},
		{"retail no ve privado ajeno", entity.RoleRetail, prod(entity.VisibilityPrivate, other), false},
		{"retail no ve público ajeno", entity.RoleRetail, prod(entity.VisibilityPublic, other), false},

		// individual: solo público
		{"individual ve público", entity.RoleIndividual, prod(entity.VisibilityPublic, other), true},
		{"individual no ve mayorista", entity.RoleIndividual, prod(entity.VisibilityWholesale, other), false},
		{"individual no ve minorista", entity.RoleIndividual, prod(entity.VisibilityRetail, other), false},
		{"individual no ve privado propio", entity.RoleIndividual, prod(entity.VisibilityPrivate, me), false},

		// admin: sin restricción
		{"admin ve privado ajeno", entity.RoleAdmin, prod(entity.VisibilityPrivate, other), true},
		{"admin ve mayorista", entity.RoleAdmin, prod(entity.VisibilityWholesale, other), true},
		{"admin ve público", entity.RoleAdmin, prod(entity.VisibilityPublic, other), true},

		// rol desconocido: mismo tratamiento que individual
		{"rol desconocido ve público", "guest", prod(entity.VisibilityPublic, other), true},
		{"rol desconocido no ve mayorista", "guest", prod(entity.VisibilityWholesale, other), false},
		{"rol vacío no ve privado propio", "", prod(entity.VisibilityPrivate, me), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := visibility.ForRole(tc.role, me)
			assert.Equal(t, tc.visible, p.Matches(tc.product))
		})
	}
}

// El predicado individual/default no lleva cláusula de dueño: aunque el userID
// coincida, un producto no-público sigue siendo invisible.
func TestForRole_IndividualSinClausulaDeDueno(t *testing.T) {
	p := visibility.ForRole(entity.RoleIndividual, "U1")
	assert.Empty(t, p.OwnerID)
	assert.False(t, p.Matches(prod(entity.VisibilityPrivate, "U1")))
}

// El predicado de admin no depende del userID.
func TestForRole_AdminIgnoraUserID(t *testing.T) {
	p := visibility.ForRole(entity.RoleAdmin, "")
	assert.True(t, p.Unrestricted)
	assert.True(t, p.Matches(prod(entity.VisibilityPrivate, "cualquiera")))
}
