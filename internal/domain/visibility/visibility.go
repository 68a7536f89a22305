// Package visibility compila el par (rol, userID) en el predicado que decide qué
// productos puede ver un llamador. Es un value type plano: los cuatro caminos de
// lectura (list, get, search, categories) consumen el MISMO predicado, y el adaptador
// de persistencia lo traduce a SQL sin duplicar la lógica de roles.
package visibility

import "github.com/tu-usuario/labstock-api/internal/domain/entity"

// Predicate describe el filtro de visibilidad de un llamador.
// Un producto es visible si Unrestricted, si su Visibility está en Shared,
// o si OwnerID coincide con el dueño del producto.
type Predicate struct {
	Unrestricted bool
	Shared       []entity.Visibility
	OwnerID      string
}

// ForRole construye el predicado para un rol:
//
//	wholesale  -> dueño OR catálogo mayorista
//	retail     -> catálogo mayorista OR dueño OR catálogo minorista
//	individual -> solo público
//	admin      -> sin restricción
//	otro       -> solo público (tratamiento por defecto)
func ForRole(role, userID string) Predicate {
	switch role {
	case entity.RoleWholesale:
		return Predicate{
			Shared:  []entity.Visibility{entity.VisibilityWholesale},
			OwnerID: userID,
		}
	case entity.RoleRetail:
		return Predicate{
			Shared:  []entity.Visibility{entity.VisibilityWholesale, entity.VisibilityRetail},
			OwnerID: userID,
		}
	case entity.RoleAdmin:
		return Predicate{Unrestricted: true}
	case entity.RoleIndividual:
		return Predicate{Shared: []entity.Visibility{entity.VisibilityPublic}}
	default:
		return Predicate{Shared: []entity.Visibility{entity.VisibilityPublic}}
	}
}

// Matches evalúa el predicado en memoria contra un producto.
// Es la misma semántica que compila el adaptador postgres a SQL.
func (p Predicate) Matches(prod *entity.Product) bool {
	if p.Unrestricted {
		return true
	}
	for _, v := range p.Shared {
		if prod.Visibility == v {
			return true
		}
	}
	return p.OwnerID != "" && prod.OwnerID == p.OwnerID
}
