package repository

import (
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
)

// ProductFilter describe una consulta de lectura sobre productos: predicado de
// visibilidad + filtros opcionales. Patrón filtro-como-struct, no API fluida.
type ProductFilter struct {
	Predicate        visibility.Predicate
	Search           string // substring ya normalizado, match sobre name/description
	Category         string // match exacto
	IncludeZeroStock bool   // true para el dashboard (cuenta agotados)
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// List y GetByID excluyen siempre los borrados lógicos y aplican el predicado;
// las mutaciones son incondicionales por id (la autorización de escritura vive
// en la capa remota, fuera de este componente).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string, pred visibility.Predicate) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int, status string) error
	SoftDelete(id string) error
}
