package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// El predicado de visibilidad se compila a SQL aquí y solo aquí.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// productSelect incluye el LEFT JOIN a profiles para resolver el nombre comercial
// del dueño; sin perfil, cae al placeholder según el nivel de compartición.
const productSelect = `
	SELECT p.id, p.name, p.description, p.category, p.sku, p.stock, p.min_stock, p.max_stock,
	       p.purchase_price, p.sale_price, p.supplier, p.expiry_date, p.batch_id,
	       p.status, p.visibility, p.owner_id,
	       COALESCE(pr.business_name,
	                CASE WHEN p.visibility = 'retail' THEN 'Unknown Retailer' ELSE 'Unknown Wholesaler' END) AS owner_name,
	       p.created_at, p.updated_at
	FROM products p
	LEFT JOIN profiles pr ON pr.id = p.owner_id`

// predicateClause compila un visibility.Predicate a una cláusula WHERE con sus args.
// Un predicado vacío (sin niveles compartidos ni dueño) no permite ver nada.
func predicateClause(pred visibility.Predicate, args []any) (string, []any) {
	if pred.Unrestricted {
		return "TRUE", args
	}
	var parts []string
	if len(pred.Shared) > 0 {
		shared := make([]string, 0, len(pred.Shared))
		for _, v := range pred.Shared {
			shared = append(shared, string(v))
		}
		args = append(args, shared)
		parts = append(parts, fmt.Sprintf("p.visibility = ANY($%d)", len(args)))
	}
	if pred.OwnerID != "" {
		args = append(args, pred.OwnerID)
		parts = append(parts, fmt.Sprintf("p.owner_id = $%d", len(args)))
	}
	if len(parts) == 0 {
		return "FALSE", args
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, category, sku, stock, min_stock, max_stock,
		                      purchase_price, sale_price, supplier, expiry_date, batch_id,
		                      status, visibility, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category, product.SKU,
		product.Stock, product.MinStock, product.MaxStock,
		product.PurchasePrice, product.SalePrice, product.Supplier, product.ExpiryDate, product.BatchID,
		product.Status, string(product.Visibility), product.OwnerID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert product: sku duplicado: %w", err)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID aplicando el predicado de visibilidad.
// Producto inexistente, borrado o invisible para el llamador: (nil, nil).
func (r *ProductRepo) GetByID(id string, pred visibility.Predicate) (*entity.Product, error) {
	args := []any{id}
	clause, args := predicateClause(pred, args)
	query := productSelect + `
	WHERE p.id = $1 AND p.status <> 'deleted' AND ` + clause

	var p entity.Product
	err := scanProduct(r.q.QueryRow(context.Background(), query, args...), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos según el filtro: predicado + búsqueda + categoría,
// siempre sin borrados, por defecto solo con stock > 0, ordenado por nombre.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var args []any
	clause, args := predicateClause(filter.Predicate, args)
	conds := []string{"p.status <> 'deleted'", clause}

	if !filter.IncludeZeroStock {
		conds = append(conds, "p.stock > 0")
	}
	if filter.Search != "" {
		// El término llega ya plegado (minúsculas, sin acentos); unaccent sobre las
		// columnas + ILIKE hace la comparación simétrica ("ácido" encuentra
		// "Ácido Sulfúrico"). Requiere la extensión unaccent en la base.
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(unaccent(p.name) ILIKE $%d OR unaccent(p.description) ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("p.category = $%d", len(args)))
	}

	query := productSelect + `
	WHERE ` + strings.Join(conds, " AND ") + `
	ORDER BY p.name ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables (el stock va por UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, sku = $5, min_stock = $6, max_stock = $7,
		    purchase_price = $8, sale_price = $9, supplier = $10, expiry_date = $11, batch_id = $12,
		    status = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category, product.SKU,
		product.MinStock, product.MaxStock, product.PurchasePrice, product.SalePrice,
		product.Supplier, product.ExpiryDate, product.BatchID, product.Status, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock ajusta stock y estado denormalizado en una sola sentencia.
func (r *ProductRepo) UpdateStock(id string, stock int, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, status = $3, updated_at = now() WHERE id = $1`,
		id, stock, status,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// SoftDelete marca el producto como borrado; la fila permanece.
func (r *ProductRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET status = 'deleted', updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	return nil
}

// scanProduct lee una fila de productSelect en la entidad.
func scanProduct(row pgx.Row, p *entity.Product) error {
	var vis string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.SKU, &p.Stock, &p.MinStock, &p.MaxStock,
		&p.PurchasePrice, &p.SalePrice, &p.Supplier, &p.ExpiryDate, &p.BatchID,
		&p.Status, &vis, &p.OwnerID, &p.OwnerName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Visibility = entity.Visibility(vis)
	return nil
}
