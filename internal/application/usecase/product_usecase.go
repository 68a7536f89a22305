package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
	"github.com/tu-usuario/labstock-api/pkg/logger"
	"github.com/tu-usuario/labstock-api/pkg/normalize"
)

// ProductUseCase resuelve la visibilidad de productos por rol y expone las
// operaciones de catálogo. El predicado se construye UNA vez (visibility.ForRole)
// y lo consumen los cuatro caminos de lectura; cualquier divergencia entre ellos
// sería un defecto.
type ProductUseCase struct {
	repo     repository.ProductRepository
	shareLog repository.ShareLogRepository
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, shareLog repository.ShareLogRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, shareLog: shareLog, log: log}
}

// Create crea un producto. La visibilidad y el dueño se derivan del rol:
// wholesale publica al catálogo mayorista, retail al minorista; cualquier otro
// rol crea un producto privado del creador.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest, role, userID string) (*dto.ProductResponse, error) {
	vis := entity.VisibilityPrivate
	switch role {
	case entity.RoleWholesale:
		vis = entity.VisibilityWholesale
	case entity.RoleRetail:
		vis = entity.VisibilityRetail
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		SKU:           in.SKU,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Supplier:      in.Supplier,
		ExpiryDate:    in.ExpiryDate,
		BatchID:       in.BatchID,
		Status:        entity.StatusInStock,
		Visibility:    vis,
		OwnerID:       userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListVisible lista los productos visibles para (role, userID): no borrados,
// con stock > 0, ordenados por nombre.
func (uc *ProductUseCase) ListVisible(role, userID string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Predicate: visibility.ForRole(role, userID),
	})
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// GetByID obtiene un producto visible para el llamador. Un producto existente
// que no pasa el predicado es indistinguible de uno inexistente: (nil, nil).
// Ver un producto compartido ajeno deja un evento "view" en la bitácora (no crítico).
func (uc *ProductUseCase) GetByID(id, role, userID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id, visibility.ForRole(role, userID))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.OwnerID != "" && product.OwnerID != userID {
		uc.LogProductSharing(product.ID, userID, role, entity.ShareActionView)
	}
	return toProductResponse(product), nil
}

// Search busca por substring case-insensitive (y sin diacríticos) sobre nombre y
// descripción, intersectado con el mismo predicado de visibilidad y, si se da,
// con la categoría exacta. El plegado es simétrico: el término se normaliza aquí
// y el adaptador aplica el mismo plegado a las columnas.
func (uc *ProductUseCase) Search(term, role, userID, category string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Predicate: visibility.ForRole(role, userID),
		Search:    normalize.Fold(term),
		Category:  category,
	})
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// ListCategories deriva las categorías distintas y no vacías del catálogo visible.
// No hay camino de consulta separado: se calcula sobre el resultado de ListVisible.
func (uc *ProductUseCase) ListCategories(role, userID string) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(repository.ProductFilter{
		Predicate: visibility.ForRole(role, userID),
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range list {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return &dto.CategoryListResponse{Categories: categories}, nil
}

// Update actualización parcial por id, sin chequeo de rol en escritura
// (el llamador es confiable; la autorización fina vive en la capa remota).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id, visibility.Predicate{Unrestricted: true})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = in.MaxStock
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if in.BatchID != nil {
		product.BatchID = *in.BatchID
	}
	// MinStock pudo cambiar: el label de estado debe seguir al stock real.
	if !product.IsDeleted() {
		product.Status = entity.StockStatus(product.Stock, product.MinStock)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateStock ajusta el stock y recalcula el estado denormalizado.
func (uc *ProductUseCase) UpdateStock(id string, stock int) (*dto.ProductResponse, error) {
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id, visibility.Predicate{Unrestricted: true})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	status := product.Status
	if !product.IsDeleted() {
		status = entity.StockStatus(stock, product.MinStock)
	}
	if err := uc.repo.UpdateStock(id, stock, status); err != nil {
		return nil, err
	}
	product.Stock = stock
	product.Status = status
	product.UpdatedAt = time.Now()
	return toProductResponse(product), nil
}

// SoftDelete marca el producto como borrado. La fila nunca se elimina.
func (uc *ProductUseCase) SoftDelete(id string) error {
	return uc.repo.SoftDelete(id)
}

// LogProductSharing registra un evento de auditoría de compartición. Es no-crítico:
// cualquier fallo se registra en el log y se descarta, nunca aborta al llamador.
func (uc *ProductUseCase) LogProductSharing(productID, sharedBy, sharedWithRole, action string) {
	err := uc.shareLog.Insert(&entity.ShareLog{
		ID:             uuid.New().String(),
		ProductID:      productID,
		SharedBy:       sharedBy,
		SharedWithRole: sharedWithRole,
		Action:         action,
		CreatedAt:      time.Now(),
	})
	if err != nil && uc.log != nil {
		uc.log.Warn().Err(err).
			Str("product_id", productID).
			Str("action", action).
			Msg("bitácora de compartición falló, se descarta")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		SKU:           p.SKU,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Supplier:      p.Supplier,
		ExpiryDate:    p.ExpiryDate,
		BatchID:       p.BatchID,
		Status:        p.Status,
		Visibility:    string(p.Visibility),
		OwnerID:       p.OwnerID,
		OwnerName:     p.OwnerName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductList(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}
