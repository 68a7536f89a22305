package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/labstock-api/internal/application/dto"
	"github.com/tu-usuario/labstock-api/internal/application/usecase"
	"github.com/tu-usuario/labstock-api/internal/domain"
	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seedProduct(repo *fakeProductRepo, id, name string, vis entity.Visibility, ownerID string, stock int) *entity.Product {
	p := &entity.Product{
		ID:         id,
		Name:       name,
		Category:   "Insumos",
		Stock:      stock,
		MinStock:   5,
		SalePrice:  decimal.NewFromFloat(9.99),
		Status:     entity.StockStatus(stock, 5),
		Visibility: vis,
		OwnerID:    ownerID,
	}
	_ = repo.Create(p)
	return p
}

func TestProductCreate_VisibilidadDerivadaDelRol(t *testing.T) {
	cases := []struct {
		role string
		want entity.Visibility
	}{
		{entity.RoleWholesale, entity.VisibilityWholesale},
		{entity.RoleRetail, entity.VisibilityRetail},
		{entity.RoleIndividual, entity.VisibilityPrivate},
		{"desconocido", entity.VisibilityPrivate},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			repo := newFakeProductRepo()
			uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

			out, err := uc.Create(dto.CreateProductRequest{Name: "Tubo de ensayo", Stock: 10}, tc.role, "user-1")
			require.NoError(t, err)
			require.NotNil(t, out)

			stored := repo.products[out.ID]
			require.NotNil(t, stored)
			assert.Equal(t, tc.want, stored.Visibility)
			assert.Equal(t, "user-1", stored.OwnerID)
			assert.Equal(t, entity.StatusInStock, stored.Status)
		})
	}
}

// Escenario completo de compartición: el mayorista publica y el minorista lo ve;
// el comprador individual no.
func TestProductListVisible_CatalogoMayoristaLlegaAlMinorista(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	created, err := uc.Create(dto.CreateProductRequest{Name: "Centrífuga", Stock: 3}, entity.RoleWholesale, "W1")
	require.NoError(t, err)

	retailView, err := uc.ListVisible(entity.RoleRetail, "R1")
	require.NoError(t, err)
	require.Equal(t, 1, retailView.Total)
	assert.Equal(t, created.ID, retailView.Items[0].ID)

	individualView, err := uc.ListVisible(entity.RoleIndividual, "I1")
	require.NoError(t, err)
	assert.Equal(t, 0, individualView.Total)
}

func TestProductListVisible_ExcluyeBorradosYAgotados(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-ok", "Visible", entity.VisibilityPublic, "W1", 10)
	seedProduct(repo, "p-zero", "Agotado", entity.VisibilityPublic, "W1", 0)
	deleted := seedProduct(repo, "p-del", "Borrado", entity.VisibilityPublic, "W1", 10)
	deleted.Status = entity.StatusDeleted
	_ = repo.Update(deleted)

	out, err := uc.ListVisible(entity.RoleIndividual, "I1")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p-ok", out.Items[0].ID)
}

func TestProductGetByID_NoVisibleEsIndistinguibleDeInexistente(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityWholesale, "W1", 10)

	// Producto existente pero fuera del catálogo del individual: (nil, nil).
	out, err := uc.GetByID("p-1", entity.RoleIndividual, "I1")
	require.NoError(t, err)
	assert.Nil(t, out)

	// Producto que no existe: misma respuesta.
	out, err = uc.GetByID("no-existe", entity.RoleIndividual, "I1")
	require.NoError(t, err)
	assert.Nil(t, out)

	// Admin sí lo ve.
	out, err = uc.GetByID("p-1", entity.RoleAdmin, "A1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "p-1", out.ID)
}

func TestProductGetByID_RegistraVistaDeProductoAjeno(t *testing.T) {
	repo := newFakeProductRepo()
	shareLog := &fakeShareLog{}
	uc := usecase.NewProductUseCase(repo, shareLog, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityWholesale, "W1", 10)

	// El minorista ve un producto ajeno compartido: queda evento "view".
	_, err := uc.GetByID("p-1", entity.RoleRetail, "R1")
	require.NoError(t, err)
	require.Len(t, shareLog.entries, 1)
	assert.Equal(t, "p-1", shareLog.entries[0].ProductID)
	assert.Equal(t, "R1", shareLog.entries[0].SharedBy)
	assert.Equal(t, entity.ShareActionView, shareLog.entries[0].Action)

	// El dueño ve su propio producto: sin evento.
	_, err = uc.GetByID("p-1", entity.RoleWholesale, "W1")
	require.NoError(t, err)
	assert.Len(t, shareLog.entries, 1)
}

func TestProductGetByID_BitacoraFallidaNoPropagaElError(t *testing.T) {
	repo := newFakeProductRepo()
	shareLog := &fakeShareLog{failWith: errors.New("tabla no disponible")}
	uc := usecase.NewProductUseCase(repo, shareLog, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityWholesale, "W1", 10)

	out, err := uc.GetByID("p-1", entity.RoleRetail, "R1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "p-1", out.ID)
}

func TestProductSearch_SubconjuntoDelCatalogoVisible(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "jeringa 5ml", entity.VisibilityWholesale, "W1", 10)
	seedProduct(repo, "p-2", "jeringa 10ml", entity.VisibilityPrivate, "W2", 10)
	seedProduct(repo, "p-3", "guantes", entity.VisibilityWholesale, "W1", 10)

	// El término matchea p-1 y p-2, pero p-2 es privado de otro: solo p-1.
	out, err := uc.Search("Jeringa", entity.RoleRetail, "R1", "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p-1", out.Items[0].ID)
}

func TestProductSearch_NormalizaMayusculasYAcentos(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "acido sulfurico", entity.VisibilityPublic, "W1", 10)

	out, err := uc.Search("  ÁCIDO  ", entity.RoleIndividual, "I1", "")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
}

// El plegado tiene que ser simétrico: un nombre almacenado CON acentos debe
// encontrarse tanto con el término acentuado como sin acentuar.
func TestProductSearch_NombreAcentuadoSeEncuentraConYSinAcentos(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	p := seedProduct(repo, "p-1", "Ácido Sulfúrico", entity.VisibilityPublic, "W1", 10)
	p.Description = "Solución concentrada para análisis"
	_ = repo.Update(p)

	for _, term := range []string{"ácido", "acido", "ÁCIDO", "sulfurico", "Sulfúrico"} {
		out, err := uc.Search(term, entity.RoleIndividual, "I1", "")
		require.NoError(t, err, "término %q", term)
		assert.Equal(t, 1, out.Total, "término %q debe encontrar el producto", term)
	}

	// También sobre la descripción acentuada.
	out, err := uc.Search("analisis", entity.RoleIndividual, "I1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
}

func TestProductSearch_FiltraPorCategoria(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	a := seedProduct(repo, "p-1", "alcohol gel", entity.VisibilityPublic, "W1", 10)
	a.Category = "Antisépticos"
	_ = repo.Update(a)
	seedProduct(repo, "p-2", "alcohol 70%", entity.VisibilityPublic, "W1", 10)

	out, err := uc.Search("alcohol", entity.RoleIndividual, "I1", "Antisépticos")
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p-1", out.Items[0].ID)
}

func TestProductListCategories_DistintasNoVaciasOrdenadas(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	for i, cat := range []string{"Reactivos", "Insumos", "Reactivos", ""} {
		p := seedProduct(repo, string(rune('a'+i)), "Prod "+string(rune('a'+i)), entity.VisibilityPublic, "W1", 10)
		p.Category = cat
		_ = repo.Update(p)
	}

	out, err := uc.ListCategories(entity.RoleIndividual, "I1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Insumos", "Reactivos"}, out.Categories)
}

func TestProductListCategories_SoloSobreElCatalogoVisible(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	p := seedProduct(repo, "p-1", "Privado", entity.VisibilityPrivate, "W1", 10)
	p.Category = "Oculta"
	_ = repo.Update(p)

	out, err := uc.ListCategories(entity.RoleIndividual, "I1")
	require.NoError(t, err)
	assert.Empty(t, out.Categories)
}

func TestProductUpdateStock_RecalculaEstado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityWholesale, "W1", 100)

	out, err := uc.UpdateStock("p-1", 3) // MinStock = 5
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, entity.StatusLowStock, out.Status)

	out, err = uc.UpdateStock("p-1", 0)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutOfStock, out.Status)
}

func TestProductUpdateStock_RechazaNegativo(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityWholesale, "W1", 100)

	_, err := uc.UpdateStock("p-1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductSoftDelete_DesapareceDeTodasLasLecturas(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	seedProduct(repo, "p-1", "Reactivo", entity.VisibilityPublic, "W1", 100)

	require.NoError(t, uc.SoftDelete("p-1"))

	// La fila sigue existiendo, pero ninguna lectura la devuelve, ni para admin.
	assert.Equal(t, entity.StatusDeleted, repo.products["p-1"].Status)

	list, err := uc.ListVisible(entity.RoleAdmin, "A1")
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)

	got, err := uc.GetByID("p-1", entity.RoleAdmin, "A1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductListVisible_ErrorDeConsultaSePropaga(t *testing.T) {
	repo := newFakeProductRepo()
	repo.failWith = errors.New("conexión rechazada")
	uc := usecase.NewProductUseCase(repo, &fakeShareLog{}, quietLogger())

	_, err := uc.ListVisible(entity.RoleAdmin, "A1")
	assert.Error(t, err)
}
