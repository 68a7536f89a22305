package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/tu-usuario/labstock-api/internal/domain/entity"
	"github.com/tu-usuario/labstock-api/internal/domain/repository"
	"github.com/tu-usuario/labstock-api/internal/domain/visibility"
	"github.com/tu-usuario/labstock-api/pkg/normalize"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Replican el contrato del adaptador postgres: List excluye
// borrados y stock cero (salvo IncludeZeroStock), aplica el predicado y ordena
// por nombre; GetByID aplica el mismo predicado.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	failWith error // si no es nil, toda operación falla con este error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string, pred visibility.Predicate) (*entity.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	p, ok := f.products[id]
	if !ok || p.IsDeleted() || !pred.Matches(p) {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var list []*entity.Product
	for _, p := range f.products {
		if p.IsDeleted() || !filter.Predicate.Matches(p) {
			continue
		}
		if !filter.IncludeZeroStock && p.Stock == 0 {
			continue
		}
		if filter.Search != "" {
			// Mismo plegado en ambos lados que el adaptador postgres (unaccent + ILIKE).
			name := normalize.Fold(p.Name)
			desc := normalize.Fold(p.Description)
			if !strings.Contains(name, filter.Search) && !strings.Contains(desc, filter.Search) {
				continue
			}
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) UpdateStock(id string, stock int, status string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if p, ok := f.products[id]; ok {
		p.Stock = stock
		p.Status = status
	}
	return nil
}

func (f *fakeProductRepo) SoftDelete(id string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if p, ok := f.products[id]; ok {
		p.Status = entity.StatusDeleted
	}
	return nil
}

type fakeShareLog struct {
	entries  []*entity.ShareLog
	failWith error
}

func (f *fakeShareLog) Insert(log *entity.ShareLog) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, log)
	return nil
}

type fakeOrderRepo struct {
	orders   map[string]*entity.LabOrder
	failWith error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.LabOrder)}
}

func (f *fakeOrderRepo) Create(o *entity.LabOrder) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.LabOrder, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByRequester(requesterID string) ([]*entity.LabOrder, error) {
	return f.filter(func(o *entity.LabOrder) bool { return o.RequesterID == requesterID })
}

func (f *fakeOrderRepo) ListByAssignee(assigneeID string) ([]*entity.LabOrder, error) {
	return f.filter(func(o *entity.LabOrder) bool { return o.AssigneeID == assigneeID })
}

func (f *fakeOrderRepo) ListAll() ([]*entity.LabOrder, error) {
	return f.filter(func(*entity.LabOrder) bool { return true })
}

func (f *fakeOrderRepo) filter(keep func(*entity.LabOrder) bool) ([]*entity.LabOrder, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var list []*entity.LabOrder
	for _, o := range f.orders {
		if keep(o) {
			cp := *o
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) UpdateStatus(id, status string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if o, ok := f.orders[id]; ok {
		o.Status = status
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (f *fakeProfileRepo) Create(p *entity.Profile) error {
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes (sin tx real).
type fakeTxRunner struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.LabOrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(f.orders, f.products)
}

// fakeReport devuelve bytes fijos.
type fakeReport struct{}

func (fakeReport) GenerateOrderPDF(*entity.LabOrder, *entity.Profile, *entity.Profile) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}
