package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// memStore base en memoria. Cada transacción toma el mutex completo (equivale a bloquear
// todas las filas) y trabaja sobre una copia que solo se publica si fn no devuelve error.
type memStore struct {
	mu       sync.Mutex
	products map[string]entity.Product
	sales    map[string]entity.Sale
	losses   map[string]entity.Loss
	failOn   string // si no es vacío, UpdateQuantity de ese producto falla
}

func newMemStore(products ...entity.Product) *memStore {
	s := &memStore{
		products: map[string]entity.Product{},
		sales:    map[string]entity.Sale{},
		losses:   map[string]entity.Loss{},
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memStore) quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

func (s *memStore) Run(ctx context.Context, fn func(repository.ProductRepository, repository.SaleRepository, repository.LossRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		products: cloneMap(s.products),
		sales:    cloneMap(s.sales),
		losses:   cloneMap(s.losses),
		failOn:   s.failOn,
	}
	if err := fn(memProducts{tx}, memSales{tx}, memLosses{tx}); err != nil {
		return err
	}
	s.products, s.sales, s.losses = tx.products, tx.sales, tx.losses
	return nil
}

// lecturas fuera de transacción
func (s *memStore) saleReader() repository.SaleRepository {
	return lockedSales{s}
}

func (s *memStore) lossReader() repository.LossRepository {
	return lockedLosses{s}
}

type memTx struct {
	products map[string]entity.Product
	sales    map[string]entity.Sale
	losses   map[string]entity.Loss
	failOn   string
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var errBoom = errors.New("fallo de escritura simulado")

type memProducts struct{ tx *memTx }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.tx.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.tx.products[p.ID] = *p
	return nil
}

func (r memProducts) UpdateQuantity(_ context.Context, id string, q int) error {
	if id == r.tx.failOn {
		return errBoom
	}
	p, ok := r.tx.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if q < 0 {
		panic("stock negativo")
	}
	p.Quantity = q
	r.tx.products[id] = p
	return nil
}

func (r memProducts) List(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.tx.products))
	for _, p := range r.tx.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (r memProducts) Delete(_ context.Context, id string) error {
	delete(r.tx.products, id)
	return nil
}

type memSales struct{ tx *memTx }

func (r memSales) Create(_ context.Context, s *entity.Sale) error {
	c := *s
	c.Product = nil
	r.tx.sales[s.ID] = c
	return nil
}

func (r memSales) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.tx.sales[id]
	if !ok {
		return nil, nil
	}
	if p, ok := r.tx.products[s.ProductID]; ok {
		s.Product = &p
	}
	return &s, nil
}

func (r memSales) GetForUpdate(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.tx.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r memSales) Update(_ context.Context, s *entity.Sale) error {
	if _, ok := r.tx.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *s
	c.Product = nil
	r.tx.sales[s.ID] = c
	return nil
}

func (r memSales) Delete(_ context.Context, id string) error {
	delete(r.tx.sales, id)
	return nil
}

func (r memSales) List(ctx context.Context) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.tx.sales))
	for id := range r.tx.sales {
		s, _ := r.GetByID(ctx, id)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type memLosses struct{ tx *memTx }

func (r memLosses) Create(_ context.Context, l *entity.Loss) error {
	c := *l
	c.Product = nil
	r.tx.losses[l.ID] = c
	return nil
}

func (r memLosses) GetByID(_ context.Context, id string) (*entity.Loss, error) {
	l, ok := r.tx.losses[id]
	if !ok {
		return nil, nil
	}
	if p, ok := r.tx.products[l.ProductID]; ok {
		l.Product = &p
	}
	return &l, nil
}

func (r memLosses) GetForUpdate(_ context.Context, id string) (*entity.Loss, error) {
	l, ok := r.tx.losses[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r memLosses) Update(_ context.Context, l *entity.Loss) error {
	c := *l
	c.Product = nil
	r.tx.losses[l.ID] = c
	return nil
}

func (r memLosses) Delete(_ context.Context, id string) error {
	delete(r.tx.losses, id)
	return nil
}

func (r memLosses) List(ctx context.Context) ([]*entity.Loss, error) {
	out := make([]*entity.Loss, 0, len(r.tx.losses))
	for id := range r.tx.losses {
		l, _ := r.GetByID(ctx, id)
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// lockedSales / lockedLosses leen el estado publicado tomando el mutex del store.
type lockedSales struct{ s *memStore }

func (r lockedSales) view() memSales {
	return memSales{&memTx{products: r.s.products, sales: r.s.sales, losses: r.s.losses}}
}

func (r lockedSales) Create(ctx context.Context, x *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Create(ctx, x)
}

func (r lockedSales) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().GetByID(ctx, id)
}

func (r lockedSales) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r lockedSales) Update(ctx context.Context, x *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Update(ctx, x)
}

func (r lockedSales) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Delete(ctx, id)
}

func (r lockedSales) List(ctx context.Context) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().List(ctx)
}

type lockedLosses struct{ s *memStore }

func (r lockedLosses) view() memLosses {
	return memLosses{&memTx{products: r.s.products, sales: r.s.sales, losses: r.s.losses}}
}

func (r lockedLosses) Create(ctx context.Context, x *entity.Loss) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Create(ctx, x)
}

func (r lockedLosses) GetByID(ctx context.Context, id string) (*entity.Loss, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().GetByID(ctx, id)
}

func (r lockedLosses) GetForUpdate(ctx context.Context, id string) (*entity.Loss, error) {
	return r.GetByID(ctx, id)
}

func (r lockedLosses) Update(ctx context.Context, x *entity.Loss) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Update(ctx, x)
}

func (r lockedLosses) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().Delete(ctx, id)
}

func (r lockedLosses) List(ctx context.Context) ([]*entity.Loss, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.view().List(ctx)
}
