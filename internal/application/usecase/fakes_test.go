package usecase_test

import (
	"context"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia, suficientes para ejercitar
// los casos de uso sin PostgreSQL.

type fakeProductRepo struct {
	products map[string]*entity.Product
	order    []string
	// getByIDErr inyecta un fallo de lectura para un id puntual.
	getByIDErr func(id string) error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.getByIDErr != nil {
		if err := r.getByIDErr(id); err != nil {
			return nil, err
		}
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeCartRepo struct {
	carts map[string]*entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*entity.Cart{}}
}

func (r *fakeCartRepo) Create(c *entity.Cart) error {
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	r.carts[c.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByID(id string) (*entity.Cart, error) {
	c, ok := r.carts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) SaveItems(cartID string, items []entity.CartItem) error {
	if c, ok := r.carts[cartID]; ok {
		c.Items = append([]entity.CartItem(nil), items...)
	}
	return nil
}

func (r *fakeCartRepo) Clear(cartID string) error {
	return r.SaveItems(cartID, nil)
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	products repository.ProductRepository
	carts    repository.CartRepository
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProductRepository, repository.CartRepository) error) error {
	return fn(t.products, t.carts)
}
