package usecase_test

import (
	"context"
	"sort"

	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

type fakeProducts struct {
	items      map[string]entity.Product
	referenced map[string]bool
}

func newFakeProducts(ps ...entity.Product) *fakeProducts {
	f := &fakeProducts{items: map[string]entity.Product{}, referenced: map[string]bool{}}
	for _, p := range ps {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) nameTaken(name, except string) bool {
	for id, p := range f.items {
		if p.Name == name && id != except {
			return true
		}
	}
	return false
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	if f.nameTaken(p.Name, "") {
		return domain.ErrConflict
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProducts) Update(_ context.Context, p *entity.Product) error {
	if _, ok := f.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.nameTaken(p.Name, p.ID) {
		return domain.ErrConflict
	}
	f.items[p.ID] = *p
	return nil
}

func (f *fakeProducts) UpdateQuantity(_ context.Context, id string, q int) error {
	p := f.items[id]
	p.Quantity = q
	f.items[id] = p
	return nil
}

func (f *fakeProducts) List(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.items))
	for _, p := range f.items {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	if f.referenced[id] {
		return domain.ErrConflict
	}
	delete(f.items, id)
	return nil
}

type fakeUsers struct {
	items        map[string]entity.User
	lastReplaced bool
}

func newFakeUsers() *fakeUsers { return &fakeUsers{items: map[string]entity.User{}} }

func (f *fakeUsers) taken(u *entity.User) bool {
	for id, x := range f.items {
		if id != u.ID && (x.Username == u.Username || x.Email == u.Email) {
			return true
		}
	}
	return false
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	if f.taken(u) {
		return domain.ErrConflict
	}
	f.items[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, name string) (*entity.User, error) {
	for _, u := range f.items {
		if u.Username == name {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, u *entity.User, replaceRoles bool) error {
	old, ok := f.items[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.taken(u) {
		return domain.ErrConflict
	}
	f.lastReplaced = replaceRoles
	c := *u
	if !replaceRoles {
		c.Roles = old.Roles
	}
	f.items[u.ID] = c
	return nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u := f.items[id]
	u.PasswordHash = hash
	f.items[id] = u
	return nil
}

func (f *fakeUsers) List(context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(f.items))
	for _, u := range f.items {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRoles struct{}

var seeded = []entity.Role{{ID: "r1", Name: entity.RoleAdmin}, {ID: "r2", Name: entity.RoleManager}, {ID: "r3", Name: entity.RoleEmployee}}

func (fakeRoles) List(context.Context) ([]entity.Role, error) { return seeded, nil }

func (fakeRoles) GetByNames(_ context.Context, names []string) ([]entity.Role, error) {
	var out []entity.Role
	for _, r := range seeded {
		for _, n := range names {
			if r.Name == n {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type fakeExpenses struct {
	items map[string]entity.Expense
}

func (f *fakeExpenses) Create(_ context.Context, e *entity.Expense) error {
	f.items[e.ID] = *e
	return nil
}

func (f *fakeExpenses) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeExpenses) Update(_ context.Context, e *entity.Expense) error {
	if _, ok := f.items[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[e.ID] = *e
	return nil
}

func (f *fakeExpenses) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeExpenses) List(context.Context) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0, len(f.items))
	for _, e := range f.items {
		e := e
		out = append(out, &e)
	}
	return out, nil
}
