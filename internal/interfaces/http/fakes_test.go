package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/magasin-api/internal/interfaces/http"
)

// fakeResolver resuelve tokens opacos a usuarios fijos.
type fakeResolver struct {
	users map[string]*entity.User
	err   error
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, token string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func userWithRoles(id string, roles ...string) *entity.User {
	u := &entity.User{ID: id, Username: id}
	for _, r := range roles {
		u.Roles = append(u.Roles, entity.Role{ID: "r-" + r, Name: r})
	}
	return u
}

var (
	adminUser    = userWithRoles("u-admin", entity.RoleAdmin)
	managerUser  = userWithRoles("u-manager", entity.RoleManager)
	employeeUser = userWithRoles("u-employee", entity.RoleEmployee)
)

func newResolver() *fakeResolver {
	return &fakeResolver{users: map[string]*entity.User{
		"tok-admin":    adminUser,
		"tok-manager":  managerUser,
		"tok-employee": employeeUser,
	}}
}

// newTestApp app con el mismo ErrorHandler y middlewares que cmd/api.
func newTestApp(deps apphttp.RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(requestid.New())
	apphttp.Router(app, deps)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// memProducts repositorio de productos en memoria.
type memProducts struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
	used map[string]bool // referenciado por ventas/pérdidas/gastos
}

func newMemProducts(seed ...*entity.Product) *memProducts {
	m := &memProducts{byID: map[string]*entity.Product{}, used: map[string]bool{}}
	for _, p := range seed {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Name == p.Name {
			return domain.ErrConflict
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) UpdateQuantity(_ context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = qty
	return nil
}

func (m *memProducts) List(_ context.Context) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Product, 0, len(m.byID))
	for _, p := range m.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	if m.used[id] {
		return domain.ErrConflict
	}
	delete(m.byID, id)
	return nil
}

// memUsers repositorio de usuarios en memoria (solo lo que usan login y /me).
type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func newMemUsers(seed ...*entity.User) *memUsers {
	m := &memUsers{byID: map[string]*entity.User{}}
	for _, u := range seed {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (m *memUsers) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
