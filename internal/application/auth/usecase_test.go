package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/magasin-api/internal/application/auth"
	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/pkg/password"
)

type fakeUsers struct {
	mu      sync.Mutex
	byName  map[string]*entity.User
	lookErr error
	updated map[string]string
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{byName: map[string]*entity.User{}, updated: map[string]string{}}
	for _, u := range users {
		f.byName[u.Username] = u
	}
	return f
}

func (f *fakeUsers) Create(context.Context, *entity.User) error            { return nil }
func (f *fakeUsers) GetByID(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUsers) Update(context.Context, *entity.User, bool) error      { return nil }
func (f *fakeUsers) List(context.Context) ([]*entity.User, error)          { return nil, nil }
func (f *fakeUsers) Delete(context.Context, string) error                  { return nil }

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookErr != nil {
		return nil, f.lookErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = hash
	return nil
}

var cfg = auth.JWTConfig{Secret: "unit-test-secret", TTL: 30 * time.Minute, Issuer: "magasin-api-test"}

func strongUser(t *testing.T, name, plain string, roles ...string) *entity.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	u := &entity.User{ID: "id-" + name, Username: name, Email: name + "@magasin.local", PasswordHash: hash}
	for _, r := range roles {
		u.Roles = append(u.Roles, entity.Role{ID: "r-" + r, Name: r})
	}
	return u
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUsers(strongUser(t, "alice", "s3cret", entity.RoleManager))
	uc := auth.NewAuthUseCase(repo, cfg, nil)
	ctx := context.Background()

	u, ok := uc.Authenticate(ctx, "alice", "s3cret")
	require.True(t, ok)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, repo.updated, "hash argon2id vigente no se reescribe")

	u, ok = uc.Authenticate(ctx, "alice", "wrong")
	assert.False(t, ok)
	assert.Nil(t, u)

	u, ok = uc.Authenticate(ctx, "bob", "s3cret")
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestAuthenticate_ErrorDeAlmacenamiento(t *testing.T) {
	repo := newFakeUsers()
	repo.lookErr = errors.New("conexión caída")
	uc := auth.NewAuthUseCase(repo, cfg, nil)

	u, ok := uc.Authenticate(context.Background(), "alice", "x")
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestAuthenticate_HashCorrupto(t *testing.T) {
	repo := newFakeUsers(&entity.User{ID: "1", Username: "eve", PasswordHash: "plano"})
	uc := auth.NewAuthUseCase(repo, cfg, nil)

	_, ok := uc.Authenticate(context.Background(), "eve", "plano")
	assert.False(t, ok)
}

func TestAuthenticate_MigraBcrypt(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := newFakeUsers(&entity.User{ID: "1", Username: "admin", PasswordHash: string(legacy)})
	uc := auth.NewAuthUseCase(repo, cfg, nil)

	u, ok := uc.Authenticate(context.Background(), "admin", "adminpassword")
	require.True(t, ok)
	require.Contains(t, repo.updated, "1")
	assert.Equal(t, repo.updated["1"], u.PasswordHash)

	ok, err = password.Verify("adminpassword", repo.updated["1"])
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, password.NeedsRehash(repo.updated["1"]))
}

func TestIssueAndResolve(t *testing.T) {
	alice := strongUser(t, "alice", "pw", entity.RoleAdmin)
	repo := newFakeUsers(alice)
	uc := auth.NewAuthUseCase(repo, cfg, nil)
	ctx := context.Background()

	tok, err := uc.IssueToken(alice, 0)
	require.NoError(t, err)

	u, err := uc.ResolveIdentity(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.HasRole(entity.RoleAdmin))
}

func TestResolveIdentity_Rechazos(t *testing.T) {
	alice := strongUser(t, "alice", "pw")
	repo := newFakeUsers(alice)
	uc := auth.NewAuthUseCase(repo, cfg, nil)
	ctx := context.Background()

	_, err := uc.ResolveIdentity(ctx, "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other := auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: "otro", TTL: time.Minute}, nil)
	forged, err := other.IssueToken(alice, 0)
	require.NoError(t, err)
	_, err = uc.ResolveIdentity(ctx, forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	ghost := &entity.User{Username: "ghost"}
	tok, err := uc.IssueToken(ghost, 0)
	require.NoError(t, err)
	_, err = uc.ResolveIdentity(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario borrado después de emitir el token")
}

func TestResolveIdentity_Expirado(t *testing.T) {
	alice := strongUser(t, "alice", "pw")
	uc := auth.NewAuthUseCase(newFakeUsers(alice), cfg, nil)

	tok, err := uc.IssueToken(alice, -time.Minute)
	require.NoError(t, err)
	_, err = uc.ResolveIdentity(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin(t *testing.T) {
	repo := newFakeUsers(strongUser(t, "alice", "pw"))
	uc := auth.NewAuthUseCase(repo, cfg, nil)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.TokenRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)
	assert.NotEmpty(t, res.AccessToken)

	_, err = uc.Login(ctx, dto.TokenRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.TokenRequest{Username: "nadie", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
