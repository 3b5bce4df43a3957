package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/pkg/password"
)

func roleNames(u *dto.UserResponse) []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Name)
	}
	return out
}

func TestUserUseCase_CreateYUpdate(t *testing.T) {
	users := newFakeUsers()
	uc := usecase.NewUserUseCase(users, fakeRoles{})
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateUserRequest{
		Username: "awa", Email: "awa@magasin.sn", Password: "pw1", Roles: []string{"manager", "manager"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"manager"}, roleNames(created))

	stored := users.items[created.ID]
	ok, err := password.Verify("pw1", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// roles nil: se conservan; password nil: se conserva
	updated, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{Username: "awa", Email: "awa2@magasin.sn"})
	require.NoError(t, err)
	assert.False(t, users.lastReplaced)
	assert.Equal(t, []string{"manager"}, roleNames(updated))
	assert.Equal(t, stored.PasswordHash, users.items[created.ID].PasswordHash)

	pw := "pw2"
	updated, err = uc.Update(ctx, created.ID, dto.UpdateUserRequest{
		Username: "awa", Email: "awa2@magasin.sn", Password: &pw, Roles: []string{"admin"},
	})
	require.NoError(t, err)
	assert.True(t, users.lastReplaced)
	assert.Equal(t, []string{"admin"}, roleNames(updated))
	ok, err = password.Verify("pw2", users.items[created.ID].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "awa2@magasin.sn", me.Email)
}

func TestUserUseCase_Errores(t *testing.T) {
	users := newFakeUsers()
	uc := usecase.NewUserUseCase(users, fakeRoles{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "a", Email: "a@x.io", Password: "p", Roles: []string{"superuser"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "a", Email: "a@x.io", Password: "p"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "a", Email: "b@x.io", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "b", Email: "a@x.io", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, "missing", dto.UpdateUserRequest{Username: "z", Email: "z@x.io"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "missing"), domain.ErrNotFound)
	_, err = uc.Me(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ListYRoles(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUsers(), fakeRoles{})
	ctx := context.Background()

	roles, err := uc.Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "a", Email: "a@x.io", Password: "p", Roles: []string{}})
	require.NoError(t, err)
	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Roles)
}
