package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
	"github.com/jhoicas/magasin-api/pkg/password"
)

// UserUseCase administración de usuarios y consulta de roles.
type UserUseCase struct {
	repo  repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles}
}

// List devuelve todos los usuarios con sus roles.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Roles lista los roles sembrados.
func (uc *UserUseCase) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// Me devuelve el usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Create hashea la contraseña con argon2id y persiste el usuario con los roles pedidos.
// ErrConflict si username o email ya existen; ErrInvalidInput si algún rol no existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	roles, err := uc.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Update edita username y email; la contraseña solo si viene no vacía y los roles solo si
// la lista viene informada (una lista vacía quita todos).
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	replaceRoles := in.Roles != nil
	if replaceRoles {
		if user.Roles, err = uc.resolveRoles(ctx, in.Roles); err != nil {
			return nil, err
		}
	}
	if in.Password != nil && *in.Password != "" {
		if user.PasswordHash, err = password.Hash(*in.Password); err != nil {
			return nil, err
		}
	}
	user.Username = strings.TrimSpace(in.Username)
	user.Email = strings.TrimSpace(in.Email)
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user, replaceRoles); err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Delete elimina el usuario; sus ventas, pérdidas y gastos quedan sin propietario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) resolveRoles(ctx context.Context, names []string) ([]entity.Role, error) {
	if len(names) == 0 {
		return []entity.Role{}, nil
	}
	unique := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	roles, err := uc.roles.GetByNames(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(unique) {
		return nil, domain.ErrInvalidInput
	}
	return roles, nil
}
