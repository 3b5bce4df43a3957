package repository

import (
	"context"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los usuarios se devuelven siempre con sus roles cargados.
type UserRepository interface {
	// Create persiste el usuario y sus filas en user_roles. ErrConflict si username o email existen.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update persiste username/email/hash; si replaceRoles reemplaza user_roles por user.Roles.
	Update(ctx context.Context, user *entity.User, replaceRoles bool) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}

// RoleRepository lectura de los roles sembrados.
type RoleRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	// GetByNames devuelve los roles existentes entre names (los desconocidos se omiten).
	GetByNames(ctx context.Context, names []string) ([]entity.Role, error)
}
