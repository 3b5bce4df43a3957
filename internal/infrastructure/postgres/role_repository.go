package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo lectura de roles.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	return r.query(ctx, `SELECT id, name FROM roles ORDER BY name`)
}

func (r *RoleRepo) GetByNames(ctx context.Context, names []string) ([]entity.Role, error) {
	return r.query(ctx, `SELECT id, name FROM roles WHERE name = ANY($1) ORDER BY name`, names)
}

func (r *RoleRepo) query(ctx context.Context, sql string, args ...any) ([]entity.Role, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	roles := []entity.Role{}
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
