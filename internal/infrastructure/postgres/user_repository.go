package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los roles viven en user_roles y se cargan con una consulta aparte.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste el usuario y sus roles en una sola transacción.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return insertUserRoles(ctx, tx, user.ID, user.Roles)
	})
}

// GetByID obtiene un usuario por ID con sus roles.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por username con sus roles.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	roles, err := r.rolesByUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles[u.ID]
	if u.Roles == nil {
		u.Roles = []entity.Role{}
	}
	return u, nil
}

// Update actualiza datos del usuario y, si replaceRoles, reemplaza sus filas en user_roles.
func (r *UserRepo) Update(ctx context.Context, user *entity.User, replaceRoles bool) error {
	return inTx(ctx, r.q, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE users SET username = $2, email = $3, password_hash = $4, updated_at = $5
			WHERE id = $1`,
			user.ID, user.Username, user.Email, user.PasswordHash, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return fmt.Errorf("update user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if !replaceRoles {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, user.ID); err != nil {
			return fmt.Errorf("clear user roles: %w", err)
		}
		return insertUserRoles(ctx, tx, user.ID, user.Roles)
	})
}

// UpdatePasswordHash reemplaza solo el hash (migración bcrypt -> argon2id en login).
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios por username con sus roles (dos consultas, sin N+1).
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	roles, err := r.rolesByUser(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		u.Roles = roles[u.ID]
		if u.Roles == nil {
			u.Roles = []entity.Role{}
		}
	}
	return list, nil
}

// Delete elimina un usuario; sus ventas, pérdidas y gastos quedan con user_id NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rolesByUser carga user_roles de un usuario, o de todos si userID es vacío.
func (r *UserRepo) rolesByUser(ctx context.Context, userID string) (map[string][]entity.Role, error) {
	query := `
		SELECT ur.user_id, r.id, r.name
		FROM user_roles ur JOIN roles r ON r.id = ur.role_id
		WHERE $1 = '' OR ur.user_id::text = $1
		ORDER BY r.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("load user roles: %w", err)
	}
	defer rows.Close()
	out := map[string][]entity.Role{}
	for rows.Next() {
		var uid string
		var role entity.Role
		if err := rows.Scan(&uid, &role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		out[uid] = append(out[uid], role)
	}
	return out, rows.Err()
}

func insertUserRoles(ctx context.Context, tx pgx.Tx, userID string, roles []entity.Role) error {
	for _, role := range roles {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, role.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert user role: %w", err)
		}
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
