package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/pkg/password"
)

// AdminSeed cuenta de administrador creada si aún no existe.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Seed crea los roles base y el usuario admin si faltan. Es idempotente: un admin ya
// existente no se modifica. Devuelve true si creó el admin.
func Seed(ctx context.Context, q Querier, admin AdminSeed) (bool, error) {
	created := false
	err := inTx(ctx, q, func(tx pgx.Tx) error {
		for _, name := range entity.SeedRoles {
			_, err := tx.Exec(ctx,
				`INSERT INTO roles (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				uuid.New().String(), name)
			if err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
		}

		users := NewUserRepository(tx)
		existing, err := users.GetByUsername(ctx, admin.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		adminRoles, err := NewRoleRepository(tx).GetByNames(ctx, []string{entity.RoleAdmin})
		if err != nil {
			return err
		}
		hash, err := password.Hash(admin.Password)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		err = users.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Username:     admin.Username,
			Email:        admin.Email,
			PasswordHash: hash,
			Roles:        adminRoles,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		created = true
		return nil
	})
	return created, err
}
