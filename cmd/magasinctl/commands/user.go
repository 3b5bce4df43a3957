package commands

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
)

var (
	newUsername string
	newEmail    string
	newPassword string
	newRoles    []string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Crea un usuario con los roles indicados",
	Long: `Crea un usuario sin pasar por el API (útil para recuperar el acceso de admin).

Ejemplo:
  magasinctl create-user --username awa --email awa@example.com --password '...' --role manager --role employee`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewRoleRepository(pool))
			out, err := uc.Create(cmd.Context(), dto.CreateUserRequest{
				Username: newUsername,
				Email:    newEmail,
				Password: newPassword,
				Roles:    newRoles,
			})
			if err != nil {
				return fmt.Errorf("crear usuario %q: %w", newUsername, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s)\n", out.Username, out.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(createUserCmd)

	createUserCmd.Flags().StringVar(&newUsername, "username", "", "Nombre de usuario")
	createUserCmd.Flags().StringVar(&newEmail, "email", "", "Email")
	createUserCmd.Flags().StringVar(&newPassword, "password", "", "Contraseña en claro (se guarda con argon2id)")
	createUserCmd.Flags().StringSliceVar(&newRoles, "role", []string{entity.RoleEmployee}, "Rol (repetible): admin, manager, employee")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
