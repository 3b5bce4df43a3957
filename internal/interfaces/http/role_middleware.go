package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/magasin-api/internal/domain"
)

// RequireRole devuelve un middleware que deja pasar solo si el usuario tiene alguno de los roles.
// Debe usarse DESPUÉS de AuthMiddleware. La jerarquía es plana: admin no implica manager.
//
// Comportamiento:
//   - 401 si no hay identidad en el contexto.
//   - 403 FORBIDDEN si ninguno de sus roles coincide.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return respondError(c, fmt.Errorf("%w: identidad no encontrada en el contexto", domain.ErrUnauthorized))
		}
		for _, r := range GetRoles(c) {
			if _, ok := allowed[r]; ok {
				return c.Next()
			}
		}
		return respondError(c, fmt.Errorf("%w: se requiere rol %s", domain.ErrForbidden, strings.Join(roles, " o ")))
	}
}
