package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/magasin-api/internal/application/dto"
)

// SPAConfig ubicación del build del frontend.
type SPAConfig struct {
	Dir   string // raíz del build; los assets viven en Dir/static
	Index string
}

// MountSPA sirve /static y devuelve index.html para cualquier otro GET que no sea del API ni de /docs.
// Debe registrarse al final, después de todas las rutas.
func MountSPA(app *fiber.App, cfg SPAConfig) {
	if cfg.Dir == "" {
		return
	}
	if cfg.Index == "" {
		cfg.Index = "index.html"
	}
	app.Static("/static", filepath.Join(cfg.Dir, "static"))

	index := filepath.Join(cfg.Dir, cfg.Index)
	app.Get("/*", func(c *fiber.Ctx) error {
		p := strings.TrimPrefix(c.Path(), "/")
		if strings.HasPrefix(p, "api/") || p == "api" || strings.HasPrefix(p, "docs") {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
		}
		return c.SendFile(index)
	})
}
