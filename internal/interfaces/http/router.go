package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/magasin-api/internal/application/analytics"
	"github.com/jhoicas/magasin-api/internal/application/auth"
	"github.com/jhoicas/magasin-api/internal/application/inventory"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *inventory.SaleUseCase
	LossUC      *inventory.LossUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	FinancialUC *appanalytics.FinancialUseCase
	DashboardUC *appanalytics.DashboardUseCase
	// Resolver por defecto AuthUC; los tests pueden inyectar uno propio.
	Resolver IdentityResolver
}

// crudHandler operaciones comunes de produits, ventes, pertes y frais.
type crudHandler interface {
	List(c *fiber.Ctx) error
	GetByID(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// Router registra las rutas de la API.
//
// Permisos: lectura y alta para cualquier usuario autenticado, edición para manager,
// borrado para admin. Usuarios, roles y análisis solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	resolver := deps.Resolver
	if resolver == nil {
		resolver = deps.AuthUC
	}
	authMW := AuthMiddleware(resolver)
	admin := RequireRole(entity.RoleAdmin)
	manager := RequireRole(entity.RoleManager)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/token", authHandler.Token)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", authMW)
	users.Get("/me", authHandler.Me)
	users.Get("/", admin, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)
	api.Get("/roles", authMW, admin, userHandler.Roles)

	mountCRUD := func(prefix string, h crudHandler) {
		g := api.Group(prefix, authMW)
		g.Get("/", h.List)
		g.Get("/:id", h.GetByID)
		g.Post("/", h.Create)
		g.Put("/:id", manager, h.Update)
		g.Delete("/:id", admin, h.Delete)
	}
	mountCRUD("/produits", NewProductHandler(deps.ProductUC))
	mountCRUD("/ventes", NewSaleHandler(deps.SaleUC))
	mountCRUD("/pertes", NewLossHandler(deps.LossUC))
	mountCRUD("/frais", NewExpenseHandler(deps.ExpenseUC))

	// Análisis y tablero
	analyticsHandler := NewAnalyticsHandler(deps.FinancialUC)
	analyse := api.Group("/analyse", authMW, admin)
	analyse.Get("/", analyticsHandler.Analyze)
	analyse.Get("/pdf", analyticsHandler.AnalyzePDF)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", authMW, dashboardHandler.Get)
}
