package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/magasin-api/internal/application/analytics"
	"github.com/jhoicas/magasin-api/internal/application/auth"
	"github.com/jhoicas/magasin-api/internal/application/inventory"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/magasin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/magasin-api/internal/interfaces/http"
	"github.com/jhoicas/magasin-api/pkg/config"
	"github.com/jhoicas/magasin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET vacío: no se pueden firmar tokens")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Int("applied", applied).Msg("esquema al día")

	if cfg.Seed.UsesDefaultPassword() {
		log.Warn().Str("username", cfg.Seed.AdminUsername).
			Msg("SEED_ADMIN_PASSWORD no definido: el admin inicial usaría la contraseña por defecto")
	}
	created, err := postgres.Seed(ctx, pool, postgres.AdminSeed{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed inicial")
	}
	if created {
		log.Info().Str("username", cfg.Seed.AdminUsername).Msg("usuario admin creado")
	}

	loc := cfg.App.Location()
	if cfg.App.Timezone != "" && loc.String() != cfg.App.Timezone {
		log.Warn().Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida, se usa UTC")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	lossRepo := postgres.NewLossRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	expenseUC := usecase.NewExpenseUseCase(productRepo, expenseRepo)
	saleUC := inventory.NewSaleUseCase(txRunner, saleRepo)
	lossUC := inventory.NewLossUseCase(txRunner, lossRepo)

	// PDF del análisis financiero
	report := infrapdf.NewAnalysisReport(cfg.App.Name)
	financialUC := appanalytics.NewFinancialUseCase(analyticsRepo, loc, report)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    cfg.App.Name + " API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		LossUC:      lossUC,
		ExpenseUC:   expenseUC,
		FinancialUC: financialUC,
		DashboardUC: dashboardUC,
	})
	httpRouter.MountSPA(app, httpRouter.SPAConfig{Dir: cfg.Static.Dir, Index: cfg.Static.Index})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
