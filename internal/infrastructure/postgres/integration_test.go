//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/magasin-api/internal/application/dto"
	"github.com/jhoicas/magasin-api/internal/application/inventory"
	"github.com/jhoicas/magasin-api/internal/application/usecase"
	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/magasin-api/pkg/config"
)

// setupDB levanta PostgreSQL en un contenedor, aplica migraciones y siembra roles y admin.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("magasin"),
		tcpostgres.WithUsername("magasin"),
		tcpostgres.WithPassword("magasin"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminar contenedor: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	n, err := postgres.Migrate(ctx, pool, nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// segunda pasada: nada que aplicar
	n, err = postgres.Migrate(ctx, pool, nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	created, err := postgres.Seed(ctx, pool, postgres.AdminSeed{Username: "admin", Email: "admin@example.com", Password: "adminpassword"})
	require.NoError(t, err)
	require.True(t, created)
	created, err = postgres.Seed(ctx, pool, postgres.AdminSeed{Username: "admin", Email: "admin@example.com", Password: "otra"})
	require.NoError(t, err)
	require.False(t, created)
	return pool
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, name string, qty int) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), dto.ProductRequest{
		Name:          name,
		PurchasePrice: decimal.RequireFromString("2.50"),
		SalePrice:     decimal.RequireFromString("4.00"),
		Quantity:      qty,
	})
	require.NoError(t, err)
	return p
}

func quantity(t *testing.T, repo *postgres.ProductRepo, id string) int {
	t.Helper()
	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func TestIntegration_Inventario(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	pool := setupDB(t)
	ctx := context.Background()

	productRepo := postgres.NewProductRepository(pool)
	products := usecase.NewProductUseCase(productRepo)
	tx := postgres.NewTxRunner(pool)
	sales := inventory.NewSaleUseCase(tx, postgres.NewSaleRepository(pool))
	losses := inventory.NewLossUseCase(tx, postgres.NewLossRepository(pool))

	admin, err := postgres.NewUserRepository(pool).GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.True(t, admin.HasRole(entity.RoleAdmin))

	a := createProduct(t, products, "Riz", 100)
	b := createProduct(t, products, "Huile", 100)

	_, err = products.Create(ctx, dto.ProductRequest{Name: "Riz"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	t.Run("workflow", func(t *testing.T) {
		sale, err := sales.Create(ctx, admin.ID, dto.StockMovementRequest{ProductID: a.ID, Quantity: 10})
		require.NoError(t, err)
		assert.Equal(t, "40", sale.TotalPrice.String())

		_, err = sales.Update(ctx, sale.ID, dto.StockMovementRequest{ProductID: b.ID, Quantity: 5})
		require.NoError(t, err)

		loss, err := losses.Create(ctx, admin.ID, dto.StockMovementRequest{ProductID: b.ID, Quantity: 15})
		require.NoError(t, err)
		assert.Equal(t, 100, quantity(t, productRepo, a.ID))
		assert.Equal(t, 80, quantity(t, productRepo, b.ID))

		got, err := sales.GetByID(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, "Huile", got.Product.Name)

		assert.ErrorIs(t, products.Delete(ctx, b.ID), domain.ErrConflict)

		require.NoError(t, sales.Delete(ctx, sale.ID))
		require.NoError(t, losses.Delete(ctx, loss.ID))
		assert.Equal(t, 100, quantity(t, productRepo, a.ID))
		assert.Equal(t, 100, quantity(t, productRepo, b.ID))
	})

	t.Run("ventas concurrentes", func(t *testing.T) {
		c := createProduct(t, products, "Sucre", 100)
		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = sales.Create(ctx, admin.ID, dto.StockMovementRequest{ProductID: c.ID, Quantity: 60})
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			} else {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 40, quantity(t, productRepo, c.ID))
	})

	t.Run("usuario borrado conserva historial", func(t *testing.T) {
		users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewRoleRepository(pool))
		u, err := users.Create(ctx, dto.CreateUserRequest{Username: "fatou", Email: "fatou@magasin.sn", Password: "pw", Roles: []string{"employee"}})
		require.NoError(t, err)

		sale, err := sales.Create(ctx, u.ID, dto.StockMovementRequest{ProductID: a.ID, Quantity: 1})
		require.NoError(t, err)
		require.NoError(t, users.Delete(ctx, u.ID))

		got, err := postgres.NewSaleRepository(pool).GetByID(ctx, sale.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.UserID)
	})
}

func TestIntegration_ValoresFueraDeRango(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	pool := setupDB(t)
	ctx := context.Background()

	productRepo := postgres.NewProductRepository(pool)
	products := usecase.NewProductUseCase(productRepo)
	sales := inventory.NewSaleUseCase(postgres.NewTxRunner(pool), postgres.NewSaleRepository(pool))

	_, err := products.Create(ctx, dto.ProductRequest{
		Name:          "Or",
		PurchasePrice: decimal.RequireFromString("1"),
		SalePrice:     decimal.RequireFromString("100000000000"),
		Quantity:      1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := products.Create(ctx, dto.ProductRequest{
		Name:          "Diamant",
		PurchasePrice: decimal.RequireFromString("1"),
		SalePrice:     decimal.RequireFromString("9999999999.99"),
		Quantity:      100,
	})
	require.NoError(t, err)

	// el total no cabe en NUMERIC(12,2) y la transacción devuelve el stock
	_, err = sales.Create(ctx, "", dto.StockMovementRequest{ProductID: p.ID, Quantity: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 100, quantity(t, productRepo, p.ID))
}

func TestIntegration_Analytics(t *testing.T) {
	if testing.Short() {
		t.Skip("requiere Docker")
	}
	pool := setupDB(t)
	ctx := context.Background()

	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	sales := inventory.NewSaleUseCase(postgres.NewTxRunner(pool), postgres.NewSaleRepository(pool))
	a := createProduct(t, products, "Thé", 8)

	_, err := sales.Create(ctx, "", dto.StockMovementRequest{ProductID: a.ID, Quantity: 3})
	require.NoError(t, err)

	repo := postgres.NewAnalyticsRepository(pool)
	now := time.Now().UTC()
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	totals, err := repo.GetSalesTotals(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, "12", totals.Revenue.String())
	assert.Equal(t, "7.5", totals.COGS.String())
	assert.Equal(t, int64(3), totals.UnitsSold)

	daily, err := repo.GetDailyRevenue(ctx, start, end, "UTC")
	require.NoError(t, err)
	assert.NotEmpty(t, daily)

	stock, err := repo.GetStockTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock.Quantity)

	low, err := repo.GetLowStockProducts(ctx, entity.LowStockThreshold, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Thé", low[0].Name)
}
