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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const joinedProductColumns = `p.id, p.name, p.purchase_price, p.sale_price, p.quantity, p.created_at, p.updated_at`

// SaleRepo ventas sobre PostgreSQL (pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta. user_id vacío se guarda como NULL.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, total_price, date, user_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ProductID, s.Quantity, s.TotalPrice, s.Date, s.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isOutOfRange(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID devuelve la venta con su producto.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT s.id, s.product_id, s.quantity, s.total_price, s.date, COALESCE(s.user_id::text, ''),
		       ` + joinedProductColumns + `
		FROM sales s JOIN products p ON p.id = s.product_id
		WHERE s.id = $1`
	s, err := scanSaleWithProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate bloquea la fila de la venta (sin producto).
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, product_id, quantity, total_price, date, COALESCE(user_id::text, '')
		FROM sales WHERE id = $1 FOR UPDATE`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.ProductID, &s.Quantity, &s.TotalPrice, &s.Date, &s.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return &s, nil
}

// Update persiste producto, cantidad y total. La fecha y el propietario no cambian.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET product_id = $2, quantity = $3, total_price = $4 WHERE id = $1`,
		s.ID, s.ProductID, s.Quantity, s.TotalPrice)
	if err != nil {
		if isOutOfRange(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la venta. ErrNotFound si no existe.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ventas con su producto, más recientes primero.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.product_id, s.quantity, s.total_price, s.date, COALESCE(s.user_id::text, ''),
		       ` + joinedProductColumns + `
		FROM sales s JOIN products p ON p.id = s.product_id
		ORDER BY s.date DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSaleWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSaleWithProduct(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var p entity.Product
	err := row.Scan(
		&s.ID, &s.ProductID, &s.Quantity, &s.TotalPrice, &s.Date, &s.UserID,
		&p.ID, &p.Name, &p.PurchasePrice, &p.SalePrice, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Product = &p
	return &s, nil
}
