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

var _ repository.LossRepository = (*LossRepo)(nil)

// LossRepo pérdidas sobre PostgreSQL (pool o tx).
type LossRepo struct {
	q Querier
}

// NewLossRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLossRepository(q Querier) *LossRepo {
	return &LossRepo{q: q}
}

func (r *LossRepo) Create(ctx context.Context, l *entity.Loss) error {
	query := `
		INSERT INTO losses (id, product_id, quantity, date, user_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ProductID, l.Quantity, l.Date, l.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert loss: %w", err)
	}
	return nil
}

func (r *LossRepo) GetByID(ctx context.Context, id string) (*entity.Loss, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT l.id, l.product_id, l.quantity, l.date, COALESCE(l.user_id::text, ''),
		       ` + joinedProductColumns + `
		FROM losses l JOIN products p ON p.id = l.product_id
		WHERE l.id = $1`
	l, err := scanLossWithProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loss: %w", err)
	}
	return l, nil
}

func (r *LossRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loss, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, product_id, quantity, date, COALESCE(user_id::text, '')
		FROM losses WHERE id = $1 FOR UPDATE`
	var l entity.Loss
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.ProductID, &l.Quantity, &l.Date, &l.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loss for update: %w", err)
	}
	return &l, nil
}

func (r *LossRepo) Update(ctx context.Context, l *entity.Loss) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE losses SET product_id = $2, quantity = $3 WHERE id = $1`, l.ID, l.ProductID, l.Quantity)
	if err != nil {
		return fmt.Errorf("update loss: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LossRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM losses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loss: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LossRepo) List(ctx context.Context) ([]*entity.Loss, error) {
	query := `
		SELECT l.id, l.product_id, l.quantity, l.date, COALESCE(l.user_id::text, ''),
		       ` + joinedProductColumns + `
		FROM losses l JOIN products p ON p.id = l.product_id
		ORDER BY l.date DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list losses: %w", err)
	}
	defer rows.Close()
	list := []*entity.Loss{}
	for rows.Next() {
		l, err := scanLossWithProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loss: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLossWithProduct(row pgx.Row) (*entity.Loss, error) {
	var l entity.Loss
	var p entity.Product
	err := row.Scan(
		&l.ID, &l.ProductID, &l.Quantity, &l.Date, &l.UserID,
		&p.ID, &p.Name, &p.PurchasePrice, &p.SalePrice, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Product = &p
	return &l, nil
}
