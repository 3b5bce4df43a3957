package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/magasin-api/internal/domain"
	"github.com/jhoicas/magasin-api/internal/domain/entity"
	"github.com/jhoicas/magasin-api/internal/domain/inventory"
	"github.com/jhoicas/magasin-api/internal/domain/repository"
)

// lockProducts bloquea (SELECT FOR UPDATE) las filas de los productos indicados en orden de ID,
// así dos transacciones que tocan los mismos productos nunca se bloquean mutuamente.
// Los productos inexistentes no aparecen en el mapa.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, ids ...string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	locked := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			locked[id] = p
		}
	}
	return locked, nil
}

// withdrawNew bloquea el producto y retira qty. Producto inexistente cuenta como stock insuficiente.
func withdrawNew(ctx context.Context, productRepo repository.ProductRepository, productID string, qty int) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInsufficientStock
	}
	left, err := inventory.Withdraw(product.Quantity, qty)
	if err != nil {
		return nil, err
	}
	if err := productRepo.UpdateQuantity(ctx, product.ID, left); err != nil {
		return nil, err
	}
	product.Quantity = left
	return product, nil
}

// rebook devuelve oldQty al producto original y retira newQty del producto destino.
// La verificación de stock se hace sobre el saldo ya restaurado, de modo que reducir la
// cantidad sobre el mismo producto siempre funciona.
func rebook(
	ctx context.Context,
	productRepo repository.ProductRepository,
	oldProductID string, oldQty int,
	newProductID string, newQty int,
) (*entity.Product, error) {
	locked, err := lockProducts(ctx, productRepo, oldProductID, newProductID)
	if err != nil {
		return nil, err
	}
	if old, ok := locked[oldProductID]; ok {
		old.Quantity = inventory.Restore(old.Quantity, oldQty)
	}
	target, ok := locked[newProductID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	left, err := inventory.Withdraw(target.Quantity, newQty)
	if err != nil {
		return nil, err
	}
	target.Quantity = left

	for _, p := range locked {
		if err := productRepo.UpdateQuantity(ctx, p.ID, p.Quantity); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// giveBack devuelve al stock la cantidad retenida por un registro que se elimina.
func giveBack(ctx context.Context, productRepo repository.ProductRepository, productID string, qty int) error {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return productRepo.UpdateQuantity(ctx, product.ID, inventory.Restore(product.Quantity, qty))
}

func validMovement(productID string, qty int) error {
	if productID == "" || qty <= 0 || qty > entity.MaxQuantity {
		return domain.ErrInvalidInput
	}
	return nil
}
