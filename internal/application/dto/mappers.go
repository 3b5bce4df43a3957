package dto

import "github.com/jhoicas/magasin-api/internal/domain/entity"

// NewProductResponse convierte la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	if p == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
	}
}

// NewSaleResponse incluye el producto embebido si la venta lo trae cargado.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		TotalPrice: s.TotalPrice,
		Date:       s.Date,
		Product:    NewProductResponse(s.Product),
	}
}

// NewLossResponse ídem para pérdidas.
func NewLossResponse(l *entity.Loss) LossResponse {
	return LossResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Date:      l.Date,
		Product:   NewProductResponse(l.Product),
	}
}

// NewExpenseResponse ídem para gastos anexos.
func NewExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Product:     NewProductResponse(e.Product),
	}
}

// NewUserResponse omite el hash de la contraseña.
func NewUserResponse(u *entity.User) UserResponse {
	roles := make([]RoleResponse, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, RoleResponse{ID: r.ID, Name: r.Name})
	}
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    roles,
	}
}
