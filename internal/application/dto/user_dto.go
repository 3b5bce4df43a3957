package dto

// TokenRequest formulario OAuth2 password de POST /api/token.
type TokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse salida de POST /api/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=1"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
}

// UpdateUserRequest entrada para editar un usuario.
// Password vacío conserva el actual; Roles nil conserva los actuales.
type UpdateUserRequest struct {
	Username string   `json:"username" validate:"required,min=1,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles" validate:"omitempty,dive,required"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Roles    []RoleResponse `json:"roles"`
}
