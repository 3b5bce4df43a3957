package entity

import "time"

// Roles sembrados. La jerarquía es plana: admin no implica manager.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// SeedRoles roles creados en el primer arranque.
var SeedRoles = []string{RoleAdmin, RoleManager, RoleEmployee}

// Role rol asignable a usuarios (relación N:M vía user_roles).
type Role struct {
	ID   string
	Name string
}

// User representa un usuario del sistema. Username y Email son únicos.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2id (o bcrypt heredado), nunca plano
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene el rol con ese nombre.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames devuelve los nombres de los roles del usuario.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
