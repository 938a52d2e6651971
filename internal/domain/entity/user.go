package entity

import "time"

// Role rol de un usuario del sistema. Tipado para que las tablas de
// presentación y los topes por rol se indexen por enum y no por string suelto.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSeller  Role = "seller"
)

// Valid indica si el rol es uno de los tres conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSeller:
		return true
	}
	return false
}

// User representa un usuario del sistema con su alcance de tiendas.
// Los usuarios nunca se eliminan físicamente; se desactivan con Active=false.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	StoreIDs     []string // tiendas asignadas (vacío para admin: acceso global)
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
