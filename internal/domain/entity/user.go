package entity

import "time"

// Role rol de un usuario dentro de la plataforma.
type Role string

// Roles válidos para User.
const (
	RoleAdmin   Role = "ADMIN"
	RoleTecnico Role = "TECNICO"
	RoleCliente Role = "CLIENTE"
)

// NormalizeRole valida un rol recibido como texto (token, formulario).
// Un rol desconocido devuelve ("", false); nunca se asume ADMIN.
func NormalizeRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleTecnico, RoleCliente:
		return Role(value), true
	default:
		return "", false
	}
}

// User representa un usuario del sistema. Los CLIENTE pertenecen a una Company;
// ADMIN y TECNICO normalmente no tienen empresa (CompanyID vacío).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
