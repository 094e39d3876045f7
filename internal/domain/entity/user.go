package entity

import "time"

// Roles de usuario para el middleware RBAC.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User usuario del back-office. Solo se usa para login y atribución de
// auditoría (CreatedBy en movimientos y documentos).
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
