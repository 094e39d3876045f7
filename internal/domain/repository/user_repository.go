package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// UserRepository puerto de usuarios (solo login y atribución de auditoría).
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
