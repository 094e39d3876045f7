package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ProductRepository puerto de lectura del catálogo (master data externa).
// El ledger resuelve productos por identidad; el CRUD vive en el colaborador.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetByReference(reference string) (*entity.Product, error)
	// ListBelowReorderPoint señal de stock bajo para la capa de display:
	// productos cuyo stock actual está por debajo de su punto de reorden.
	ListBelowReorderPoint() ([]*entity.Product, error)
}
