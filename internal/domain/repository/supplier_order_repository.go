package repository

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// SupplierOrderRepository puerto de lectura de órdenes de proveedor.
// El ciclo create/validate de la orden es de un colaborador externo; aquí solo
// se lee para la recepción y se marca received_at.
type SupplierOrderRepository interface {
	GetByID(id string) (*entity.SupplierOrder, error)
	// GetByIDForUpdate bloquea la orden (con items) para que dos recepciones
	// concurrentes de la misma orden se serialicen.
	GetByIDForUpdate(id string) (*entity.SupplierOrder, error)
	MarkReceived(id string, receivedAt time.Time) error
}
