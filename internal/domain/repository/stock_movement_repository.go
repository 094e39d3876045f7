package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// StockMovementRepository puerto de persistencia para movimientos.
// Solo Create y lecturas: la tabla es append-only.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReferenceDoc(referenceDoc string) ([]*entity.StockMovement, error)
}
