package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// StockLotRepository define el puerto de persistencia para lotes de stock.
// Las mutaciones de RemainingQuantity pasan siempre por el ledger dentro de
// una transacción (ver TxRunner).
type StockLotRepository interface {
	Create(lot *entity.StockLot) error
	GetByID(id string) (*entity.StockLot, error)
	ExistsByLotNumber(lotNumber string) (bool, error)
	// ListAvailableForUpdate devuelve los lotes con remaining > 0 de un
	// producto, ordenados por fecha de entrada ascendente (empate: id
	// ascendente) y bloquea las filas (SELECT FOR UPDATE). Es el conjunto
	// que recorre el débito FIFO; el bloqueo serializa consumos concurrentes
	// sobre el mismo producto.
	ListAvailableForUpdate(productID string) ([]*entity.StockLot, error)
	ListByProduct(productID string) ([]*entity.StockLot, error)
	// UpdateRemaining decrementa la única columna mutable del lote.
	UpdateRemaining(lotID string, remaining int) error
	// SumRemainingByProduct stock actual del producto; producto desconocido = 0.
	SumRemainingByProduct(productID string) (int, error)
	// ValuationByProduct suma remaining * unit_cost por lote del producto.
	ValuationByProduct(productID string) (decimal.Decimal, error)
	// TotalValuation suma remaining * unit_cost de todos los lotes.
	TotalValuation() (decimal.Decimal, error)
}
