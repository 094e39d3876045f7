package stock

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger: o se
// aplican todas las mutaciones (decrementos de lotes, movimientos, cambio de
// estado del documento) o ninguna. Un débito FIFO aplicado a medias es
// corrupción silenciosa de datos, no una optimización pendiente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		outboundRepo repository.StockOutboundRepository,
		orderRepo repository.SupplierOrderRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.ReferenceSequenceRepository,
	) error) error
}
