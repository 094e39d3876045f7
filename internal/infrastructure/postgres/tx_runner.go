package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los
// bloqueos de fila (FOR UPDATE sobre lotes, documentos y órdenes) viven
// dentro de esa transacción y se liberan en Commit/Rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Cualquier error de fn deja el estado persistido
// exactamente como estaba antes de la llamada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	outboundRepo repository.StockOutboundRepository,
	orderRepo repository.SupplierOrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.ReferenceSequenceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewStockLotRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	outboundRepo := NewStockOutboundRepository(tx)
	orderRepo := NewSupplierOrderRepository(tx)
	productRepo := NewProductRepository(tx)
	seqRepo := NewReferenceSequenceRepository(tx)

	if err := fn(lotRepo, movRepo, outboundRepo, orderRepo, productRepo, seqRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
