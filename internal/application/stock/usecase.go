package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/reference"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// LedgerUseCase es el libro mayor de stock: calcula stock y valoración desde
// los lotes, debita en orden FIFO estricto y crea lotes al recibir órdenes.
// Todas las mutaciones corren dentro de una transacción con las filas de
// lotes bloqueadas (SELECT FOR UPDATE): o todo o nada.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	lotRepo     repository.StockLotRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construye el ledger. lotRepo y movRepo van atados al pool
// (solo consultas); las mutaciones usan los repos atados a la tx del TxRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
	}
}

// CurrentStock stock actual del producto: suma de remaining sobre sus lotes.
// Producto desconocido = 0, nunca es error.
func (uc *LedgerUseCase) CurrentStock(productID string) (int, error) {
	return uc.lotRepo.SumRemainingByProduct(productID)
}

// Valuation valoración del stock del producto: sum(remaining * unit_cost).
// Aritmética decimal exacta; el redondeo es problema de la capa de display.
func (uc *LedgerUseCase) Valuation(productID string) (decimal.Decimal, error) {
	return uc.lotRepo.ValuationByProduct(productID)
}

// TotalValuation valoración de todos los lotes del almacén.
func (uc *LedgerUseCase) TotalValuation() (decimal.Decimal, error) {
	return uc.lotRepo.TotalValuation()
}

// ListMovements lectura de auditoría: movimientos de un producto, recientes primero.
func (uc *LedgerUseCase) ListMovements(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

// ListLots lotes de un producto (incluidos los agotados, registro histórico).
func (uc *LedgerUseCase) ListLots(productID string) ([]*entity.StockLot, error) {
	return uc.lotRepo.ListByProduct(productID)
}

// ConsumeInput entrada para un débito FIFO.
type ConsumeInput struct {
	ProductID    string
	Quantity     int // > 0
	ReferenceDoc string
	Notes        string
	UserID       string
}

// Consume debita Quantity unidades del producto en orden FIFO, en su propia
// transacción. Devuelve los movimientos OUT producidos, en orden de débito.
func (uc *LedgerUseCase) Consume(ctx context.Context, in ConsumeInput) ([]*entity.StockMovement, error) {
	if in.Quantity <= 0 || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var movements []*entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockOutboundRepository,
		_ repository.SupplierOrderRepository,
		_ repository.ProductRepository,
		_ repository.ReferenceSequenceRepository,
	) error {
		movements, err = uc.ConsumeInTx(lotRepo, movRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// ConsumeInTx ejecuta el débito FIFO con los repositorios del caller (misma
// transacción). Lo usa validateOutbound para que el consumo de varios items
// comparta una sola tx.
//
// Algoritmo: carga los lotes con remaining > 0 ordenados por fecha de entrada
// ascendente (empate: id ascendente) bloqueando las filas; si la suma no
// alcanza falla con InsufficientStockError sin tocar ningún lote; si alcanza,
// recorre los lotes tomando min(remaining, faltante), decrementa y registra
// un movimiento OUT por lote tocado.
func (uc *LedgerUseCase) ConsumeInTx(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	in ConsumeInput,
	now time.Time,
) ([]*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	lots, err := lotRepo.ListAvailableForUpdate(in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("cargar lotes disponibles: %w", err)
	}

	available := 0
	for _, lot := range lots {
		available += lot.RemainingQuantity
	}
	// Chequeo sobre las filas ya bloqueadas: si una tx concurrente ganó la
	// carrera, aquí se ve la suma comprometida real y se aborta todo.
	if available < in.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: in.ProductID,
			Requested: in.Quantity,
			Available: available,
		}
	}

	var movements []*entity.StockMovement
	remaining := in.Quantity
	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.RemainingQuantity
		if take > remaining {
			take = remaining
		}
		lot.RemainingQuantity -= take
		if err := lotRepo.UpdateRemaining(lot.ID, lot.RemainingQuantity); err != nil {
			return nil, fmt.Errorf("decrementar lote %s: %w", lot.LotNumber, err)
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			LotID:        lot.ID,
			ProductID:    in.ProductID,
			Type:         entity.MovementTypeOUT,
			Quantity:     take,
			ReferenceDoc: in.ReferenceDoc,
			Notes:        in.Notes,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, fmt.Errorf("registrar movimiento OUT: %w", err)
		}
		movements = append(movements, mov)
		remaining -= take
	}
	return movements, nil
}

// ReceiveInTx crea un lote nuevo (remaining = initial = cantidad pedida) y un
// movimiento IN por cada item de la orden, con los repositorios del caller.
// El número de lote sale de la secuencia por (producto, fecha) con reintento
// acotado; la fecha de entrada es la fecha de procesamiento.
func (uc *LedgerUseCase) ReceiveInTx(
	ctx context.Context,
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.ReferenceSequenceRepository,
	order *entity.SupplierOrder,
	userID string,
	now time.Time,
) ([]*entity.StockLot, error) {
	var lots []*entity.StockLot
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}

		lotNumber, err := reference.LotNumber(ctx, seqRepo, lotRepo.ExistsByLotNumber, product.Reference, now)
		if err != nil {
			return nil, err
		}
		lot := &entity.StockLot{
			ID:                uuid.New().String(),
			LotNumber:         lotNumber,
			ProductID:         item.ProductID,
			InitialQuantity:   item.Quantity,
			RemainingQuantity: item.Quantity,
			UnitCost:          item.UnitCost,
			EntryDate:         now.Truncate(24 * time.Hour),
			CreatedAt:         now,
		}
		if err := lotRepo.Create(lot); err != nil {
			return nil, fmt.Errorf("crear lote %s: %w", lotNumber, err)
		}
		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			LotID:        lot.ID,
			ProductID:    item.ProductID,
			Type:         entity.MovementTypeIN,
			Quantity:     item.Quantity,
			ReferenceDoc: order.Reference,
			Notes:        "recepción orden proveedor",
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		if err := movRepo.Create(mov); err != nil {
			return nil, fmt.Errorf("registrar movimiento IN: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, nil
}
