// Package receiving convierte una orden de proveedor entregada en lotes
// nuevos vía el ledger. Orquestación delgada: las reglas de lote viven en el
// ledger, aquí solo el estado de la orden y la guarda de idempotencia.
package receiving

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// UseCase recepción de órdenes de proveedor.
type UseCase struct {
	txRunner stock.TxRunner
	ledger   *stock.LedgerUseCase
}

// NewUseCase construye el caso de uso de recepción.
func NewUseCase(txRunner stock.TxRunner, ledger *stock.LedgerUseCase) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger}
}

// Receive procesa una orden DELIVERED: un lote + un movimiento IN por item,
// y marca received_at, todo en una transacción.
//
// Idempotencia: la orden se bloquea (FOR UPDATE) y una orden ya recibida
// falla con ErrConflict; la unicidad del número de lote es la última línea
// de defensa, no la guarda principal.
func (uc *UseCase) Receive(ctx context.Context, orderID, userID string) ([]*entity.StockLot, error) {
	var lots []*entity.StockLot
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		_ repository.StockOutboundRepository,
		orderRepo repository.SupplierOrderRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.ReferenceSequenceRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.ReceivedAt != nil {
			return domain.ErrConflict
		}
		if order.Status != entity.OrderStatusDelivered {
			return &domain.InvalidTransitionError{DocumentID: orderID, From: order.Status, Operation: "receive"}
		}

		now := time.Now()
		lots, err = uc.ledger.ReceiveInTx(ctx, lotRepo, movRepo, productRepo, seqRepo, order, userID, now)
		if err != nil {
			return err
		}
		return orderRepo.MarkReceived(orderID, now)
	})
	if err != nil {
		return nil, err
	}
	return lots, nil
}
