// Package outbound implementa la máquina de estados de los documentos de
// salida de mercancía: DRAFT -> VALIDATED | CANCELLED, ambos terminales.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/reference"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ReferencePrefix prefijo de las referencias de documentos de salida.
const ReferencePrefix = "OUT"

// UseCase casos de uso del documento de salida. Las transiciones que tocan el
// ledger (validate) corren completas dentro de una sola transacción: el fallo
// del consumo de un item revierte los consumos de los items anteriores y el
// documento sigue en DRAFT.
type UseCase struct {
	txRunner     stock.TxRunner
	outboundRepo repository.StockOutboundRepository
	productRepo  repository.ProductRepository
	lotRepo      repository.StockLotRepository
	ledger       *stock.LedgerUseCase
}

// NewUseCase construye el caso de uso. outboundRepo/productRepo/lotRepo van
// atados al pool (consultas); las transiciones usan los repos de la tx.
func NewUseCase(
	txRunner stock.TxRunner,
	outboundRepo repository.StockOutboundRepository,
	productRepo repository.ProductRepository,
	lotRepo repository.StockLotRepository,
	ledger *stock.LedgerUseCase,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		outboundRepo: outboundRepo,
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		ledger:       ledger,
	}
}

// CreateItemInput línea solicitada al crear el documento.
type CreateItemInput struct {
	ProductID string
	Quantity  int
	Notes     string
}

// CreateInput entrada para crear un documento de salida en DRAFT.
type CreateInput struct {
	Reason   string
	Workshop string
	Notes    string
	Items    []CreateItemInput
	UserID   string
}

// Create genera la referencia, resuelve cada producto contra el catálogo y
// persiste el documento en DRAFT con sus items, todo en una transacción para
// que la referencia generada y el insert compartan la misma serialización.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.StockOutbound, error) {
	if !entity.ValidOutboundReason(in.Reason) || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 || item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	doc := &entity.StockOutbound{
		ID:        uuid.New().String(),
		Reason:    in.Reason,
		Status:    entity.OutboundStatusDraft,
		Workshop:  in.Workshop,
		Notes:     in.Notes,
		CreatedBy: in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range in.Items {
		doc.Items = append(doc.Items, entity.StockOutboundItem{
			ID:         uuid.New().String(),
			OutboundID: doc.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.StockLotRepository,
		_ repository.StockMovementRepository,
		outboundRepo repository.StockOutboundRepository,
		_ repository.SupplierOrderRepository,
		_ repository.ProductRepository,
		seqRepo repository.ReferenceSequenceRepository,
	) error {
		ref, err := reference.Document(ctx, seqRepo, outboundRepo.ExistsByReference, ReferencePrefix, now)
		if err != nil {
			return err
		}
		doc.Reference = ref
		return outboundRepo.Create(doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateInput campos mutables de un borrador. nil = sin cambio.
// La lista de items es inmutable tras la creación.
type UpdateInput struct {
	Reason   *string
	Workshop *string
	Notes    *string
}

// Update modifica reason/workshop/notes de un documento en DRAFT.
// Fuera de DRAFT falla con InvalidTransitionError.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.StockOutbound, error) {
	if in.Reason != nil && !entity.ValidOutboundReason(*in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	var doc *entity.StockOutbound
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockLotRepository,
		_ repository.StockMovementRepository,
		outboundRepo repository.StockOutboundRepository,
		_ repository.SupplierOrderRepository,
		_ repository.ProductRepository,
		_ repository.ReferenceSequenceRepository,
	) error {
		var err error
		doc, err = outboundRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.OutboundStatusDraft {
			return &domain.InvalidTransitionError{DocumentID: id, From: doc.Status, Operation: "update"}
		}
		if in.Reason != nil {
			doc.Reason = *in.Reason
		}
		if in.Workshop != nil {
			doc.Workshop = *in.Workshop
		}
		if in.Notes != nil {
			doc.Notes = *in.Notes
		}
		doc.UpdatedAt = time.Now()
		return outboundRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate transiciona DRAFT -> VALIDATED debitando el stock de cada item.
//
// Todo ocurre en UNA transacción: se bloquea el documento, se pre-chequea la
// suficiencia por item (nombrando al producto ofensor sin consumir nada) y
// luego se consume item por item vía el ledger. ConsumeInTx bloquea los lotes
// y re-verifica la suma comprometida, así que un débito concurrente que
// invalide el pre-chequeo aborta la transacción completa y el documento
// permanece en DRAFT intacto.
func (uc *UseCase) Validate(ctx context.Context, id, userID string) (*entity.StockOutbound, error) {
	var doc *entity.StockOutbound
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		outboundRepo repository.StockOutboundRepository,
		_ repository.SupplierOrderRepository,
		_ repository.ProductRepository,
		_ repository.ReferenceSequenceRepository,
	) error {
		var err error
		doc, err = outboundRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.OutboundStatusDraft {
			return &domain.InvalidTransitionError{DocumentID: id, From: doc.Status, Operation: "validate"}
		}

		for _, item := range doc.Items {
			available, err := lotRepo.SumRemainingByProduct(item.ProductID)
			if err != nil {
				return err
			}
			if available < item.Quantity {
				return &domain.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: available,
				}
			}
		}

		now := time.Now()
		for _, item := range doc.Items {
			_, err := uc.ledger.ConsumeInTx(lotRepo, movRepo, stock.ConsumeInput{
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				ReferenceDoc: doc.Reference,
				Notes:        doc.Reason,
				UserID:       userID,
			}, now)
			if err != nil {
				return err
			}
		}

		doc.Status = entity.OutboundStatusValidated
		doc.UpdatedAt = now
		return outboundRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Cancel transiciona DRAFT -> CANCELLED. Nunca desde VALIDATED: un documento
// validado ya movió stock físico y revertirlo exigiría un movimiento de
// entrada compensatorio que este núcleo no realiza. Sin efecto en el ledger.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*entity.StockOutbound, error) {
	var doc *entity.StockOutbound
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockLotRepository,
		_ repository.StockMovementRepository,
		outboundRepo repository.StockOutboundRepository,
		_ repository.SupplierOrderRepository,
		_ repository.ProductRepository,
		_ repository.ReferenceSequenceRepository,
	) error {
		var err error
		doc, err = outboundRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.OutboundStatusDraft {
			return &domain.InvalidTransitionError{DocumentID: id, From: doc.Status, Operation: "cancel"}
		}
		doc.Status = entity.OutboundStatusCancelled
		doc.UpdatedAt = time.Now()
		return outboundRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID proyección sin efectos, con items cargados.
func (uc *UseCase) GetByID(id string) (*entity.StockOutbound, error) {
	doc, err := uc.outboundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// List todos los documentos de salida.
func (uc *UseCase) List() ([]*entity.StockOutbound, error) {
	return uc.outboundRepo.List()
}

// ListByWorkshop documentos de un taller/destino.
func (uc *UseCase) ListByWorkshop(workshop string) ([]*entity.StockOutbound, error) {
	return uc.outboundRepo.ListByWorkshop(workshop)
}

// ListByStatus documentos en un estado dado.
func (uc *UseCase) ListByStatus(status string) ([]*entity.StockOutbound, error) {
	switch status {
	case entity.OutboundStatusDraft, entity.OutboundStatusValidated, entity.OutboundStatusCancelled:
		return uc.outboundRepo.ListByStatus(status)
	}
	return nil, domain.ErrInvalidInput
}
