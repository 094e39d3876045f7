package outbound_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

func newUseCase(store *memory.Store) *outbound.UseCase {
	ledger := stock.NewLedgerUseCase(
		store,
		store.ProductRepository(),
		store.LotRepository(),
		store.MovementRepository(),
	)
	return outbound.NewUseCase(
		store,
		store.OutboundRepository(),
		store.ProductRepository(),
		store.LotRepository(),
		ledger,
	)
}

func seedProductWithStock(store *memory.Store, id, ref string, quantity int) {
	store.SeedProduct(&entity.Product{
		ID:        id,
		Reference: ref,
		Name:      "Producto " + ref,
		UnitPrice: decimal.RequireFromString("20.00"),
	})
	if quantity > 0 {
		entry, _ := time.Parse("2006-01-02", "2025-10-01")
		store.SeedLot(&entity.StockLot{
			ID:                "lot-" + id,
			LotNumber:         "LOT-" + ref + "-20251001-1",
			ProductID:         id,
			InitialQuantity:   quantity,
			RemainingQuantity: quantity,
			UnitCost:          decimal.RequireFromString("8.00"),
			EntryDate:         entry,
		})
	}
}

func TestCreate_BorradorConReferencia(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)

	doc, err := uc.Create(context.Background(), outbound.CreateInput{
		Reason:   entity.ReasonProduction,
		Workshop: "taller-norte",
		Items:    []outbound.CreateItemInput{{ProductID: "p1", Quantity: 30}},
		UserID:   "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusDraft, doc.Status)
	assert.Equal(t, "u1", doc.CreatedBy)

	wantRef := fmt.Sprintf("OUT-%s-001", doc.CreatedAt.Format("20060102"))
	assert.Equal(t, wantRef, doc.Reference)

	// Persistido con sus items.
	saved, err := uc.GetByID(doc.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "p1", saved.Items[0].ProductID)
	assert.Equal(t, 30, saved.Items[0].Quantity)

	// Crear no toca el stock.
	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 100, remaining)
}

func TestCreate_ReferenciasConsecutivas(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)

	first, err := uc.Create(context.Background(), outbound.CreateInput{
		Reason: entity.ReasonOther,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), outbound.CreateInput{
		Reason: entity.ReasonOther,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.Reference, second.Reference)
	assert.Contains(t, second.Reference, "-002")
}

func TestCreate_Invalidos(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)

	// Motivo fuera de la enumeración.
	_, err := uc.Create(context.Background(), outbound.CreateInput{
		Reason: "INVENTADO",
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin items.
	_, err = uc.Create(context.Background(), outbound.CreateInput{Reason: entity.ReasonDamage})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad no positiva.
	_, err = uc.Create(context.Background(), outbound.CreateInput{
		Reason: entity.ReasonDamage,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente.
	_, err = uc.Create(context.Background(), outbound.CreateInput{
		Reason: entity.ReasonDamage,
		Items:  []outbound.CreateItemInput{{ProductID: "fantasma", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_SoloEnBorrador(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonProduction,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	workshop := "taller-sur"
	updated, err := uc.Update(ctx, doc.ID, outbound.UpdateInput{Workshop: &workshop})
	require.NoError(t, err)
	assert.Equal(t, "taller-sur", updated.Workshop)
	// Los campos no enviados no cambian.
	assert.Equal(t, entity.ReasonProduction, updated.Reason)

	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.NoError(t, err)

	// Validado: inmutable.
	_, err = uc.Update(ctx, doc.ID, outbound.UpdateInput{Workshop: &workshop})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestValidate_DebitaFIFOYTransiciona(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason:   entity.ReasonProduction,
		Workshop: "taller-norte",
		Items:    []outbound.CreateItemInput{{ProductID: "p1", Quantity: 70}},
		UserID:   "u1",
	})
	require.NoError(t, err)

	validated, err := uc.Validate(ctx, doc.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusValidated, validated.Status)

	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 30, remaining)

	// Los movimientos OUT referencian el documento y llevan el motivo.
	movs, err := store.MovementRepository().ListByReferenceDoc(doc.Reference)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, 70, movs[0].Quantity)
	assert.Equal(t, entity.ReasonProduction, movs[0].Notes)
	assert.Equal(t, "u1", movs[0].CreatedBy)
}

func TestValidate_DosVecesFalla(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonProduction,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.NoError(t, err)

	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.Error(t, err)
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, entity.OutboundStatusValidated, transition.From)

	// La segunda validación no duplicó el débito.
	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 90, remaining)
}

func TestValidate_StockInsuficienteDejaBorradorIntacto(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 50)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonProduction,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 80}},
	})
	require.NoError(t, err)

	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.Error(t, err)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "p1", insufficient.ProductID)
	assert.Equal(t, 80, insufficient.Requested)
	assert.Equal(t, 50, insufficient.Available)

	saved, err := uc.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusDraft, saved.Status)

	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 50, remaining)
}

func TestValidate_FalloDeUnItemRevierteTodo(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	seedProductWithStock(store, "p2", "PROD-002", 5)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonProduction,
		Items: []outbound.CreateItemInput{
			{ProductID: "p1", Quantity: 40},
			{ProductID: "p2", Quantity: 20}, // insuficiente
		},
	})
	require.NoError(t, err)

	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El consumo del primer item también se revirtió.
	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 100, remaining)

	movs, err := store.MovementRepository().ListByReferenceDoc(doc.Reference)
	require.NoError(t, err)
	assert.Empty(t, movs)

	saved, err := uc.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusDraft, saved.Status)
}

func TestCancel_SoloDesdeBorrador(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonDamage,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)

	cancelled, err := uc.Cancel(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OutboundStatusCancelled, cancelled.Status)

	// Cancelar no toca el ledger.
	remaining, err := store.LotRepository().SumRemainingByProduct("p1")
	require.NoError(t, err)
	assert.Equal(t, 100, remaining)

	// CANCELLED es terminal.
	_, err = uc.Cancel(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Validate(ctx, doc.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_ValidadoNoSeCancela(t *testing.T) {
	store := memory.NewStore()
	seedProductWithStock(store, "p1", "PROD-001", 100)
	uc := newUseCase(store)
	ctx := context.Background()

	doc, err := uc.Create(ctx, outbound.CreateInput{
		Reason: entity.ReasonProduction,
		Items:  []outbound.CreateItemInput{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)
	_, err = uc.Validate(ctx, doc.ID, "u1")
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, doc.ID)
	require.Error(t, err)
	var transition *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, entity.OutboundStatusValidated, transition.From)
	assert.Equal(t, "cancel", transition.Operation)
}

func TestListByStatus_EstadoInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	_, err := uc.ListByStatus("PENDIENTE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)

	_, err := uc.GetByID("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
