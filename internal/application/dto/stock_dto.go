package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// StockResponse stock actual de un producto.
type StockResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
}

// ValuationResponse valoración monetaria (decimal exacto serializado como string).
type ValuationResponse struct {
	ProductID string          `json:"product_id,omitempty"`
	Valuation decimal.Decimal `json:"valuation"`
}

// LotResponse lote en respuestas (incluye agotados, registro histórico).
type LotResponse struct {
	ID                string          `json:"id"`
	LotNumber         string          `json:"lot_number"`
	ProductID         string          `json:"product_id"`
	InitialQuantity   int             `json:"initial_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EntryDate         string          `json:"entry_date"` // yyyy-MM-dd
}

// ToLotResponse mapea un lote.
func ToLotResponse(lot *entity.StockLot) LotResponse {
	return LotResponse{
		ID:                lot.ID,
		LotNumber:         lot.LotNumber,
		ProductID:         lot.ProductID,
		InitialQuantity:   lot.InitialQuantity,
		RemainingQuantity: lot.RemainingQuantity,
		UnitCost:          lot.UnitCost,
		EntryDate:         lot.EntryDate.Format("2006-01-02"),
	}
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID           string    `json:"id"`
	LotID        string    `json:"lot_id"`
	ProductID    string    `json:"product_id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	ReferenceDoc string    `json:"reference_doc"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by,omitempty"`
}

// ToMovementResponse mapea un movimiento.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		LotID:        m.LotID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		ReferenceDoc: m.ReferenceDoc,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
