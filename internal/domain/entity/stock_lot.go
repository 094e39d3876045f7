package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot representa una recepción discreta de un producto.
// Invariante: 0 <= RemainingQuantity <= InitialQuantity.
// InitialQuantity, UnitCost y EntryDate son inmutables tras la creación;
// solo RemainingQuantity cambia (decrece) y únicamente vía el ledger.
// Un lote agotado (remaining = 0) nunca se borra: queda como registro histórico.
type StockLot struct {
	ID                string
	LotNumber         string // único y legible, ej. LOT-PROD-001-20251011-1
	ProductID         string
	InitialQuantity   int
	RemainingQuantity int
	UnitCost          decimal.Decimal
	EntryDate         time.Time // fecha calendario; clave de ordenamiento FIFO
	CreatedAt         time.Time
}

// Value devuelve la valoración del lote: remaining * costo unitario.
func (l *StockLot) Value() decimal.Decimal {
	return decimal.NewFromInt(int64(l.RemainingQuantity)).Mul(l.UnitCost)
}
