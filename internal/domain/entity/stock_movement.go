package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada (recepción de lote)
	MovementTypeOUT = "OUT" // salida (débito FIFO)
)

// StockMovement es el registro inmutable de auditoría de un cambio de cantidad
// contra un lote. Append-only: nunca se actualiza ni se borra. Permite
// reconstruir el stock independiente del estado actual de los lotes.
type StockMovement struct {
	ID           string
	LotID        string
	ProductID    string
	Type         string // IN | OUT
	Quantity     int    // siempre positivo; el signo lo da Type
	ReferenceDoc string // documento origen, ej. OUT-20251012-001
	Notes        string
	CreatedAt    time.Time
	CreatedBy    string // UserID del actor (explícito, nunca contexto global)
}
