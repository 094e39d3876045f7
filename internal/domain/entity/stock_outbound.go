package entity

import "time"

// Estados del documento de salida. Transiciones monótonas:
// DRAFT -> VALIDATED | CANCELLED; VALIDATED y CANCELLED son terminales.
const (
	OutboundStatusDraft     = "DRAFT"
	OutboundStatusValidated = "VALIDATED"
	OutboundStatusCancelled = "CANCELLED"
)

// Motivos de salida (enumeración cerrada).
const (
	ReasonProduction = "PRODUCTION_CONSUMPTION"
	ReasonDamage     = "DAMAGE"
	ReasonReturn     = "RETURN"
	ReasonOther      = "OTHER"
)

// ValidOutboundReason verifica que el motivo pertenezca a la enumeración.
func ValidOutboundReason(r string) bool {
	switch r {
	case ReasonProduction, ReasonDamage, ReasonReturn, ReasonOther:
		return true
	}
	return false
}

// StockOutbound es un documento de salida de mercancía. Es dueño de sus items
// (composición: los items no sobreviven al documento) y siempre se carga con
// la colección completa antes de evaluar transiciones.
type StockOutbound struct {
	ID        string
	Reference string // único, ej. OUT-20251012-001
	Reason    string
	Status    string
	Workshop  string // taller/destino
	Notes     string
	Items     []StockOutboundItem
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockOutboundItem línea del documento de salida.
// Inmutable una vez el documento padre sale de DRAFT.
type StockOutboundItem struct {
	ID         string
	OutboundID string
	ProductID  string
	Quantity   int // > 0
	Notes      string
}
