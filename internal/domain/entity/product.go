package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (master data de un colaborador
// externo; el núcleo del ledger solo lo lee por identidad).
type Product struct {
	ID           string
	Reference    string // código legible único, ej. PROD-001
	Name         string
	UnitPrice    decimal.Decimal
	ReorderPoint *int // umbral de stock bajo; nil = sin umbral
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
