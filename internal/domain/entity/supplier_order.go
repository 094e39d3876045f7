package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra a proveedor. El ledger solo consume
// órdenes en DELIVERED; el resto del ciclo lo gestiona un colaborador externo.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// SupplierOrder orden de compra a proveedor.
// ReceivedAt marca que la orden ya generó lotes (guarda de idempotencia:
// una segunda recepción de la misma orden falla con conflicto).
type SupplierOrder struct {
	ID         string
	Reference  string
	SupplierID string
	Status     string
	OrderDate  time.Time
	ReceivedAt *time.Time
	Items      []SupplierOrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SupplierOrderItem línea de la orden: producto, cantidad, costo unitario.
type SupplierOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    int
	UnitCost    decimal.Decimal
	TotalAmount decimal.Decimal
}
