package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.SupplierOrderRepository = (*SupplierOrderRepo)(nil)

// SupplierOrderRepo lectura de órdenes de proveedor para la recepción.
// La orden siempre se carga con sus items.
type SupplierOrderRepo struct {
	q Querier
}

// NewSupplierOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierOrderRepository(q Querier) *SupplierOrderRepo {
	return &SupplierOrderRepo{q: q}
}

const orderColumns = `id, reference, supplier_id, status, order_date, received_at, created_at, updated_at`

// GetByID obtiene la orden con items. No encontrada -> nil, nil.
func (r *SupplierOrderRepo) GetByID(id string) (*entity.SupplierOrder, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate bloquea la fila de la orden para serializar recepciones
// concurrentes de la misma orden.
func (r *SupplierOrderRepo) GetByIDForUpdate(id string) (*entity.SupplierOrder, error) {
	return r.getByID(id, true)
}

func (r *SupplierOrderRepo) getByID(id string, forUpdate bool) (*entity.SupplierOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM supplier_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.SupplierOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Reference, &o.SupplierID, &o.Status, &o.OrderDate,
		&o.ReceivedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_cost, total_amount
		FROM supplier_order_items WHERE order_id = $1
		ORDER BY id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.SupplierOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitCost, &item.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkReceived sella la orden como recibida (guarda de idempotencia).
func (r *SupplierOrderRepo) MarkReceived(id string, receivedAt time.Time) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE supplier_orders SET received_at = $2, updated_at = $2
		WHERE id = $1 AND received_at IS NULL`, id, receivedAt)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
