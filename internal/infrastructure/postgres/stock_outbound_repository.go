package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockOutboundRepository = (*StockOutboundRepo)(nil)

// StockOutboundRepo implementación sobre PostgreSQL (usable con pool o tx).
// El documento siempre se carga con su colección completa de items.
type StockOutboundRepo struct {
	q Querier
}

// NewStockOutboundRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutboundRepository(q Querier) *StockOutboundRepo {
	return &StockOutboundRepo{q: q}
}

const outboundColumns = `id, reference, reason, status, workshop, notes, created_by, created_at, updated_at`

// Create persiste el documento y sus items. Referencia duplicada -> ErrDuplicate.
func (r *StockOutboundRepo) Create(outbound *entity.StockOutbound) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_outbounds (id, reference, reason, status, workshop, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		outbound.ID, outbound.Reference, outbound.Reason, outbound.Status,
		outbound.Workshop, outbound.Notes, outbound.CreatedBy,
		outbound.CreatedAt, outbound.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("referencia %s: %w", outbound.Reference, domain.ErrDuplicate)
		}
		return fmt.Errorf("create outbound: %w", err)
	}
	for i := range outbound.Items {
		item := &outbound.Items[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_outbound_items (id, outbound_id, product_id, quantity, notes)
			VALUES ($1, $2, $3, $4, $5)`,
			item.ID, item.OutboundID, item.ProductID, item.Quantity, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("create outbound item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con items. No encontrado -> nil, nil.
func (r *StockOutboundRepo) GetByID(id string) (*entity.StockOutbound, error) {
	return r.getByID(id, false)
}

// GetByIDForUpdate igual que GetByID pero bloqueando la fila del documento
// (FOR UPDATE) para serializar transiciones concurrentes.
func (r *StockOutboundRepo) GetByIDForUpdate(id string) (*entity.StockOutbound, error) {
	return r.getByID(id, true)
}

func (r *StockOutboundRepo) getByID(id string, forUpdate bool) (*entity.StockOutbound, error) {
	ctx := context.Background()
	query := `SELECT ` + outboundColumns + ` FROM stock_outbounds WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	doc, err := scanOutbound(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound: %w", err)
	}
	if err := r.loadItems(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ExistsByReference verifica si la referencia ya está en uso.
func (r *StockOutboundRepo) ExistsByReference(reference string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_outbounds WHERE reference = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists reference: %w", err)
	}
	return exists, nil
}

// Update persiste los campos mutables del documento. Los items no se tocan.
func (r *StockOutboundRepo) Update(outbound *entity.StockOutbound) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE stock_outbounds
		SET reason = $2, status = $3, workshop = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		outbound.ID, outbound.Reason, outbound.Status, outbound.Workshop,
		outbound.Notes, outbound.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update outbound: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todos los documentos, recientes primero.
func (r *StockOutboundRepo) List() ([]*entity.StockOutbound, error) {
	query := `SELECT ` + outboundColumns + ` FROM stock_outbounds ORDER BY created_at DESC`
	return r.listWithItems(query)
}

// ListByWorkshop documentos de un taller/destino.
func (r *StockOutboundRepo) ListByWorkshop(workshop string) ([]*entity.StockOutbound, error) {
	query := `SELECT ` + outboundColumns + ` FROM stock_outbounds WHERE workshop = $1 ORDER BY created_at DESC`
	return r.listWithItems(query, workshop)
}

// ListByStatus documentos en un estado.
func (r *StockOutboundRepo) ListByStatus(status string) ([]*entity.StockOutbound, error) {
	query := `SELECT ` + outboundColumns + ` FROM stock_outbounds WHERE status = $1 ORDER BY created_at DESC`
	return r.listWithItems(query, status)
}

func (r *StockOutboundRepo) listWithItems(query string, args ...any) ([]*entity.StockOutbound, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list outbounds: %w", err)
	}
	var docs []*entity.StockOutbound
	for rows.Next() {
		doc, err := scanOutbound(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan outbound: %w", err)
		}
		docs = append(docs, doc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := r.loadItems(ctx, doc); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (r *StockOutboundRepo) loadItems(ctx context.Context, doc *entity.StockOutbound) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, outbound_id, product_id, quantity, notes
		FROM stock_outbound_items WHERE outbound_id = $1
		ORDER BY id ASC`, doc.ID)
	if err != nil {
		return fmt.Errorf("load outbound items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.StockOutboundItem
		if err := rows.Scan(&item.ID, &item.OutboundID, &item.ProductID, &item.Quantity, &item.Notes); err != nil {
			return fmt.Errorf("scan outbound item: %w", err)
		}
		doc.Items = append(doc.Items, item)
	}
	return rows.Err()
}

func scanOutbound(row pgx.Row) (*entity.StockOutbound, error) {
	var d entity.StockOutbound
	var createdBy *string
	err := row.Scan(&d.ID, &d.Reference, &d.Reason, &d.Status, &d.Workshop,
		&d.Notes, &createdBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		d.CreatedBy = *createdBy
	}
	return &d, nil
}
