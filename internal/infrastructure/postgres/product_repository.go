package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lado de lectura del catálogo (master data de un colaborador).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, reference, name, unit_price, reorder_point, created_at, updated_at`

// GetByID obtiene un producto por ID. No encontrado -> nil, nil.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByReference obtiene un producto por su código legible.
func (r *ProductRepo) GetByReference(reference string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE reference = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by reference: %w", err)
	}
	return p, nil
}

// ListBelowReorderPoint productos con stock actual por debajo de su punto de
// reorden. Señal de solo lectura para la capa de display.
func (r *ProductRepo) ListBelowReorderPoint() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.reorder_point IS NOT NULL
		  AND p.reorder_point > (
			SELECT COALESCE(SUM(l.remaining_quantity), 0)
			FROM stock_lots l WHERE l.product_id = p.id
		  )
		ORDER BY p.reference ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Reference, &p.Name, &p.UnitPrice, &p.ReorderPoint,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
