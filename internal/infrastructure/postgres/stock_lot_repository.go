package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const lotColumns = `id, lot_number, product_id, initial_quantity, remaining_quantity, unit_cost, entry_date, created_at`

// Create persiste un lote nuevo. Colisión de lot_number -> ErrDuplicate.
func (r *StockLotRepo) Create(lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (id, lot_number, product_id, initial_quantity, remaining_quantity, unit_cost, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.LotNumber, lot.ProductID, lot.InitialQuantity,
		lot.RemainingQuantity, lot.UnitCost, lot.EntryDate, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lote %s: %w", lot.LotNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("create stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. No encontrado -> nil, nil.
func (r *StockLotRepo) GetByID(id string) (*entity.StockLot, error) {
	query := `SELECT ` + lotColumns + ` FROM stock_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// ExistsByLotNumber verifica si el número de lote ya está en uso.
func (r *StockLotRepo) ExistsByLotNumber(lotNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_lots WHERE lot_number = $1)`, lotNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists lot number: %w", err)
	}
	return exists, nil
}

// ListAvailableForUpdate lotes con remaining > 0 del producto, en orden FIFO
// (entry_date asc, empate por id asc) y con las filas bloqueadas. El FOR
// UPDATE serializa consumos concurrentes sobre el mismo producto: el segundo
// consume espera y ve las cantidades ya comprometidas.
func (r *StockLotRepo) ListAvailableForUpdate(productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1 AND remaining_quantity > 0
		ORDER BY entry_date ASC, id ASC
		FOR UPDATE`
	return r.list(query, productID)
}

// ListByProduct todos los lotes del producto, incluidos los agotados.
func (r *StockLotRepo) ListByProduct(productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM stock_lots
		WHERE product_id = $1
		ORDER BY entry_date ASC, id ASC`
	return r.list(query, productID)
}

// UpdateRemaining actualiza la única columna mutable del lote. El CHECK
// (remaining entre 0 e initial) de la tabla respalda el invariante.
func (r *StockLotRepo) UpdateRemaining(lotID string, remaining int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stock_lots SET remaining_quantity = $2 WHERE id = $1`, lotID, remaining)
	if err != nil {
		return fmt.Errorf("update remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumRemainingByProduct stock actual del producto. Producto sin lotes = 0.
func (r *StockLotRepo) SumRemainingByProduct(productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(remaining_quantity), 0) FROM stock_lots WHERE product_id = $1`, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum remaining: %w", err)
	}
	return sum, nil
}

// ValuationByProduct sum(remaining * unit_cost) de los lotes del producto,
// en NUMERIC exacto de principio a fin.
func (r *StockLotRepo) ValuationByProduct(productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(remaining_quantity * unit_cost), 0) FROM stock_lots WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valuation by product: %w", err)
	}
	return total, nil
}

// TotalValuation valoración de todos los lotes.
func (r *StockLotRepo) TotalValuation() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(remaining_quantity * unit_cost), 0) FROM stock_lots`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total valuation: %w", err)
	}
	return total, nil
}

func (r *StockLotRepo) list(query string, args ...any) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock lots: %w", err)
	}
	defer rows.Close()
	var lots []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(&l.ID, &l.LotNumber, &l.ProductID, &l.InitialQuantity,
		&l.RemainingQuantity, &l.UnitCost, &l.EntryDate, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
