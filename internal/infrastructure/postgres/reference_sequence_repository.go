package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ReferenceSequenceRepository = (*ReferenceSequenceRepo)(nil)

// ReferenceSequenceRepo estado de secuencias por (tipo, fecha) sobre
// PostgreSQL. El upsert con RETURNING hace el incremento atómico: dos
// transacciones concurrentes para el mismo (kind, date) se serializan en la
// fila y reciben números distintos.
type ReferenceSequenceRepo struct {
	q Querier
}

// NewReferenceSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceSequenceRepository(q Querier) *ReferenceSequenceRepo {
	return &ReferenceSequenceRepo{q: q}
}

// NextSequence devuelve el siguiente número de la secuencia (kind, date),
// empezando en 1.
func (r *ReferenceSequenceRepo) NextSequence(ctx context.Context, kind string, date time.Time) (int, error) {
	query := `
		INSERT INTO reference_sequences (kind, seq_date, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (kind, seq_date)
		DO UPDATE SET last_seq = reference_sequences.last_seq + 1
		RETURNING last_seq`
	var seq int
	err := r.q.QueryRow(ctx, query, kind, date.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", kind, err)
	}
	return seq, nil
}
