// Package reference genera códigos de referencia legibles y libres de
// colisión para documentos y lotes: <PREFIX>-<yyyyMMdd>-<secuencia>.
// La secuencia por (tipo, fecha) vive en la BD y su incremento es atómico;
// el chequeo de existencia más el reintento acotado cubren referencias
// insertadas por fuera de la secuencia.
package reference

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// maxAttempts reintentos antes de rendirse con ErrDuplicate. Agotarlo es una
// violación de invariante interna, no un camino de error normal.
const maxAttempts = 25

// ExistsFunc consulta si una referencia candidata ya está en uso.
type ExistsFunc func(string) (bool, error)

// Document genera la siguiente referencia de documento, ej. OUT-20251012-001.
// Bajo concurrencia dos llamadas nunca devuelven el mismo código: la
// secuencia es atómica y la unicidad la respalda además el constraint único
// de la tabla destino.
func Document(ctx context.Context, seq repository.ReferenceSequenceRepository, exists ExistsFunc, prefix string, date time.Time) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		n, err := seq.NextSequence(ctx, prefix, date)
		if err != nil {
			return "", fmt.Errorf("siguiente secuencia %s: %w", prefix, err)
		}
		ref := fmt.Sprintf("%s-%s-%03d", prefix, date.Format("20060102"), n)
		taken, err := exists(ref)
		if err != nil {
			return "", fmt.Errorf("verificar referencia %s: %w", ref, err)
		}
		if !taken {
			return ref, nil
		}
	}
	return "", fmt.Errorf("generar referencia %s: %w", prefix, domain.ErrDuplicate)
}

// LotNumber genera el siguiente número de lote para un producto, ej.
// LOT-PROD-001-20251011-1. La secuencia es por (producto, fecha).
func LotNumber(ctx context.Context, seq repository.ReferenceSequenceRepository, exists ExistsFunc, productRef string, date time.Time) (string, error) {
	kind := "LOT:" + productRef
	for i := 0; i < maxAttempts; i++ {
		n, err := seq.NextSequence(ctx, kind, date)
		if err != nil {
			return "", fmt.Errorf("siguiente secuencia de lote %s: %w", productRef, err)
		}
		lotNumber := fmt.Sprintf("LOT-%s-%s-%d", productRef, date.Format("20060102"), n)
		taken, err := exists(lotNumber)
		if err != nil {
			return "", fmt.Errorf("verificar lote %s: %w", lotNumber, err)
		}
		if !taken {
			return lotNumber, nil
		}
	}
	return "", fmt.Errorf("generar número de lote %s: %w", productRef, domain.ErrDuplicate)
}
