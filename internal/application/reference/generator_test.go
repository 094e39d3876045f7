package reference_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/application/reference"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

func never(string) (bool, error) { return false, nil }

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDocument_Formato(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	ctx := context.Background()
	d := date("2025-10-12")

	ref, err := reference.Document(ctx, seq, never, "OUT", d)
	require.NoError(t, err)
	assert.Equal(t, "OUT-20251012-001", ref)

	ref, err = reference.Document(ctx, seq, never, "OUT", d)
	require.NoError(t, err)
	assert.Equal(t, "OUT-20251012-002", ref)
}

func TestDocument_SecuenciaIndependientePorPrefijoYFecha(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	ctx := context.Background()

	out, err := reference.Document(ctx, seq, never, "OUT", date("2025-10-12"))
	require.NoError(t, err)
	po, err := reference.Document(ctx, seq, never, "PO", date("2025-10-12"))
	require.NoError(t, err)
	next, err := reference.Document(ctx, seq, never, "OUT", date("2025-10-13"))
	require.NoError(t, err)

	// Cada (prefijo, fecha) arranca en 001.
	assert.Equal(t, "OUT-20251012-001", out)
	assert.Equal(t, "PO-20251012-001", po)
	assert.Equal(t, "OUT-20251013-001", next)
}

func TestDocument_SaltaReferenciasOcupadas(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	// -001 fue insertada por fuera de la secuencia.
	exists := func(ref string) (bool, error) {
		return ref == "OUT-20251012-001", nil
	}

	ref, err := reference.Document(context.Background(), seq, exists, "OUT", date("2025-10-12"))
	require.NoError(t, err)
	assert.Equal(t, "OUT-20251012-002", ref)
}

func TestDocument_ReintentosAgotados(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	always := func(string) (bool, error) { return true, nil }

	_, err := reference.Document(context.Background(), seq, always, "OUT", date("2025-10-12"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLotNumber_Formato(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	ctx := context.Background()
	d := date("2025-10-11")

	lot, err := reference.LotNumber(ctx, seq, never, "PROD-001", d)
	require.NoError(t, err)
	assert.Equal(t, "LOT-PROD-001-20251011-1", lot)

	lot, err = reference.LotNumber(ctx, seq, never, "PROD-001", d)
	require.NoError(t, err)
	assert.Equal(t, "LOT-PROD-001-20251011-2", lot)

	// Secuencia independiente por producto.
	lot, err = reference.LotNumber(ctx, seq, never, "PROD-002", d)
	require.NoError(t, err)
	assert.Equal(t, "LOT-PROD-002-20251011-1", lot)
}

func TestDocument_ConcurrenciaSinDuplicados(t *testing.T) {
	seq := memory.NewStore().SequenceRepository()
	ctx := context.Background()
	d := date("2025-10-12")

	const n = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		refs = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := reference.Document(ctx, seq, never, "OUT", d)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			refs[ref] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	// N generaciones concurrentes producen N referencias distintas.
	assert.Len(t, refs, n)
}
