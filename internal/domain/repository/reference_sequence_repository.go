package repository

import (
	"context"
	"time"
)

// ReferenceSequenceRepository puerto para el estado de secuencias de
// referencias por (tipo de documento, fecha). NextSequence debe ser atómico:
// dos llamadas concurrentes para el mismo (kind, date) nunca devuelven el
// mismo número.
type ReferenceSequenceRepository interface {
	NextSequence(ctx context.Context, kind string, date time.Time) (int, error)
}
