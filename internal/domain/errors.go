package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrUnauthorized      = errors.New("no autorizado")
)

// InsufficientStockError lleva el contexto mínimo que la capa de transporte
// necesita para traducir el error: producto, cantidad pedida y disponible.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: pedido %d, disponible %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError indica una operación fuera de su estado origen legal.
type InvalidTransitionError struct {
	DocumentID string
	From       string
	Operation  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("operación %s no permitida sobre documento %s en estado %s",
		e.Operation, e.DocumentID, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
