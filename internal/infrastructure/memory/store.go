// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Lo usan los tests de los casos de uso: Run emula la transacción
// tomando un snapshot del estado y restaurándolo si la función devuelve error,
// de modo que los tests de atomicidad observan el mismo contrato que con
// PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	users     map[string]*entity.User
	lots      map[string]*entity.StockLot
	movements []*entity.StockMovement
	outbounds map[string]*entity.StockOutbound
	orders    map[string]*entity.SupplierOrder
	sequences map[string]int
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]*entity.Product),
		users:     make(map[string]*entity.User),
		lots:      make(map[string]*entity.StockLot),
		outbounds: make(map[string]*entity.StockOutbound),
		orders:    make(map[string]*entity.SupplierOrder),
		sequences: make(map[string]int),
	}
}

// SeedProduct registra un producto del catálogo.
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

// SeedUser registra un usuario.
func (s *Store) SeedUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

// SeedLot registra un lote existente.
func (s *Store) SeedLot(l *entity.StockLot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots[l.ID] = cloneLot(l)
}

// SeedOrder registra una orden de proveedor.
func (s *Store) SeedOrder(o *entity.SupplierOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = cloneOrder(o)
}

// Repositorios atados al almacén. En memoria no hay distinción pool/tx: los
// mismos repos sirven dentro y fuera de Run.

func (s *Store) LotRepository() repository.StockLotRepository             { return &lotRepo{s} }
func (s *Store) MovementRepository() repository.StockMovementRepository  { return &movementRepo{s} }
func (s *Store) OutboundRepository() repository.StockOutboundRepository  { return &outboundRepo{s} }
func (s *Store) OrderRepository() repository.SupplierOrderRepository     { return &orderRepo{s} }
func (s *Store) ProductRepository() repository.ProductRepository         { return &productRepo{s} }
func (s *Store) SequenceRepository() repository.ReferenceSequenceRepository { return &sequenceRepo{s} }
func (s *Store) UserRepository() repository.UserRepository               { return &userRepo{s} }

// Run emula TxRunner: ejecuta fn con los repos del almacén y, si devuelve
// error, restaura el snapshot previo (rollback).
func (s *Store) Run(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	outboundRepo repository.StockOutboundRepository,
	orderRepo repository.SupplierOrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.ReferenceSequenceRepository,
) error) error {
	snap := s.snapshot()
	err := fn(
		s.LotRepository(),
		s.MovementRepository(),
		s.OutboundRepository(),
		s.OrderRepository(),
		s.ProductRepository(),
		s.SequenceRepository(),
	)
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	lots      map[string]*entity.StockLot
	movements []*entity.StockMovement
	outbounds map[string]*entity.StockOutbound
	orders    map[string]*entity.SupplierOrder
	sequences map[string]int
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		lots:      make(map[string]*entity.StockLot, len(s.lots)),
		movements: append([]*entity.StockMovement(nil), s.movements...),
		outbounds: make(map[string]*entity.StockOutbound, len(s.outbounds)),
		orders:    make(map[string]*entity.SupplierOrder, len(s.orders)),
		sequences: make(map[string]int, len(s.sequences)),
	}
	for id, l := range s.lots {
		snap.lots[id] = cloneLot(l)
	}
	for id, d := range s.outbounds {
		snap.outbounds[id] = cloneOutbound(d)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	for k, v := range s.sequences {
		snap.sequences[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots = snap.lots
	s.movements = snap.movements
	s.outbounds = snap.outbounds
	s.orders = snap.orders
	s.sequences = snap.sequences
}

func cloneLot(l *entity.StockLot) *entity.StockLot {
	cp := *l
	return &cp
}

func cloneOutbound(d *entity.StockOutbound) *entity.StockOutbound {
	cp := *d
	cp.Items = append([]entity.StockOutboundItem(nil), d.Items...)
	return &cp
}

func cloneOrder(o *entity.SupplierOrder) *entity.SupplierOrder {
	cp := *o
	cp.Items = append([]entity.SupplierOrderItem(nil), o.Items...)
	if o.ReceivedAt != nil {
		t := *o.ReceivedAt
		cp.ReceivedAt = &t
	}
	return &cp
}
