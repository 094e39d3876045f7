package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

type lotRepo struct{ s *Store }

func (r *lotRepo) Create(lot *entity.StockLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.lots {
		if l.LotNumber == lot.LotNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.lots[lot.ID] = cloneLot(lot)
	return nil
}

func (r *lotRepo) GetByID(id string) (*entity.StockLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	return cloneLot(lot), nil
}

func (r *lotRepo) ExistsByLotNumber(lotNumber string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.lots {
		if l.LotNumber == lotNumber {
			return true, nil
		}
	}
	return false, nil
}

// ListAvailableForUpdate mismo orden que el SQL: entry_date ASC, id ASC.
// En memoria no hay bloqueo de filas; Run serializa las "transacciones".
func (r *lotRepo) ListAvailableForUpdate(productID string) ([]*entity.StockLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var lots []*entity.StockLot
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.RemainingQuantity > 0 {
			lots = append(lots, cloneLot(l))
		}
	}
	sortLots(lots)
	return lots, nil
}

func (r *lotRepo) ListByProduct(productID string) ([]*entity.StockLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var lots []*entity.StockLot
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			lots = append(lots, cloneLot(l))
		}
	}
	sortLots(lots)
	return lots, nil
}

func (r *lotRepo) UpdateRemaining(lotID string, remaining int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	lot.RemainingQuantity = remaining
	return nil
}

func (r *lotRepo) SumRemainingByProduct(productID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			total += l.RemainingQuantity
		}
	}
	return total, nil
}

func (r *lotRepo) ValuationByProduct(productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, l := range r.s.lots {
		if l.ProductID == productID {
			total = total.Add(l.Value())
		}
	}
	return total, nil
}

func (r *lotRepo) TotalValuation() (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, l := range r.s.lots {
		total = total.Add(l.Value())
	}
	return total, nil
}

func sortLots(lots []*entity.StockLot) {
	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].EntryDate.Equal(lots[j].EntryDate) {
			return lots[i].EntryDate.Before(lots[j].EntryDate)
		}
		return lots[i].ID < lots[j].ID
	})
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *movement
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	// Recientes primero: orden inverso de inserción.
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			cp := *r.s.movements[i]
			out = append(out, &cp)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *movementRepo) ListByReferenceDoc(referenceDoc string) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceDoc == referenceDoc {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type outboundRepo struct{ s *Store }

func (r *outboundRepo) Create(outbound *entity.StockOutbound) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.outbounds {
		if d.Reference == outbound.Reference {
			return domain.ErrDuplicate
		}
	}
	r.s.outbounds[outbound.ID] = cloneOutbound(outbound)
	return nil
}

func (r *outboundRepo) GetByID(id string) (*entity.StockOutbound, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc, ok := r.s.outbounds[id]
	if !ok {
		return nil, nil
	}
	return cloneOutbound(doc), nil
}

func (r *outboundRepo) GetByIDForUpdate(id string) (*entity.StockOutbound, error) {
	return r.GetByID(id)
}

func (r *outboundRepo) ExistsByReference(reference string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.outbounds {
		if d.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *outboundRepo) Update(outbound *entity.StockOutbound) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.outbounds[outbound.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.outbounds[outbound.ID] = cloneOutbound(outbound)
	return nil
}

func (r *outboundRepo) List() ([]*entity.StockOutbound, error) {
	return r.filter(func(*entity.StockOutbound) bool { return true })
}

func (r *outboundRepo) ListByWorkshop(workshop string) ([]*entity.StockOutbound, error) {
	return r.filter(func(d *entity.StockOutbound) bool { return d.Workshop == workshop })
}

func (r *outboundRepo) ListByStatus(status string) ([]*entity.StockOutbound, error) {
	return r.filter(func(d *entity.StockOutbound) bool { return d.Status == status })
}

func (r *outboundRepo) filter(keep func(*entity.StockOutbound) bool) ([]*entity.StockOutbound, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockOutbound
	for _, d := range r.s.outbounds {
		if keep(d) {
			out = append(out, cloneOutbound(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) GetByID(id string) (*entity.SupplierOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *orderRepo) GetByIDForUpdate(id string) (*entity.SupplierOrder, error) {
	return r.GetByID(id)
}

func (r *orderRepo) MarkReceived(id string, receivedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok || order.ReceivedAt != nil {
		return domain.ErrConflict
	}
	t := receivedAt
	order.ReceivedAt = &t
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByReference(reference string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Reference == reference {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) ListBelowReorderPoint() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	remaining := make(map[string]int)
	for _, l := range r.s.lots {
		remaining[l.ProductID] += l.RemainingQuantity
	}
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.ReorderPoint != nil && remaining[p.ID] < *p.ReorderPoint {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

type sequenceRepo struct{ s *Store }

func (r *sequenceRepo) NextSequence(_ context.Context, kind string, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := kind + "|" + date.Format("2006-01-02")
	r.s.sequences[key]++
	return r.s.sequences[key], nil
}

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
