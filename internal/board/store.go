// Package board holds the in-memory state behind one Kanban view and the
// drag-gesture coordinator that moves orders between its columns.
package board

import (
	"sync"

	"atolye-takip/internal/entities"
)

// Store owns the order list for a single board view. It is replaced
// wholesale on reload and mutated only through Update/Speculate, so two
// board views can run independently off separate stores.
type Store struct {
	mu     sync.RWMutex
	orders []entities.Order
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded order list. Callers keep the previous
// list on load failure simply by not calling Replace.
func (s *Store) Replace(orders []entities.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make([]entities.Order, len(orders))
	copy(s.orders, orders)
}

func (s *Store) Orders() []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Store) Get(id uint64) (entities.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return entities.Order{}, false
}

// ByStatus partitions the list for one status column.
func (s *Store) ByStatus(status entities.OrderStatus) []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.Order
	for _, o := range s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// ByWorkshop partitions the list for one workshop column. A nil workshopID
// selects the unassigned pseudo-column.
func (s *Store) ByWorkshop(workshopID *uint64) []entities.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.Order
	for _, o := range s.orders {
		if workshopID == nil {
			if o.WorkshopID == nil {
				out = append(out, o)
			}
		} else if o.WorkshopID != nil && *o.WorkshopID == *workshopID {
			out = append(out, o)
		}
	}
	return out
}

// Update applies a mutation to one order in place.
func (s *Store) Update(id uint64, mutate func(*entities.Order)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			mutate(&s.orders[i])
			return true
		}
	}
	return false
}

// Speculate snapshots the order, applies the mutation, and returns a revert
// function restoring the snapshot. It backs the optimistic-update-then-
// rollback flow of a drag commit.
func (s *Store) Speculate(id uint64, mutate func(*entities.Order)) (revert func(), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			snapshot := s.orders[i]
			mutate(&s.orders[i])
			return func() {
				s.mu.Lock()
				defer s.mu.Unlock()
				for j := range s.orders {
					if s.orders[j].ID == snapshot.ID {
						s.orders[j] = snapshot
						return
					}
				}
			}, true
		}
	}
	return nil, false
}

// ColumnTotal sums price x quantity over a column, converting amounts into
// the base currency via banknote-selling rates. An order priced in a
// currency with no known rate contributes zero.
func ColumnTotal(orders []entities.Order, rates map[string]float64, baseCurrency string) float64 {
	var total float64
	for _, o := range orders {
		amount := o.Price * o.Quantity
		if o.Currency == baseCurrency {
			total += amount
			continue
		}
		rate, ok := rates[o.Currency]
		if !ok || rate <= 0 {
			continue
		}
		total += amount * rate
	}
	return total
}
