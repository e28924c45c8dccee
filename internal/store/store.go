package store

import (
	"sort"
	"sync"

	"github.com/simchap123/Work-orders-for-PM/internal/workorder"
)

// Store is the single owner of the live work-order collection. Dispatch
// folds an action batch into a replacement snapshot under one lock, which
// keeps fused operations (assignment plus its activity entries, the
// completion composite) atomic even though bubbletea runs commands on
// their own goroutines. Readers get the snapshot by reference and must
// treat it as immutable; the reducer's copy-on-write guarantees it never
// changes underneath them.
type Store struct {
	mu     sync.Mutex
	engine Engine
	orders []workorder.WorkOrder
}

// New seeds a store. The seed is sorted by id descending once so every
// later insert keeps the ordering invariant.
func New(seed []workorder.WorkOrder, roles RoleLookup) *Store {
	orders := make([]workorder.WorkOrder, len(seed))
	copy(orders, seed)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return &Store{
		engine: NewEngine(roles),
		orders: orders,
	}
}

// Snapshot returns the current collection, newest first.
func (s *Store) Snapshot() []workorder.WorkOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders
}

// Find returns the work order with the given id from the current snapshot.
func (s *Store) Find(id int) (workorder.WorkOrder, bool) {
	for _, wo := range s.Snapshot() {
		if wo.ID == id {
			return wo, true
		}
	}
	return workorder.WorkOrder{}, false
}

// Dispatch applies the actions in order as one atomic batch and returns
// the resulting snapshot.
func (s *Store) Dispatch(actions ...Action) []workorder.WorkOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.orders
	for _, action := range actions {
		next = s.engine.Apply(next, action)
	}
	s.orders = next
	return next
}

// NextID allocates the id for a new work order: one past the current
// maximum, or firstWorkOrderID when the collection is empty.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.orders) == 0 {
		return firstWorkOrderID
	}
	max := s.orders[0].ID
	for _, wo := range s.orders[1:] {
		if wo.ID > max {
			max = wo.ID
		}
	}
	return max + 1
}

// firstWorkOrderID seeds numbering for an empty collection; it matches the
// base the shipped seed data starts from.
const firstWorkOrderID = 2024001
