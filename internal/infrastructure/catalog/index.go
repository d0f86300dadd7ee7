package catalog

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/cartwise/backend/internal/domain"
)

// Index is the in-memory, read-only product repository. It is immutable
// after construction; refresh means building a new Index and swapping it
// into a Holder, never mutating in place. Concurrent readers need no
// locking.
type Index struct {
	products map[string][]domain.ProductCandidate
	stores   []string
}

// NewIndex builds an index from a flat product list, validating each row.
// A negative price or an empty product id is a data defect and fails the
// whole load; a silently degraded catalog is worse than no catalog.
func NewIndex(products []domain.ProductCandidate) (*Index, error) {
	byStore := make(map[string][]domain.ProductCandidate)
	seen := make(map[string]bool)

	for i, p := range products {
		if p.ProductID == "" {
			return nil, fmt.Errorf("product %d: empty product id", i)
		}
		if p.StoreID == "" {
			return nil, fmt.Errorf("product %q: empty store id", p.ProductID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q: %w", p.ProductID, domain.ErrNegativePrice)
		}
		if seen[p.ProductID] {
			return nil, fmt.Errorf("product %q: duplicate product id", p.ProductID)
		}
		seen[p.ProductID] = true
		byStore[p.StoreID] = append(byStore[p.StoreID], p)
	}

	stores := make([]string, 0, len(byStore))
	for id := range byStore {
		stores = append(stores, id)
	}
	sort.Strings(stores)

	return &Index{products: byStore, stores: stores}, nil
}

// ProductsForStore returns the store's products in stable catalog order.
// Unknown stores return nil. Callers must treat the slice as read-only.
func (ix *Index) ProductsForStore(storeID string) []domain.ProductCandidate {
	return ix.products[storeID]
}

// Stores returns the sorted store ids in the catalog.
func (ix *Index) Stores() []string {
	return ix.stores
}

// HasStore reports whether the catalog carries the given store.
func (ix *Index) HasStore(storeID string) bool {
	_, ok := ix.products[storeID]
	return ok
}

// Len returns the total product count (for logging/monitoring).
func (ix *Index) Len() int {
	n := 0
	for _, list := range ix.products {
		n += len(list)
	}
	return n
}

// Holder provides atomic catalog refresh: requests read whatever index is
// current when they start, and a data refresh swaps in a complete new
// index without disturbing in-flight requests.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder creates a holder around an initial index.
func NewHolder(ix *Index) *Holder {
	h := &Holder{}
	h.current.Store(ix)
	return h
}

// Swap replaces the current index atomically.
func (h *Holder) Swap(ix *Index) {
	h.current.Store(ix)
}

// ProductsForStore delegates to the current index.
func (h *Holder) ProductsForStore(storeID string) []domain.ProductCandidate {
	return h.current.Load().ProductsForStore(storeID)
}

// Stores delegates to the current index.
func (h *Holder) Stores() []string {
	return h.current.Load().Stores()
}

// HasStore delegates to the current index.
func (h *Holder) HasStore(storeID string) bool {
	return h.current.Load().HasStore(storeID)
}
