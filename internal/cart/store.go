package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/shopfront/storefront/internal/catalog"
	"github.com/shopfront/storefront/internal/storage"
)

const storageKey = "cart"

// DefaultTaxRate is the flat rate applied to the cart subtotal.
const DefaultTaxRate = 0.10

// Observer is called with the new total item count after every mutation,
// so the presentation layer can keep its badge count fresh.
type Observer func(itemCount int)

// Store owns the shopper's cart. Items live in memory and the whole cart is
// written to the injected storage after every mutation (full overwrite,
// last writer wins).
type Store struct {
	mu        sync.Mutex
	items     []Item
	storage   storage.Store
	taxRate   float64
	logger    *log.Logger
	observers []Observer
}

func NewStore(st storage.Store, taxRate float64, logger *log.Logger) *Store {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Store{storage: st, taxRate: taxRate, logger: logger}
}

// Load reads the persisted cart. An absent or malformed value means an empty
// cart, never an error.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	raw, ok, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		s.logger.Printf("load cart: %v", err)
		return
	}
	if !ok {
		return
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Printf("load cart: discarding malformed value: %v", err)
		return
	}
	s.items = items
}

// Subscribe registers an observer fired after every successful mutation.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Add merges quantity into an existing item for the same product, or appends
// a new item. Quantities below 1 count as 1.
func (s *Store) Add(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: p, Quantity: quantity})
	}
	return s.persistAndNotifyLocked(ctx)
}

// UpdateQuantity applies delta to the item's quantity. A result below 1
// removes the item. An unknown product id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != productID {
			continue
		}
		if s.items[i].Quantity+delta < 1 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity += delta
		}
		return s.persistAndNotifyLocked(ctx)
	}
	s.mu.Unlock()
	return nil
}

// Remove deletes the item for the given product id. Absent items are a no-op.
func (s *Store) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistAndNotifyLocked(ctx)
		}
	}
	s.mu.Unlock()
	return nil
}

// Clear empties the cart and persists the empty state.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	return s.persistAndNotifyLocked(ctx)
}

// Items returns a copy of the cart contents in add order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount is the sum of all quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCountLocked()
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Tax is the subtotal times the flat rate, rounded to cents.
func (s *Store) Tax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return round2(s.subtotalLocked() * s.taxRate)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotalLocked()
	return subtotal + round2(subtotal*s.taxRate)
}

func (s *Store) subtotalLocked() float64 {
	var sum float64
	for _, it := range s.items {
		sum += it.LineTotal()
	}
	return sum
}

func (s *Store) itemCountLocked() int {
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// persistAndNotifyLocked writes the full cart, releases the mutex, and fires
// observers outside the lock so they may call back into the store.
func (s *Store) persistAndNotifyLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := s.storage.Put(ctx, storageKey, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist cart: %w", err)
	}

	count := s.itemCountLocked()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(count)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
