// Package cart tracks a visitor's in-progress selection. Carts are purely
// in-memory, keyed by an opaque session id, and live only until checkout
// clears them or the process exits.
package cart

import "sync"

// Cart maps product id to quantity for one visitor session.
type Cart struct {
	mu    sync.Mutex
	items map[int]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{items: make(map[int]int)}
}

// Add increments the quantity for productID, inserting it at 1 if absent.
// The product id is not validated here; checkout prices against the catalog.
func (c *Cart) Add(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[productID]++
}

// Snapshot returns an independent copy of the cart contents. Orders hold a
// snapshot, never a live view, because the cart is cleared right after
// placement.
func (c *Cart) Snapshot() map[int]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[int]int)
}

// TotalQuantity is the sum of all line quantities, for the cart badge.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, qty := range c.items {
		n += qty
	}
	return n
}

// Sessions is a registry of carts keyed by session id. Sessions are created
// on first use and removed explicitly; there is no expiry.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*Cart)}
}

// Get returns the cart for sessionID, creating it if needed.
func (s *Sessions) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	return c
}

// Remove drops a session's cart.
func (s *Sessions) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len reports how many sessions currently hold a cart.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
