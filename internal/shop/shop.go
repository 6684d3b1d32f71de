// Package shop is the surface the presentation layer calls: list the catalog,
// mutate a session's cart, and check out. It owns no logic of its own beyond
// routing to the catalog store, session carts, and the order processor.
package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techlab/internal/cart"
	"techlab/internal/catalog"
	"techlab/internal/order"
)

// ErrUnknownProduct is returned by AddToCart for an id not in the catalog.
// The cart itself accepts any id; rejecting here gives the presentation layer
// immediate feedback instead of a silently skipped line at checkout.
type ErrUnknownProduct struct {
	ProductID int
}

func (e *ErrUnknownProduct) Error() string {
	return fmt.Sprintf("unknown product %d", e.ProductID)
}

// Service bundles the storefront core for one shop.
type Service struct {
	store     *catalog.Store
	sessions  *cart.Sessions
	processor *order.Processor
	log       *zap.Logger
}

// New assembles the service.
func New(store *catalog.Store, processor *order.Processor, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:     store,
		sessions:  cart.NewSessions(),
		processor: processor,
		log:       log,
	}
}

// List returns all products in stable id order.
func (s *Service) List() []catalog.Product {
	snap := s.store.Snapshot()
	out := make([]catalog.Product, 0, len(snap))
	for _, id := range snap.IDs() {
		out = append(out, snap[id])
	}
	return out
}

// Get returns a single product.
func (s *Service) Get(id int) (catalog.Product, bool) {
	return s.store.Get(id)
}

// AddToCart puts one unit of productID into the session's cart.
func (s *Service) AddToCart(sessionID string, productID int) error {
	if _, ok := s.store.Get(productID); !ok {
		s.log.Debug("add to cart rejected",
			zap.String("session", sessionID), zap.Int("product_id", productID))
		return &ErrUnknownProduct{ProductID: productID}
	}
	s.sessions.Get(sessionID).Add(productID)
	return nil
}

// CartContents returns the session's cart lines as a copy.
func (s *Service) CartContents(sessionID string) map[int]int {
	return s.sessions.Get(sessionID).Snapshot()
}

// CartCount is the total quantity across the session's cart, for the badge.
func (s *Service) CartCount(sessionID string) int {
	return s.sessions.Get(sessionID).TotalQuantity()
}

// CartTotal prices the session's cart against current catalog prices. Lines
// whose product has left the catalog are skipped, matching checkout pricing.
func (s *Service) CartTotal(sessionID string) decimal.Decimal {
	snap := s.store.Snapshot()
	total := decimal.Zero
	for id, qty := range s.sessions.Get(sessionID).Snapshot() {
		if p, ok := snap[id]; ok {
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return total
}

// Checkout places an order for the session's cart. On success the cart is
// empty and the returned order carries the id to show the customer.
func (s *Service) Checkout(ctx context.Context, sessionID, name, email, note string) (*order.Order, error) {
	c := s.sessions.Get(sessionID)
	info := order.CustomerInfo{Name: name, Email: email, Note: note}
	return s.processor.PlaceOrder(ctx, info, c)
}
