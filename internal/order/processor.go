package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techlab/internal/cart"
	"techlab/internal/catalog"
)

// DefaultNotifyTimeout bounds how long checkout waits on the notifier before
// giving up on the confirmation emails. The order is placed either way.
const DefaultNotifyTimeout = 15 * time.Second

// CustomerInfo is the checkout form input.
type CustomerInfo struct {
	Name  string
	Email string
	Note  string
}

// Processor places orders against a catalog store.
type Processor struct {
	store         *catalog.Store
	orders        Log
	notifier      Notifier
	log           *zap.Logger
	notifyTimeout time.Duration
}

// NewProcessor wires a processor. orders and notifier may be nil, in which
// case recording and notification are skipped.
func NewProcessor(store *catalog.Store, orders Log, notifier Notifier, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		store:         store,
		orders:        orders,
		notifier:      notifier,
		log:           log,
		notifyTimeout: DefaultNotifyTimeout,
	}
}

// SetNotifyTimeout overrides the notification budget.
func (p *Processor) SetNotifyTimeout(d time.Duration) {
	if d > 0 {
		p.notifyTimeout = d
	}
}

// PlaceOrder runs the checkout pipeline. On success the cart is cleared and
// the recorded order is returned so its id can be shown to the customer.
//
// Pricing is deliberately lenient: a cart line whose product id is no longer
// in the catalog contributes nothing to the total and is skipped for
// inventory, rather than blocking the order over stale cart data. Stock has
// no floor and may go negative; that case is logged so the owner can see
// oversold items.
func (p *Processor) PlaceOrder(ctx context.Context, info CustomerInfo, c *cart.Cart) (*Order, error) {
	if info.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "a contact email is required"}
	}

	items := c.Snapshot()
	if len(items) == 0 {
		return nil, &ValidationError{Field: "cart", Reason: "the cart is empty"}
	}

	// Price and adjust inventory in one pass under the store's lock, so two
	// overlapping checkouts cannot interleave their read-modify-write cycles.
	total := decimal.Zero
	err := p.store.Apply(func(cat catalog.Catalog) error {
		for id, qty := range items {
			prod, ok := cat[id]
			if !ok {
				p.log.Warn("cart line missing from catalog, skipped",
					zap.Int("product_id", id), zap.Int("quantity", qty))
				continue
			}
			total = total.Add(prod.Price.Mul(decimal.NewFromInt(int64(qty))))
			prod.Sold += qty
			prod.Stock -= qty
			if prod.Stock < 0 {
				p.log.Warn("product oversold",
					zap.Int("product_id", id),
					zap.String("name", prod.Name),
					zap.Int("stock", prod.Stock))
			}
			cat[id] = prod
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:            NewOrderID(),
		PlacedAt:      time.Now(),
		CustomerName:  info.Name,
		CustomerEmail: info.Email,
		Note:          info.Note,
		Items:         items,
		Total:         total,
	}

	if p.orders != nil {
		if err := p.orders.Append(ctx, o); err != nil {
			p.log.Error("order record not persisted",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	if p.notifier != nil {
		nctx, cancel := context.WithTimeout(ctx, p.notifyTimeout)
		if err := p.notifier.Notify(nctx, o, p.productName); err != nil {
			p.log.Error("order notification failed",
				zap.String("order_id", o.ID), zap.Error(err))
		}
		cancel()
	}

	c.Clear()

	p.log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(o.Items)))
	return o, nil
}

// productName resolves a display name for notification bodies, falling back
// to the raw id for products that have left the catalog.
func (p *Processor) productName(id int) string {
	if prod, ok := p.store.Get(id); ok {
		return prod.Name
	}
	return ""
}
