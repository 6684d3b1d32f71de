// Package notify delivers order confirmation email: one message to the
// customer with payment and pickup instructions, one to the shop owner with
// the order summary. Delivery is best-effort; the checkout pipeline logs a
// failure here and still considers the order placed.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"techlab/internal/order"
)

// Sender transmits one message to one address.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationError wraps a delivery failure. It never aborts an order.
type NotificationError struct {
	OrderID string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify order %s: %v", e.OrderID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// Config identifies the shop for message bodies and routing.
type Config struct {
	ShopName      string
	OwnerEmail    string
	PaymentHandle string
}

// EmailNotifier formats and sends the two order messages.
type EmailNotifier struct {
	cfg    Config
	sender Sender
	log    *zap.Logger
}

// NewEmailNotifier builds a notifier. A nil sender or empty owner address
// makes Notify a safe no-op, so an unconfigured deployment still takes
// orders.
func NewEmailNotifier(cfg Config, sender Sender, log *zap.Logger) *EmailNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &EmailNotifier{cfg: cfg, sender: sender, log: log}
}

// Notify sends the customer confirmation and the owner summary. Both sends
// are attempted even if one fails; the combined failure is returned as a
// NotificationError.
func (n *EmailNotifier) Notify(ctx context.Context, o *order.Order, productName func(int) string) error {
	if n.sender == nil || n.cfg.OwnerEmail == "" {
		n.log.Info("email not configured, skipping order notification",
			zap.String("order_id", o.ID))
		return nil
	}

	items := n.formatItems(o, productName)

	var g errgroup.Group
	g.Go(func() error {
		return n.sender.Send(ctx,
			o.CustomerEmail,
			fmt.Sprintf("Order Confirmation: %s - %s", o.ID, n.cfg.ShopName),
			n.customerBody(o, items))
	})
	g.Go(func() error {
		return n.sender.Send(ctx,
			n.cfg.OwnerEmail,
			fmt.Sprintf("NEW ORDER: %s ($%s)", o.ID, o.Total.StringFixed(2)),
			n.ownerBody(o, items))
	})
	if err := g.Wait(); err != nil {
		return &NotificationError{OrderID: o.ID, Err: err}
	}

	n.log.Info("order notifications sent", zap.String("order_id", o.ID))
	return nil
}

// formatItems renders one "- Name (xQty)" line per cart line, in product id
// order. Products missing from the catalog fall back to their raw id.
func (n *EmailNotifier) formatItems(o *order.Order, productName func(int) string) string {
	ids := make([]int, 0, len(o.Items))
	for id := range o.Items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	for _, id := range ids {
		name := ""
		if productName != nil {
			name = productName(id)
		}
		if name == "" {
			name = fmt.Sprintf("Product ID %d", id)
		}
		fmt.Fprintf(&b, "- %s (x%d)\n", name, o.Items[id])
	}
	return b.String()
}

func (n *EmailNotifier) customerBody(o *order.Order, items string) string {
	total := o.Total.StringFixed(2)
	return fmt.Sprintf(`Hi %s,

Thank you for your order! Here are your order details:

Order ID: %s
Total: $%s

Items Ordered:
%s
--- NEXT STEPS ---
1. PAYMENT: Please Venmo $%s to %s.
   * IMPORTANT: Include Order ID %s in the Venmo note.

2. PICKUP: Once payment is received, I will start printing. We will arrange a local pickup time when it's ready.

Any questions? Reply to this email!

Thanks,
%s
`, o.CustomerName, o.ID, total, items, total, n.cfg.PaymentHandle, o.ID, n.cfg.ShopName)
}

func (n *EmailNotifier) ownerBody(o *order.Order, items string) string {
	return fmt.Sprintf(`New Order Received!

Customer: %s
Email: %s
Note: %s

Items:
%s
Total: $%s
`, o.CustomerName, o.CustomerEmail, o.Note, items, o.Total.StringFixed(2))
}
