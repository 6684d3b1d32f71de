// Package order implements checkout: validating the customer's details,
// pricing the cart against the catalog, applying inventory deltas, recording
// the order, and triggering notification.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable record of a completed checkout. Items is a snapshot
// taken at placement time and never aliases the live cart.
type Order struct {
	ID            string
	PlacedAt      time.Time
	CustomerName  string
	CustomerEmail string
	Note          string
	Items         map[int]int
	Total         decimal.Decimal
}

// NewOrderID returns a short, human-shareable order token: the first eight
// characters of a random UUID, uppercased. Collisions are a tolerated
// low-probability display risk, not guarded against.
func NewOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}

// ValidationError reports a rejected checkout field. The order is not placed
// and the visitor's cart is left intact.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Log records placed orders durably.
type Log interface {
	Append(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]*Order, error)
}

// Notifier delivers order confirmations. Implementations must not fail order
// placement: the processor logs Notify errors and moves on.
type Notifier interface {
	Notify(ctx context.Context, o *Order, productName func(int) string) error
}
