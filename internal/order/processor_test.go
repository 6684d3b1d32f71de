package order

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techlab/internal/cart"
	"techlab/internal/catalog"
)

// memLog is an in-memory order.Log for tests.
type memLog struct {
	orders []*Order
	err    error
}

func (m *memLog) Append(ctx context.Context, o *Order) error {
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, o)
	return nil
}

func (m *memLog) List(ctx context.Context) ([]*Order, error) {
	return m.orders, nil
}

// spyNotifier records Notify calls and optionally fails them.
type spyNotifier struct {
	notified []*Order
	names    map[int]string
	err      error
}

func (s *spyNotifier) Notify(ctx context.Context, o *Order, productName func(int) string) error {
	s.notified = append(s.notified, o)
	if s.names == nil {
		s.names = make(map[int]string)
	}
	for id := range o.Items {
		s.names[id] = productName(id)
	}
	return s.err
}

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	return catalog.Open(filepath.Join(t.TempDir(), "products.json"), nil)
}

func TestPlaceOrderComputesTotalAndAdjustsInventory(t *testing.T) {
	// Default catalog: product 1 costs 10.00, product 3 costs 20.00.
	store := newTestStore(t)
	log := &memLog{}
	notifier := &spyNotifier{}
	p := NewProcessor(store, log, notifier, nil)

	c := cart.New()
	c.Add(1)
	c.Add(1)
	c.Add(3)

	o, err := p.PlaceOrder(context.Background(), CustomerInfo{
		Name:  "Ada",
		Email: "ada@example.com",
		Note:  "gift wrap please",
	}, c)
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(decimal.RequireFromString("40.00")),
		"total = %s", o.Total)
	assert.Equal(t, map[int]int{1: 2, 3: 1}, o.Items)
	assert.Equal(t, "Ada", o.CustomerName)
	assert.False(t, o.PlacedAt.IsZero())

	p1, _ := store.Get(1)
	assert.Equal(t, 3, p1.Stock)
	assert.Equal(t, 3, p1.Sold)
	p3, _ := store.Get(3)
	assert.Equal(t, 4, p3.Stock)
	assert.Equal(t, 1, p3.Sold)
	p2, _ := store.Get(2)
	assert.Equal(t, 5, p2.Stock, "untouched product must keep its counters")

	require.Len(t, log.orders, 1)
	assert.Equal(t, o.ID, log.orders[0].ID)
	require.Len(t, notifier.notified, 1)
	assert.Equal(t, "Mug Insert - Light Grey", notifier.names[1])
}

func TestPlaceOrderRejectsEmptyEmail(t *testing.T) {
	store := newTestStore(t)
	p := NewProcessor(store, &memLog{}, &spyNotifier{}, nil)

	c := cart.New()
	c.Add(1)

	_, err := p.PlaceOrder(context.Background(), CustomerInfo{Name: "Ada"}, c)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	// Cart and catalog are untouched so the visitor can retry.
	assert.Equal(t, 1, c.TotalQuantity())
	p1, _ := store.Get(1)
	assert.Equal(t, 5, p1.Stock)
	assert.Equal(t, 1, p1.Sold)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	p := NewProcessor(newTestStore(t), &memLog{}, &spyNotifier{}, nil)

	_, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, cart.New())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cart", verr.Field)
}

func TestPlaceOrderSkipsMissingProducts(t *testing.T) {
	store := newTestStore(t)
	p := NewProcessor(store, &memLog{}, &spyNotifier{}, nil)

	c := cart.New()
	c.Add(1)
	c.Add(404) // never in the catalog

	o, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)

	// The stale line contributes nothing but stays on the order record.
	assert.True(t, o.Total.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, map[int]int{1: 1, 404: 1}, o.Items)
}

func TestPlaceOrderClearsCartAndDetachesItems(t *testing.T) {
	p := NewProcessor(newTestStore(t), &memLog{}, &spyNotifier{}, nil)

	c := cart.New()
	c.Add(1)

	o, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)

	assert.Equal(t, 0, c.TotalQuantity())
	assert.Equal(t, map[int]int{1: 1}, o.Items, "order items must survive the cart clear")

	c.Add(2)
	assert.NotContains(t, o.Items, 2, "order items must not alias the live cart")
}

func TestPlaceOrderAllowsNegativeStock(t *testing.T) {
	store := newTestStore(t)
	p := NewProcessor(store, &memLog{}, &spyNotifier{}, nil)

	c := cart.New()
	for i := 0; i < 7; i++ {
		c.Add(1) // only 5 in stock
	}

	_, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)

	p1, _ := store.Get(1)
	assert.Equal(t, -2, p1.Stock)
	assert.Equal(t, 8, p1.Sold)
}

func TestPlaceOrderSurvivesNotifierFailure(t *testing.T) {
	log := &memLog{}
	notifier := &spyNotifier{err: errors.New("smtp down")}
	p := NewProcessor(newTestStore(t), log, notifier, nil)

	c := cart.New()
	c.Add(1)

	o, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err, "notification failure must not fail the order")
	assert.NotEmpty(t, o.ID)
	assert.Len(t, log.orders, 1)
	assert.Equal(t, 0, c.TotalQuantity())
}

func TestPlaceOrderSurvivesLogFailure(t *testing.T) {
	p := NewProcessor(newTestStore(t), &memLog{err: errors.New("disk full")},
		&spyNotifier{}, nil)

	c := cart.New()
	c.Add(1)

	o, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
}

func TestConsecutiveOrdersGetDistinctIDs(t *testing.T) {
	p := NewProcessor(newTestStore(t), &memLog{}, &spyNotifier{}, nil)

	c := cart.New()
	c.Add(1)
	first, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)

	c.Add(2)
	second, err := p.PlaceOrder(context.Background(),
		CustomerInfo{Email: "ada@example.com"}, c)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
