package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techlab/internal/order"
)

func testOrder(id string, placedAt time.Time) *order.Order {
	return &order.Order{
		ID:            id,
		PlacedAt:      placedAt,
		CustomerName:  "Ada",
		CustomerEmail: "ada@example.com",
		Note:          "leave at the door",
		Items:         map[int]int{1: 2, 3: 1},
		Total:         decimal.RequireFromString("40.00"),
	}
}

func TestAppendListRoundTrip(t *testing.T) {
	log, err := NewOrderLog(":memory:")
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	want := testOrder("AB12CD34", time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC))
	require.NoError(t, log.Append(ctx, want))

	got, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, want.ID, got[0].ID)
	assert.True(t, want.PlacedAt.Equal(got[0].PlacedAt))
	assert.Equal(t, want.CustomerName, got[0].CustomerName)
	assert.Equal(t, want.CustomerEmail, got[0].CustomerEmail)
	assert.Equal(t, want.Note, got[0].Note)
	assert.Equal(t, want.Items, got[0].Items)
	assert.True(t, want.Total.Equal(got[0].Total))
}

func TestListNewestFirst(t *testing.T) {
	log, err := NewOrderLog(":memory:")
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, log.Append(ctx, testOrder("OLDER111", base)))
	require.NoError(t, log.Append(ctx, testOrder("NEWER222", base.Add(time.Hour))))

	got, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "NEWER222", got[0].ID)
	assert.Equal(t, "OLDER111", got[1].ID)
}

func TestDuplicateOrderIDRejected(t *testing.T) {
	log, err := NewOrderLog(":memory:")
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	o := testOrder("SAME0000", time.Now())
	require.NoError(t, log.Append(ctx, o))
	assert.Error(t, log.Append(ctx, o))
}

func TestOrderLogPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	ctx := context.Background()

	log, err := NewOrderLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, testOrder("AB12CD34", time.Now().UTC())))
	require.NoError(t, log.Close())

	reopened, err := NewOrderLog(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AB12CD34", got[0].ID)
}
