// Package store provides the durable order log. Orders are append-only: the
// catalog's sold/stock counters survive a restart, so the orders that moved
// them must survive too.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"

	"techlab/internal/order"
)

// OrderLog records placed orders in a SQLite database. Pass ":memory:" as the
// path for tests.
type OrderLog struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewOrderLog opens (creating if needed) the order database at path.
func NewOrderLog(path string) (*OrderLog, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create order log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open order log: %w", err)
	}

	l := &OrderLog{db: db, path: path}
	if err := l.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *OrderLog) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		placed_at TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		note TEXT,
		total TEXT NOT NULL,
		items TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_orders_placed_at ON orders(placed_at);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize order schema: %w", err)
	}
	return nil
}

// Append stores one order. Item quantities are kept as a JSON object keyed by
// product id, mirroring the catalog file's textual-key convention.
func (l *OrderLog) Append(ctx context.Context, o *order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO orders (id, placed_at, customer_name, customer_email, note, total, items)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID,
		o.PlacedAt.UTC().Format(time.RFC3339Nano),
		o.CustomerName,
		o.CustomerEmail,
		o.Note,
		o.Total.String(),
		string(items),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

// List returns all recorded orders, newest first.
func (l *OrderLog) List(ctx context.Context) ([]*order.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, placed_at, customer_name, customer_email, note, total, items
		 FROM orders ORDER BY placed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []*order.Order
	for rows.Next() {
		var (
			o         order.Order
			placedAt  string
			total     string
			itemsJSON string
		)
		if err := rows.Scan(&o.ID, &placedAt, &o.CustomerName, &o.CustomerEmail,
			&o.Note, &total, &itemsJSON); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if o.PlacedAt, err = time.Parse(time.RFC3339Nano, placedAt); err != nil {
			return nil, fmt.Errorf("order %s placed_at: %w", o.ID, err)
		}
		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("order %s total: %w", o.ID, err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			return nil, fmt.Errorf("order %s items: %w", o.ID, err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (l *OrderLog) Close() error {
	return l.db.Close()
}
