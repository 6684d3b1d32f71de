// Package catalog owns the product table: identity, pricing, and the
// stock/sold inventory counters. The Store guards the live catalog with a
// single lock so a checkout's read-modify-write cycle is atomic, and persists
// it as a JSON file the shop owner can inspect or hand-edit.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Product is a single sellable item. Prices are decimal, never float, so
// order totals don't accumulate rounding drift.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Stock       int
	Sold        int
}

// Catalog maps product id to product.
type Catalog map[int]Product

// Clone returns an independent copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for id, p := range c {
		out[id] = p
	}
	return out
}

// IDs returns product ids in ascending order for stable listings.
func (c Catalog) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
