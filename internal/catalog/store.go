package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store holds the live catalog in memory and mirrors it to a JSON file.
// All reads and the checkout read-modify-write cycle go through one lock, so
// two concurrent orders cannot interleave their inventory updates or clobber
// each other's file writes.
//
// Persistence failures never propagate: a file that is missing or unreadable
// degrades to the default catalog on load, and a failed save is logged while
// the in-memory catalog stays the source of truth for the process lifetime.
type Store struct {
	path string
	log  *zap.Logger

	mu       sync.RWMutex
	products Catalog
}

// productRecord is the wire form of a Product in the store file. Keys are
// textual product ids. Pointer fields let load distinguish a missing field
// from a zero value; a record missing any field fails the whole load closed
// to the defaults rather than serving a partially-populated product.
type productRecord struct {
	Name        *string     `json:"name"`
	Price       json.Number `json:"price"`
	Image       *string     `json:"image"`
	Description *string     `json:"description"`
	Stock       *int        `json:"stock"`
	Sold        *int        `json:"sold"`
}

// Open creates a Store bound to path and loads it. The returned store always
// has a usable catalog.
func Open(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, log: log}
	s.mu.Lock()
	s.products = s.loadLocked()
	s.mu.Unlock()
	return s
}

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

// loadLocked reads the store file, falling back to DefaultCatalog on any
// failure. Callers must hold s.mu.
func (s *Store) loadLocked() Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("catalog file unreadable, using defaults",
				zap.String("path", s.path), zap.Error(err))
		}
		return DefaultCatalog()
	}

	loaded, err := decodeCatalog(data)
	if err != nil {
		s.log.Warn("catalog file invalid, using defaults",
			zap.String("path", s.path), zap.Error(err))
		return DefaultCatalog()
	}
	return loaded
}

func decodeCatalog(data []byte) (Catalog, error) {
	var raw map[string]productRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make(Catalog, len(raw))
	for key, rec := range raw {
		// JSON object keys are always strings; product ids are ints.
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("product key %q is not an id: %w", key, err)
		}
		if rec.Name == nil || rec.Image == nil || rec.Description == nil ||
			rec.Stock == nil || rec.Sold == nil || rec.Price == "" {
			return nil, fmt.Errorf("product %d is missing required fields", id)
		}
		price, err := decimal.NewFromString(rec.Price.String())
		if err != nil {
			return nil, fmt.Errorf("product %d price: %w", id, err)
		}
		out[id] = Product{
			ID:          id,
			Name:        *rec.Name,
			Description: *rec.Description,
			Price:       price,
			Image:       *rec.Image,
			Stock:       *rec.Stock,
			Sold:        *rec.Sold,
		}
	}
	return out, nil
}

func encodeCatalog(c Catalog) ([]byte, error) {
	raw := make(map[string]productRecord, len(c))
	for id, p := range c {
		p := p // record fields point into this copy; pre-1.22 loop vars are shared
		raw[strconv.Itoa(id)] = productRecord{
			Name:        &p.Name,
			Price:       json.Number(p.Price.String()),
			Image:       &p.Image,
			Description: &p.Description,
			Stock:       &p.Stock,
			Sold:        &p.Sold,
		}
	}
	return json.MarshalIndent(raw, "", "    ")
}

// saveLocked overwrites the store file with the current catalog via a
// temp-file rename, so a crash mid-write cannot leave a torn file. Callers
// must hold s.mu.
func (s *Store) saveLocked() error {
	data, err := encodeCatalog(s.products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	return nil
}

// Snapshot returns an independent copy of the catalog.
func (s *Store) Snapshot() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products.Clone()
}

// Get looks up a single product.
func (s *Store) Get(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// Apply runs fn against a copy of the catalog under the write lock. If fn
// succeeds the copy is committed and persisted; if fn fails nothing changes.
// A persistence failure is logged but does not undo the in-memory commit.
func (s *Store) Apply(fn func(Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.products.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.products = next

	if err := s.saveLocked(); err != nil {
		s.log.Error("catalog save failed, in-memory state retained",
			zap.String("path", s.path), zap.Error(err))
	}
	return nil
}

// Save persists the current catalog. Used by the seed command; Apply saves
// automatically.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// Seed replaces the catalog with the default seed and persists it.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = DefaultCatalog()
	return s.saveLocked()
}

// Reload replaces the in-memory catalog from the file, keeping the current
// catalog if the file is now invalid.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn("catalog reload skipped", zap.String("path", s.path), zap.Error(err))
		return
	}
	loaded, err := decodeCatalog(data)
	if err != nil {
		s.log.Warn("catalog reload skipped", zap.String("path", s.path), zap.Error(err))
		return
	}
	s.products = loaded
	s.log.Info("catalog reloaded", zap.String("path", s.path), zap.Int("products", len(loaded)))
}
