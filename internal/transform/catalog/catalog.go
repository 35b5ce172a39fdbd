// Package catalog owns the set of registered transformers and provides
// category listing, exact-name lookup, and substring search.
//
// The catalog is effectively append-only: registration happens during
// startup, steady-state operation only reads. A plain mutex provides the
// register-time exclusivity; reads take the same lock because the catalog is
// small and never on a hot path.
package catalog

import (
	"strings"
	"sync"

	"github.com/dshills/transmute/internal/transform"
)

// indexEntry is one row of the derived search index, rebuilt incrementally
// on each registration.
type indexEntry struct {
	name     string // lowercased descriptor name
	category string // lowercased category name
	desc     *transform.Descriptor
}

// Catalog maps categories to ordered descriptor sequences. Registration
// order is preserved both per category and globally.
type Catalog struct {
	mu sync.RWMutex

	byCategory map[transform.Category][]*transform.Descriptor
	ordered    []*transform.Descriptor // global registration order
	categories []transform.Category    // first-registration order
	index      []indexEntry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byCategory: make(map[transform.Category][]*transform.Descriptor),
	}
}

// Register adds a descriptor to the catalog.
//
// It fails with transform.ErrDuplicateName if the (category, name) pair is
// already present, transform.ErrUnknownCategory if the category is outside
// the fixed set, and transform.ErrEmptyName / transform.ErrNilTransform for
// incomplete descriptors. A failed registration never mutates catalog state.
func (c *Catalog) Register(d *transform.Descriptor) error {
	if d == nil || d.Name == "" {
		return &transform.RegistrationError{Err: transform.ErrEmptyName}
	}
	if !d.Category.Valid() {
		return &transform.RegistrationError{
			Name: d.Name, Category: d.Category,
			Err: transform.ErrUnknownCategory,
		}
	}
	if d.Transform == nil {
		return &transform.RegistrationError{
			Name: d.Name, Category: d.Category,
			Err: transform.ErrNilTransform,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.byCategory[d.Category] {
		if existing.Name == d.Name {
			return &transform.RegistrationError{
				Name: d.Name, Category: d.Category,
				Err: transform.ErrDuplicateName,
			}
		}
	}

	if len(c.byCategory[d.Category]) == 0 {
		c.categories = append(c.categories, d.Category)
	}
	c.byCategory[d.Category] = append(c.byCategory[d.Category], d)
	c.ordered = append(c.ordered, d)
	c.index = append(c.index, indexEntry{
		name:     strings.ToLower(d.Name),
		category: strings.ToLower(string(d.Category)),
		desc:     d,
	})

	return nil
}

// Lookup finds a descriptor by exact name, scanning all categories in
// registration order. Returns transform.ErrNotFound if absent.
func (c *Catalog) Lookup(name string) (*transform.Descriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.ordered {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, transform.ErrNotFound
}

// Categories returns the non-empty category names in first-registration
// order.
func (c *Catalog) Categories() []transform.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]transform.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ByCategory returns the descriptors registered under a category, in
// registration order.
func (c *Catalog) ByCategory(cat transform.Category) []*transform.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descs := c.byCategory[cat]
	out := make([]*transform.Descriptor, len(descs))
	copy(out, descs)
	return out
}

// All returns every registered descriptor in global registration order.
func (c *Catalog) All() []*transform.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*transform.Descriptor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Search returns descriptors whose name or category contains query,
// case-insensitively, preserving registration order among matches. An empty
// query returns every descriptor. The scan is linear: catalog size is tens
// to low hundreds of entries.
func (c *Catalog) Search(query string) []*transform.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if query == "" {
		out := make([]*transform.Descriptor, len(c.ordered))
		copy(out, c.ordered)
		return out
	}

	q := strings.ToLower(query)
	var out []*transform.Descriptor
	for _, e := range c.index {
		if strings.Contains(e.name, q) || strings.Contains(e.category, q) {
			out = append(out, e.desc)
		}
	}
	return out
}

// Count returns the number of registered descriptors.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}
