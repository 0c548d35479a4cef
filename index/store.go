// Package index provides the in-memory prefix-tree lookup store that sits
// between the key-list decoder and the lookup facade: bulk-loaded once at
// archive-open time, then probed read-only by concurrent lookups.
package index

import (
	radix "github.com/armon/go-radix"

	"github.com/go-mdict/mdict/section"
)

// Value holds the locator(s) bound to one key. A freshly inserted key holds
// Single; a second insertion for the same key promotes it to Many.
type Value struct {
	single section.Locator
	many   []section.Locator
	isMany bool
}

// Locators returns every locator bound to this value, in the order lookups
// should return bodies for.
func (v Value) Locators() []section.Locator {
	if !v.isMany {
		return []section.Locator{v.single}
	}

	return v.many
}

// Store is a byte-keyed radix tree mapping canonical key strings to Value.
// The zero value is not usable; construct with New.
type Store struct {
	tree *radix.Tree
}

// New constructs an empty Store.
func New() *Store {
	return &Store{tree: radix.New()}
}

// Insert adds a locator for key. If key already has a value, the existing
// value is promoted to Many and the new locator is prepended — the source
// MDict implementation's single→multi promotion writes [new, old], and this
// store preserves that newest-first order rather than silently reversing it
// (spec's resolved open question).
func (s *Store) Insert(key string, loc section.Locator) {
	existing, ok := s.tree.Get(key)
	if !ok {
		s.tree.Insert(key, Value{single: loc})
		return
	}

	v := existing.(Value)
	if !v.isMany {
		s.tree.Insert(key, Value{many: []section.Locator{loc, v.single}, isMany: true})
		return
	}

	v.many = append([]section.Locator{loc}, v.many...)
	s.tree.Insert(key, v)
}

// Get returns the Value bound to key, if present.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.tree.Get(key)
	if !ok {
		return Value{}, false
	}

	return v.(Value), true
}

// Len returns the number of distinct keys in the store.
func (s *Store) Len() int { return s.tree.Len() }

// Keys returns every key in the store, in radix (lexicographic) order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.tree.Len())
	s.tree.Walk(func(k string, _ interface{}) bool {
		keys = append(keys, k)
		return false
	})

	return keys
}
