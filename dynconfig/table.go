// Package dynconfig implements the mutable, in-memory config
// representation of spec.md §4.3 (C3): a table is an insertion-ordered
// string-keyed map, an array is a homogeneous (numeric-unified) vector.
// Both satisfy value.TableReader / value.ArrayReader so the INI parser's
// output, the binary writer's input, and the serializers' source can all
// be this same concrete type.
//
// The overall shape — an owned tree of nodes with constructor functions —
// is grounded on the teacher's ir.Node
// (_examples/signadot-tony-format/go-tony/ir/node.go), generalized from
// one polymorphic node type into the two concrete types spec.md's
// TableRead/ArrayRead capability split calls for (spec.md §9).
package dynconfig

import (
	"github.com/alex05447/miniconfig/value"
)

// Table is an insertion-ordered, string-keyed mapping. The zero value is
// an empty, ready-to-use table.
type Table struct {
	keys   []string
	values []value.Value
	index  map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.keys) }

// Get returns the value for key, or value.ErrKeyDoesNotExist.
func (t *Table) Get(key string) (value.Value, error) {
	i, ok := t.index[key]
	if !ok {
		return value.Value{}, value.KeyDoesNotExist(key)
	}
	return t.values[i], nil
}

// Contains reports whether key is present.
func (t *Table) Contains(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Iter calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (t *Table) Iter(fn func(key string, v value.Value) bool) {
	for i, k := range t.keys {
		if !fn(k, t.values[i]) {
			return
		}
	}
}

// Set inserts key if absent, or replaces its value in place (preserving
// its original slot) if present. An empty key is value.ErrEmptyKey; a
// key containing a raw control character is
// value.ErrNameContainsInvalidChars (spec.md invariant 1).
func (t *Table) Set(key string, v value.Value) error {
	if key == "" {
		return value.ErrEmptyKey
	}
	if containsInvalidChar(key) {
		return value.NameContainsInvalidChars(key)
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[key]; ok {
		t.values[i] = v
		return nil
	}
	t.index[key] = len(t.keys)
	t.keys = append(t.keys, key)
	t.values = append(t.values, v)
	return nil
}

// Remove deletes key's mapping, or returns value.ErrKeyDoesNotExist if
// absent. Removing a key shifts every later entry's index down by one
// but otherwise preserves relative order.
func (t *Table) Remove(key string) error {
	i, ok := t.index[key]
	if !ok {
		return value.KeyDoesNotExist(key)
	}
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	t.values = append(t.values[:i], t.values[i+1:]...)
	delete(t.index, key)
	for k, idx := range t.index {
		if idx > i {
			t.index[k] = idx - 1
		}
	}
	return nil
}

// containsInvalidChar reports whether s holds a raw control character
// outside of what the escape codec would itself produce (spec.md
// invariant 1: keys are valid UTF-8 and free of raw control/escape
// characters).
func containsInvalidChar(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
