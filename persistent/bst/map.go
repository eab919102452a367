package bst

import (
	"cmp"

	"github.com/npillmayer/bstmap/maybe"
	"github.com/pkg/errors"
)

// Map is a persistent ordered map. It holds a single slot for the root of the
// current version of the underlying tree. Add and Remove compute a new root and
// store it in this slot; older versions, captured by Snapshot, are not affected.
//
// Maps have to be created by New or NewOrdered. A Map is not safe for concurrent
// writers; versions taken from it are safe for any number of concurrent readers.
type Map[K, V any] struct {
	root     *Node[K, V]
	cmp      Comparator[K]
	validate KeyValidator[K]
	writes   uint64
}

// Option is a type to help initializing maps at creation time.
type Option[K, V any] func(*Map[K, V])

// WithKeyValidator is an option to reject keys for which valid returns false,
// in addition to absent keys. Use it like this:
//
//	m := bst.NewOrdered[string, int](bst.WithKeyValidator[string, int](func(s string) bool {
//		return s != ""
//	}))
func WithKeyValidator[K, V any](valid KeyValidator[K]) Option[K, V] {
	return func(m *Map[K, V]) {
		m.validate = valid
	}
}

// New creates an empty map which orders its keys with cmp.
func New[K, V any](cmp Comparator[K], opts ...Option[K, V]) *Map[K, V] {
	assertThat(cmp != nil, "map needs a comparator")
	m := &Map[K, V]{cmp: cmp}
	for _, option := range opts {
		option(m)
	}
	return m
}

// NewOrdered creates an empty map for keys with a natural order.
func NewOrdered[K cmp.Ordered, V any](opts ...Option[K, V]) *Map[K, V] {
	return New[K, V](cmp.Compare[K], opts...)
}

// --- API -------------------------------------------------------------------

// CheckKey returns an error wrapping ErrInvalidArgument if k is not usable as a key.
func (m *Map[K, V]) CheckKey(k K) error {
	m.assertInitialized()
	if isAbsent(k) {
		return errors.Wrap(ErrInvalidArgument, "key is nil")
	}
	if m.validate != nil && !m.validate(k) {
		return errors.Wrapf(ErrInvalidArgument, "key %v rejected", k)
	}
	return nil
}

// TryGetValue looks up key k. If k is present, its associated value is returned
// together with found=true. Otherwise the zero value of V and found=false is returned.
// An error is returned for invalid keys only.
func (m *Map[K, V]) TryGetValue(k K) (value V, found bool, err error) {
	if err = m.CheckKey(k); err != nil {
		return
	}
	return m.Snapshot().TryGetValue(k)
}

// Get looks up key k and returns its value as an optional value. Invalid keys
// are treated as missing.
func (m *Map[K, V]) Get(k K) maybe.Maybe[V] {
	if m.CheckKey(k) != nil {
		return maybe.Nothing[V]()
	}
	return m.Snapshot().Get(k)
}

// Add inserts key k with associated value v. If k is already present, an error
// wrapping ErrDuplicateKey is returned and the map stays unchanged.
func (m *Map[K, V]) Add(k K, v V) error {
	if err := m.CheckKey(k); err != nil {
		return err
	}
	root, err := add(m.cmp, m.root, k, v)
	if err != nil {
		tracer().Debugf("add: %v", err)
		return err
	}
	m.store(root)
	return nil
}

// Remove deletes key k and its associated value from the map. It returns true if k
// has been present, false otherwise. Removing a missing key is not an error.
func (m *Map[K, V]) Remove(k K) (bool, error) {
	if err := m.CheckKey(k); err != nil {
		return false, err
	}
	root, removed := remove(m.cmp, k, m.root)
	m.store(root) // unconditionally, even if nothing has been removed
	return removed, nil
}

// Root returns the root node of the current version of the map, or nil for an empty map.
func (m *Map[K, V]) Root() *Node[K, V] {
	m.assertInitialized()
	return m.root
}

// Height returns the number of levels of the current tree.
func (m *Map[K, V]) Height() int {
	return height(m.Root())
}

// IsEmpty is true if the map does not contain any keys.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Root() == nil
}

// Writes returns the number of times the root slot of the map has been written to.
func (m *Map[K, V]) Writes() uint64 {
	return m.writes
}

// Snapshot captures the current version of the map. The snapshot is not affected
// by later modifications of m.
func (m *Map[K, V]) Snapshot() Version[K, V] {
	m.assertInitialized()
	return Version[K, V]{root: m.root, cmp: m.cmp}
}

// Restore makes a version the current version of the map. The version must have been
// taken from a map with the same ordering of keys, usually from m itself.
func (m *Map[K, V]) Restore(v Version[K, V]) {
	m.assertInitialized()
	m.store(v.root)
}

func (m *Map[K, V]) store(root *Node[K, V]) {
	m.root = root
	m.writes++
}

func (m *Map[K, V]) assertInitialized() {
	assertThat(m != nil && m.cmp != nil, "map not initialized; use New or NewOrdered")
}
