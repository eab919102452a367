package bst

import "github.com/npillmayer/bstmap/maybe"

// Version is a read-only incarnation of a map. Versions are cheap to copy and
// safe to share between goroutines.
type Version[K, V any] struct {
	root *Node[K, V]
	cmp  Comparator[K]
}

// TryGetValue looks up key k in this version. It does not apply a map's
// key validator, but rejects absent keys.
func (v Version[K, V]) TryGetValue(k K) (value V, found bool, err error) {
	if isAbsent(k) {
		err = ErrInvalidArgument
		return
	}
	if v.cmp == nil { // zero Version is empty
		return
	}
	if node := find(v.cmp, k, v.root); node != nil {
		return node.value, true, nil
	}
	return
}

// Get looks up key k and returns its value as an optional value.
func (v Version[K, V]) Get(k K) maybe.Maybe[V] {
	if value, found, err := v.TryGetValue(k); found && err == nil {
		return maybe.Just(value)
	}
	return maybe.Nothing[V]()
}

// Root returns the root node of this version, or nil.
func (v Version[K, V]) Root() *Node[K, V] {
	return v.root
}

// Height returns the number of levels of the tree of this version.
func (v Version[K, V]) Height() int {
	return height(v.root)
}

// IsEmpty is true if this version does not contain any keys.
func (v Version[K, V]) IsEmpty() bool {
	return v.root == nil
}
