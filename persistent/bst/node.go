package bst

import (
	"fmt"

	"github.com/pkg/errors"
)

/*
Remarks:
--------

- 'cow' stands for copy-on-write and is used throughout the code for variables holding
  freshly created nodes which replace a node of an older incarnation of the tree.

- Nodes are never modified after construction. All functions in this file either walk
  a tree or build new nodes on the path they walk, linking them to untouched subtrees.

- A nil *Node is an empty (sub-)tree.

*/

// Comparator is a three-way comparison of keys. It returns a negative number if a < b,
// zero if a == b, and a positive number if a > b.
type Comparator[K any] func(a, b K) int

// Node is an immutable node of a binary search tree. Nodes may be shared between
// any number of tree versions.
//
// Clients get hold of nodes through Map.Root or Version.Root, and may walk a tree
// using the accessor methods. There is no way to modify a node.
type Node[K, V any] struct {
	key   K
	value V
	left  *Node[K, V]
	right *Node[K, V]
}

func newNode[K, V any](key K, value V, left, right *Node[K, V]) *Node[K, V] {
	return &Node[K, V]{key: key, value: value, left: left, right: right}
}

// Key returns the key of a node.
func (node *Node[K, V]) Key() K {
	return node.key
}

// Value returns the value associated with the key of a node.
func (node *Node[K, V]) Value() V {
	return node.value
}

// Left returns the left child of a node, or nil. It is legal to call Left on a nil node.
func (node *Node[K, V]) Left() *Node[K, V] {
	if node == nil {
		return nil
	}
	return node.left
}

// Right returns the right child of a node, or nil. It is legal to call Right on a nil node.
func (node *Node[K, V]) Right() *Node[K, V] {
	if node == nil {
		return nil
	}
	return node.right
}

// IsLeaf is true for a node without children.
func (node *Node[K, V]) IsLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

func (node *Node[K, V]) String() string {
	if node == nil {
		return "⟨⟩"
	}
	return fmt.Sprintf("⟨%v: %v⟩", node.key, node.value)
}

// entry is a key/value pair pulled out of a tree.
type entry[K, V any] struct {
	key   K
	value V
}

// --- Tree algorithms -------------------------------------------------------

// find locates key in the tree rooted at node. Returns nil if key is not present.
func find[K, V any](cmp Comparator[K], key K, node *Node[K, V]) *Node[K, V] {
	if node == nil {
		return nil
	}
	switch c := cmp(key, node.key); {
	case c == 0:
		return node
	case c < 0:
		return find(cmp, key, node.left)
	default:
		return find(cmp, key, node.right)
	}
}

// add returns the root of a tree which results from inserting (k, v) into the tree
// rooted at node. Nodes on the search path are re-created, all other nodes are shared.
// If k is already present, ErrDuplicateKey is returned and no new root is produced.
func add[K, V any](cmp Comparator[K], node *Node[K, V], k K, v V) (*Node[K, V], error) {
	if node == nil {
		tracer().Debugf("add: new leaf for key %v", k)
		return newNode[K, V](k, v, nil, nil), nil
	}
	c := cmp(k, node.key)
	if c == 0 {
		return nil, errors.Wrapf(ErrDuplicateKey, "key %v", k)
	}
	if c < 0 {
		l, err := add(cmp, node.left, k, v)
		if err != nil {
			return nil, err
		}
		return newNode(node.key, node.value, l, node.right), nil
	}
	r, err := add(cmp, node.right, k, v)
	if err != nil {
		return nil, err
	}
	return newNode(node.key, node.value, node.left, r), nil
}

// removeMinimumKey excises the smallest key from the non-empty tree rooted at node.
// It returns the root of the remaining tree together with the extracted entry.
func removeMinimumKey[K, V any](node *Node[K, V]) (*Node[K, V], entry[K, V]) {
	assertThat(node != nil, "attempt to remove minimum key from empty tree")
	if node.left == nil { // node holds the minimum ⇒ right subtree takes its place
		return node.right, entry[K, V]{key: node.key, value: node.value}
	}
	l, min := removeMinimumKey(node.left)
	return newNode(node.key, node.value, l, node.right), min
}

// remove returns the root of a tree which results from deleting key from the tree
// rooted at node, together with a flag telling if key has been found.
//
// Deleting a node with two children promotes its in-order successor, i.e. the
// minimum key of its right subtree.
func remove[K, V any](cmp Comparator[K], key K, node *Node[K, V]) (*Node[K, V], bool) {
	if node == nil {
		return nil, false
	}
	c := cmp(key, node.key)
	if c > 0 {
		r, removed := remove(cmp, key, node.right)
		return newNode(node.key, node.value, node.left, r), removed
	} else if c < 0 {
		l, removed := remove(cmp, key, node.left)
		return newNode(node.key, node.value, l, node.right), removed
	}
	switch {
	case node.left == nil: // includes the case of a leaf
		tracer().Debugf("remove: %v has no left child", node)
		return node.right, true
	case node.right == nil:
		tracer().Debugf("remove: %v has no right child", node)
		return node.left, true
	}
	r, succ := removeMinimumKey(node.right)
	tracer().Debugf("remove: replacing %v by its successor %v", node, succ.key)
	cow := newNode(succ.key, succ.value, node.left, r)
	return cow, true
}

// height returns the number of levels of the tree rooted at node.
func height[K, V any](node *Node[K, V]) int {
	if node == nil {
		return 0
	}
	return 1 + max(height(node.left), height(node.right))
}
