/*
Package bst implements a persistent (immutable) ordered map, backed by an
unbalanced binary search tree.

Every modification of a map (insertion or deletion of a key) computes a new
root for the underlying tree. Only the nodes on the path from the root to the
position of the modification are re-created; every other subtree is shared by
reference between the old and the new incarnation of the tree. Old roots stay
valid and may be walked (or queried) independently, as long as a client holds
on to them:

	m := bst.NewOrdered[int, string]()
	m.Add(1, "one")
	v1 := m.Snapshot()
	m.Add(2, "two")
	_, found, _ := v1.TryGetValue(2)   // found == false

Nodes are never mutated after construction, therefore any number of goroutines
may read any number of versions concurrently. A Map itself, however, holds a
single slot for its current root; concurrent writers on the same Map have to
synchronize externally.

The tree is not balanced. Inserting keys in sorted order will produce a tree of
linear depth.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package bst

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fp.bst'.
func tracer() tracing.Trace {
	return tracing.Select("fp.bst")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("bst: "+msg, msgargs...)
		panic(msg)
	}
}
