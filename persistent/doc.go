/*
Immutable persistent data structures are data structures which can be copied and modified
efficiently, leaving the original unchanged.
This package is the umbrella for the persistent structures of this module.

Persistent immutable data-structures offer structural sharing: if two versions of a
structure are mostly copies of each other, most of the memory they take up will be
shared between them. An update creates new incarnations only for the parts it touches.
Every version is read-only once built, which makes it safe for concurrent readers.

Sub-package bst implements an ordered map on top of an (unbalanced) binary search tree.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package persistent
