// Package outline implements the tree engine behind lacework: conversion
// between tab-indented text and an in-memory tree, expansion-aware
// traversal, structural mutation, and a bounded undo/redo history over
// whole-tree snapshots.
//
// The engine is deliberately free of UI and storage concerns. Collaborators
// talk to it through Parse/Serialize (the text boundary) and through the
// snapshot values produced by the mutation functions. All mutation is
// value-in/value-out: callers hand in a tree, get back a new tree, and the
// input is never modified.
package outline

import (
	"github.com/google/uuid"
)

// Node is a single outline entry. Children order is semantically
// meaningful: it is both display order and serialization order, and is
// never reordered implicitly.
//
// Parent is a non-owning back-reference used only for upward navigation.
// Serialization and traversal always walk downward from the roots, so the
// back-reference never participates in ownership.
type Node struct {
	ID       string
	Text     string
	Depth    int
	Children []*Node
	Expanded bool
	Parent   *Node
}

// Tree is an ordered forest of root nodes plus an id index for O(1)
// lookup. The index is derived state: it is rebuilt on Clone and kept in
// step by the mutation functions.
type Tree struct {
	Roots []*Node

	index map[string]*Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]*Node)}
}

// newNode creates a node with a fresh id. IDs are never reused: a deleted
// node's id stays retired even if an identical line is recreated.
func newNode(text string, depth int) *Node {
	return &Node{
		ID:       uuid.NewString(),
		Text:     text,
		Depth:    depth,
		Expanded: true,
	}
}

// Lookup returns the node with the given id, or nil.
func (t *Tree) Lookup(id string) *Node {
	if t == nil || t.index == nil {
		return nil
	}
	return t.index[id]
}

// NodeCount returns the total number of nodes in the forest, expanded or
// not.
func (t *Tree) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Walk visits every node in pre-order, ignoring expansion state. The walk
// stops early if fn returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	var walk func(nodes []*Node) bool
	walk = func(nodes []*Node) bool {
		for _, n := range nodes {
			if !fn(n) {
				return false
			}
			if !walk(n.Children) {
				return false
			}
		}
		return true
	}
	walk(t.Roots)
}

// Clone returns a deep copy of the tree: fresh Node structs with the same
// ids, texts, depths, order, and expansion state. Parent pointers and the
// id index are rebuilt on the copy, never carried over, so a stale
// back-reference in the source can't leak into the snapshot.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := NewTree()
	var cloneNode func(n *Node, parent *Node) *Node
	cloneNode = func(n *Node, parent *Node) *Node {
		c := &Node{
			ID:       n.ID,
			Text:     n.Text,
			Depth:    n.Depth,
			Expanded: n.Expanded,
			Parent:   parent,
		}
		out.index[c.ID] = c
		for _, child := range n.Children {
			c.Children = append(c.Children, cloneNode(child, c))
		}
		return c
	}
	for _, root := range t.Roots {
		out.Roots = append(out.Roots, cloneNode(root, nil))
	}
	return out
}

// rebuildIndex repopulates the id index from the current forest shape.
func (t *Tree) rebuildIndex() {
	t.index = make(map[string]*Node)
	t.Walk(func(n *Node) bool {
		t.index[n.ID] = n
		return true
	})
}

// addToIndex records a node and its whole subtree in the id index.
func (t *Tree) addToIndex(n *Node) {
	if t.index == nil {
		t.index = make(map[string]*Node)
	}
	t.index[n.ID] = n
	for _, child := range n.Children {
		t.addToIndex(child)
	}
}

// removeFromIndex drops a node and its whole subtree from the id index.
func (t *Tree) removeFromIndex(n *Node) {
	delete(t.index, n.ID)
	for _, child := range n.Children {
		t.removeFromIndex(child)
	}
}

// Equal reports whether two trees have the same shape and content,
// including ids, texts, depths, order, and expansion state. Used by tests
// and by History to suppress no-op pushes.
func Equal(a, b *Tree) bool {
	if a == nil || b == nil {
		return a == b
	}
	var eq func(x, y []*Node) bool
	eq = func(x, y []*Node) bool {
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i].ID != y[i].ID ||
				x[i].Text != y[i].Text ||
				x[i].Depth != y[i].Depth ||
				x[i].Expanded != y[i].Expanded {
				return false
			}
			if !eq(x[i].Children, y[i].Children) {
				return false
			}
		}
		return true
	}
	return eq(a.Roots, b.Roots)
}
