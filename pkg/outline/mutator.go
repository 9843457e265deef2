package outline

import "strings"

// Mutation functions. Each one clones the input tree, applies the edit to
// the clone, and returns it together with a changed flag. An id that
// doesn't resolve is a no-op: the input tree comes back unchanged with
// changed=false. There are no error values here; absence of change is the
// signal the callers act on.

// InsertSibling inserts a new empty node immediately before or after the
// anchor, at the anchor's depth, under the anchor's parent (or in the
// root list when the anchor is a root). The returned id is the new
// node's; callers typically focus it for editing.
func InsertSibling(t *Tree, anchorID string, after bool) (*Tree, string, bool) {
	if t == nil || t.Lookup(anchorID) == nil {
		return t, "", false
	}
	out := t.Clone()
	anchor := out.Lookup(anchorID)

	n := newNode("", anchor.Depth)
	n.Parent = anchor.Parent

	siblings := out.siblingsOf(anchor)
	idx := indexOf(*siblings, anchor.ID)
	if idx < 0 {
		return t, "", false
	}
	if after {
		idx++
	}
	*siblings = insertAt(*siblings, idx, n)
	out.addToIndex(n)
	return out, n.ID, true
}

// InsertChild appends a new empty node as the last child of parentID and
// forces the parent expanded so the new row is visible.
func InsertChild(t *Tree, parentID string) (*Tree, string, bool) {
	if t == nil || t.Lookup(parentID) == nil {
		return t, "", false
	}
	out := t.Clone()
	parent := out.Lookup(parentID)

	n := newNode("", parent.Depth+1)
	n.Parent = parent
	parent.Children = append(parent.Children, n)
	parent.Expanded = true
	out.addToIndex(n)
	return out, n.ID, true
}

// InsertParentSibling inserts a new empty node as a sibling of the
// anchor's parent, at the parent's depth, immediately after the parent.
// A root anchor has no shallower level to insert at, so that case is a
// no-op.
func InsertParentSibling(t *Tree, anchorID string) (*Tree, string, bool) {
	if t == nil {
		return t, "", false
	}
	anchor := t.Lookup(anchorID)
	if anchor == nil || anchor.Parent == nil {
		return t, "", false
	}
	return InsertSibling(t, anchor.Parent.ID, true)
}

// AppendRoot appends a new empty root node at the end of the root list.
// It is the insert path for an empty outline, where no anchor exists for
// the sibling and child variants.
func AppendRoot(t *Tree) (*Tree, string, bool) {
	if t == nil {
		return t, "", false
	}
	out := t.Clone()
	n := newNode("", 0)
	out.Roots = append(out.Roots, n)
	out.addToIndex(n)
	return out, n.ID, true
}

// SetText replaces a node's text. A text that trims to empty is treated
// as a cancelled creation and deletes the node instead.
//
// Known sharp edge, kept for compatibility with the behavior this engine
// reimplements: clearing the text of a legitimately existing node is
// indistinguishable from cancelling a never-committed new node, and both
// delete. A future revision could restrict auto-deletion to nodes that
// were created empty and never committed.
func SetText(t *Tree, id, text string) (*Tree, bool) {
	if t == nil || t.Lookup(id) == nil {
		return t, false
	}
	if strings.TrimSpace(text) == "" {
		return DeleteSubtree(t, id)
	}
	out := t.Clone()
	out.Lookup(id).Text = text
	return out, true
}

// DeleteSubtree removes the node and its entire subtree from wherever it
// resides. Missing ids are a no-op.
func DeleteSubtree(t *Tree, id string) (*Tree, bool) {
	if t == nil || t.Lookup(id) == nil {
		return t, false
	}
	out := t.Clone()
	n := out.Lookup(id)
	out.detach(n)
	out.removeFromIndex(n)
	return out, true
}

// Move relocates the source subtree relative to the target: before or
// after the target among its siblings, or appended as the target's last
// child. The subtree is carried as a unit, internally unmodified except
// for depths, which are recomputed for every moved node because depth is
// an absolute property, not a relative one.
//
// Rejected moves return the input unchanged: source onto itself, and
// source into its own descendants (the cycle guard).
func Move(t *Tree, sourceID, targetID string, pos DropPosition) (*Tree, bool) {
	if t == nil || sourceID == targetID {
		return t, false
	}
	source := t.Lookup(sourceID)
	target := t.Lookup(targetID)
	if source == nil || target == nil {
		return t, false
	}
	if IsDescendant(source, targetID) {
		return t, false
	}

	out := t.Clone()
	source = out.Lookup(sourceID)
	target = out.Lookup(targetID)

	out.detach(source)

	switch pos {
	case DropAsChild:
		source.Parent = target
		rebaseDepth(source, target.Depth+1)
		target.Children = append(target.Children, source)
		target.Expanded = true
	default:
		source.Parent = target.Parent
		rebaseDepth(source, target.Depth)
		siblings := out.siblingsOf(target)
		idx := indexOf(*siblings, target.ID)
		if pos == DropAfter {
			idx++
		}
		*siblings = insertAt(*siblings, idx, source)
	}
	return out, true
}

// Normalize recomputes every node's depth structurally: roots are 0 and
// each child is one deeper than its parent. Parsed text stores literal
// tab counts, so an over-indented import can carry excess depth until the
// document is saved; Normalize is applied at that boundary so the stored
// form converges on the structural one.
func Normalize(t *Tree) (*Tree, bool) {
	if t == nil {
		return t, false
	}
	out := t.Clone()
	changed := false
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if n.Depth != depth {
				n.Depth = depth
				changed = true
			}
			walk(n.Children, depth+1)
		}
	}
	walk(out.Roots, 0)
	if !changed {
		return t, false
	}
	return out, true
}

// detach removes n from its parent's children (or the root list) without
// touching the id index. The subtree under n stays intact.
func (t *Tree) detach(n *Node) {
	siblings := t.siblingsOf(n)
	idx := indexOf(*siblings, n.ID)
	if idx >= 0 {
		*siblings = append((*siblings)[:idx], (*siblings)[idx+1:]...)
	}
	n.Parent = nil
}

// siblingsOf returns a pointer to the slice that contains n: its parent's
// children, or the root list.
func (t *Tree) siblingsOf(n *Node) *[]*Node {
	if n.Parent != nil {
		return &n.Parent.Children
	}
	return &t.Roots
}

// rebaseDepth sets n's depth and shifts every descendant by the same
// delta, preserving the subtree's internal relative depths.
func rebaseDepth(n *Node, depth int) {
	delta := depth - n.Depth
	if delta == 0 {
		return
	}
	var walk func(m *Node)
	walk = func(m *Node) {
		m.Depth += delta
		for _, child := range m.Children {
			walk(child)
		}
	}
	walk(n)
}

func indexOf(nodes []*Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func insertAt(nodes []*Node, i int, n *Node) []*Node {
	if i < 0 {
		i = 0
	}
	if i > len(nodes) {
		i = len(nodes)
	}
	nodes = append(nodes, nil)
	copy(nodes[i+1:], nodes[i:])
	nodes[i] = n
	return nodes
}
