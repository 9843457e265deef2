package outline

// FlatNode is one row of the visible, expansion-aware linearization of
// the forest. Index is the row's position in that linearization; all
// keyboard and positional operations index into it.
type FlatNode struct {
	Node  *Node
	Index int
}

// Flatten produces the visible pre-order of the forest: a node's children
// are emitted only when the node is expanded. This is the only visible
// ordering; rendering and cursor movement both consume it.
func Flatten(t *Tree) []FlatNode {
	if t == nil {
		return nil
	}
	var flat []FlatNode
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			flat = append(flat, FlatNode{Node: n, Index: len(flat)})
			if n.Expanded {
				walk(n.Children)
			}
		}
	}
	walk(t.Roots)
	return flat
}

// NextVisible returns the row after i, or nil at the end.
func NextVisible(flat []FlatNode, i int) *FlatNode {
	if i < 0 || i+1 >= len(flat) {
		return nil
	}
	return &flat[i+1]
}

// PrevVisible returns the row before i, or nil at the start.
func PrevVisible(flat []FlatNode, i int) *FlatNode {
	if i <= 0 || i >= len(flat) {
		return nil
	}
	return &flat[i-1]
}

// NextAtDepth scans forward from i for the first row whose node sits at
// the given displayed depth, or nil if none. This is a same-depth search,
// not a same-parent search: it can cross into a different parent's
// subtree when depths coincide, which is what "jump to the next entry at
// this indentation level" means.
func NextAtDepth(flat []FlatNode, i, depth int) *FlatNode {
	for j := i + 1; j < len(flat); j++ {
		if flat[j].Node.Depth == depth {
			return &flat[j]
		}
	}
	return nil
}

// PrevAtDepth scans backward from i for the first row at the given
// displayed depth, or nil if none.
func PrevAtDepth(flat []FlatNode, i, depth int) *FlatNode {
	for j := i - 1; j >= 0 && j < len(flat); j-- {
		if flat[j].Node.Depth == depth {
			return &flat[j]
		}
	}
	return nil
}

// IsDescendant reports whether id names the ancestor node itself or any
// node inside its subtree. Move uses it as the cycle guard: a subtree may
// never be dropped into itself.
func IsDescendant(ancestor *Node, id string) bool {
	if ancestor == nil {
		return false
	}
	if ancestor.ID == id {
		return true
	}
	for _, child := range ancestor.Children {
		if IsDescendant(child, id) {
			return true
		}
	}
	return false
}
