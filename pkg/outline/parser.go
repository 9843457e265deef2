package outline

import (
	"strings"
)

// Parse converts tab-indented text into a tree.
//
// One line per node. Depth is the count of leading tab characters; any
// other leading whitespace is not indentation and stays part of the text.
// Lines that are blank after trimming are dropped. Nesting uses a stack of
// currently open ancestors: a line whose depth is less than or equal to
// the top of the stack pops until the top is strictly shallower, then
// attaches under the new top (or becomes a root).
//
// A depth jump of more than one level in a single step ("A" followed by
// "\t\t\tB") attaches under the nearest preceding shallower node rather
// than erroring. The literal tab count is kept as the stored Depth, so an
// over-indented import can temporarily violate depth(child) ==
// depth(parent)+1 until Normalize runs; see Normalize.
//
// Every parsed node gets a fresh id and Expanded=true. Parse is therefore
// deliberately lossy with respect to ids and expansion state; only texts,
// depths, and order round-trip through Serialize.
func Parse(text string) *Tree {
	t := NewTree()
	var stack []*Node

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		body := strings.TrimSpace(line[depth:])

		n := newNode(body, depth)

		for len(stack) > 0 && stack[len(stack)-1].Depth >= depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			t.Roots = append(t.Roots, n)
		} else {
			parent := stack[len(stack)-1]
			n.Parent = parent
			parent.Children = append(parent.Children, n)
		}

		stack = append(stack, n)
		t.index[n.ID] = n
	}

	return t
}

// Serialize converts a tree back to tab-indented text: pre-order, one
// line per node, Depth tabs then the text, lines joined with a single
// newline and no trailing newline. Collapsed subtrees are serialized in
// full; Expanded only governs visibility, not existence.
func Serialize(t *Tree) string {
	if t == nil {
		return ""
	}
	var lines []string
	t.Walk(func(n *Node) bool {
		lines = append(lines, strings.Repeat("\t", n.Depth)+n.Text)
		return true
	})
	return strings.Join(lines, "\n")
}
