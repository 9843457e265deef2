package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/lacework/pkg/outline"
)

// truncate cuts s to at most width display cells, appending an ellipsis
// when anything was removed. Width is measured in terminal cells so CJK
// and other wide runes count as two.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width-1, "") + "…"
}

// padRight pads s with spaces to exactly width display cells, truncating
// first if it is too long.
func padRight(s string, width int) string {
	s = truncate(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// serializeSubtree renders a single node and its descendants as
// tab-indented text with the subtree root rebased to depth zero. Used for
// clipboard yanks so a pasted fragment stands on its own.
func serializeSubtree(n *outline.Node) string {
	var lines []string
	base := n.Depth
	var walk func(node *outline.Node)
	walk = func(node *outline.Node) {
		lines = append(lines, strings.Repeat("\t", node.Depth-base)+node.Text)
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(lines, "\n")
}

// nodePath returns the slash-joined ancestor texts for a node, used as a
// stable key for persisted view state. Node IDs regenerate on every parse
// so they cannot key anything that outlives the process.
func nodePath(n *outline.Node) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Text)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}
