package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/lacework/pkg/outline"
)

// TreeView renders the visible rows of an outline with a cursor and a
// scrolling window. It holds presentation state only; every structural
// change goes through the outline package and replaces the tree wholesale.
type TreeView struct {
	Tree   *outline.Tree
	Cursor int
	Offset int
	Width  int
	Height int

	theme       Theme
	flat        []outline.FlatNode
	indentGuide bool
}

// NewTreeView builds a view over the given tree with the cursor on the
// first visible row.
func NewTreeView(t *outline.Tree, theme Theme, indentGuides bool) *TreeView {
	v := &TreeView{Tree: t, theme: theme, indentGuide: indentGuides}
	v.Refresh()
	return v
}

// Refresh recomputes the flattened row list after any tree change and
// clamps the cursor back into range.
func (v *TreeView) Refresh() {
	v.flat = outline.Flatten(v.Tree)
	if v.Cursor >= len(v.flat) {
		v.Cursor = len(v.flat) - 1
	}
	if v.Cursor < 0 {
		v.Cursor = 0
	}
	v.scrollIntoView()
}

// SetTree swaps in a new snapshot, keeping the cursor near its old row.
func (v *TreeView) SetTree(t *outline.Tree) {
	v.Tree = t
	v.Refresh()
}

// Rows returns the current flattened visible rows.
func (v *TreeView) Rows() []outline.FlatNode { return v.flat }

// Current returns the node under the cursor, or nil for an empty outline.
func (v *TreeView) Current() *outline.Node {
	if v.Cursor < 0 || v.Cursor >= len(v.flat) {
		return nil
	}
	return v.flat[v.Cursor].Node
}

// MoveCursorTo places the cursor on the row showing the given node id, if
// that node is currently visible.
func (v *TreeView) MoveCursorTo(id string) {
	for _, fn := range v.flat {
		if fn.Node.ID == id {
			v.Cursor = fn.Index
			v.scrollIntoView()
			return
		}
	}
}

// CursorDown moves to the next visible row. At the last row it stays put.
func (v *TreeView) CursorDown() {
	if next := outline.NextVisible(v.flat, v.Cursor); next != nil {
		v.Cursor = next.Index
		v.scrollIntoView()
	}
}

// CursorUp moves to the previous visible row. At the first row it stays put.
func (v *TreeView) CursorUp() {
	if prev := outline.PrevVisible(v.flat, v.Cursor); prev != nil {
		v.Cursor = prev.Index
		v.scrollIntoView()
	}
}

// JumpNextAtDepth moves to the next visible row at the cursor's depth,
// crossing parent boundaries.
func (v *TreeView) JumpNextAtDepth() {
	cur := v.Current()
	if cur == nil {
		return
	}
	if next := outline.NextAtDepth(v.flat, v.Cursor, cur.Depth); next != nil {
		v.Cursor = next.Index
		v.scrollIntoView()
	}
}

// JumpPrevAtDepth moves to the previous visible row at the cursor's depth.
func (v *TreeView) JumpPrevAtDepth() {
	cur := v.Current()
	if cur == nil {
		return
	}
	if prev := outline.PrevAtDepth(v.flat, v.Cursor, cur.Depth); prev != nil {
		v.Cursor = prev.Index
		v.scrollIntoView()
	}
}

// CursorTop and CursorBottom jump to the first and last visible rows.
func (v *TreeView) CursorTop() {
	v.Cursor = 0
	v.scrollIntoView()
}

func (v *TreeView) CursorBottom() {
	if len(v.flat) > 0 {
		v.Cursor = len(v.flat) - 1
	}
	v.scrollIntoView()
}

// ToggleExpand flips the expansion of the cursor node. Leaves are ignored.
func (v *TreeView) ToggleExpand() {
	cur := v.Current()
	if cur == nil || len(cur.Children) == 0 {
		return
	}
	cur.Expanded = !cur.Expanded
	v.Refresh()
}

// Collapse collapses the cursor node, or jumps to its parent when it has
// nothing to collapse. Mirrors the usual tree-browser left-arrow behavior.
func (v *TreeView) Collapse() {
	cur := v.Current()
	if cur == nil {
		return
	}
	if len(cur.Children) > 0 && cur.Expanded {
		cur.Expanded = false
		v.Refresh()
		return
	}
	if cur.Parent != nil {
		v.MoveCursorTo(cur.Parent.ID)
	}
}

// Expand expands the cursor node, or moves to its first child when it is
// already open.
func (v *TreeView) Expand() {
	cur := v.Current()
	if cur == nil || len(cur.Children) == 0 {
		return
	}
	if !cur.Expanded {
		cur.Expanded = true
		v.Refresh()
		return
	}
	v.MoveCursorTo(cur.Children[0].ID)
}

// RowAt maps a viewport-relative y coordinate to a flattened row index, or
// -1 when the coordinate is past the last row.
func (v *TreeView) RowAt(y int) int {
	i := v.Offset + y
	if i < 0 || i >= len(v.flat) {
		return -1
	}
	return i
}

// SubtreeSpan returns the half-open row range [start, end) that the
// visible subtree rooted at row i occupies. Drag hovers compare the
// pointer row against the dragged block's span, so a row past a
// multi-row block reads as "after" the whole block rather than after
// its first line.
func (v *TreeView) SubtreeSpan(i int) (int, int) {
	if i < 0 || i >= len(v.flat) {
		return 0, 0
	}
	root := v.flat[i].Node
	end := i + 1
	for end < len(v.flat) && outline.IsDescendant(root, v.flat[end].Node.ID) && v.flat[end].Node != root {
		end++
	}
	return i, end
}

func (v *TreeView) scrollIntoView() {
	if v.Height <= 0 {
		return
	}
	if v.Cursor < v.Offset {
		v.Offset = v.Cursor
	}
	if v.Cursor >= v.Offset+v.Height {
		v.Offset = v.Cursor - v.Height + 1
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// View renders the visible window of rows. During a drag the source row is
// dimmed and the hover target carries a position marker.
func (v *TreeView) View(drag *outline.Drag) string {
	if len(v.flat) == 0 {
		return v.theme.MutedText.Render("empty outline, press enter to add a line")
	}

	var b strings.Builder
	end := v.Offset + v.Height
	if v.Height <= 0 || end > len(v.flat) {
		end = len(v.flat)
	}
	for i := v.Offset; i < end; i++ {
		b.WriteString(v.renderRow(i, drag))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *TreeView) renderRow(i int, drag *outline.Drag) string {
	fn := v.flat[i]
	n := fn.Node

	indent := strings.Repeat("  ", n.Depth)
	if v.indentGuide && n.Depth > 0 {
		indent = strings.Repeat(v.theme.Guide.Render("│ "), n.Depth)
	}

	var marker string
	switch {
	case len(n.Children) == 0:
		marker = "· "
	case n.Expanded:
		marker = "▼ "
	default:
		marker = "▶ "
	}

	textWidth := v.Width - n.Depth*2 - 2
	text := truncate(n.Text, textWidth)

	style := v.theme.Base
	prefix := ""
	if drag != nil && drag.Phase != outline.DragIdle {
		switch {
		case n.ID == drag.SourceID:
			style = v.theme.DragSource
		case drag.Phase == outline.DragHovering && n.ID == drag.TargetID:
			style = v.theme.DropMarker
			prefix = fmt.Sprintf("◆ %s ", drag.Position)
		}
	} else if i == v.Cursor {
		style = v.theme.Selected
	}

	return indent + marker + style.Render(prefix+text)
}
