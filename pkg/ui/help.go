package ui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = "# lacework\n" +
	"\n" +
	"## Navigation\n" +
	"\n" +
	"| Key | Action |\n" +
	"|-----|--------|\n" +
	"| j / ↓ | next row |\n" +
	"| k / ↑ | previous row |\n" +
	"| J / K | next / previous at same depth |\n" +
	"| h / ← | collapse, or jump to parent |\n" +
	"| l / → | expand, or enter first child |\n" +
	"| space | toggle expand |\n" +
	"| g / G | first / last row |\n" +
	"\n" +
	"## Editing\n" +
	"\n" +
	"| Key | Action |\n" +
	"|-----|--------|\n" +
	"| enter | new sibling below, start editing |\n" +
	"| a | new child, start editing |\n" +
	"| A | new sibling after parent |\n" +
	"| i / e | edit current line |\n" +
	"| d | delete subtree |\n" +
	"| y | copy subtree to clipboard |\n" +
	"| tab / shift+tab | indent / outdent |\n" +
	"| u / U | undo / redo |\n" +
	"\n" +
	"## Moving subtrees\n" +
	"\n" +
	"Press `m` to pick up the current subtree, then `j`/`k` to choose a\n" +
	"target row, `b`/`c`/`n` for before / child / after, `enter` to drop,\n" +
	"`esc` to put it back. Dragging with the mouse works the same way:\n" +
	"the top of a row means before, the middle means child, the bottom\n" +
	"means after.\n" +
	"\n" +
	"## Other\n" +
	"\n" +
	"| Key | Action |\n" +
	"|-----|--------|\n" +
	"| t | toggle raw text mode |\n" +
	"| s | save now |\n" +
	"| ? | toggle this help |\n" +
	"| q | quit |\n"

// RenderHelp renders the key reference as styled markdown sized to the
// current terminal width. Falls back to the raw markdown when the styled
// renderer cannot be constructed.
func RenderHelp(width int) string {
	if width <= 0 || width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
