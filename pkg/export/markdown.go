// Package export converts outline documents to and from foreign formats.
// It sits outside the editor core: conversions exchange only the
// tab-indented text form, never tree values, so the core stays the sole
// owner of structure.
package export

import (
	"fmt"
	"strings"
)

// markdownIndent is the per-level indentation markdown bullet lists use.
const markdownIndent = "  "

// ToMarkdown converts tab-indented outline text into a markdown bullet
// list: two spaces of indentation per depth level, "- " bullets, blank
// lines dropped.
func ToMarkdown(outline string) string {
	var sb strings.Builder
	first := true
	for _, line := range strings.Split(outline, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		text := strings.TrimSpace(line[depth:])
		if !first {
			sb.WriteString("\n")
		}
		first = false
		sb.WriteString(strings.Repeat(markdownIndent, depth))
		sb.WriteString("- ")
		sb.WriteString(text)
	}
	return sb.String()
}

// FromMarkdown converts a markdown bullet list into tab-indented outline
// text, ready for the parser. Bullets may use "-", "*", or "+" markers;
// indentation may be spaces (two per level, tolerating odd counts by
// rounding down) or tabs. Non-bullet lines are treated as depth-0 items
// so headings and stray prose survive an import instead of vanishing.
func FromMarkdown(markdown string) (string, error) {
	var lines []string
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		stripped, depth := stripIndent(line)
		text, ok := stripBullet(stripped)
		if !ok {
			// Headings become depth-0 items with the marker removed.
			text = strings.TrimSpace(strings.TrimLeft(stripped, "#"))
			depth = 0
		}
		if text == "" {
			continue
		}
		if strings.ContainsRune(text, '\t') {
			return "", fmt.Errorf("markdown line %q contains a tab; tabs are reserved for outline indentation", line)
		}
		lines = append(lines, strings.Repeat("\t", depth)+text)
	}
	return strings.Join(lines, "\n"), nil
}

// stripIndent removes leading whitespace and reports the depth it
// encoded: one level per tab or per two spaces.
func stripIndent(line string) (string, int) {
	spaces, tabs, i := 0, 0, 0
	for ; i < len(line); i++ {
		switch line[i] {
		case ' ':
			spaces++
		case '\t':
			tabs++
		default:
			return line[i:], tabs + spaces/2
		}
	}
	return "", 0
}

// stripBullet removes a leading list marker, reporting whether one was
// present.
func stripBullet(s string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(s, marker) {
			return strings.TrimSpace(s[len(marker):]), true
		}
	}
	// A bare marker with no text is an empty item.
	if s == "-" || s == "*" || s == "+" {
		return "", true
	}
	return s, false
}
