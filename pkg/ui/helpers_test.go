package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/lacework/pkg/outline"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello w…"},
		{"one cell", "hello", 1, "…"},
		{"zero", "hello", 0, ""},
		{"wide runes", "日本語テスト", 7, "日本語…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("expected padded string, got %q", got)
	}
	if got := padRight("abcdef", 4); got != "abc…" {
		t.Errorf("expected truncated string, got %q", got)
	}
}

func TestSerializeSubtreeRebasesDepth(t *testing.T) {
	tree := outline.Parse("a\n\tb\n\t\tc\n\td")
	b := tree.Roots[0].Children[0]

	got := serializeSubtree(b)
	want := "b\n\tc"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNodePath(t *testing.T) {
	tree := outline.Parse("a\n\tb\n\t\tc")
	c := tree.Roots[0].Children[0].Children[0]

	if got := nodePath(c); got != "a/b/c" {
		t.Errorf("expected a/b/c, got %q", got)
	}
	if got := nodePath(tree.Roots[0]); got != "a" {
		t.Errorf("expected a, got %q", got)
	}
}

func TestSerializeSubtreeSingleNode(t *testing.T) {
	tree := outline.Parse("only")
	got := serializeSubtree(tree.Roots[0])
	if got != "only" || strings.Contains(got, "\t") {
		t.Errorf("expected bare line, got %q", got)
	}
}
