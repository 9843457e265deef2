package export

import (
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	var sb strings.Builder
	WriteSVG(&sb, "root\n\tchild\n\t\tgrandchild")
	out := sb.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("expected a complete SVG document")
	}
	for _, text := range []string{"root", "child", "grandchild"} {
		if !strings.Contains(out, ">"+text+"<") {
			t.Errorf("expected %q rendered as a text element", text)
		}
	}
	// Two guide levels under grandchild means at least one line element.
	if !strings.Contains(out, "<line") {
		t.Error("expected indentation guides for nested rows")
	}
}

func TestWriteSVGEmptyDocument(t *testing.T) {
	var sb strings.Builder
	WriteSVG(&sb, "")
	out := sb.String()
	if !strings.Contains(out, "<svg") {
		t.Error("expected a valid SVG even for an empty outline")
	}
}
