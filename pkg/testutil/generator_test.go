package testutil

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/lacework/pkg/outline"
)

func TestGenerateDocumentDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := GenerateDocument(cfg)
	b := GenerateDocument(cfg)
	if a != b {
		t.Error("expected identical output for identical seeds")
	}

	cfg.Seed = 2
	if GenerateDocument(cfg) == a {
		t.Error("expected different output for a different seed")
	}
}

func TestGenerateDocumentParsesCleanly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lines = 100
	doc := GenerateDocument(cfg)

	tree := outline.Parse(doc)
	if tree.NodeCount() != 100 {
		t.Errorf("expected 100 nodes, got %d", tree.NodeCount())
	}
	AssertDepthInvariant(t, tree)
	AssertStableSerialization(t, tree)

	if got := outline.Serialize(tree); got != doc {
		t.Errorf("expected lossless round trip for well-formed document")
		_ = got
	}
}

func TestGenerateDocumentRespectsMaxDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lines = 200
	cfg.MaxDepth = 2
	doc := GenerateDocument(cfg)

	for _, line := range strings.Split(doc, "\n") {
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if tabs > 2 {
			t.Fatalf("expected max depth 2, got line %q", line)
		}
	}
}

func TestGenerateRaggedDocumentSurvivesParse(t *testing.T) {
	doc := GenerateRaggedDocument(7, 50)
	tree := outline.Parse(doc)

	tree.Walk(func(n *outline.Node) bool {
		if strings.TrimSpace(n.Text) != n.Text {
			t.Errorf("expected trimmed text, got %q", n.Text)
		}
		if n.Text == "" {
			t.Error("expected blank lines to be skipped")
		}
		return true
	})
	AssertStableSerialization(t, tree)
}
