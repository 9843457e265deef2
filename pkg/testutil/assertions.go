package testutil

import (
	"testing"

	"github.com/vanderheijden86/lacework/pkg/outline"
)

// AssertDepthInvariant fails the test if any node's depth is not exactly
// one more than its parent's, or any root is not at depth zero.
func AssertDepthInvariant(t *testing.T, tree *outline.Tree) {
	t.Helper()
	var check func(n *outline.Node, wantDepth int)
	check = func(n *outline.Node, wantDepth int) {
		if n.Depth != wantDepth {
			t.Errorf("node %q: expected depth %d, got %d", n.Text, wantDepth, n.Depth)
		}
		for _, c := range n.Children {
			if c.Parent != n {
				t.Errorf("node %q: broken parent link", c.Text)
			}
			check(c, n.Depth+1)
		}
	}
	for _, r := range tree.Roots {
		check(r, 0)
	}
}

// AssertStableSerialization fails the test unless serializing and
// re-parsing the tree reproduces the same text.
func AssertStableSerialization(t *testing.T, tree *outline.Tree) {
	t.Helper()
	text := outline.Serialize(tree)
	again := outline.Serialize(outline.Parse(text))
	if text != again {
		t.Errorf("serialization not stable:\nfirst:  %q\nsecond: %q", text, again)
	}
}
