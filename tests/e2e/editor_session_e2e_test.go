package e2e_test

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/lacework/pkg/testutil"
)

// TestEditingSessionEndToEnd runs a whole session against a real file:
// navigate, add, edit, restructure, then quit and verify what hit disk.
func TestEditingSessionEndToEnd(t *testing.T) {
	s := newSession(t, "groceries\n\tmilk\n\teggs\nchores")

	// add "bread" after "eggs"
	s.press("j", "j") // milk, eggs
	s.press("enter")
	s.typeText("bread")
	s.press("enter")

	// rename "chores" to "chores!"
	s.press("G")
	s.press("i")
	s.press("esc") // think better of it, no change
	s.press("e")
	s.typeText("!")
	s.press("enter")

	// fold the groceries subtree
	s.press("g", "space")
	if v := s.view(); strings.Contains(v, "milk") {
		t.Errorf("expected folded subtree to hide children:\n%s", v)
	}

	s.press("q")
	got := s.fileContents()
	want := "groceries\n\tmilk\n\teggs\n\tbread\nchores!"
	if got != want {
		t.Errorf("expected %q on disk, got %q", want, got)
	}
}

func TestMoveSessionEndToEnd(t *testing.T) {
	s := newSession(t, "a\n\tb\nc")

	// move c before a
	s.press("G", "m", "k", "k", "b", "enter")
	s.press("q")

	if got := s.fileContents(); got != "c\na\n\tb" {
		t.Errorf("expected move persisted, got %q", got)
	}
}

func TestUndoSessionEndToEnd(t *testing.T) {
	s := newSession(t, "keep\ndrop")

	s.press("j", "d")
	if v := s.view(); strings.Contains(v, "drop") {
		t.Errorf("expected row deleted from view:\n%s", v)
	}
	s.press("u", "q")

	if got := s.fileContents(); got != "keep\ndrop" {
		t.Errorf("expected undo persisted, got %q", got)
	}
}

func TestTextModeSessionPreservesDocument(t *testing.T) {
	s := newSession(t, "a\n\tb\nc")

	s.press("t")
	if v := s.view(); !strings.Contains(v, "a") {
		t.Errorf("expected raw document in text mode:\n%s", v)
	}
	s.press("esc", "q")

	if got := s.fileContents(); got != "a\n\tb\nc" {
		t.Errorf("expected untouched document, got %q", got)
	}
}

func TestLargeGeneratedSession(t *testing.T) {
	cfg := testutil.DefaultConfig()
	cfg.Lines = 120
	doc := testutil.GenerateDocument(cfg)
	s := newSession(t, doc)

	// walk to the bottom and back, fold and unfold along the way
	s.press("G", "space", "space", "g")
	for i := 0; i < 30; i++ {
		s.press("j")
	}
	s.press("q")

	if got := s.fileContents(); got != doc {
		t.Errorf("expected navigation-only session to leave document intact")
	}
}

func TestHelpOverlaySession(t *testing.T) {
	s := newSession(t, "a")

	s.press("?")
	if v := s.view(); !strings.Contains(v, "Navigation") {
		t.Errorf("expected help overlay:\n%s", v)
	}
	s.press("esc")
	if v := s.view(); strings.Contains(v, "Navigation") {
		t.Errorf("expected help dismissed:\n%s", v)
	}
}
