package ui

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lacework/pkg/config"
	"github.com/vanderheijden86/lacework/pkg/outline"
)

// ViewState is the per-document presentation state that survives restarts:
// which subtrees the user collapsed and where the cursor was. It is keyed
// by node path rather than node ID because IDs regenerate on every parse.
type ViewState struct {
	Collapsed  []string `json:"collapsed,omitempty"`
	CursorPath string   `json:"cursorPath,omitempty"`
}

// viewStatePath maps a document location to its state file under the XDG
// state dir. The location is hashed so arbitrary paths stay filesystem-safe.
func viewStatePath(docPath string) string {
	sum := sha256.Sum256([]byte(docPath))
	name := hex.EncodeToString(sum[:8]) + ".json"
	return filepath.Join(config.StateDir(), "views", name)
}

// LoadViewState reads the persisted view state for a document. A missing
// or unreadable state file yields an empty state, never an error: stale or
// corrupt presentation state must not block opening the document.
func LoadViewState(docPath string) ViewState {
	var vs ViewState
	data, err := os.ReadFile(viewStatePath(docPath))
	if err != nil {
		return vs
	}
	if err := json.Unmarshal(data, &vs); err != nil {
		return ViewState{}
	}
	return vs
}

// SaveViewState writes the view state for a document, creating the state
// directory if needed.
func SaveViewState(docPath string, vs ViewState) error {
	p := viewStatePath(docPath)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating view state dir: %w", err)
	}
	data, err := json.MarshalIndent(vs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing view state: %w", err)
	}
	return nil
}

// CaptureViewState records the collapsed subtrees and cursor position of a
// tree into a serializable state.
func CaptureViewState(t *outline.Tree, cursor *outline.Node) ViewState {
	var vs ViewState
	t.Walk(func(n *outline.Node) bool {
		if !n.Expanded && len(n.Children) > 0 {
			vs.Collapsed = append(vs.Collapsed, nodePath(n))
		}
		return true
	})
	if cursor != nil {
		vs.CursorPath = nodePath(cursor)
	}
	return vs
}

// ApplyViewState re-collapses the recorded subtrees on a freshly parsed
// tree and returns the node the cursor was on, or nil when the path no
// longer resolves.
func ApplyViewState(t *outline.Tree, vs ViewState) *outline.Node {
	collapsed := make(map[string]bool, len(vs.Collapsed))
	for _, p := range vs.Collapsed {
		collapsed[p] = true
	}
	var cursor *outline.Node
	t.Walk(func(n *outline.Node) bool {
		p := nodePath(n)
		if collapsed[p] {
			n.Expanded = false
		}
		if vs.CursorPath != "" && p == vs.CursorPath && cursor == nil {
			cursor = n
		}
		return true
	})
	return cursor
}
