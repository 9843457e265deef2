package e2e_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lacework/internal/datasource"
	"github.com/vanderheijden86/lacework/pkg/config"
	"github.com/vanderheijden86/lacework/pkg/ui"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

// session wraps a live editor model plus the backing file for a test run.
type session struct {
	t    *testing.T
	m    ui.Model
	path string
}

func newSession(t *testing.T, doc string) *session {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "session.outline")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	store, err := datasource.NewFileStore(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.UI.ConfirmDelete = false

	m, err := ui.NewModel(cfg, store, path)
	if err != nil {
		t.Fatalf("creating model: %v", err)
	}
	s := &session{t: t, m: m, path: path}
	s.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return s
}

func (s *session) send(msg tea.Msg) {
	s.t.Helper()
	next, _ := s.m.Update(msg)
	s.m = next.(ui.Model)
}

func (s *session) press(keys ...string) {
	s.t.Helper()
	for _, k := range keys {
		switch k {
		case "enter":
			s.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			s.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			s.send(tea.KeyMsg{Type: tea.KeyTab})
		case "shift+tab":
			s.send(tea.KeyMsg{Type: tea.KeyShiftTab})
		case "space":
			s.send(tea.KeyMsg{Type: tea.KeySpace})
		default:
			s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (s *session) typeText(text string) {
	s.t.Helper()
	for _, r := range text {
		s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (s *session) view() string {
	return stripANSI(s.m.View())
}

func (s *session) fileContents() string {
	s.t.Helper()
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.t.Fatalf("reading session file: %v", err)
	}
	return string(data)
}
