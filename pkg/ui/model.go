package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lacework/internal/datasource"
	"github.com/vanderheijden86/lacework/pkg/config"
	"github.com/vanderheijden86/lacework/pkg/debug"
	"github.com/vanderheijden86/lacework/pkg/outline"
	"github.com/vanderheijden86/lacework/pkg/watcher"
)

// mode represents which UI surface has keyboard focus.
type mode int

const (
	modeTree mode = iota
	modeEdit
	modeText
	modeMove
	modeHelp
	modeConfirmDelete
)

// selfSaveWindow suppresses watcher reloads briefly after our own save so
// the editor does not reload the document it just wrote.
const selfSaveWindow = 1500 * time.Millisecond

type (
	// fileChangedMsg arrives when the watched document changed on disk.
	fileChangedMsg struct{}

	// autosaveMsg fires after the autosave delay. The generation lets a
	// newer edit invalidate a pending save without cancelling timers.
	autosaveMsg struct{ gen int }

	// savedMsg reports the outcome of a save.
	savedMsg struct{ err error }

	// clearStatusMsg expires a transient status line.
	clearStatusMsg struct{ gen int }
)

// Model is the bubbletea model for the outline editor.
type Model struct {
	cfg     config.Config
	theme   Theme
	store   datasource.Store
	docPath string

	view    *TreeView
	history *outline.History
	drag    outline.Drag

	mode       mode
	input      textinput.Model
	editingID  string
	editingNew bool
	text       textarea.Model
	deleteID   string

	watch       *watcher.Watcher
	lastSave    time.Time
	dirty       bool
	saveGen     int
	status      string
	statusGen   int
	width       int
	height      int
	quitting    bool
	loadWarning string
}

// NewModel loads the document from the store, restores its view state and
// returns a ready model. A load error is fatal; everything after that is
// an editing session that can always fall back to in-memory state.
func NewModel(cfg config.Config, store datasource.Store, docPath string) (Model, error) {
	raw, err := store.Load()
	if err != nil {
		return Model{}, fmt.Errorf("loading document: %w", err)
	}

	tree := outline.Parse(raw)
	history := outline.NewHistoryWithCapacity(cfg.Editor.HistoryCapacity)
	history.Push(tree)

	theme := DefaultTheme(lipgloss.DefaultRenderer())
	view := NewTreeView(tree, theme, cfg.UI.IndentGuides)

	vs := LoadViewState(docPath)
	if cursor := ApplyViewState(tree, vs); cursor != nil {
		view.Refresh()
		view.MoveCursorTo(cursor.ID)
	}

	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 0

	ta := textarea.New()
	ta.CharLimit = 0

	m := Model{
		cfg:     cfg,
		theme:   theme,
		store:   store,
		docPath: docPath,
		view:    view,
		history: history,
		input:   ti,
		text:    ta,
	}

	w, err := watcher.NewWatcher(docPath,
		watcher.WithDebounceDuration(watcher.DefaultDebounceDuration),
	)
	if err != nil {
		m.loadWarning = fmt.Sprintf("watch disabled: %v", err)
	} else {
		m.watch = w
	}

	return m, nil
}

// Init starts the file watcher subscription.
func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	if err := m.watch.Start(); err != nil {
		debug.Log("watcher start failed: %v", err)
		return nil
	}
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.watch.Changed()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update is the single message pump.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = m.bodyHeight()
		m.view.Refresh()
		m.text.SetWidth(msg.Width - 2)
		m.text.SetHeight(m.bodyHeight())
		return m, nil

	case fileChangedMsg:
		var cmd tea.Cmd
		if time.Since(m.lastSave) > selfSaveWindow && !m.dirty {
			m = m.reloadFromStore()
		}
		if m.watch != nil {
			cmd = m.waitForChange()
		}
		return m, cmd

	case autosaveMsg:
		if msg.gen != m.saveGen || !m.dirty {
			return m, nil
		}
		return m, m.saveCmd()

	case savedMsg:
		if msg.err != nil {
			return m.setStatus(fmt.Sprintf("save failed: %v", msg.err))
		}
		m.dirty = false
		m.lastSave = time.Now()
		return m.setStatus("saved")

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.handleEditKeys(msg)
		case modeText:
			return m.handleTextKeys(msg)
		case modeMove:
			return m.handleMoveKeys(msg)
		case modeHelp:
			return m.handleHelpKeys(msg)
		case modeConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleTreeKeys(msg)
		}
	}

	return m, nil
}

func (m Model) bodyHeight() int {
	// header + footer each take one line
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// apply installs a mutated snapshot: pushes it on the history, refreshes
// the view and schedules an autosave.
func (m Model) apply(t *outline.Tree, changed bool) (Model, tea.Cmd) {
	if !changed {
		return m, nil
	}
	m.history.Push(t)
	m.view.SetTree(t)
	return m.markDirty()
}

func (m Model) markDirty() (Model, tea.Cmd) {
	m.dirty = true
	m.saveGen++
	if !m.cfg.AutosaveEnabled() {
		return m, nil
	}
	gen := m.saveGen
	return m, tea.Tick(m.cfg.Editor.AutosaveDelay, func(time.Time) tea.Msg {
		return autosaveMsg{gen: gen}
	})
}

func (m Model) saveCmd() tea.Cmd {
	normalized, _ := outline.Normalize(m.view.Tree)
	m.view.SetTree(normalized)
	body := outline.Serialize(normalized)
	store := m.store
	return func() tea.Msg {
		return savedMsg{err: store.Save(body)}
	}
}

func (m Model) reloadFromStore() Model {
	raw, err := m.store.Load()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		return m
	}
	vs := CaptureViewState(m.view.Tree, m.view.Current())
	tree := outline.Parse(raw)
	cursor := ApplyViewState(tree, vs)
	m.history.Push(tree)
	m.view.SetTree(tree)
	if cursor != nil {
		m.view.MoveCursorTo(cursor.ID)
	}
	m.status = "reloaded from disk"
	return m
}

func (m Model) setStatus(s string) (Model, tea.Cmd) {
	m.status = s
	m.statusGen++
	gen := m.statusGen
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}

func (m Model) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()

	case "j", "down":
		m.view.CursorDown()
	case "k", "up":
		m.view.CursorUp()
	case "J":
		m.view.JumpNextAtDepth()
	case "K":
		m.view.JumpPrevAtDepth()
	case "g", "home":
		m.view.CursorTop()
	case "G", "end":
		m.view.CursorBottom()
	case "h", "left":
		m.view.Collapse()
	case "l", "right":
		m.view.Expand()
	case " ":
		m.view.ToggleExpand()

	case "enter":
		return m.insertAndEdit(func(t *outline.Tree, id string) (*outline.Tree, string, bool) {
			return outline.InsertSibling(t, id, true)
		})
	case "a":
		return m.insertAndEdit(outline.InsertChild)
	case "A":
		return m.insertAndEdit(outline.InsertParentSibling)

	case "i", "e":
		cur := m.view.Current()
		if cur == nil {
			return m, nil
		}
		return m.startEdit(cur.ID, cur.Text, false), textinput.Blink

	case "d":
		cur := m.view.Current()
		if cur == nil {
			return m, nil
		}
		if m.cfg.UI.ConfirmDelete {
			m.mode = modeConfirmDelete
			m.deleteID = cur.ID
			return m, nil
		}
		next, changed := outline.DeleteSubtree(m.view.Tree, cur.ID)
		return m.apply(next, changed)

	case "y":
		cur := m.view.Current()
		if cur == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(serializeSubtree(cur)); err != nil {
			return m.setStatus(fmt.Sprintf("clipboard: %v", err))
		}
		return m.setStatus("copied subtree")

	case "tab":
		return m.indent()
	case "shift+tab":
		return m.outdent()

	case "m":
		cur := m.view.Current()
		if cur == nil {
			return m, nil
		}
		m.mode = modeMove
		m.drag.Start(cur.ID)
		m.hoverRow(m.view.Cursor, 0.9)
		return m, nil

	case "u":
		if t, ok := m.history.Undo(); ok {
			m.view.SetTree(t)
			return m.markDirty()
		}
		return m.setStatus("nothing to undo")
	case "U", "ctrl+r":
		if t, ok := m.history.Redo(); ok {
			m.view.SetTree(t)
			return m.markDirty()
		}
		return m.setStatus("nothing to redo")

	case "t":
		m.mode = modeText
		m.text.SetValue(outline.Serialize(m.view.Tree))
		m.text.Focus()
		return m, textarea.Blink

	case "s":
		return m, m.saveCmd()

	case "?":
		m.mode = modeHelp
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	SaveViewState(m.docPath, CaptureViewState(m.view.Tree, m.view.Current()))
	if m.watch != nil {
		m.watch.Stop()
	}
	m.quitting = true
	if m.dirty {
		normalized, _ := outline.Normalize(m.view.Tree)
		if err := m.store.Save(outline.Serialize(normalized)); err != nil {
			debug.Log("final save failed: %v", err)
		}
	}
	return m, tea.Quit
}

type insertOp func(*outline.Tree, string) (*outline.Tree, string, bool)

// insertAndEdit runs an insert operation and drops straight into editing
// the new empty node. On an empty outline every variant degrades to
// appending a first root line.
func (m Model) insertAndEdit(op insertOp) (tea.Model, tea.Cmd) {
	cur := m.view.Current()
	var (
		next  *outline.Tree
		newID string
		ok    bool
	)
	if cur == nil {
		next, newID, ok = outline.AppendRoot(m.view.Tree)
	} else {
		next, newID, ok = op(m.view.Tree, cur.ID)
	}
	if !ok {
		return m, nil
	}
	m.history.Push(next)
	m.view.SetTree(next)
	m.view.MoveCursorTo(newID)
	model, cmd := m.markDirty()
	model = model.startEdit(newID, "", true)
	return model, tea.Batch(cmd, textinput.Blink)
}

func (m Model) startEdit(id, current string, isNew bool) Model {
	m.mode = modeEdit
	m.editingID = id
	m.editingNew = isNew
	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	return m
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeTree
		m.input.Blur()
		next, changed := outline.SetText(m.view.Tree, m.editingID, m.input.Value())
		return m.apply(next, changed)

	case "esc":
		m.mode = modeTree
		m.input.Blur()
		if m.editingNew {
			// a cancelled insert leaves no trace, not even on the undo stack
			if t, ok := m.history.Undo(); ok {
				m.view.SetTree(t)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleTextKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+t":
		m.mode = modeTree
		m.text.Blur()
		next := outline.Parse(m.text.Value())
		vs := CaptureViewState(m.view.Tree, m.view.Current())
		cursor := ApplyViewState(next, vs)
		if outline.Equal(m.view.Tree, next) {
			return m, nil
		}
		model, cmd := m.apply(next, true)
		if cursor != nil {
			model.view.MoveCursorTo(cursor.ID)
		}
		return model, cmd
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// hoverRow feeds a candidate row into the drag machine using a vertical
// offset fraction within the row.
func (m *Model) hoverRow(row int, offset float64) {
	if row < 0 || row >= len(m.view.Rows()) {
		return
	}
	m.drag.Hover(m.view.Tree, m.view.Rows()[row].Node.ID, offset)
}

func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.view.Rows()
	targetRow := m.view.Cursor
	if m.drag.TargetID != "" {
		for _, fn := range rows {
			if fn.Node.ID == m.drag.TargetID {
				targetRow = fn.Index
			}
		}
	}

	switch msg.String() {
	case "j", "down":
		for r := targetRow + 1; r < len(rows); r++ {
			if outline.ValidateDrop(m.view.Tree, m.drag.SourceID, rows[r].Node.ID) {
				m.hoverRow(r, dragOffset(m.drag.Position))
				break
			}
		}
	case "k", "up":
		for r := targetRow - 1; r >= 0; r-- {
			if outline.ValidateDrop(m.view.Tree, m.drag.SourceID, rows[r].Node.ID) {
				m.hoverRow(r, dragOffset(m.drag.Position))
				break
			}
		}
	case "b":
		m.hoverRow(targetRow, 0.1)
	case "c":
		m.hoverRow(targetRow, 0.5)
	case "n":
		m.hoverRow(targetRow, 0.9)

	case "enter":
		source := m.drag.SourceID
		next, changed := m.drag.Commit(m.view.Tree)
		m.mode = modeTree
		model, cmd := m.apply(next, changed)
		model.view.MoveCursorTo(source)
		return model, cmd

	case "esc":
		m.drag.Cancel()
		m.mode = modeTree
	}

	return m, nil
}

// indent reparents the cursor subtree under its preceding sibling. The
// first child of any parent has nothing to indent under.
func (m Model) indent() (tea.Model, tea.Cmd) {
	cur := m.view.Current()
	if cur == nil {
		return m, nil
	}
	prev := precedingSibling(m.view.Tree, cur)
	if prev == nil {
		return m, nil
	}
	next, changed := outline.Move(m.view.Tree, cur.ID, prev.ID, outline.DropAsChild)
	model, cmd := m.apply(next, changed)
	model.view.MoveCursorTo(cur.ID)
	return model, cmd
}

// outdent lifts the cursor subtree to be the next sibling of its parent.
// Roots are already at the shallowest level.
func (m Model) outdent() (tea.Model, tea.Cmd) {
	cur := m.view.Current()
	if cur == nil || cur.Parent == nil {
		return m, nil
	}
	next, changed := outline.Move(m.view.Tree, cur.ID, cur.Parent.ID, outline.DropAfter)
	model, cmd := m.apply(next, changed)
	model.view.MoveCursorTo(cur.ID)
	return model, cmd
}

func precedingSibling(t *outline.Tree, n *outline.Node) *outline.Node {
	siblings := t.Roots
	if n.Parent != nil {
		siblings = n.Parent.Children
	}
	for i, s := range siblings {
		if s.ID == n.ID {
			if i == 0 {
				return nil
			}
			return siblings[i-1]
		}
	}
	return nil
}

// dragOffset maps the current drop position back to a fraction so j/k
// retarget without resetting the chosen position.
func dragOffset(pos outline.DropPosition) float64 {
	switch pos {
	case outline.DropBefore:
		return 0.1
	case outline.DropAsChild:
		return 0.5
	default:
		return 0.9
	}
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.mode = modeTree
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "d", "enter":
		m.mode = modeTree
		id := m.deleteID
		m.deleteID = ""
		next, changed := outline.DeleteSubtree(m.view.Tree, id)
		return m.apply(next, changed)
	case "n", "esc":
		m.mode = modeTree
		m.deleteID = ""
	}
	return m, nil
}

// handleMouse drives selection and drag gestures. The hover offset comes
// from where the pointer sits relative to the dragged block's visible
// span: above it reads as before, below as after, and an open branch
// under the pointer as child.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeTree && m.mode != modeMove {
		return m, nil
	}
	row := m.view.RowAt(msg.Y - 1)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.view.CursorDown()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.view.CursorUp()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if row < 0 {
			return m, nil
		}
		m.view.Cursor = row
		m.view.scrollIntoView()

	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		if row < 0 {
			return m, nil
		}
		if m.drag.Phase == outline.DragIdle {
			cur := m.view.Current()
			if cur == nil {
				return m, nil
			}
			m.mode = modeMove
			m.drag.Start(cur.ID)
		}
		m.hoverRow(row, m.mouseOffset(row))

	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		if m.drag.Phase == outline.DragIdle {
			return m, nil
		}
		source := m.drag.SourceID
		next, changed := m.drag.Commit(m.view.Tree)
		m.mode = modeTree
		model, cmd := m.apply(next, changed)
		model.view.MoveCursorTo(source)
		return model, cmd
	}

	return m, nil
}

func (m Model) mouseOffset(row int) float64 {
	rows := m.view.Rows()
	if row < 0 || row >= len(rows) {
		return 0.9
	}
	target := rows[row].Node
	if len(target.Children) > 0 && target.Expanded {
		return 0.5
	}
	sourceRow := -1
	for _, fn := range rows {
		if fn.Node.ID == m.drag.SourceID {
			sourceRow = fn.Index
		}
	}
	if sourceRow < 0 {
		return 0.9
	}
	start, end := m.view.SubtreeSpan(sourceRow)
	switch {
	case row < start:
		return 0.1
	case row >= end:
		return 0.9
	}
	// Pointer is still inside the dragged block; Hover rejects the drop.
	return 0.5
}

// View renders header, body and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.theme.Header.Render("lacework") + m.theme.MutedText.Render("  "+m.docPath)
	if m.dirty {
		header += m.theme.DropMarker.Render(" ●")
	}

	var body string
	switch m.mode {
	case modeHelp:
		body = RenderHelp(m.width)
	case modeText:
		body = m.text.View()
	default:
		body = m.view.View(&m.drag)
		if m.mode == modeEdit {
			body += "\n" + m.theme.EditPrompt.Render(m.input.View())
		}
		if m.mode == modeConfirmDelete {
			body += "\n" + m.theme.DangerText.Render("delete subtree? (y/n)")
		}
	}

	return header + "\n" + body + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.status != "" {
		return m.theme.StatusBar.Render(m.padFooter(m.status))
	}
	if m.loadWarning != "" {
		return m.theme.StatusBar.Render(m.padFooter(m.loadWarning))
	}

	var hint string
	switch m.mode {
	case modeEdit:
		hint = "enter: confirm  esc: cancel"
	case modeText:
		hint = "esc: back to tree"
	case modeMove:
		hint = fmt.Sprintf("moving  j/k: target  b/c/n: before/child/after  enter: drop  esc: cancel  [%s]", m.drag.Position)
	case modeConfirmDelete:
		hint = "y: delete  n: keep"
	default:
		hint = "?: help  q: quit"
	}

	count := ""
	if m.cfg.UI.ShowLineCount {
		count = fmt.Sprintf("%d lines  ", m.view.Tree.NodeCount())
	}
	return m.theme.StatusBar.Render(m.padFooter(count + hint))
}

// padFooter stretches the status line across the full terminal width so
// the bar reads as a single band instead of a ragged fragment.
func (m Model) padFooter(s string) string {
	if m.width <= 0 {
		return s
	}
	return padRight(s, m.width)
}
