package outline

// DefaultHistoryCapacity bounds the number of retained snapshots. Editing
// past the bound evicts the oldest state rather than blocking.
const DefaultHistoryCapacity = 50

// History is a bounded stack of whole-tree snapshots with a cursor. It
// knows nothing about tree semantics: callers push the snapshot produced
// by each successful mutation, and Undo/Redo hand snapshots back.
//
// Pushing truncates any redo tail first, so history after an undo behaves
// like every editor's: new edits replace the abandoned future.
type History struct {
	snapshots []*Tree
	cursor    int // index of the current snapshot; -1 when empty
	capacity  int
}

// NewHistory returns a history bounded to DefaultHistoryCapacity.
func NewHistory() *History {
	return NewHistoryWithCapacity(DefaultHistoryCapacity)
}

// NewHistoryWithCapacity returns a history bounded to the given number of
// snapshots. Capacities below 1 fall back to the default.
func NewHistoryWithCapacity(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}
	return &History{cursor: -1, capacity: capacity}
}

// Push records a snapshot as the new current state. The stored value is a
// clone, so later edits to the pushed tree cannot mutate history.
func (h *History) Push(t *Tree) {
	// Drop the redo tail.
	h.snapshots = h.snapshots[:h.cursor+1]
	h.snapshots = append(h.snapshots, t.Clone())
	h.cursor++

	// Evict the oldest entries once over capacity, shifting the cursor so
	// it still names the same snapshot.
	if over := len(h.snapshots) - h.capacity; over > 0 {
		h.snapshots = append([]*Tree(nil), h.snapshots[over:]...)
		h.cursor -= over
	}
}

// Undo steps the cursor back and returns that snapshot, or (nil, false)
// at the floor. The returned tree is a clone; callers own it.
func (h *History) Undo() (*Tree, bool) {
	if h.cursor <= 0 {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo steps the cursor forward and returns that snapshot, or (nil,
// false) at the top.
func (h *History) Redo() (*Tree, bool) {
	if h.cursor+1 >= len(h.snapshots) {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

// CanUndo reports whether Undo would return a snapshot.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would return a snapshot.
func (h *History) CanRedo() bool { return h.cursor+1 < len(h.snapshots) }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.snapshots) }
