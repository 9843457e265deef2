package outline

// DropPosition classifies where a dragged subtree lands relative to the
// hover target.
type DropPosition int

const (
	DropBefore DropPosition = iota
	DropAfter
	DropAsChild
)

// String returns a human-readable label for the drop position.
func (p DropPosition) String() string {
	switch p {
	case DropBefore:
		return "before"
	case DropAfter:
		return "after"
	case DropAsChild:
		return "child"
	default:
		return "unknown"
	}
}

// PlanDrop classifies a pointer offset within the target row, normalized
// to [0,1] vertically: the top band means insert before, the bottom band
// insert after, and the middle means become the target's last child.
func PlanDrop(offset float64) DropPosition {
	switch {
	case offset < 0.3:
		return DropBefore
	case offset > 0.7:
		return DropAfter
	default:
		return DropAsChild
	}
}

// ValidateDrop re-checks the Move guards for a hover candidate: no drop
// onto the dragged node itself and no drop into its own descendants.
// Move enforces the same rules, but hover feedback must never suggest a
// drop that Move would then refuse.
func ValidateDrop(t *Tree, sourceID, targetID string) bool {
	if t == nil || sourceID == targetID {
		return false
	}
	source := t.Lookup(sourceID)
	if source == nil || t.Lookup(targetID) == nil {
		return false
	}
	return !IsDescendant(source, targetID)
}

// DragPhase names the states of a drag gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragActive
	DragHovering
)

// Drag is the short-lived state machine for one drag gesture:
//
//	idle → dragging(source) → hovering(target, pos)* → committed | cancelled
//
// It is a plain value driven by the UI: Start on drag-start, Hover on
// every pointer movement over a row, then either Commit (applies Move)
// or Cancel. A gesture that ends without a valid hover target simply
// returns to idle with no tree change.
type Drag struct {
	Phase    DragPhase
	SourceID string
	TargetID string
	Position DropPosition
}

// Start enters the dragging state for the given source node.
func (d *Drag) Start(sourceID string) {
	*d = Drag{Phase: DragActive, SourceID: sourceID}
}

// Hover records the current candidate target and position. Invalid
// candidates (self, own descendant, unknown ids) clear the hover state
// instead, so an illegal drop is never displayed or committable.
func (d *Drag) Hover(t *Tree, targetID string, offset float64) {
	if d.Phase == DragIdle {
		return
	}
	if !ValidateDrop(t, d.SourceID, targetID) {
		d.Phase = DragActive
		d.TargetID = ""
		return
	}
	d.Phase = DragHovering
	d.TargetID = targetID
	d.Position = PlanDrop(offset)
}

// Commit applies the pending move and resets to idle. Without a valid
// hover target the gesture degrades to a cancel.
func (d *Drag) Commit(t *Tree) (*Tree, bool) {
	if d.Phase != DragHovering || d.TargetID == "" {
		d.Cancel()
		return t, false
	}
	out, changed := Move(t, d.SourceID, d.TargetID, d.Position)
	*d = Drag{}
	return out, changed
}

// Cancel discards the pending gesture with no tree change.
func (d *Drag) Cancel() {
	*d = Drag{}
}
