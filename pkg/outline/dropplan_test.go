package outline

import "testing"

// TestPlanDrop verifies the vertical band thresholds
func TestPlanDrop(t *testing.T) {
	tests := []struct {
		offset float64
		want   DropPosition
	}{
		{0.0, DropBefore},
		{0.29, DropBefore},
		{0.3, DropAsChild},
		{0.5, DropAsChild},
		{0.7, DropAsChild},
		{0.71, DropAfter},
		{1.0, DropAfter},
	}
	for _, tt := range tests {
		if got := PlanDrop(tt.offset); got != tt.want {
			t.Errorf("PlanDrop(%v): expected %s, got %s", tt.offset, tt.want, got)
		}
	}
}

// TestValidateDrop verifies hover candidates are pre-filtered by the
// same guards Move enforces.
func TestValidateDrop(t *testing.T) {
	tree := Parse("a\n\tb\nc")
	a := tree.Roots[0]
	b := a.Children[0]
	c := tree.Roots[1]

	if ValidateDrop(tree, a.ID, a.ID) {
		t.Error("self-drop must be invalid")
	}
	if ValidateDrop(tree, a.ID, b.ID) {
		t.Error("drop into own descendant must be invalid")
	}
	if !ValidateDrop(tree, a.ID, c.ID) {
		t.Error("drop onto an unrelated node must be valid")
	}
	if !ValidateDrop(tree, b.ID, a.ID) {
		t.Error("drop onto an ancestor is a legal reorder")
	}
	if ValidateDrop(tree, "nope", c.ID) || ValidateDrop(tree, a.ID, "nope") {
		t.Error("unknown ids must be invalid")
	}
}

// TestDragGesture walks the state machine through a full commit
func TestDragGesture(t *testing.T) {
	tree := Parse("a\nb\nc")
	var d Drag

	if d.Phase != DragIdle {
		t.Fatal("expected idle start")
	}
	d.Start(tree.Roots[2].ID)
	if d.Phase != DragActive || d.SourceID != tree.Roots[2].ID {
		t.Fatal("expected dragging state for c")
	}

	d.Hover(tree, tree.Roots[0].ID, 0.1)
	if d.Phase != DragHovering || d.Position != DropBefore {
		t.Fatalf("expected hovering before a, got phase %v pos %s", d.Phase, d.Position)
	}

	// Hover updates recompute on every movement.
	d.Hover(tree, tree.Roots[0].ID, 0.9)
	if d.Position != DropAfter {
		t.Errorf("expected position after, got %s", d.Position)
	}
	d.Hover(tree, tree.Roots[0].ID, 0.1)

	out, changed := d.Commit(tree)
	if !changed {
		t.Fatal("expected the commit to apply the move")
	}
	if got := flatTexts(Flatten(out)); !equalStrings(got, []string{"c", "a", "b"}) {
		t.Errorf("expected [c a b], got %v", got)
	}
	if d.Phase != DragIdle {
		t.Error("expected idle after commit")
	}
}

// TestDragIllegalHover verifies illegal candidates never become a
// committable hover state.
func TestDragIllegalHover(t *testing.T) {
	tree := Parse("a\n\tb\nc")
	a := tree.Roots[0]

	var d Drag
	d.Start(a.ID)
	d.Hover(tree, a.Children[0].ID, 0.5) // own descendant

	if d.Phase == DragHovering || d.TargetID != "" {
		t.Error("expected the illegal hover cleared")
	}

	out, changed := d.Commit(tree)
	if changed || !Equal(out, tree) {
		t.Error("expected commit without a valid hover to cancel")
	}
}

// TestDragCancel verifies an abandoned gesture leaves the tree alone
func TestDragCancel(t *testing.T) {
	tree := Parse("a\nb")
	var d Drag
	d.Start(tree.Roots[0].ID)
	d.Hover(tree, tree.Roots[1].ID, 0.5)
	d.Cancel()

	if d.Phase != DragIdle || d.SourceID != "" {
		t.Error("expected a clean idle state after cancel")
	}
}
