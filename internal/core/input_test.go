package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionKick) {
		t.Error("Fresh frame should have no actions")
	}

	f.Set(ActionKick)
	f.Set(ActionPause)
	if !f.Has(ActionKick) || !f.Has(ActionPause) {
		t.Error("Set actions should be reported by Has")
	}

	f.Unset(ActionPause)
	if f.Has(ActionPause) {
		t.Error("Unset action should be cleared")
	}

	f.Clear()
	if f.Has(ActionKick) {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameZeroValueUsable(t *testing.T) {
	var f InputFrame

	if f.Has(ActionUp) {
		t.Error("Zero-value frame should report no actions")
	}

	// Set on a zero-value frame must allocate, not panic.
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero-value frame should work")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)

	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionLeft) {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionKick.String() != "Kick" {
		t.Errorf("ActionKick.String() = %q", ActionKick.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Unknown action should stringify to Unknown, got %q", Action(99).String())
	}
}
