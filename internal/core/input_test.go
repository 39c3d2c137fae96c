package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionForward)

	if !f.Has(ActionForward) || f.Has(ActionFire) {
		t.Errorf("Has() = %v/%v, expected true/false", f.Has(ActionForward), f.Has(ActionFire))
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionForward) {
		t.Errorf("Has(Forward) after Clear = true")
	}
	if !clone.Has(ActionForward) {
		t.Errorf("clone lost ActionForward after original was cleared")
	}

	var zero InputFrame
	if zero.Has(ActionForward) {
		t.Errorf("zero frame Has(Forward) = true")
	}
	zero.Set(ActionFire)
	if !zero.Has(ActionFire) {
		t.Errorf("Set on zero frame did not record action")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionForward, "Forward"},
		{ActionPlaceWall, "PlaceWall"},
		{Action(999), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestActionIsMovement(t *testing.T) {
	if !ActionStrafeLeft.IsMovement() {
		t.Errorf("ActionStrafeLeft.IsMovement() = false")
	}
	if ActionFire.IsMovement() || ActionRun.IsMovement() {
		t.Errorf("one-shot actions reported as movement")
	}
}
