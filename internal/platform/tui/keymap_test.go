package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
		quit     bool
	}{
		{"w forward", runeKey('w'), []core.Action{core.ActionForward}, false},
		{"arrow forward", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionForward}, false},
		{"turn left", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionTurnLeft}, false},
		{"strafe right", runeKey('e'), []core.Action{core.ActionStrafeRight}, false},
		{"shift runs", runeKey('W'), []core.Action{core.ActionForward, core.ActionRun}, false},
		{"alt crawls", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true}, []core.Action{core.ActionBackward, core.ActionCrawl}, false},
		{"alt arrow crawls", tea.KeyMsg{Type: tea.KeyDown, Alt: true}, []core.Action{core.ActionBackward, core.ActionCrawl}, false},
		{"map", runeKey('m'), []core.Action{core.ActionMap}, false},
		{"fire", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionFire}, false},
		{"next level", runeKey(']'), []core.Action{core.ActionNextLevel}, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}, false},
		{"cancel", tea.KeyMsg{Type: tea.KeyEscape}, []core.Action{core.ActionCancel}, false},
		{"q strafes, not quits", runeKey('q'), []core.Action{core.ActionStrafeLeft}, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}, true},
		{"unbound", runeKey('z'), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, quit := km.MapKey(tt.msg)
			if !reflect.DeepEqual(actions, tt.expected) {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), actions, tt.expected)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('D'), &frame) {
		t.Fatalf("MapKeyToFrame(D) reported quit")
	}
	if !frame.Has(core.ActionTurnRight) || !frame.Has(core.ActionRun) {
		t.Errorf("frame = %v, expected TurnRight and Run", frame.Actions)
	}
	if !km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlQ}, &frame) {
		t.Errorf("MapKeyToFrame(ctrl+q) did not report quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey('b'), MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
