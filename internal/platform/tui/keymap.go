package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var movementKeys = map[string]core.Action{
	"w":     core.ActionForward,
	"up":    core.ActionForward,
	"s":     core.ActionBackward,
	"down":  core.ActionBackward,
	"a":     core.ActionTurnLeft,
	"left":  core.ActionTurnLeft,
	"d":     core.ActionTurnRight,
	"right": core.ActionTurnRight,
	"q":     core.ActionStrafeLeft,
	"e":     core.ActionStrafeRight,
}

var commandKeys = map[string]core.Action{
	"m":     core.ActionMap,
	"c":     core.ActionCompass,
	"f":     core.ActionFlag,
	" ":     core.ActionFire,
	"x":     core.ActionPlaceWall,
	"[":     core.ActionPrevLevel,
	"]":     core.ActionNextLevel,
	"r":     core.ActionReset,
	"y":     core.ActionConfirm,
	"enter": core.ActionConfirm,
	"n":     core.ActionCancel,
	"esc":   core.ActionCancel,
	"p":     core.ActionPause,
}

// MapKey translates a key message to the actions it triggers.
// Shift (an upper-case letter) adds Run to a movement key and Alt adds
// Crawl. isQuit is true for the global quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "ctrl+q":
		return []core.Action{core.ActionQuit}, true
	}

	if a, ok := commandKeys[key]; ok {
		return []core.Action{a}, false
	}

	var modifier core.Action
	if msg.Alt {
		modifier = core.ActionCrawl
		key = key[len("alt+"):]
	}
	if len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z' {
		modifier = core.ActionRun
		key = string(key[0] - 'A' + 'a')
	}

	a, ok := movementKeys[key]
	if !ok {
		return nil, false
	}
	if modifier != core.ActionNone {
		return []core.Action{a, modifier}, false
	}
	return []core.Action{a}, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
