package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow
	ActionBackward           // S, Down arrow
	ActionTurnLeft           // A, Left arrow
	ActionTurnRight          // D, Right arrow
	ActionStrafeLeft         // Q
	ActionStrafeRight        // E
	ActionRun                // Shift modifier
	ActionCrawl              // Alt modifier
	ActionMap                // M - toggle map overlay
	ActionCompass            // C - toggle compass
	ActionFlag               // F - toggle flag on current tile
	ActionFire               // Space - fire the gun
	ActionPlaceWall          // X - place a temporary wall ahead
	ActionPrevLevel          // [
	ActionNextLevel          // ]
	ActionReset              // R - ask to reset the level
	ActionConfirm            // Y, Enter
	ActionCancel             // N, Esc
	ActionPause              // P
	ActionQuit               // Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionForward:     "Forward",
	ActionBackward:    "Backward",
	ActionTurnLeft:    "TurnLeft",
	ActionTurnRight:   "TurnRight",
	ActionStrafeLeft:  "StrafeLeft",
	ActionStrafeRight: "StrafeRight",
	ActionRun:         "Run",
	ActionCrawl:       "Crawl",
	ActionMap:         "Map",
	ActionCompass:     "Compass",
	ActionFlag:        "Flag",
	ActionFire:        "Fire",
	ActionPlaceWall:   "PlaceWall",
	ActionPrevLevel:   "PrevLevel",
	ActionNextLevel:   "NextLevel",
	ActionReset:       "Reset",
	ActionConfirm:     "Confirm",
	ActionCancel:      "Cancel",
	ActionPause:       "Pause",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether a is held-key movement rather than a one-shot
// command.
func (a Action) IsMovement() bool {
	switch a {
	case ActionForward, ActionBackward, ActionTurnLeft, ActionTurnRight,
		ActionStrafeLeft, ActionStrafeRight:
		return true
	}
	return false
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
