package core

// Action represents a semantic demo action, abstracted from physical key
// presses. Demos work with high-level intents rather than raw input, and
// the input cache is an explicitly constructed value passed through the
// platform rather than ambient global state.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - nudge upward
	ActionDown               // S, Down arrow - nudge downward
	ActionLeft               // A, Left arrow - nudge left
	ActionRight              // D, Right arrow - nudge right
	ActionKick               // Space - impulse (bounce demo)
	ActionPause              // P, Escape - pause/unpause
	ActionRestart            // R - restart the demo
	ActionToggleLerp         // I - toggle render interpolation
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionKick:
		return "Kick"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionToggleLerp:
		return "ToggleLerp"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame caches the actions triggered since the last fixed update.
// The platform sets actions as key events arrive and clears the frame
// after each simulation tick consumes it.
type InputFrame struct {
	// Actions maps action types to whether they were triggered.
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

// Unset clears a single action, e.g. on a key release event.
func (f *InputFrame) Unset(a Action) {
	delete(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
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
