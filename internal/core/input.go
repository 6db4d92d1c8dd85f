package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow: move cursor up
	ActionDown           // S, J, Down arrow: move cursor down
	ActionLeft           // A, H, Left arrow: move cursor left
	ActionRight          // D, L, Right arrow: move cursor right
	ActionConfirm        // Enter, Space: select or swap the gem under the cursor
	ActionBack           // Esc, B: drop the selection, leave overlays
	ActionRestart        // R: retry the current stage
	ActionNext           // N: continue to the next stage after a clear
	ActionQuit           // Q, Ctrl+C: exit
	ActionPause          // P: pause or resume
	ActionHint           // ?, I: show a possible swap
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionHint:
		return "Hint"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Frame builds an input frame from a list of actions.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}
