package core

// Action is a pilot intent, independent of the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionThrust
	ActionRotateLeft
	ActionRotateRight
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	ActionYes
	ActionNo

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Thrust", "RotateLeft", "RotateRight", "Confirm", "Back",
	"Restart", "Quit", "Pause", "Yes", "No",
}

// String returns the action name.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Len returns the number of triggered actions.
func (f InputFrame) Len() int {
	n := 0
	for b := f.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool { return f.bits == 0 }

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}
