package control

// IntentType discriminates semantic actions produced by a key
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentPause  // p, Space
	IntentResize // Terminal resize event

	// Form navigation
	IntentFocusNext // j, Down, Tab
	IntentFocusPrev // k, Up, Shift+Tab

	// Form editing
	IntentIncrease // l, Right
	IntentDecrease // h, Left

	// Shot
	IntentLaunch // Enter, f
	IntentReset  // r
)

func (i IntentType) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentQuit:
		return "quit"
	case IntentPause:
		return "pause"
	case IntentResize:
		return "resize"
	case IntentFocusNext:
		return "focus-next"
	case IntentFocusPrev:
		return "focus-prev"
	case IntentIncrease:
		return "increase"
	case IntentDecrease:
		return "decrease"
	case IntentLaunch:
		return "launch"
	case IntentReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Intent is the resolved meaning of one input event
// Coarse scales an adjustment by the coarse multiplier
type Intent struct {
	Type   IntentType
	Coarse bool
}
