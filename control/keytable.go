package control

import "github.com/gdamore/tcell/v2"

// KeyEntry describes a key binding without function pointers
type KeyEntry struct {
	IntentType IntentType
	Coarse     bool
}

// KeyTable maps special keys and runes to intents
type KeyTable struct {
	SpecialKeys map[tcell.Key]KeyEntry
	Runes       map[rune]KeyEntry
}

// DefaultKeyTable returns the default bindings
// Uppercase H/L are the coarse variants since terminals drop Shift on runes
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:   {IntentQuit, false},
			tcell.KeyEscape:  {IntentQuit, false},
			tcell.KeyEnter:   {IntentLaunch, false},
			tcell.KeyTab:     {IntentFocusNext, false},
			tcell.KeyBacktab: {IntentFocusPrev, false},
			tcell.KeyDown:    {IntentFocusNext, false},
			tcell.KeyUp:      {IntentFocusPrev, false},
			tcell.KeyRight:   {IntentIncrease, false},
			tcell.KeyLeft:    {IntentDecrease, false},
			tcell.KeyPgUp:    {IntentIncrease, true},
			tcell.KeyPgDn:    {IntentDecrease, true},
		},
		Runes: map[rune]KeyEntry{
			'q': {IntentQuit, false},
			'p': {IntentPause, false},
			' ': {IntentPause, false},
			'j': {IntentFocusNext, false},
			'k': {IntentFocusPrev, false},
			'l': {IntentIncrease, false},
			'h': {IntentDecrease, false},
			'L': {IntentIncrease, true},
			'H': {IntentDecrease, true},
			'+': {IntentIncrease, false},
			'-': {IntentDecrease, false},
			'f': {IntentLaunch, false},
			'r': {IntentReset, false},
		},
	}
}

// Resolve maps a key event to an intent
// Shift on arrow keys selects the coarse step
func (kt *KeyTable) Resolve(ev *tcell.EventKey) Intent {
	if ev == nil {
		return Intent{}
	}

	var entry KeyEntry
	var ok bool
	if ev.Key() == tcell.KeyRune {
		entry, ok = kt.Runes[ev.Rune()]
	} else {
		entry, ok = kt.SpecialKeys[ev.Key()]
	}
	if !ok {
		return Intent{}
	}

	coarse := entry.Coarse
	if ev.Modifiers()&tcell.ModShift != 0 && (entry.IntentType == IntentIncrease || entry.IntentType == IntentDecrease) {
		coarse = true
	}
	return Intent{Type: entry.IntentType, Coarse: coarse}
}
