package control

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestKeyTable_Resolve(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"enter launches", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentLaunch}},
		{"f launches", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone), Intent{Type: IntentLaunch}},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), Intent{Type: IntentQuit}},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"esc quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentQuit}},
		{"tab focuses next", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Intent{Type: IntentFocusNext}},
		{"k focuses prev", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), Intent{Type: IntentFocusPrev}},
		{"right increases", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), Intent{Type: IntentIncrease}},
		{"shift-left coarse", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), Intent{Type: IntentDecrease, Coarse: true}},
		{"L coarse", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone), Intent{Type: IntentIncrease, Coarse: true}},
		{"page down coarse", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), Intent{Type: IntentDecrease, Coarse: true}},
		{"r resets", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), Intent{Type: IntentReset}},
		{"space pauses", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), Intent{Type: IntentPause}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), Intent{}},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), Intent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kt.Resolve(tt.ev))
		})
	}

	assert.Equal(t, Intent{}, kt.Resolve(nil))
}

func TestIntentType_String(t *testing.T) {
	assert.Equal(t, "launch", IntentLaunch.String())
	assert.Equal(t, "focus-next", IntentFocusNext.String())
	assert.Equal(t, "unknown", IntentType(200).String())
}
