package control

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-ballistics/engine"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func newSession(t *testing.T) *engine.Session {
	t.Helper()
	s, err := engine.NewSession(engine.DefaultParameters())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type fakeRunner struct {
	paused bool
	stops  int
}

func (r *fakeRunner) TogglePause() bool {
	r.paused = !r.paused
	return r.paused
}

func (r *fakeRunner) Stop() { r.stops++ }

// orderedTarget records the order of runner and session calls
type orderedTarget struct {
	*engine.Session
	calls *[]string
}

func (o orderedTarget) Reset() {
	*o.calls = append(*o.calls, "reset")
	o.Session.Reset()
}

func (o orderedTarget) Launch() error {
	*o.calls = append(*o.calls, "launch")
	return o.Session.Launch()
}

type orderedRunner struct{ calls *[]string }

func (o orderedRunner) TogglePause() bool { return false }
func (o orderedRunner) Stop()             { *o.calls = append(*o.calls, "stop") }

// rejectingTarget accepts nothing
type rejectingTarget struct {
	params engine.Parameters
}

func (r *rejectingTarget) Parameters() engine.Parameters { return r.params }
func (r *rejectingTarget) SetParameters(engine.Parameters) error {
	return errors.New("read only")
}
func (r *rejectingTarget) Launch() error { return nil }
func (r *rejectingTarget) Reset()        {}

func TestController_AdjustPushesToSession(t *testing.T) {
	s := newSession(t)
	c := NewController(s, nil, nil)

	res := c.HandleEvent(key(tcell.KeyRight))
	require.NoError(t, res.Err)
	assert.True(t, res.Changed)
	assert.InDelta(t, 0.01, s.Parameters().Wind.X, 1e-12)

	res = c.HandleEvent(runeKey('H'))
	require.NoError(t, res.Err)
	assert.InDelta(t, -0.09, s.Parameters().Wind.X, 1e-12)
}

func TestController_LaunchUsesFormElevation(t *testing.T) {
	s := newSession(t)
	c := NewController(s, nil, nil)

	c.HandleEvent(key(tcell.KeyDown)) // elevation
	require.Equal(t, FieldElevation, c.Form().Focus())
	for i := 0; i < 4; i++ {
		c.HandleEvent(runeKey('L'))
	}
	assert.Equal(t, 40.0, c.Form().Value(FieldElevation))

	res := c.HandleEvent(key(tcell.KeyEnter))
	require.NoError(t, res.Err)
	assert.Equal(t, IntentLaunch, res.Intent.Type)

	snap := s.Snapshot()
	assert.Equal(t, engine.StateInFlight, snap.State)
	assert.Equal(t, 40.0, snap.Parameters.Elevation)
	assert.Greater(t, snap.Velocity.Y, 0.0)
}

func TestController_ResetReturnsToRest(t *testing.T) {
	s := newSession(t)
	c := NewController(s, nil, nil)

	c.HandleEvent(key(tcell.KeyEnter))
	_, err := s.Tick(0.01)
	require.NoError(t, err)

	res := c.HandleEvent(runeKey('r'))
	assert.Equal(t, IntentReset, res.Intent.Type)
	assert.Equal(t, engine.StateAtRest, s.State())
}

func TestController_Pause(t *testing.T) {
	p := &fakeRunner{}
	c := NewController(newSession(t), p, nil)

	assert.True(t, c.HandleEvent(runeKey('p')).Paused)
	assert.False(t, c.HandleEvent(runeKey(' ')).Paused)

	assert.Zero(t, p.stops, "pause must not stop the shot")

	// Without a runner the key is inert
	c = NewController(newSession(t), nil, nil)
	assert.False(t, c.HandleEvent(runeKey('p')).Paused)
}

func TestController_QuitAndResize(t *testing.T) {
	c := NewController(newSession(t), nil, nil)

	assert.True(t, c.HandleEvent(runeKey('q')).Quit())
	assert.False(t, c.HandleEvent(runeKey('j')).Quit())
	assert.Equal(t, IntentResize, c.HandleEvent(tcell.NewEventResize(80, 24)).Intent.Type)
	assert.Equal(t, IntentNone, c.HandleEvent(tcell.NewEventInterrupt(nil)).Intent.Type)
}

func TestController_RejectedChangeResyncsForm(t *testing.T) {
	target := &rejectingTarget{params: engine.DefaultParameters()}
	c := NewController(target, nil, nil)

	res := c.HandleEvent(key(tcell.KeyRight))
	require.Error(t, res.Err)
	assert.True(t, res.Changed)
	assert.Equal(t, 0.0, c.Form().Value(FieldWind))

	res = c.HandleEvent(key(tcell.KeyEnter))
	assert.Error(t, res.Err)
}

func TestController_NoChangeAtLimit(t *testing.T) {
	s := newSession(t)
	c := NewController(s, nil, nil)
	c.HandleEvent(key(tcell.KeyBacktab)) // ballistic coefficient
	require.Equal(t, FieldBallisticCoefficient, c.Form().Focus())

	for i := 0; i < 10; i++ {
		c.HandleEvent(key(tcell.KeyPgUp))
	}
	assert.Equal(t, 1.0, s.Parameters().BallisticCoefficient)

	res := c.HandleEvent(key(tcell.KeyRight))
	assert.False(t, res.Changed)
	assert.NoError(t, res.Err)
}

func TestController_RelaunchStartsFromOrigin(t *testing.T) {
	s := newSession(t)
	c := NewController(s, nil, nil)

	require.NoError(t, c.HandleEvent(key(tcell.KeyEnter)).Err)
	for i := 0; i < 5; i++ {
		_, err := s.Tick(0.01)
		require.NoError(t, err)
	}
	require.Less(t, s.Position().Y, 0.0)

	require.NoError(t, c.HandleEvent(runeKey('f')).Err)
	snap := s.Snapshot()
	assert.Equal(t, 0.0, snap.Position.X)
	assert.Equal(t, 0.0, snap.Position.Y)
	assert.Equal(t, uint64(0), snap.Ticks)
	assert.Equal(t, engine.StateInFlight, snap.State)
}

func TestController_LaunchStopsRunnerBeforeTouchingSession(t *testing.T) {
	var calls []string
	c := NewController(orderedTarget{Session: newSession(t), calls: &calls}, orderedRunner{calls: &calls}, nil)

	require.NoError(t, c.HandleEvent(key(tcell.KeyEnter)).Err)
	assert.Equal(t, []string{"stop", "reset", "launch"}, calls)

	calls = calls[:0]
	c.HandleEvent(runeKey('r'))
	assert.Equal(t, []string{"stop", "reset"}, calls)
}

func TestController_RejectedLaunchKeepsRunner(t *testing.T) {
	r := &fakeRunner{}
	c := NewController(&rejectingTarget{params: engine.DefaultParameters()}, r, nil)

	res := c.HandleEvent(key(tcell.KeyEnter))
	require.Error(t, res.Err)
	assert.Zero(t, r.stops)
}
