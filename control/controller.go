package control

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/parameter"
)

// Target is the simulation the form drives
type Target interface {
	Parameters() engine.Parameters
	SetParameters(engine.Parameters) error
	Launch() error
	Reset()
}

// Runner is the tick source driving the target
// Stop returns only once no further tick can reach the target
type Runner interface {
	TogglePause() bool
	Stop()
}

// Result reports what an event did
// Err is set when the target rejected the change; the form is resynced from the target
type Result struct {
	Intent  Intent
	Changed bool
	Paused  bool
	Err     error
}

// Quit reports whether the shell should exit
func (r Result) Quit() bool { return r.Intent.Type == IntentQuit }

// Controller routes terminal events into form edits and session commands
type Controller struct {
	keys   *KeyTable
	form   *Form
	target Target
	runner Runner
	logger *slog.Logger
}

// NewController seeds the form from target's current parameters
// runner may be nil, in which case pause keys are ignored
func NewController(target Target, runner Runner, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		keys:   DefaultKeyTable(),
		form:   NewForm(target.Parameters()),
		target: target,
		runner: runner,
		logger: logger,
	}
}

func (c *Controller) Form() *Form { return c.form }

// HandleEvent processes one tcell event
func (c *Controller) HandleEvent(ev tcell.Event) Result {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return c.apply(c.keys.Resolve(e))
	case *tcell.EventResize:
		return Result{Intent: Intent{Type: IntentResize}}
	default:
		return Result{}
	}
}

func (c *Controller) apply(in Intent) Result {
	res := Result{Intent: in}

	switch in.Type {
	case IntentFocusNext:
		c.form.FocusNext()
	case IntentFocusPrev:
		c.form.FocusPrev()

	case IntentIncrease, IntentDecrease:
		steps := 1.0
		if in.Coarse {
			steps = parameter.CoarseInputMultiplier
		}
		if in.Type == IntentDecrease {
			steps = -steps
		}
		if !c.form.Adjust(steps) {
			return res
		}
		res.Changed = true
		res.Err = c.push()

	case IntentLaunch:
		if err := c.push(); err != nil {
			res.Err = err
			return res
		}
		// Every launch is a fresh shot from the origin
		c.stopRunner()
		c.target.Reset()
		if err := c.target.Launch(); err != nil {
			res.Err = fmt.Errorf("launch: %w", err)
		}

	case IntentReset:
		c.stopRunner()
		c.target.Reset()

	case IntentPause:
		if c.runner != nil {
			res.Paused = c.runner.TogglePause()
		}
	}

	return res
}

// stopRunner halts the previous shot so its ticks cannot land on the next one
func (c *Controller) stopRunner() {
	if c.runner != nil {
		c.runner.Stop()
	}
}

// push sends the form values to the target, resyncing the form on rejection
func (c *Controller) push() error {
	next := c.form.Parameters(c.target.Parameters())
	if err := c.target.SetParameters(next); err != nil {
		c.logger.Debug("Form change rejected", "field", c.form.Focus().String(), "error", err)
		c.form.Load(c.target.Parameters())
		return err
	}
	return nil
}
