package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-ballistics/core"
)

// StopReason records why the scheduler loop exited
type StopReason uint8

const (
	StopNone StopReason = iota
	StopRequested
	StopContext
	StopCondition
	StopMaxTicks
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "running"
	case StopRequested:
		return "stopped"
	case StopContext:
		return "context done"
	case StopCondition:
		return "stop condition met"
	case StopMaxTicks:
		return "tick limit reached"
	case StopError:
		return "error"
	default:
		return "unknown"
	}
}

// SchedulerConfig configures the tick source
type SchedulerConfig struct {
	// Interval is the logical period between ticks
	Interval time.Duration
	// Step is the simulated dt passed to each tick, independent of Interval
	Step float64
	// MaxTicks stops the loop after this many ticks, 0 for unbounded
	MaxTicks uint64
	// OnTick observes the snapshot produced by each tick, called on the scheduler goroutine
	OnTick func(Snapshot)
	// StopWhen ends the loop when it returns true for a tick snapshot
	StopWhen func(Snapshot) bool
	// NewTicker overrides the wall-clock ticker
	NewTicker TickerFactory
	Logger    *slog.Logger
}

// ClockScheduler calls Session.Tick at a fixed cadence on its own goroutine
// A tick runs to completion before the next one is read, so steps never overlap
// Cancellation is simply not ticking again
type ClockScheduler struct {
	session *Session
	cfg     SchedulerConfig
	logger  *slog.Logger

	isPaused  atomic.Bool
	running   atomic.Bool
	tickCount atomic.Uint64

	mu     sync.Mutex
	reason StopReason
	err    error

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewClockScheduler validates cfg and binds it to session
func NewClockScheduler(session *Session, cfg SchedulerConfig) (*ClockScheduler, error) {
	if session == nil {
		return nil, fmt.Errorf("clock scheduler: nil session")
	}
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("clock scheduler: interval %v must be > 0", cfg.Interval)
	}
	if err := ValidateStep(cfg.Step); err != nil {
		return nil, fmt.Errorf("clock scheduler: %w", err)
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewRealTicker
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &ClockScheduler{
		session:  session,
		cfg:      cfg,
		logger:   cfg.Logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins the scheduler loop, a second call is a no-op
func (cs *ClockScheduler) Start(ctx context.Context) {
	if cs.running.CompareAndSwap(false, true) {
		ticker := cs.cfg.NewTicker(cs.cfg.Interval)
		core.Go(func() { cs.schedulerLoop(ctx, ticker) })
	}
}

// Stop halts the loop and waits for it to exit
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
	})
	if cs.running.Load() {
		<-cs.done
	}
}

// Done is closed when the loop exits
func (cs *ClockScheduler) Done() <-chan struct{} {
	return cs.done
}

// Pause skips ticks until Resume, the tick source keeps running
func (cs *ClockScheduler) Pause() {
	if cs.isPaused.CompareAndSwap(false, true) {
		cs.logger.Debug("Scheduler paused")
	}
}

// Resume continues ticking after Pause
func (cs *ClockScheduler) Resume() {
	if cs.isPaused.CompareAndSwap(true, false) {
		cs.logger.Debug("Scheduler resumed")
	}
}

// TogglePause flips the pause state and returns the new value
func (cs *ClockScheduler) TogglePause() bool {
	if cs.isPaused.Load() {
		cs.Resume()
		return false
	}
	cs.Pause()
	return true
}

// IsPaused reports the pause state
func (cs *ClockScheduler) IsPaused() bool {
	return cs.isPaused.Load()
}

// TickCount returns ticks delivered to the session since Start
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Result returns why the loop exited and the tick error if any
func (cs *ClockScheduler) Result() (StopReason, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.reason, cs.err
}

func (cs *ClockScheduler) finish(reason StopReason, err error) {
	cs.mu.Lock()
	cs.reason = reason
	cs.err = err
	cs.mu.Unlock()
}

func (cs *ClockScheduler) schedulerLoop(ctx context.Context, ticker Ticker) {
	defer close(cs.done)
	defer ticker.Stop()

	cs.logger.Info("Scheduler started",
		"interval", cs.cfg.Interval,
		"step", cs.cfg.Step,
		"maxTicks", cs.cfg.MaxTicks,
	)

	for {
		select {
		case <-ctx.Done():
			cs.finish(StopContext, nil)
			cs.logger.Info("Scheduler stopped", "reason", StopContext, "ticks", cs.TickCount())
			return

		case <-cs.stopChan:
			cs.finish(StopRequested, nil)
			cs.logger.Info("Scheduler stopped", "reason", StopRequested, "ticks", cs.TickCount())
			return

		case <-ticker.C():
			if cs.isPaused.Load() {
				continue
			}

			reason, err := cs.processTick()
			if reason != StopNone {
				cs.finish(reason, err)
				if err != nil {
					cs.logger.Error("Scheduler stopped", "reason", reason, "error", err)
				} else {
					cs.logger.Info("Scheduler stopped", "reason", reason, "ticks", cs.TickCount())
				}
				return
			}
		}
	}
}

// processTick executes one clock cycle and reports whether the loop should end
func (cs *ClockScheduler) processTick() (StopReason, error) {
	snap, err := cs.session.Tick(cs.cfg.Step)
	if err != nil {
		return StopError, err
	}
	ticks := cs.tickCount.Add(1)

	if cs.cfg.OnTick != nil {
		cs.cfg.OnTick(snap)
	}
	if cs.cfg.StopWhen != nil && cs.cfg.StopWhen(snap) {
		return StopCondition, nil
	}
	if cs.cfg.MaxTicks > 0 && ticks >= cs.cfg.MaxTicks {
		return StopMaxTicks, nil
	}
	return StopNone, nil
}
