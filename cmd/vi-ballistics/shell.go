package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-ballistics/config"
	"github.com/lixenwraith/vi-ballistics/control"
	"github.com/lixenwraith/vi-ballistics/core"
	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/render"
)

// messageTTL is how long a transient notice stays on screen
const messageTTL = 2 * time.Second

// soundPlayer is the subset of audio.SoundManager the shell uses
type soundPlayer interface {
	PlayLaunch()
	PlayImpact()
}

// belowGround ends a shot once it has flown and dropped under y = 0
func belowGround(snap engine.Snapshot) bool {
	return snap.State == engine.StateInFlight && snap.Ticks > 0 && snap.Position.Y < 0
}

// shotRunner owns one ClockScheduler per shot
// A new launch replaces the running scheduler
type shotRunner struct {
	session *engine.Session
	cfg     config.SimulationConfig
	sound   soundPlayer
	logger  *slog.Logger

	mu    sync.Mutex
	sched *engine.ClockScheduler
}

func newShotRunner(session *engine.Session, cfg config.SimulationConfig, sound soundPlayer, logger *slog.Logger) *shotRunner {
	return &shotRunner{
		session: session,
		cfg:     cfg,
		sound:   sound,
		logger:  logger,
	}
}

// Start replaces the current shot's tick source with a fresh one
// Impact is reported through the sound player when the stop condition ends the loop
func (r *shotRunner) Start(ctx context.Context) error {
	r.Stop()

	sched, err := engine.NewClockScheduler(r.session, engine.SchedulerConfig{
		Interval: r.cfg.TickInterval,
		Step:     r.cfg.Step,
		MaxTicks: r.cfg.MaxTicks,
		StopWhen: belowGround,
		Logger:   r.logger,
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sched = sched
	r.mu.Unlock()

	sched.Start(ctx)
	core.Go(func() {
		<-sched.Done()
		reason, err := sched.Result()
		if reason == engine.StopCondition {
			snap := r.session.Snapshot()
			r.logger.Info("Impact",
				"range", snap.Position.X,
				"drift", snap.Position.Z,
				"flightTime", snap.Elapsed,
				"ticks", snap.Ticks,
			)
			if r.sound != nil {
				r.sound.PlayImpact()
			}
		} else if err != nil {
			r.logger.Error("Shot aborted", "error", err)
		}
	})
	return nil
}

// Stop halts the current shot's scheduler, if any
func (r *shotRunner) Stop() {
	r.mu.Lock()
	sched := r.sched
	r.sched = nil
	r.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
}

// TogglePause pauses or resumes the running shot and reports the new state
func (r *shotRunner) TogglePause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sched == nil {
		return false
	}
	return r.sched.TogglePause()
}

func (r *shotRunner) IsPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sched != nil && r.sched.IsPaused()
}

// runTerminal drives the tcell UI until quit or ctx is done
func runTerminal(ctx context.Context, cfg *config.Config, session *engine.Session, sound soundPlayer, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	core.SetCrashReset(screen.Fini)
	defer screen.Fini()
	screen.HideCursor()

	return loop(ctx, screen, cfg, session, sound, logger)
}

// loop is the event/frame loop, split from runTerminal so a simulation screen can drive it
func loop(ctx context.Context, screen tcell.Screen, cfg *config.Config, session *engine.Session, sound soundPlayer, logger *slog.Logger) error {
	runner := newShotRunner(session, cfg.Simulation, sound, logger)
	defer runner.Stop()

	ctrl := control.NewController(session, runner, logger)
	scene := render.NewScene(screen, cfg.Display.MetersPerCell, cfg.Display.TrailLength)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	frameTicker := time.NewTicker(cfg.Display.FrameInterval)
	defer frameTicker.Stop()

	var message string
	var messageUntil time.Time

	draw := func() {
		if message != "" && time.Now().After(messageUntil) {
			message = ""
		}
		scene.Draw(render.Frame{
			Snapshot: session.Snapshot(),
			Rows:     ctrl.Form().Rows(),
			Paused:   runner.IsPaused(),
			Message:  message,
		})
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			res := ctrl.HandleEvent(ev)
			if res.Quit() {
				return nil
			}

			switch res.Intent.Type {
			case control.IntentLaunch:
				if res.Err == nil {
					if sound != nil {
						sound.PlayLaunch()
					}
					if err := runner.Start(ctx); err != nil {
						res.Err = err
					}
				}
			case control.IntentResize:
				screen.Sync()
			}

			if res.Err != nil {
				message = res.Err.Error()
				messageUntil = time.Now().Add(messageTTL)
			}
			draw()

		case <-frameTicker.C:
			draw()
		}
	}
}
