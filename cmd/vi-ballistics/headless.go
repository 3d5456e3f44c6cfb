package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lixenwraith/vi-ballistics/config"
	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/render"
)

// runHeadless fires one shot and prints a sample every Display.SampleEvery ticks
// The run ends on impact, on the tick limit or when ctx is done
func runHeadless(ctx context.Context, cfg *config.Config, session *engine.Session, out io.Writer, logger *slog.Logger) error {
	every := uint64(max(cfg.Display.SampleEvery, 1))

	// OnTick runs on the scheduler goroutine; out is only touched there until Done
	var writeErr error
	printSample := func(snap engine.Snapshot) {
		if writeErr != nil {
			return
		}
		_, writeErr = fmt.Fprintf(out, "t=%7.2fs  %s  v=%.3f m/s\n", snap.Elapsed, render.FormatPosition(snap.Position), snap.Speed())
	}

	var last engine.Snapshot
	sched, err := engine.NewClockScheduler(session, engine.SchedulerConfig{
		Interval: cfg.Simulation.TickInterval,
		Step:     cfg.Simulation.Step,
		MaxTicks: cfg.Simulation.MaxTicks,
		OnTick: func(snap engine.Snapshot) {
			last = snap
			if snap.Ticks%every == 0 {
				printSample(snap)
			}
		},
		StopWhen: belowGround,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if err := session.Launch(); err != nil {
		return err
	}

	sched.Start(ctx)
	<-sched.Done()

	reason, err := sched.Result()
	if err != nil {
		return fmt.Errorf("simulation stopped: %w", err)
	}
	// Final sample unless it was just printed
	if last.Ticks%every != 0 {
		printSample(last)
	}
	if writeErr != nil {
		return fmt.Errorf("write trajectory: %w", writeErr)
	}

	_, err = fmt.Fprintf(out, "stopped: %s after %d ticks\n", reason, sched.TickCount())
	return err
}
