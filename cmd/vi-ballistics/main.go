package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/vi-ballistics/audio"
	"github.com/lixenwraith/vi-ballistics/config"
	"github.com/lixenwraith/vi-ballistics/core"
	"github.com/lixenwraith/vi-ballistics/engine"
	"github.com/lixenwraith/vi-ballistics/logging"
	"github.com/lixenwraith/vi-ballistics/telemetry"
)

const (
	logFileName  = "vi-ballistics.log"
	otelFileName = "vi-ballistics.otel.log"
	meterName    = "github.com/lixenwraith/vi-ballistics/engine"
)

var (
	configFlag   = flag.String("config", "", "Path to config file (json, toml, yaml)")
	headlessFlag = flag.Bool("headless", false, "Run one shot without a terminal UI and print the trajectory")
	debugFlag    = flag.Bool("debug", false, "Enable debug logging")
	maxTicksFlag = flag.Uint64("max-ticks", 0, "Tick limit for headless runs, 0 keeps the config value")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-ballistics: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *debugFlag {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	if *maxTicksFlag > 0 {
		cfg.Simulation.MaxTicks = *maxTicksFlag
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The terminal UI owns the screen, so only headless runs log to the console
	var console io.Writer
	if *headlessFlag {
		console = os.Stderr
	}
	logger, provider, shutdown, err := setupLogging(ctx, cfg, console)
	if err != nil {
		return err
	}
	defer shutdown()

	session, err := engine.NewSession(cfg.Parameters(),
		engine.WithLogger(logger),
		engine.WithMeter(provider.Meter(meterName)),
	)
	if err != nil {
		return fmt.Errorf("initial parameters: %w", err)
	}
	defer session.Close()

	if *headlessFlag {
		return runHeadless(ctx, cfg, session, os.Stdout, logger)
	}

	sound := audio.NewSoundManager(audio.Config{
		Enabled:    cfg.Audio.Enabled,
		Volume:     cfg.Audio.Volume,
		SampleRate: cfg.Audio.SampleRate,
	}, logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("Audio unavailable, continuing without sound", "error", err)
	}
	defer sound.Cleanup()

	return runTerminal(ctx, cfg, session, sound, logger)
}

// setupLogging wires the log file, the optional OTel provider and the slog fan-out
// The returned shutdown flushes and closes everything it opened
func setupLogging(ctx context.Context, cfg *config.Config, console io.Writer) (*slog.Logger, *telemetry.Provider, func(), error) {
	var closers []func()
	shutdown := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var file io.Writer
	if cfg.LogsDir != "" {
		f, err := logging.OpenLogFile(cfg.LogsDir, logFileName, logging.MaxLogSize)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, func() { _ = f.Close() })
		file = f
	}

	otelCfg := telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
		Insecure: cfg.Telemetry.Insecure,
	}
	if cfg.Telemetry.Enabled && cfg.LogsDir != "" {
		f, err := logging.OpenLogFile(cfg.LogsDir, otelFileName, logging.MaxLogSize)
		if err != nil {
			shutdown()
			return nil, nil, nil, err
		}
		closers = append(closers, func() { _ = f.Close() })
		otelCfg.LogWriter = f
	}

	provider, err := telemetry.New(ctx, otelCfg)
	if err != nil {
		shutdown()
		return nil, nil, nil, fmt.Errorf("telemetry: %w", err)
	}
	closers = append(closers, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(sctx)
	})

	m := logging.NewSlogManager()
	m.Setup(file, cfg.LogLevel, provider.LoggerProvider(), console)
	slog.SetDefault(m.Logger())

	return m.Logger(), provider, shutdown, nil
}
