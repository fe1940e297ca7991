//go:build linux

// gopper-linux runs the firmware scheduler as an ordinary Linux process.
// The hardware timer is emulated from CLOCK_MONOTONIC and the main loop
// sleeps on the console descriptor between timer events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"gopper-linux/core"
	"gopper-linux/targets/linux"
)

// Config holds process configuration
type Config struct {
	LogLevel  string
	ConsoleFd int
	Heartbeat time.Duration
}

// DefaultConfig returns the default process configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		ConsoleFd: 0, // stdin
		Heartbeat: 500 * time.Millisecond,
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := DefaultConfig()

	flagSet := pflag.NewFlagSet("gopper-linux", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	flagSet.IntVar(&cfg.ConsoleFd, "console-fd", cfg.ConsoleFd, "console file descriptor to watch (-1 for none)")
	flagSet.DurationVar(&cfg.Heartbeat, "heartbeat", cfg.Heartbeat, "interval of the heartbeat timer")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runMCU(ctx, cfg, logger)
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nil
}

// heartbeatTicks converts the heartbeat interval to timer ticks
func heartbeatTicks(d time.Duration) (uint32, error) {
	if d <= 0 || d >= time.Second {
		return 0, fmt.Errorf("heartbeat must be between 0 and 1s, got %v", d)
	}
	ticks := core.TimerFromUS(uint32(d / time.Microsecond))
	if ticks == 0 {
		return 0, fmt.Errorf("heartbeat %v is shorter than one timer tick", d)
	}
	return ticks, nil
}

func runMCU(ctx context.Context, cfg *Config, logger zerolog.Logger) error {
	interval, err := heartbeatTicks(cfg.Heartbeat)
	if err != nil {
		return err
	}

	clock := linux.NewMonotonicClock()
	console := linux.NewConsole(cfg.ConsoleFd, clock, logger.With().Str("component", "console").Logger())
	sched := core.NewScheduler(linux.NopIRQ{})

	timerCfg := linux.DefaultTimerConfig()
	timerCfg.Logger = logger.With().Str("component", "timer").Logger()
	tmr, err := linux.NewTimer(clock, sched, console, timerCfg)
	if err != nil {
		return fmt.Errorf("failed to create timer: %w", err)
	}
	sched.SetHardware(tmr)

	linux.RegisterConstants()
	for _, c := range core.Constants() {
		logger.Info().Str("name", c.Name).Interface("value", c.Value).Msg("constant")
	}

	var beats uint64
	heartbeat := &core.Timer{WakeTime: tmr.ReadTime() + interval}
	heartbeat.Handler = func(t *core.Timer) uint8 {
		beats++
		t.WakeTime += interval
		return core.SF_RESCHEDULE
	}
	sched.AddTimer(heartbeat)

	logger.Info().
		Int("console_fd", console.Fd()).
		Dur("heartbeat", cfg.Heartbeat).
		Int64("start_sec", tmr.StartSec()).
		Msg("timer started")

	var statsDeadline linux.Timespec
	buf := make([]byte, 4096)
	for ctx.Err() == nil {
		tmr.Poll()

		if tmr.CheckPeriodic(&statsDeadline) {
			stats := sched.Stats()
			logger.Debug().
				Uint32("clock", tmr.ReadTime()).
				Uint64("beats", beats).
				Uint64("dispatched", stats.Dispatched).
				Uint64("deferred", stats.Deferred).
				Int("pending", sched.Pending()).
				Msg("status")
		}

		tmr.Wait()

		if console.Ready() {
			n, err := console.Read(buf)
			if err != nil || n == 0 {
				logger.Warn().Err(err).Msg("console closed, detaching")
				console.Detach()
				continue
			}
			logger.Debug().Int("bytes", n).Msg("console input")
			// Commands may schedule new timers
			tmr.Kick()
		}
	}

	for _, evt := range sched.Timing() {
		logger.Debug().
			Str("event", core.EventName(evt.EventType)).
			Uint32("clock", evt.Clock).
			Uint32("v1", evt.Value1).
			Uint32("v2", evt.Value2).
			Msg("timing")
	}
	logger.Info().Uint64("beats", beats).Msg("shutting down")
	return nil
}
