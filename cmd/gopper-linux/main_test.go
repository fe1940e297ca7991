//go:build linux

package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestRunMCUStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleFd = -1
	cfg.Heartbeat = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, runMCU(ctx, cfg, zerolog.Nop()))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRunMCURejectsHeartbeat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleFd = -1
	cfg.Heartbeat = 0
	assert.Error(t, runMCU(context.Background(), cfg, zerolog.Nop()))
}

func TestHeartbeatTicks(t *testing.T) {
	ticks, err := heartbeatTicks(10 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, uint32(500000), ticks)

	ticks, err = heartbeatTicks(time.Microsecond)
	require.NoError(t, err)
	assert.Equal(t, uint32(50), ticks)

	// Rounds down to zero ticks and would never advance
	for _, d := range []time.Duration{500 * time.Nanosecond, time.Nanosecond, 0, -time.Millisecond, time.Second} {
		_, err := heartbeatTicks(d)
		assert.Error(t, err, "heartbeat %v", d)
	}

	cfg := DefaultConfig()
	cfg.ConsoleFd = -1
	cfg.Heartbeat = 500 * time.Nanosecond
	assert.Error(t, runMCU(context.Background(), cfg, zerolog.Nop()))
}
