//go:build linux

package linux

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoSleeper(t *testing.T) {
	clock := NewMonotonicClock()
	start := clock.Now()
	deadline := start.Add(int64(20 * time.Millisecond))

	NanoSleeper{}.SleepUntil(deadline)
	assert.False(t, clock.Now().Before(deadline))

	// Past deadlines return immediately
	NanoSleeper{}.SleepUntil(start)
}

func TestConsoleSleepsUntilDeadline(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	clock := NewMonotonicClock()
	console := NewConsole(int(r.Fd()), clock, zerolog.Nop())

	deadline := clock.Now().Add(int64(20 * time.Millisecond))
	console.SleepUntil(deadline)
	assert.False(t, console.Ready())
	assert.False(t, clock.Now().Before(deadline))
}

func TestConsoleWakesOnInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	clock := NewMonotonicClock()
	console := NewConsole(int(r.Fd()), clock, zerolog.Nop())

	_, err = w.Write([]byte("get_clock\n"))
	require.NoError(t, err)

	start := clock.Now()
	console.SleepUntil(start.AddSeconds(10))
	assert.True(t, console.Ready())
	assert.Less(t, clock.Now().Duration(start), 5*time.Second)

	buf := make([]byte, 64)
	n, err := console.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "get_clock\n", string(buf[:n]))
}

func TestConsoleDetached(t *testing.T) {
	clock := NewMonotonicClock()
	console := NewConsole(-1, clock, zerolog.Nop())
	assert.Equal(t, -1, console.Fd())

	deadline := clock.Now().Add(int64(5 * time.Millisecond))
	console.SleepUntil(deadline)
	assert.False(t, console.Ready())
	assert.False(t, clock.Now().Before(deadline))

	_, err := console.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrConsoleDetached)
}
