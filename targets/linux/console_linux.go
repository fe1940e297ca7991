//go:build linux

package linux

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ErrConsoleDetached is returned by Read when no descriptor is watched
var ErrConsoleDetached = errors.New("console detached")

// NanoSleeper sleeps on CLOCK_MONOTONIC with an absolute deadline
type NanoSleeper struct{}

var _ Sleeper = NanoSleeper{}

// SleepUntil blocks until deadline. A signal ends the sleep early.
func (NanoSleeper) SleepUntil(deadline Timespec) {
	ts := toUnixTimespec(deadline)
	err := unix.ClockNanosleep(unix.CLOCK_MONOTONIC, unix.TIMER_ABSTIME, &ts, nil)
	if err != nil && !errors.Is(err, unix.EINTR) {
		panic(fmt.Errorf("clock_nanosleep: %w", err))
	}
}

// Console sleeps while watching the firmware console file descriptor so
// that incoming commands end the sleep. With no descriptor attached it
// falls back to NanoSleeper.
type Console struct {
	fd    int
	clock Clock
	log   zerolog.Logger
	ready bool
	nano  NanoSleeper
}

var _ Sleeper = (*Console)(nil)

// NewConsole watches fd; pass a negative fd for no console
func NewConsole(fd int, clock Clock, logger zerolog.Logger) *Console {
	return &Console{
		fd:    fd,
		clock: clock,
		log:   logger,
	}
}

// Fd returns the watched descriptor, or -1
func (c *Console) Fd() int {
	return c.fd
}

// Detach stops watching the descriptor, e.g. after the peer hung up
func (c *Console) Detach() {
	c.fd = -1
	c.ready = false
}

// Ready reports whether the last sleep ended because the console had
// input or a hangup pending.
func (c *Console) Ready() bool {
	return c.ready
}

// SleepUntil blocks until deadline or until the console is readable
func (c *Console) SleepUntil(deadline Timespec) {
	c.ready = false
	if c.fd < 0 {
		c.nano.SleepUntil(deadline)
		return
	}

	timeout := deadline.Sub(c.clock.Now())
	if timeout < 0 {
		timeout = 0
	}
	tmo := unix.NsecToTimespec(timeout)
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}

	n, err := unix.Ppoll(fds, &tmo, nil)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return
		}
		panic(fmt.Errorf("ppoll console fd %d: %w", c.fd, err))
	}
	if n > 0 && fds[0].Revents != 0 {
		c.ready = true
		c.log.Trace().
			Int("fd", c.fd).
			Int16("revents", fds[0].Revents).
			Msg("console wakeup")
	}
}

// Read reads pending console input
func (c *Console) Read(buf []byte) (int, error) {
	if c.fd < 0 {
		return 0, ErrConsoleDetached
	}
	n, err := unix.Read(c.fd, buf)
	if err != nil {
		return 0, fmt.Errorf("read console fd %d: %w", c.fd, err)
	}
	return n, nil
}
