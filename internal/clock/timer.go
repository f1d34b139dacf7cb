package clock

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrPaused    = errors.New("timer is already paused")
	ErrNotPaused = errors.New("timer is not paused")
)

// TimeProvider is a monotonic time source
type TimeProvider interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// Timer is the game clock: time since the last Reset, minus every pause.
// It is driven from the frame loop and is not safe for concurrent use.
type Timer struct {
	source TimeProvider

	start      time.Time
	paused     bool
	pauseStart time.Time
	pausedFor  time.Duration
}

func New() *Timer {
	return NewWithProvider(systemTime{})
}

func NewWithProvider(source TimeProvider) *Timer {
	t := &Timer{source: source}
	t.Reset()
	return t
}

// Reset restarts the clock from zero, clearing any pause.
func (t *Timer) Reset() {
	t.start = t.source.Now()
	t.paused = false
	t.pauseStart = time.Time{}
	t.pausedFor = 0
}

func (t *Timer) Pause() error {
	if t.paused {
		return ErrPaused
	}
	t.paused = true
	t.pauseStart = t.source.Now()
	return nil
}

func (t *Timer) Resume() error {
	if !t.paused {
		return ErrNotPaused
	}
	t.paused = false
	t.pausedFor += t.source.Now().Sub(t.pauseStart)
	return nil
}

func (t *Timer) Paused() bool { return t.paused }

// Time is frozen while paused
func (t *Timer) Time() time.Duration {
	now := t.source.Now()
	if t.paused {
		now = t.pauseStart
	}
	return now.Sub(t.start) - t.pausedFor
}
