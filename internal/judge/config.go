package judge

import (
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid judge config")

// DefaultNoteWidth is the width of a note in game units
const DefaultNoteWidth = 2.5 * 0.88

// Config is fixed for the lifetime of a Machine.
type Config struct {
	Perfect   time.Duration
	Good      time.Duration
	Bad       time.Duration
	NoteWidth float64
	Autoplay  bool
}

func DefaultConfig() Config {
	return Config{
		Perfect:   80 * time.Millisecond,
		Good:      150 * time.Millisecond,
		Bad:       350 * time.Millisecond,
		NoteWidth: DefaultNoteWidth,
	}
}

func (c Config) Validate() error {
	if c.Perfect <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "perfect window %v must be positive", c.Perfect)
	}
	if c.Good < c.Perfect || c.Bad < c.Good {
		return errors.Wrapf(ErrInvalidConfig, "windows %v/%v/%v must be ascending", c.Perfect, c.Good, c.Bad)
	}
	if c.NoteWidth <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "note width %v must be positive", c.NoteWidth)
	}
	return nil
}

// Tolerance is the largest distance between a landing point and a note
// that still counts as touching it.
func (c Config) Tolerance() float64 {
	return c.NoteWidth / 1.75
}

// Grade classifies an absolute timing offset. ok is false when the offset
// is outside every window.
func (c Config) Grade(offset time.Duration) (Grade, bool) {
	for i, window := range [...]time.Duration{c.Perfect, c.Good, c.Bad} {
		if offset < window {
			return Grades[i], true
		}
	}
	return Miss, false
}
