// Package judge matches per-frame touches against chart notes and grades
// them.
//
// A Machine owns the set of notes that have not been judged yet and the set
// of holds in progress. Both are unordered lists, removal swaps the last
// element into the freed slot. Within a frame notes are scanned in list
// order, which breaks ties between notes competing for the same touch.
package judge

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/touch"
	"git.lost.host/meutraa/tapline/internal/unordered"
)

// Lanes maps a normalized note position to a game space offset
type Lanes interface {
	ToGameXPos(x float64) float64
}

type LanesFunc func(x float64) float64

func (f LanesFunc) ToGameXPos(x float64) float64 { return f(x) }

// Event is emitted once for every note, when it resolves
type Event struct {
	Note  *game.Note
	Grade Grade
	Time  time.Duration // Clock time of the resolving frame
}

type hold struct {
	note  *game.Note
	grade Grade // Decided on first contact
}

type Machine struct {
	cfg   Config
	lanes Lanes

	live  *unordered.List[*game.Note]
	holds *unordered.List[hold]

	// Per frame state
	frame  touch.Frame
	now    time.Duration
	events []Event
}

// New returns a Machine judging the given notes. The notes must have their
// judge times resolved.
func New(cfg Config, lanes Lanes, notes []*game.Note) (*Machine, error) {
	if err := cfg.Validate(); nil != err {
		return nil, err
	}
	return &Machine{
		cfg:   cfg,
		lanes: lanes,
		live:  unordered.New(notes...),
		holds: unordered.New[hold](),
	}, nil
}

// Advance runs one frame against the projected touches at clock time now
// and returns the notes resolved in it. The returned slice is reused by the
// next call.
func (m *Machine) Advance(frame touch.Frame, now time.Duration) []Event {
	m.frame, m.now = frame, now
	m.events = m.events[:0]

	m.live.RemoveFunc(m.judgeNote)
	m.holds.RemoveFunc(m.updateHold)

	m.frame = touch.Frame{}
	return m.events
}

// Pending is the number of notes not judged yet, holds in progress excluded
func (m *Machine) Pending() int { return m.live.Len() }

// Holding is the number of holds in progress
func (m *Machine) Holding() int { return m.holds.Len() }

// Done reports whether every note has resolved
func (m *Machine) Done() bool {
	return m.live.Len() == 0 && m.holds.Len() == 0
}

func (m *Machine) Config() Config { return m.cfg }

func (m *Machine) resolve(note *game.Note, grade Grade) {
	m.events = append(m.events, Event{Note: note, Grade: grade, Time: m.now})
}

// judgeNote returns true when the note leaves the live set
func (m *Machine) judgeNote(note *game.Note) bool {
	if m.cfg.Autoplay {
		if note.JudgeTime <= m.now {
			m.resolve(note, Perfect)
			return true
		}
		return false
	}

	if note.JudgeTime-m.now > m.cfg.Bad {
		return false
	}
	if m.now-note.JudgeTime > m.cfg.Bad {
		m.resolve(note, Miss)
		return true
	}

	if int(note.Type) >= len(policies) {
		return false
	}
	return policies[note.Type](m, note)
}

// updateHold returns true when the hold resolves
func (m *Machine) updateHold(h hold) bool {
	if h.note.EndTime <= m.now {
		m.resolve(h.note, h.grade)
		return true
	}
	if !m.touching(h.note, anyPhase) {
		m.resolve(h.note, Miss)
		return true
	}
	return false
}
