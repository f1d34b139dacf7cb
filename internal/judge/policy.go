package judge

import (
	"math"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/touch"
)

// policy returns true when the note leaves the live set
type policy func(m *Machine, note *game.Note) bool

var policies = [...]policy{
	game.Tap:   tap,
	game.Hold:  startHold,
	game.Flick: flick,
	game.Drag:  drag,
}

func anyPhase(touch.Phase) bool { return true }

func phase(p touch.Phase) func(touch.Phase) bool {
	return func(q touch.Phase) bool { return p == q }
}

var (
	began = phase(touch.Began)
	moved = phase(touch.Moved)
)

// touching reports whether any touch accepted by the phase filter lands
// within the note tolerance on the note's line.
func (m *Machine) touching(note *game.Note, accept func(touch.Phase) bool) bool {
	x := m.lanes.ToGameXPos(note.X)
	tolerance := m.cfg.Tolerance()
	for i := 0; i < m.frame.Len(); i++ {
		if !accept(m.frame.Phase(i)) {
			continue
		}
		d, ok := m.frame.Distance(i, note.Line)
		if !ok || math.Abs(x-d) > tolerance {
			continue
		}
		return true
	}
	return false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func tap(m *Machine, note *game.Note) bool {
	if !m.touching(note, began) {
		return false
	}
	grade, ok := m.cfg.Grade(absDuration(m.now - note.JudgeTime))
	if !ok {
		return false
	}
	m.resolve(note, grade)
	return true
}

func flick(m *Machine, note *game.Note) bool {
	if !m.touching(note, moved) {
		return false
	}
	m.resolve(note, Perfect)
	return true
}

func drag(m *Machine, note *game.Note) bool {
	if note.JudgeTime > m.now || !m.touching(note, anyPhase) {
		return false
	}
	m.resolve(note, Perfect)
	return true
}

// startHold moves the note into the hold set when first contact is within
// the good window. The grade is kept until the hold ends or breaks.
func startHold(m *Machine, note *game.Note) bool {
	if !m.touching(note, anyPhase) {
		return false
	}
	grade, ok := m.cfg.Grade(absDuration(m.now - note.JudgeTime))
	if !ok || grade > Good {
		return false
	}
	m.holds.Add(hold{note: note, grade: grade})
	return true
}
