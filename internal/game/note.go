package game

import (
	"math"
	"time"
)

type NoteType uint8

const (
	Tap NoteType = iota
	Hold
	Flick
	Drag
)

func (t NoteType) String() string {
	switch t {
	case Tap:
		return "tap"
	case Hold:
		return "hold"
	case Flick:
		return "flick"
	case Drag:
		return "drag"
	}
	return "unknown"
}

// Note is a single playable event. Notes are compared by pointer, two notes
// with identical fields are still different notes.
type Note struct {
	Type  NoteType
	Start Timespan
	End   Timespan // Equal to Start for everything but holds
	X     float64  // Normalized position along the owning line
	Line  uint     // Id of the owning line

	// Resolved from Start and End by a Timeline
	JudgeTime time.Duration
	EndTime   time.Duration
}

// Span returns the first and last integer beat the note covers,
// floor(start) and ceil(end).
func (n *Note) Span() (int, int) {
	return int(math.Floor(n.Start.Beats)), int(math.Ceil(n.End.Beats))
}
