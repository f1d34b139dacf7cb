package game

import "time"

type Metadata struct {
	Name       string
	Level      string
	Charter    string
	Composer   string
	Music      string // Audio file, relative to the chart
	Background string
}

// BPM sets the tempo from Start onwards
type BPM struct {
	Start Timespan
	Value float64
}

// Chart is read only once loaded.
type Chart struct {
	Metadata Metadata
	Offset   time.Duration // Time of beat zero
	BPMs     []BPM
	Notes    []*Note
	Lines    []*Line
}

// Window returns a fresh per-beat view over the chart notes.
func (c *Chart) Window() *BeatWindow {
	return NewBeatWindow(c.Notes)
}

// LineSnapshots returns a view yielding every line once. Lines are not
// windowed, only their evaluation changes over time.
func (c *Chart) LineSnapshots() *LineSnapshots {
	return &LineSnapshots{lines: c.Lines}
}

func (c *Chart) Timeline() (*Timeline, error) {
	return NewTimeline(c.Offset, c.BPMs)
}

// Resolve sets the judge and end times of every note from the timeline.
func (c *Chart) Resolve(tl *Timeline) {
	for _, note := range c.Notes {
		note.JudgeTime = tl.TimeAt(note.Start)
		note.EndTime = tl.TimeAt(note.End)
	}
}

func (c *Chart) Count(t NoteType) int {
	count := 0
	for _, note := range c.Notes {
		if note.Type == t {
			count++
		}
	}
	return count
}

// Line returns the line with the given id
func (c *Chart) Line(id uint) (*Line, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

type LineSnapshots struct {
	lines []*Line
	done  bool
}

func (s *LineSnapshots) Next() ([]*Line, bool) {
	if s.done {
		return nil, false
	}
	s.done = true
	return s.lines, true
}
