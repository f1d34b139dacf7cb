package render

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/theme"
	"git.lost.host/meutraa/tapline/internal/touch"
)

// DefaultSpeed is how far ahead of its line a note is drawn, in world units
// per beat
const DefaultSpeed = 1.5

type cell struct {
	row, col int
}

// Field draws lines and notes in world space, plus the score panel
type Field struct {
	r       Renderer
	adapter *screen.Adapter
	theme   theme.Theme
	lanes   judge.Lanes
	Speed   float64

	drawn []cell
}

func NewField(r Renderer, adapter *screen.Adapter, th theme.Theme, lanes judge.Lanes) *Field {
	return &Field{r: r, adapter: adapter, theme: th, lanes: lanes, Speed: DefaultSpeed}
}

func (f *Field) cell(p touch.Point) (cell, bool) {
	s := f.adapter.WorldToScreen(p)
	c := cell{row: int(math.Floor(s.Y)) + 1, col: int(math.Floor(s.X)) + 1}
	if c.row < 1 || c.col < 1 || float64(c.row) > f.adapter.Height || float64(c.col) > f.adapter.Width {
		return c, false
	}
	return c, true
}

func (f *Field) put(p touch.Point, content string) {
	if c, ok := f.cell(p); ok {
		f.r.Fill(c.row, c.col, content)
		f.drawn = append(f.drawn, c)
	}
}

func (f *Field) erase() {
	for _, c := range f.drawn {
		f.r.Fill(c.row, c.col, " ")
	}
	f.drawn = f.drawn[:0]
}

// at is the world position of a point on a line, along its axis and then
// height above it
func at(pose touch.LinePose, along, height float64) touch.Point {
	sin, cos := math.Sincos(pose.Rotation)
	return touch.Point{
		X: pose.Position.X + along*cos - height*sin,
		Y: pose.Position.Y + along*sin + height*cos,
	}
}

// Draw replaces the previous frame with the given lines and every note
// for which pending is true
func (f *Field) Draw(poses []touch.LinePose, notes []*game.Note, pending func(*game.Note) bool, beats game.Timespan) {
	f.erase()

	step := f.adapter.WorldWidth / f.adapter.Width
	reach := f.adapter.WorldWidth
	for _, pose := range poses {
		for s := -reach; s <= reach; s += step {
			f.put(at(pose, s, 0), f.theme.RenderLine())
		}
	}

	for _, n := range notes {
		if !pending(n) {
			continue
		}
		var pose *touch.LinePose
		for i := range poses {
			if poses[i].ID == n.Line {
				pose = &poses[i]
				break
			}
		}
		if nil == pose {
			continue
		}

		along := f.lanes.ToGameXPos(n.X)
		head := max(n.Start.Beats-beats.Beats, 0) * f.Speed
		if n.Type == game.Hold {
			tail := (n.End.Beats - beats.Beats) * f.Speed
			for h := head + step; h < tail; h += step {
				f.put(at(*pose, along, h), f.theme.RenderHoldBody())
			}
		}
		f.put(at(*pose, along, head), f.theme.RenderNote(n.Type))
	}
}

// Stats draws the grade counts and the play time in the top left corner
func (f *Field) Stats(counts [len(judge.Grades)]int, combo int, now time.Duration) {
	for i, g := range judge.Grades {
		f.r.Fill(2+i, 2, fmt.Sprintf("%v:  %6v", f.theme.RenderGrade(g), counts[i]))
	}
	f.r.Fill(3+len(judge.Grades), 2, fmt.Sprintf("   Combo:  %6v", combo))
	f.r.Fill(4+len(judge.Grades), 2, fmt.Sprintf("    Time:  %6.1fs", now.Seconds()))
}

// Flash shows a grade at the top center for a number of frames
func (f *Field) Flash(g judge.Grade, frames int) {
	f.r.AddDecoration(2, int(f.adapter.Width/2)-4, f.theme.RenderGrade(g), frames)
}
