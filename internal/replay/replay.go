// Package replay records the raw touches of a play and judges them again.
//
// Only input is stored. Grades are recomputed on load, so a replay can be
// judged again under a different judge config.
package replay

import (
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/session"
	"git.lost.host/meutraa/tapline/internal/touch"
)

// Frame is the raw touch state of one game frame
type Frame struct {
	Time    time.Duration
	Touches []touch.Raw
}

type Replay struct {
	ID      string
	Sum     string // Chart hash
	Created time.Time
	Config  judge.Config
	Screen  screen.Adapter // Touches are in its coordinates
	Frames  []Frame
}

type Recorder struct {
	frames []Frame
}

// Record copies the touches of a frame
func (r *Recorder) Record(now time.Duration, raws []touch.Raw) {
	frame := Frame{Time: now}
	if len(raws) > 0 {
		frame.Touches = make([]touch.Raw, len(raws))
		copy(frame.Touches, raws)
	}
	r.frames = append(r.frames, frame)
}

func (r *Recorder) Frames() []Frame { return r.frames }

func (r *Recorder) Len() int { return len(r.frames) }

// Compact drops every frame inside a run of touchless frames, keeping the
// first and last of the run. A touchless frame can only age notes out or
// settle holds, so the grades of a compacted replay are unchanged, only
// the time a miss is reported may move later within the run.
func Compact(frames []Frame) []Frame {
	out := make([]Frame, 0, len(frames))
	for i, f := range frames {
		if len(f.Touches) == 0 && i > 0 && i < len(frames)-1 &&
			len(frames[i-1].Touches) == 0 && len(frames[i+1].Touches) == 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Run judges the frames in a new session over the chart. Events reference
// the chart notes.
func Run(chart *game.Chart, cfg judge.Config, screen touch.Screen, lanes judge.Lanes, frames []Frame) ([]judge.Event, error) {
	s, err := session.New(chart, cfg, screen, lanes)
	if nil != err {
		return nil, err
	}
	events := []judge.Event{}
	for _, f := range frames {
		events = append(events, s.Step(f.Time, f.Touches)...)
	}
	return events, nil
}

// Judge runs the replay against the chart with the given config, in the
// screen it was recorded on
func (r *Replay) Judge(chart *game.Chart, cfg judge.Config) ([]judge.Event, error) {
	return Run(chart, cfg, &r.Screen, &r.Screen, r.Frames)
}
