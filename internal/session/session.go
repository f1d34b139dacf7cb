// Package session runs the per frame pipeline for one chart: line poses,
// touch projection, then judging.
package session

import (
	"math"
	"time"

	"git.lost.host/meutraa/tapline/internal/animate"
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/touch"
)

type Session struct {
	chart     *game.Chart
	timeline  *game.Timeline
	animator  *animate.Animator
	projector *touch.Projector
	machine   *judge.Machine

	// Presentation view, independent of the machine
	window  *game.BeatWindow
	visible []*game.Note
	beat    int

	poses []touch.LinePose
}

// New prepares a session. Note times are resolved from the chart tempo.
func New(chart *game.Chart, cfg judge.Config, screen touch.Screen, lanes judge.Lanes) (*Session, error) {
	tl, err := chart.Timeline()
	if nil != err {
		return nil, err
	}
	chart.Resolve(tl)

	machine, err := judge.New(cfg, lanes, chart.Notes)
	if nil != err {
		return nil, err
	}

	return &Session{
		chart:     chart,
		timeline:  tl,
		animator:  animate.New(chart.Lines),
		projector: touch.NewProjector(screen),
		machine:   machine,
		window:    chart.Window(),
	}, nil
}

// Step runs one frame at clock time now. Every landing distance is computed
// before any note is judged. The events are valid until the next Step.
func (s *Session) Step(now time.Duration, raws []touch.Raw) []judge.Event {
	beats := s.timeline.BeatsAt(now)
	s.poses = s.animator.Poses(beats)
	frame := s.projector.Project(raws, s.poses)
	s.seek(beats)
	return s.machine.Advance(frame, now)
}

func (s *Session) seek(beats game.Timespan) {
	b := int(math.Floor(beats.Beats))
	if b < s.beat {
		return
	}
	s.visible = s.window.Seek(b)
	s.beat = b + 1
}

// Visible returns the chart notes covering the current beat, judged or not
func (s *Session) Visible() []*game.Note { return s.visible }

// Poses returns the line poses of the last step
func (s *Session) Poses() []touch.LinePose { return s.poses }

func (s *Session) Beats(now time.Duration) game.Timespan {
	return s.timeline.BeatsAt(now)
}

func (s *Session) Machine() *judge.Machine { return s.machine }

func (s *Session) Chart() *game.Chart { return s.chart }

func (s *Session) Done() bool { return s.machine.Done() }

// End is the time of the last note end, or zero for an empty chart
func (s *Session) End() time.Duration {
	end := time.Duration(0)
	for _, note := range s.chart.Notes {
		end = max(end, note.EndTime, note.JudgeTime)
	}
	return end
}
