// Package animate evaluates line events into per frame line poses.
//
// Every event is interpolated linearly, the easing selector is not
// interpreted. Move values are world units, rotation is in degrees.
package animate

import (
	"math"
	"sort"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/touch"
)

type Animator struct {
	lines  []*game.Line
	events [][]game.LineEvent // Per line, sorted by begin
	poses  []touch.LinePose
}

func New(lines []*game.Line) *Animator {
	a := &Animator{
		lines:  lines,
		events: make([][]game.LineEvent, len(lines)),
		poses:  make([]touch.LinePose, len(lines)),
	}
	for i, line := range lines {
		events := make([]game.LineEvent, len(line.Events))
		copy(events, line.Events)
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Begin.Before(events[j].Begin)
		})
		a.events[i] = events
	}
	return a
}

// Poses returns the pose of every line at the given beat. The slice is
// reused by the next call.
func (a *Animator) Poses(at game.Timespan) []touch.LinePose {
	for i, line := range a.lines {
		events := a.events[i]
		a.poses[i] = touch.LinePose{
			ID: line.ID,
			Position: touch.Point{
				X: Value(events, game.MoveX, at),
				Y: Value(events, game.MoveY, at),
			},
			Rotation: Value(events, game.Rotate, at) * math.Pi / 180,
		}
	}
	return a.poses
}

// Value is the value of one property at the given beat. Events must be
// sorted by begin. Before the first event the value is its begin value,
// between events it holds the last end value, without events it is zero.
func Value(events []game.LineEvent, t game.EventType, at game.Timespan) float64 {
	value, seen := 0.0, false
	for _, e := range events {
		if e.Type != t {
			continue
		}
		if at.Before(e.Begin) {
			if !seen {
				return e.BeginValue
			}
			break
		}
		seen = true
		if !at.Before(e.End) {
			value = e.EndValue
			continue
		}
		progress := (at.Beats - e.Begin.Beats) / (e.End.Beats - e.Begin.Beats)
		return e.BeginValue + (e.EndValue-e.BeginValue)*progress
	}
	return value
}
