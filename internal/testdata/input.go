package testdata

import (
	"math"
	"time"

	"git.lost.host/meutraa/tapline/internal/animate"
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/touch"
)

// Input is the world space touch state of one frame
type Input struct {
	Time    time.Duration
	Touches []touch.Raw
}

// PerfectInput plays the chart flawlessly, one Input per step. Taps, flicks
// and drags are touched on the first frame at or after their judge time,
// holds are touched from then until one step past their end.
func PerfectInput(chart *game.Chart, toGameX func(float64) float64, step time.Duration) ([]Input, error) {
	tl, err := chart.Timeline()
	if nil != err {
		return nil, err
	}
	chart.Resolve(tl)
	animator := animate.New(chart.Lines)

	end := time.Duration(0)
	for _, n := range chart.Notes {
		end = max(end, n.EndTime)
	}
	end += 500 * time.Millisecond

	started := map[*game.Note]bool{}
	inputs := []Input{}
	for t := time.Duration(0); t <= end; t += step {
		poses := map[uint]touch.LinePose{}
		for _, pose := range animator.Poses(tl.BeatsAt(t)) {
			poses[pose.ID] = pose
		}

		touches := []touch.Raw{}
		for _, n := range chart.Notes {
			if t < n.JudgeTime {
				continue
			}
			phase := touch.Stationary
			switch n.Type {
			case game.Hold:
				if t > n.EndTime+step {
					continue
				}
				if !started[n] {
					phase = touch.Began
				}
			default:
				if started[n] {
					continue
				}
				phase = map[game.NoteType]touch.Phase{
					game.Tap:   touch.Began,
					game.Flick: touch.Moved,
					game.Drag:  touch.Stationary,
				}[n.Type]
			}
			started[n] = true

			pose := poses[n.Line]
			d := toGameX(n.X)
			touches = append(touches, touch.Raw{
				Position: touch.Point{
					X: pose.Position.X + d*math.Cos(pose.Rotation),
					Y: pose.Position.Y + d*math.Sin(pose.Rotation),
				},
				Phase: phase,
			})
		}
		inputs = append(inputs, Input{Time: t, Touches: touches})
	}
	return inputs, nil
}
