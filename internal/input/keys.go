// Package input turns key presses into synthetic touches.
//
// A terminal only reports presses, plus autorepeat while a key is held. A
// lane key starts a touch and keeps it alive for a sustain window after
// every press or repeat, so holding the key holds the touch. A press
// arriving within the repeat gap of the previous one is autorepeat and
// moves the touch, a later press begins it again. The shifted key flicks.
package input

import (
	"time"
	"unicode"

	"git.lost.host/meutraa/tapline/internal/touch"
	"github.com/pkg/errors"
)

var ErrLanes = errors.New("every key needs exactly one lane position")

type lane struct {
	key rune
	x   float64 // Normalized note position

	// Since the last frame
	pressed bool
	flicked bool
	gap     time.Duration

	active bool
	last   time.Duration
}

type Keys struct {
	lanes   []lane
	sustain time.Duration
	repeat  time.Duration
	raws    []touch.Raw
}

func NewKeys(keys []rune, xs []float64, sustain, repeat time.Duration) (*Keys, error) {
	if len(keys) != len(xs) || len(keys) == 0 {
		return nil, errors.Wrapf(ErrLanes, "%d keys, %d positions", len(keys), len(xs))
	}
	k := &Keys{lanes: make([]lane, len(keys)), sustain: sustain, repeat: repeat}
	for i, key := range keys {
		k.lanes[i] = lane{key: key, x: xs[i]}
	}
	return k, nil
}

// Press records a key press. It reports false if the key has no lane.
func (k *Keys) Press(key rune, now time.Duration) bool {
	for i := range k.lanes {
		l := &k.lanes[i]
		switch {
		case l.key == key:
			if !l.pressed {
				l.gap = now - l.last
			}
			l.pressed = true
		case unicode.IsUpper(key) && unicode.ToLower(key) == l.key:
			l.flicked = true
		default:
			continue
		}
		l.last = now
		return true
	}
	return false
}

// Touches returns the touch state of this frame. place converts a lane
// position to a screen point. The slice is reused by the next call.
func (k *Keys) Touches(now time.Duration, place func(x float64) touch.Point) []touch.Raw {
	k.raws = k.raws[:0]
	for i := range k.lanes {
		l := &k.lanes[i]
		var phase touch.Phase
		switch {
		case l.flicked:
			phase = touch.Moved
			l.active = true
		case l.pressed && (!l.active || l.gap > k.repeat):
			phase = touch.Began
			l.active = true
		case l.pressed:
			phase = touch.Moved
		case !l.active:
			continue
		case now-l.last > k.sustain:
			phase = touch.Ended
			l.active = false
		default:
			phase = touch.Stationary
		}
		l.pressed, l.flicked = false, false
		k.raws = append(k.raws, touch.Raw{Position: place(l.x), Phase: phase})
	}
	return k.raws
}

func (k *Keys) Len() int { return len(k.lanes) }
