package game

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
)

type tempo struct {
	beat    float64
	bpm     float64
	seconds float64 // Time of beat, from beat zero
}

// Timeline maps chart beats to song time using piecewise constant tempo.
type Timeline struct {
	offset time.Duration
	tempos []tempo
}

// NewTimeline builds a timeline from the BPM changes of a chart. The first
// tempo also applies before its own start.
func NewTimeline(offset time.Duration, bpms []BPM) (*Timeline, error) {
	if len(bpms) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "timeline needs at least one bpm")
	}
	sorted := make([]BPM, len(bpms))
	copy(sorted, bpms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	tl := &Timeline{offset: offset, tempos: make([]tempo, 0, len(sorted))}
	for i, bpm := range sorted {
		if bpm.Value <= 0 || math.IsNaN(bpm.Value) || math.IsInf(bpm.Value, 0) {
			return nil, errors.Wrapf(ErrInvalidArgument, "bpm %v at beat %v", bpm.Value, bpm.Start.Beats)
		}
		t := tempo{beat: bpm.Start.Beats, bpm: bpm.Value}
		if i == 0 {
			t.seconds = t.beat * 60 / t.bpm
		} else {
			prev := tl.tempos[i-1]
			t.seconds = prev.seconds + (t.beat-prev.beat)*60/prev.bpm
		}
		tl.tempos = append(tl.tempos, t)
	}
	return tl, nil
}

func (tl *Timeline) TimeAt(ts Timespan) time.Duration {
	t := tl.tempos[0]
	for _, next := range tl.tempos[1:] {
		if ts.Beats < next.beat {
			break
		}
		t = next
	}
	seconds := t.seconds + (ts.Beats-t.beat)*60/t.bpm
	return tl.offset + time.Duration(math.Round(seconds*float64(time.Second)))
}

func (tl *Timeline) BeatsAt(d time.Duration) Timespan {
	seconds := (d - tl.offset).Seconds()
	t := tl.tempos[0]
	for _, next := range tl.tempos[1:] {
		if seconds < next.seconds {
			break
		}
		t = next
	}
	return At(t.beat + (seconds-t.seconds)*t.bpm/60)
}
