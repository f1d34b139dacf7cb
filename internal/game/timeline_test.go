package game

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestTimeline(t *testing.T) {
	tl, err := NewTimeline(100*time.Millisecond, []BPM{
		{Start: At(4), Value: 60},
		{Start: Zero, Value: 120},
	})
	if nil != err {
		t.Fatal(err)
	}

	tests := map[float64]time.Duration{
		0:  100 * time.Millisecond,
		1:  600 * time.Millisecond,
		2:  1100 * time.Millisecond,
		4:  2100 * time.Millisecond,
		6:  4100 * time.Millisecond,
		-2: -900 * time.Millisecond,
	}
	for beats, expected := range tests {
		if got := tl.TimeAt(At(beats)); got != expected {
			t.Errorf("TimeAt(%v) = %v, expected %v", beats, got, expected)
		}
		if got := tl.BeatsAt(expected); got.Beats != beats {
			t.Errorf("BeatsAt(%v) = %v, expected %v", expected, got.Beats, beats)
		}
	}
}

func TestTimelineInvalid(t *testing.T) {
	if _, err := NewTimeline(0, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for no bpms, got %v", err)
	}
	if _, err := NewTimeline(0, []BPM{{Value: 0}}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for zero bpm, got %v", err)
	}
}

func TestChartResolve(t *testing.T) {
	hold := &Note{Type: Hold, Start: At(1), End: At(3)}
	c := &Chart{
		BPMs:  []BPM{{Value: 120}},
		Notes: []*Note{hold, {Type: Tap, Start: At(2), End: At(2)}},
	}
	tl, err := c.Timeline()
	if nil != err {
		t.Fatal(err)
	}
	c.Resolve(tl)
	if hold.JudgeTime != 500*time.Millisecond || hold.EndTime != 1500*time.Millisecond {
		t.Errorf("hold resolved to %v - %v", hold.JudgeTime, hold.EndTime)
	}
	if c.Count(Hold) != 1 || c.Count(Tap) != 1 || c.Count(Drag) != 0 {
		t.Error("unexpected note counts")
	}
}
