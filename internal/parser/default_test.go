package parser

import (
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/tapline/internal/game"
	"github.com/pkg/errors"
)

const yamlChart = `
meta:
  name: Two
offset: 0.1
bpms:
  - {start: [2, 0, 1], value: 60}
  - {start: 0, value: 120}
lines:
  - id: 3
    events:
      - {type: rotate, begin: [0, 1, 2], end: [1, 5, 4], from: 0, to: 45}
notes:
  - {type: hold, start: [1, 0, 1], end: [0, 10, 4], x: 0.5, line: 3}
  - {type: tap, start: [0, 1, 2], x: 1, line: 3}
---
bpms:
  - {start: 0, value: 60}
lines:
  - id: 0
notes:
  - {type: drag, start: 1.5, line: 0}
`

func TestDecode(t *testing.T) {
	charts, err := (&DefaultParser{}).Decode(strings.NewReader(yamlChart))
	if nil != err {
		t.Fatal(err)
	}
	if len(charts) != 2 {
		t.Fatalf("expected 2 charts, got %d", len(charts))
	}

	c := charts[0]
	if c.Metadata.Name != "Two" || c.Offset != 100*time.Millisecond {
		t.Errorf("unexpected metadata %v offset %v", c.Metadata, c.Offset)
	}
	if len(c.Notes) != 2 || len(c.Lines) != 1 {
		t.Fatalf("unexpected chart %v", c)
	}

	// Sorted by start
	tap, hold := c.Notes[0], c.Notes[1]
	if tap.Type != game.Tap || hold.Type != game.Hold {
		t.Fatalf("unexpected note order %v %v", tap.Type, hold.Type)
	}
	if tap.Start.Beats != 0.5 || !tap.End.Equal(tap.Start) {
		t.Errorf("unexpected tap span %v - %v", tap.Start, tap.End)
	}
	if hold.End.Beats != 2.5 {
		t.Errorf("expected the hold end to carry to 2.5, got %v", hold.End.Beats)
	}
	if tap.JudgeTime != 350*time.Millisecond {
		t.Errorf("expected tap at 350ms, got %v", tap.JudgeTime)
	}
	// 2 beats at 120 then half a beat at 60
	if hold.EndTime != 1600*time.Millisecond {
		t.Errorf("expected hold end at 1.6s, got %v", hold.EndTime)
	}

	e := c.Lines[0].Events[0]
	if c.Lines[0].ID != 3 || e.Type != game.Rotate || e.End.Beats != 2.25 || e.EndValue != 45 {
		t.Errorf("unexpected line event %v", e)
	}

	if d := charts[1].Notes[0]; d.Type != game.Drag || d.JudgeTime != 1500*time.Millisecond {
		t.Errorf("unexpected drag %v", d)
	}
}

var invalidCharts = map[string]string{
	"no documents":      ``,
	"zero denominator":  "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: tap, start: [1, 1, 0]}]",
	"short timespan":    "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: tap, start: [1, 1]}]",
	"unknown note type": "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: slide, start: 1}]",
	"unknown line":      "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: tap, start: 1, line: 2}]",
	"tap with end":      "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: tap, start: 1, end: 2}]",
	"backwards hold":    "bpms: [{start: 0, value: 60}]\nlines: [{id: 0}]\nnotes: [{type: hold, start: 2, end: 1}]",
	"unknown field":     "bpms: [{start: 0, value: 60}]\nspeed: 2",
	"no bpm":            "lines: [{id: 0}]",
	"unknown event":     "bpms: [{start: 0, value: 60}]\nlines: [{id: 0, events: [{type: scale}]}]",
}

func TestDecodeInvalid(t *testing.T) {
	for name, data := range invalidCharts {
		_, err := (&DefaultParser{}).Decode(strings.NewReader(data))
		if nil == err {
			t.Errorf("%s: expected an error", name)
			continue
		}
		if !errors.Is(err, ErrFormat) && !errors.Is(err, game.ErrInvalidArgument) {
			t.Errorf("%s: unexpected error %v", name, err)
		}
	}
}

func TestForFile(t *testing.T) {
	tests := map[string]bool{
		"chart.yaml": true,
		"chart.YML":  true,
		"song.sm":    true,
		"song.ssc":   false,
	}
	for file, ok := range tests {
		_, err := ForFile(file)
		if (nil == err) != ok {
			t.Errorf("%s: unexpected result %v", file, err)
		}
	}
}
