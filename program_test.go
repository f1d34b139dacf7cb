package main

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"git.lost.host/meutraa/tapline/internal/config"
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/touch"
)

func newProgram(chart string) *Program {
	return &Program{
		cfg:      &config.Config{Chart: chart},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolved: map[*game.Note]bool{},
	}
}

func TestLoad(t *testing.T) {
	p := newProgram("internal/testdata/chart.yaml")
	if err := p.load(); nil != err {
		t.Fatal(err)
	}
	if len(p.chart.Notes) != 11 {
		t.Errorf("expected the fixture notes, got %d", len(p.chart.Notes))
	}
	if p.audioFile != "internal/testdata/fixture.mp3" {
		t.Errorf("expected the music next to the chart, got %v", p.audioFile)
	}

	p = newProgram("internal/testdata")
	if err := p.load(); nil != err {
		t.Fatal(err)
	}
	if p.chartFile != "internal/testdata/chart.yaml" {
		t.Errorf("expected the chart in the directory, got %v", p.chartFile)
	}

	p = newProgram("internal/testdata/chart.yaml")
	p.cfg.Index = 1
	if err := p.load(); nil == err {
		t.Error("expected an error for a missing chart index")
	}
	if err := newProgram("").load(); nil == err {
		t.Error("expected an error without a chart")
	}
}

func TestJudged(t *testing.T) {
	p := newProgram("")
	notes := []*game.Note{{}, {}, {}}
	p.judged([]judge.Event{
		{Note: notes[0], Grade: judge.Perfect},
		{Note: notes[1], Grade: judge.Good},
	})
	if p.combo != 2 {
		t.Errorf("expected a combo of 2, got %d", p.combo)
	}
	p.judged([]judge.Event{{Note: notes[2], Grade: judge.Miss}})
	if p.combo != 0 || p.counts != [len(judge.Grades)]int{1, 1, 0, 1} {
		t.Errorf("unexpected stats %v, combo %d", p.counts, p.combo)
	}
	if len(p.resolved) != 3 {
		t.Errorf("expected 3 resolved notes, got %d", len(p.resolved))
	}
}

func TestPlace(t *testing.T) {
	adapter, err := screen.New(80, 24, 16)
	if nil != err {
		t.Fatal(err)
	}
	poses := []touch.LinePose{
		{ID: 1, Position: touch.Point{X: -8, Y: -3}},
		{ID: 2, Position: touch.Point{X: 1}, Rotation: math.Pi / 2},
	}

	// Lane 0.25 is 2 world units along the line
	got := adapter.ScreenToWorld(place(adapter, 1, poses)(0.25))
	if math.Abs(got.X+6) > 1e-9 || math.Abs(got.Y+3) > 1e-9 {
		t.Errorf("expected (-6, -3), got %v", got)
	}

	got = adapter.ScreenToWorld(place(adapter, 2, poses)(0.25))
	if math.Abs(got.X-1) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Errorf("expected (1, 2), got %v", got)
	}

	got = adapter.ScreenToWorld(place(adapter, 9, poses)(0.25))
	if math.Abs(got.X-2) > 1e-9 || math.Abs(got.Y) > 1e-9 {
		t.Errorf("expected (2, 0) without a pose, got %v", got)
	}
}
