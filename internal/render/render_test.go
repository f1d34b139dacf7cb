package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
	"git.lost.host/meutraa/tapline/internal/screen"
	"git.lost.host/meutraa/tapline/internal/theme"
	"git.lost.host/meutraa/tapline/internal/touch"
)

func TestFill(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	r.Fill(3, 7, "x")
	r.FillColor(1, 2, color.RGBA{1, 2, 3, 255}, "y")
	if out.Len() != 0 {
		t.Fatal("expected output to be buffered until flush")
	}
	if err := r.Flush(); nil != err {
		t.Fatal(err)
	}
	expected := "\033[3;7Hx\033[1;2H\033[38;2;1;2;3my\033[0m"
	if out.String() != expected {
		t.Errorf("expected %q, got %q", expected, out.String())
	}
}

func TestDecorations(t *testing.T) {
	var out bytes.Buffer
	r := New(&out)
	r.AddDecoration(1, 1, "\033[1;31mhit\033[0m", 1)

	frames := 0
	r.RenderLoop(0, func() bool {
		frames++
		return frames < 3
	})
	if frames != 3 {
		t.Errorf("expected 3 frames, got %d", frames)
	}
	if len(r.decorations) != 0 {
		t.Errorf("expected the decoration to expire, %d left", len(r.decorations))
	}
	if !strings.HasSuffix(out.String(), "\033[1;1H   ") {
		t.Errorf("expected the decoration to be erased, got %q", out.String())
	}
}

func TestStripEscapes(t *testing.T) {
	tests := map[string]string{
		"plain":                       "plain",
		"\033[38;2;1;2;3mPerfect\033[0m": "Perfect",
		"\033[1;31m╭":                 "╭",
	}
	for in, expected := range tests {
		if got := stripEscapes(in); got != expected {
			t.Errorf("%q: expected %q, got %q", in, expected, got)
		}
	}
}

func newField(t *testing.T, out *bytes.Buffer) *Field {
	t.Helper()
	adapter, err := screen.New(20, 10, 20)
	if nil != err {
		t.Fatal(err)
	}
	return NewField(New(out), adapter, &theme.DefaultTheme{}, adapter)
}

func TestFieldDraw(t *testing.T) {
	var out bytes.Buffer
	f := newField(t, &out)
	th := &theme.DefaultTheme{}
	note := &game.Note{Type: game.Tap, Start: game.At(4), End: game.At(4)}
	poses := []touch.LinePose{{ID: 0}}
	r := f.r.(*DefaultRenderer)

	f.Draw(poses, []*game.Note{note}, func(*game.Note) bool { return true }, game.At(4))
	r.Flush()
	// World origin is the center cell
	if !strings.Contains(out.String(), "\033[6;11H"+th.RenderNote(game.Tap)) {
		t.Errorf("expected the note at the line origin, got %q", out.String())
	}
	if !strings.Contains(out.String(), "\033[6;1H"+th.RenderLine()) {
		t.Error("expected the line across the screen")
	}

	out.Reset()
	f.Draw(poses, []*game.Note{note}, func(*game.Note) bool { return false }, game.At(4))
	r.Flush()
	if strings.Contains(out.String(), th.RenderNote(game.Tap)) {
		t.Error("expected judged notes to be skipped")
	}
	if !strings.Contains(out.String(), "\033[6;11H ") {
		t.Error("expected the previous frame to be erased")
	}
}

func TestFieldNoteHeight(t *testing.T) {
	var out bytes.Buffer
	f := newField(t, &out)
	f.Speed = 2
	th := &theme.DefaultTheme{}
	note := &game.Note{Type: game.Flick, Start: game.At(5), End: game.At(5), X: 0.5, Line: 3}

	// One beat early, two units above an unrotated line
	poses := []touch.LinePose{{ID: 0}, {ID: 3}}
	f.Draw(poses, []*game.Note{note}, func(*game.Note) bool { return true }, game.At(4))
	f.r.(*DefaultRenderer).Flush()
	// x = 0.5 * 20 / 2 = 5, y = 2 is world (5, 2), screen (15, 3)
	if !strings.Contains(out.String(), "\033[4;16H"+th.RenderNote(game.Flick)) {
		t.Errorf("unexpected note position in %q", out.String())
	}
}

func TestFieldStats(t *testing.T) {
	var out bytes.Buffer
	f := newField(t, &out)
	f.Stats([len(judge.Grades)]int{3, 2, 1, 0}, 5, 0)
	f.r.(*DefaultRenderer).Flush()
	if !strings.Contains(out.String(), "Combo:       5") {
		t.Errorf("missing combo in %q", out.String())
	}
}
