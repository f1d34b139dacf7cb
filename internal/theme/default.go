package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
)

type DefaultTheme struct {
}

func colored(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderNote(nt game.NoteType) string {
	if int(nt) >= len(syms) {
		return colored(white, "?")
	}
	return colored(noteColors[nt], syms[nt])
}

func (t *DefaultTheme) RenderHoldBody() string {
	return colored(noteColors[game.Hold], holdSym)
}

func (t *DefaultTheme) RenderLine() string {
	return lineSym
}

func (t *DefaultTheme) RenderGrade(g judge.Grade) string {
	if int(g) >= len(gradeColors) {
		return g.String()
	}
	return colored(gradeColors[g], fmt.Sprintf("%8v", g))
}

const (
	lineSym = "·"
	holdSym = "┃"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	syms  = [...]string{
		game.Tap:   "▬",
		game.Hold:  "▣",
		game.Flick: "◆",
		game.Drag:  "●",
	}
	noteColors = [...]color.RGBA{
		game.Tap:   {0, 118, 236, 255},
		game.Hold:  {0, 236, 128, 255},
		game.Flick: {236, 30, 0, 255},
		game.Drag:  {236, 195, 0, 255},
	}
	gradeColors = [...]color.RGBA{
		judge.Perfect: {236, 195, 0, 255},
		judge.Good:    {173, 236, 236, 255},
		judge.Bad:     {236, 128, 0, 255},
		judge.Miss:    {236, 30, 0, 255},
	}
)
