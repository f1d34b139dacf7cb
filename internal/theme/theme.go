package theme

import (
	"git.lost.host/meutraa/tapline/internal/game"
	"git.lost.host/meutraa/tapline/internal/judge"
)

type Theme interface {
	RenderNote(t game.NoteType) string
	RenderHoldBody() string
	RenderLine() string
	RenderGrade(g judge.Grade) string
}
