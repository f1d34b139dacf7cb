package screen

import (
	"git.lost.host/meutraa/tapline/internal/touch"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// DefaultWorldWidth is how many world units span the screen horizontally
const DefaultWorldWidth = 16.0

// Adapter converts between screen space (origin top left, y down) and world
// space (origin at the screen center, y up, square units).
type Adapter struct {
	Width, Height float64
	WorldWidth    float64
}

func New(width, height, worldWidth float64) (*Adapter, error) {
	if width <= 0 || height <= 0 || worldWidth <= 0 {
		return nil, errors.Errorf("invalid screen %vx%v (%v world units)", width, height, worldWidth)
	}
	return &Adapter{Width: width, Height: height, WorldWidth: worldWidth}, nil
}

// FromTerminal sizes the adapter to the terminal behind fd, in cells
func FromTerminal(fd int, worldWidth float64) (*Adapter, error) {
	columns, rows, err := term.GetSize(fd)
	if nil != err {
		return nil, errors.Wrap(err, "unable to get terminal size")
	}
	return New(float64(columns), float64(rows), worldWidth)
}

// ToGameXPos maps a normalized note position, -1 at the left edge and 1 at
// the right, to a world offset.
func (a *Adapter) ToGameXPos(x float64) float64 {
	return x * a.WorldWidth / 2
}

func (a *Adapter) FromGameXPos(x float64) float64 {
	return x * 2 / a.WorldWidth
}

func (a *Adapter) scale() float64 {
	return a.WorldWidth / a.Width
}

func (a *Adapter) ScreenToWorld(p touch.Point) touch.Point {
	s := a.scale()
	return touch.Point{
		X: (p.X - a.Width/2) * s,
		Y: (a.Height/2 - p.Y) * s,
	}
}

func (a *Adapter) WorldToScreen(p touch.Point) touch.Point {
	s := a.scale()
	return touch.Point{
		X: p.X/s + a.Width/2,
		Y: a.Height/2 - p.Y/s,
	}
}
