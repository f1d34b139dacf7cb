package touch

import "math"

type Phase uint8

const (
	Began Phase = iota
	Moved
	Stationary
	Ended
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Moved:
		return "moved"
	case Stationary:
		return "stationary"
	case Ended:
		return "ended"
	}
	return "unknown"
}

type Point struct {
	X, Y float64
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Raw is a platform touch, in screen coordinates.
type Raw struct {
	Position Point
	Phase    Phase
}

// LinePose is the world transform of a line for the current frame.
// Rotation is in radians.
type LinePose struct {
	ID       uint
	Position Point
	Rotation float64
}

// Screen maps raw touch positions into world space
type Screen interface {
	ScreenToWorld(Point) Point
}

type identity struct{}

func (identity) ScreenToWorld(p Point) Point { return p }

// Identity is a Screen for inputs already in world space
var Identity Screen = identity{}
