package touch

import "math"

// LandingPoint projects a touch onto the axis of a line through origin with
// the given rotation.
func LandingPoint(origin Point, rotation float64, touch Point) Point {
	// The perpendicular has no finite slope
	if math.Mod(rotation, math.Pi) == 0 {
		return Point{X: touch.X, Y: origin.Y}
	}

	k := math.Tan(rotation)
	b := origin.Y - k*origin.X
	k2 := -1 / k
	b2 := touch.Y - k2*touch.X

	x := (b2 - b) / (k - k2)
	// Solved on the perpendicular, which stays well conditioned as the line
	// approaches vertical
	return Point{X: x, Y: k2*x + b2}
}

// LandingDistance is the unsigned distance from the line origin to the
// landing point of the touch.
func LandingDistance(line LinePose, touch Point) float64 {
	return LandingPoint(line.Position, line.Rotation, touch).Distance(line.Position)
}

// Sample is one touch of a frame with its landing distance on every line.
type Sample struct {
	Raw       Raw
	World     Point
	Distances []float64 // Indexed like the frame lines
}

// Projector computes landing distances for every touch against every line,
// once per frame. Its buffers only grow, samples past the current touch
// count are stale and not exposed.
type Projector struct {
	screen  Screen
	samples []Sample
	lines   map[uint]int
}

func NewProjector(screen Screen) *Projector {
	return &Projector{
		screen: screen,
		lines:  map[uint]int{},
	}
}

// Project fills every sample before returning, a Frame is never partially
// updated. The Frame is valid until the next call.
func (p *Projector) Project(raws []Raw, lines []LinePose) Frame {
	clear(p.lines)
	for i, line := range lines {
		p.lines[line.ID] = i
	}

	for i, raw := range raws {
		if len(p.samples) <= i {
			p.samples = append(p.samples, Sample{})
		}
		sample := &p.samples[i]
		sample.Raw = raw
		sample.World = p.screen.ScreenToWorld(raw.Position)
		if cap(sample.Distances) < len(lines) {
			sample.Distances = make([]float64, len(lines))
		}
		sample.Distances = sample.Distances[:len(lines)]
		for j, line := range lines {
			sample.Distances[j] = LandingDistance(line, sample.World)
		}
	}

	return Frame{samples: p.samples[:len(raws)], lines: p.lines}
}

// Frame is the projected touch state of one frame
type Frame struct {
	samples []Sample
	lines   map[uint]int
}

func (f Frame) Len() int { return len(f.samples) }

func (f Frame) Phase(i int) Phase { return f.samples[i].Raw.Phase }

func (f Frame) Sample(i int) Sample { return f.samples[i] }

// Distance returns the landing distance of touch i on the given line. ok is
// false when the line is not part of the frame.
func (f Frame) Distance(i int, line uint) (float64, bool) {
	j, ok := f.lines[line]
	if !ok {
		return 0, false
	}
	return f.samples[i].Distances[j], true
}
