package game

type EventType uint8

const (
	Alpha EventType = iota
	MoveX
	MoveY
	Rotate
	Speed
)

func (t EventType) String() string {
	switch t {
	case Alpha:
		return "alpha"
	case MoveX:
		return "movex"
	case MoveY:
		return "movey"
	case Rotate:
		return "rotate"
	case Speed:
		return "speed"
	}
	return "unknown"
}

// LineEvent moves one property of a line from BeginValue to EndValue over
// [Begin, End]. Easing selects the curve, 0 is linear.
type LineEvent struct {
	Type       EventType
	Begin      Timespan
	End        Timespan
	BeginValue float64
	EndValue   float64
	Easing     uint
}

type Line struct {
	ID     uint
	Events []LineEvent
}
