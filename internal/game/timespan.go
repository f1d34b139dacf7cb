package game

import (
	"cmp"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a chart value cannot be constructed
// from the given parts.
var ErrInvalidArgument = errors.New("invalid argument")

// Timespan is a position on the chart, measured in beats.
// Comparison is plain float comparison, there is no tolerance.
type Timespan struct {
	Beats float64
}

// Zero is the start of the chart
var Zero = Timespan{}

// NewTimespan builds a Timespan from the fraction whole + num/den.
// A numerator larger than the denominator is carried into whole first.
func NewTimespan(whole, num, den int) (Timespan, error) {
	if den <= 0 {
		return Zero, errors.Wrapf(ErrInvalidArgument, "timespan %d+%d/%d: denominator must be positive", whole, num, den)
	}
	if num > den {
		whole += num / den
		num %= den
	}
	return Timespan{Beats: float64(whole) + float64(num)/float64(den)}, nil
}

// At returns the Timespan for an already collapsed beat value.
func At(beats float64) Timespan {
	return Timespan{Beats: beats}
}

func (t Timespan) Before(o Timespan) bool { return t.Beats < o.Beats }
func (t Timespan) After(o Timespan) bool  { return t.Beats > o.Beats }
func (t Timespan) Equal(o Timespan) bool  { return t.Beats == o.Beats }

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after o.
func (t Timespan) Compare(o Timespan) int {
	return cmp.Compare(t.Beats, o.Beats)
}

func (t Timespan) Add(o Timespan) Timespan {
	return Timespan{Beats: t.Beats + o.Beats}
}
