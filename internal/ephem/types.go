package ephem

import (
	"math"
	"time"
)

// Sample is one heliocentric position in astronomical units. A sample
// flagged Missing was unavailable from the ephemeris service; its
// coordinates are meaningless and must not be drawn.
type Sample struct {
	X, Y, Z float64
	Missing bool
}

// Radius returns the distance from the coordinate origin (the Sun).
func (s Sample) Radius() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Series is a body's position samples, index-aligned with the epoch
// sequence of the set it belongs to.
type Series []Sample

func (s Series) Clone() Series {
	c := make(Series, len(s))
	copy(c, s)
	return c
}

// Radii returns the per-sample distance from the Sun. Missing samples
// report NaN so charts can gap them.
func (s Series) Radii() []float64 {
	r := make([]float64, len(s))
	for i, smp := range s {
		if smp.Missing {
			r[i] = math.NaN()
			continue
		}
		r[i] = smp.Radius()
	}
	return r
}

// MissingCount reports how many samples in the series are gaps.
func (s Series) MissingCount() int {
	n := 0
	for _, smp := range s {
		if smp.Missing {
			n++
		}
	}
	return n
}

// Body pairs an identity with its sampled trajectory.
type Body struct {
	Designation string // query identifier sent to the ephemeris service
	Name        string // display name
	Series      Series
}

// Epochs describes the shared sampling grid: Count instants starting at
// Start, spaced StepDays apart. Valid frame indices are [0, Count).
type Epochs struct {
	Start    time.Time
	StepDays int
	Count    int
}

// At returns the calendar instant of frame i. No bounds check; callers
// hold i in [0, Count).
func (e Epochs) At(i int) time.Time {
	return e.Start.AddDate(0, 0, i*e.StepDays)
}

// End returns the instant of the final frame.
func (e Epochs) End() time.Time {
	if e.Count == 0 {
		return e.Start
	}
	return e.At(e.Count - 1)
}
