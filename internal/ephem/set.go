package ephem

import (
	"fmt"
	"math"
	"time"
)

// Set is one complete fetch: a shared epoch sequence, the comet, and the
// tracked planets. Built once, read-only afterwards. All series are
// index-aligned with the epoch sequence.
type Set struct {
	Epochs  Epochs
	Comet   Body
	Planets []Body
}

// NewSet validates the shared-length invariant and returns the assembled
// set. Every body's series must have exactly Epochs.Count samples.
func NewSet(epochs Epochs, comet Body, planets []Body) (*Set, error) {
	if epochs.StepDays <= 0 {
		return nil, ErrInvalidStep
	}
	if epochs.Count == 0 {
		return nil, ErrEmptySet
	}
	if len(comet.Series) != epochs.Count {
		return nil, fmt.Errorf("%w: %s has %d samples, expected %d",
			ErrLengthMismatch, comet.Name, len(comet.Series), epochs.Count)
	}
	for _, p := range planets {
		if len(p.Series) != epochs.Count {
			return nil, fmt.Errorf("%w: %s has %d samples, expected %d",
				ErrLengthMismatch, p.Name, len(p.Series), epochs.Count)
		}
	}
	return &Set{Epochs: epochs, Comet: comet, Planets: planets}, nil
}

// Bodies returns the comet followed by the planets.
func (s *Set) Bodies() []Body {
	out := make([]Body, 0, 1+len(s.Planets))
	out = append(out, s.Comet)
	out = append(out, s.Planets...)
	return out
}

// FrameIndex converts a target calendar date into a frame offset:
// floor((target - start) / step). The result is unchecked and may fall
// outside the valid range; use Set.FrameAt for the checked form.
func FrameIndex(target, start time.Time, stepDays int) int {
	days := target.Sub(start).Hours() / 24.0
	return int(math.Floor(days / float64(stepDays)))
}

// FrameAt resolves a target date against this set's epoch sequence,
// rejecting dates that fall outside the fetched range.
func (s *Set) FrameAt(target time.Time) (int, error) {
	idx := FrameIndex(target, s.Epochs.Start, s.Epochs.StepDays)
	if idx < 0 || idx >= s.Epochs.Count {
		return 0, fmt.Errorf("%w: %s not in [%s, %s]", ErrEpochOutOfRange,
			target.Format("2006-01-02"),
			s.Epochs.Start.Format("2006-01-02"),
			s.Epochs.End().Format("2006-01-02"))
	}
	return idx, nil
}
