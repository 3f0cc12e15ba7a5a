package ephem

import "errors"

// Domain errors for ephemeris sets.
var (
	// ErrEpochOutOfRange indicates a target date outside the fetched range.
	ErrEpochOutOfRange = errors.New("ephem: target date outside fetched range")

	// ErrLengthMismatch indicates a body series whose length does not match
	// the shared epoch sequence.
	ErrLengthMismatch = errors.New("ephem: series length does not match epoch count")

	// ErrEmptySet indicates a fetch that produced no epochs at all.
	ErrEmptySet = errors.New("ephem: no samples in range")

	// ErrInvalidStep indicates a non-positive step size.
	ErrInvalidStep = errors.New("ephem: step size must be positive")
)
