package tempo

import "math"

// DefaultTolerance is the absolute BPM window within which two estimates
// are treated as the same tempo.
const DefaultTolerance = 5.0

// Comparator decides whether two BPM values describe the same tempo.
// Onset-based detectors routinely lock onto half or double the true
// pulse, so a value within tolerance of exactly half or exactly double
// its counterpart also counts as agreement (a tune read at 198 and at
// 99 BPM is one tempo, not two).
type Comparator struct {
	tolerance float64
}

// NewComparator creates a comparator with the given absolute tolerance.
// Non-positive tolerances fall back to DefaultTolerance.
func NewComparator(tolerance float64) *Comparator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Comparator{tolerance: tolerance}
}

// Tolerance returns the comparator's absolute tolerance in BPM
func (c *Comparator) Tolerance() float64 {
	return c.tolerance
}

// Agree reports whether a and b are within tolerance of each other or of
// a half/double relation. Symmetric: Agree(a, b) == Agree(b, a).
//
// The octave band is anchored on the doubled scale: a agrees when it is
// within tolerance of 2b, or b when within tolerance of 2a. Relative to
// half the counterpart the window is tolerance/2, so 52 vs 110 is a miss
// at the default tolerance even though 52 is within 5 of 110/2.
func (c *Comparator) Agree(a, b float64) bool {
	return math.Abs(a-b) <= c.tolerance ||
		math.Abs(a-2*b) <= c.tolerance ||
		math.Abs(b-2*a) <= c.tolerance
}
