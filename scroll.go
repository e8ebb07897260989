package scrollfx

import "math"

// ScrollState tracks the raw and smoothed scroll offsets. Target is written
// only by the scroll listener; Current and LastSampled only by the frame
// step.
type ScrollState struct {
	Target      float64
	Current     float64
	LastSampled float64
}

// Advance moves Current toward Target by factor and remembers the previous
// value. With factor in (0, 1) the distance to Target shrinks every call and
// Current never overshoots.
func (s *ScrollState) Advance(factor float64) {
	s.LastSampled = s.Current
	s.Current = Lerp(s.Current, s.Target, factor)
}

// Settle snaps Current onto Target once it is within eps, so a settled
// engine rests exactly on the raw offset and later frames see no movement.
func (s *ScrollState) Settle(eps float64) {
	if s.Converged(eps) {
		s.Current = s.Target
	}
}

// Converged reports whether Current is within eps of Target.
func (s *ScrollState) Converged(eps float64) bool {
	return math.Abs(s.Target-s.Current) <= eps
}

// Moved reports whether the last Advance changed Current.
func (s *ScrollState) Moved() bool {
	return s.Current != s.LastSampled
}
