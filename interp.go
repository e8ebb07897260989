package scrollfx

// Lerp interpolates from start to end by t. t is clamped to [0, 1], so the
// result never leaves the segment between start and end.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*Clamp01(t)
}

// QuadraticBezier evaluates a one-dimensional quadratic Bezier curve at t.
// t is not clamped here; callers pass an already clamped zone progress.
func QuadraticBezier(p0, p1, p2, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
