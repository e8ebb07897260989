package scrollfx

import "math"

// BodyPose is the resolved visual state of one decorative body.
type BodyPose struct {
	// Progress is the zone-local Bezier parameter in [0, 1].
	Progress  float64
	Position  Vec2
	Transform Transform
	// Opacity is the inline opacity to apply. Jupiter keeps its base opacity
	// and reports -1 so callers leave it untouched.
	Opacity float64
	// Visible is false once the body has left the screen for good (Jupiter at
	// the end of its zone, Saturn before its zone).
	Visible bool
}

// MotionFrame holds both body poses for one smoothed scroll offset.
type MotionFrame struct {
	ProgressA float64
	ProgressB float64
	Fade      float64
	Scale     float64
	Jupiter   BodyPose
	Saturn    BodyPose
}

// ZoneProgressA is Jupiter's progress: scroll 0 to the quote section.
func ZoneProgressA(m *Metrics, current float64) float64 {
	end := math.Max(m.ZoneAEnd(), 1)
	return Clamp01(current / end)
}

// ZoneProgressB is Saturn's progress: the quote section to MaxScroll. It is
// zero before the zone starts.
func ZoneProgressB(m *Metrics, current float64) float64 {
	start := m.ZoneBStart()
	if current < start {
		return 0
	}
	span := math.Max(m.MaxScroll-start, 1)
	return Clamp01((current - start) / span)
}

// ComputeMotion evaluates both bodies at the smoothed offset current.
// elapsed is the free-run clock in seconds; pass 0 in converge mode.
//
// Jupiter sweeps left -> deep dip -> upper right with rotation growing to
// JupiterMaxRotate. Saturn enters from the right, dips and leaves left with
// the inverse rotation, fading in over the first quarter of its zone and
// pulsing in scale to suggest depth.
func ComputeMotion(m *Metrics, b *BodyConfig, current, elapsed float64) MotionFrame {
	pa := ZoneProgressA(m, current)
	pb := ZoneProgressB(m, current)

	f := MotionFrame{ProgressA: pa, ProgressB: pb}

	jp := m.JupiterPath.Point(pa)
	f.Jupiter = BodyPose{
		Progress: pa,
		Position: jp,
		Transform: Transform{
			X:          jp.X,
			Y:          jp.Y,
			Rotate:     pa*b.JupiterMaxRotate + elapsed*b.JupiterSpinPerSec,
			KeepRotate: true,
		},
		Opacity: -1,
		Visible: pa < 1,
	}

	sp := m.SaturnPath.Point(pb)
	f.Fade = math.Min(pb*b.SaturnFadeRate, 1)
	f.Scale = b.SaturnScaleBase + b.SaturnScalePulse*math.Sin(pb*math.Pi)
	f.Saturn = BodyPose{
		Progress: pb,
		Position: sp,
		Transform: Transform{
			X:          sp.X,
			Y:          sp.Y,
			Rotate:     pb*b.SaturnMaxRotate + elapsed*b.SaturnSpinPerSec,
			KeepRotate: true,
			Scale:      f.Scale,
		},
		Opacity: f.Fade * b.SaturnMaxOpacity,
		Visible: f.Fade > 0,
	}
	return f
}
