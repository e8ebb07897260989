package scrollfx

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// TiltAngles converts a pointer position inside rect into card rotations in
// degrees. Both are zero at the center and reach ±maxDeg at the edges;
// positions outside the rectangle are clamped to the edge values.
func TiltAngles(rect Rect, x, y, maxDeg float64) (rotateX, rotateY float64) {
	cx, cy := rect.Width/2, rect.Height/2
	if cx <= 0 || cy <= 0 {
		return 0, 0
	}
	relX, relY := x-rect.X, y-rect.Y
	rotateX = -(relY - cy) / cy * maxDeg
	rotateY = (relX - cx) / cx * maxDeg
	limit := math.Abs(maxDeg)
	return clamp(rotateX, -limit, limit), clamp(rotateY, -limit, limit)
}

// tiltEnabled reports whether pointer tilt runs on this page: it needs the
// feature switched on and a pointer that can hover.
func (e *Engine) tiltEnabled() bool {
	return e.cfg.Tilt.Enabled && e.canHover
}

// tiltCard returns the state and element for card i, or nil when tilt is off
// or the index is out of range. Pointer events can arrive before the first
// frame, so media preferences are evaluated here too.
func (e *Engine) tiltCard(i int) (*CardVisualState, Element) {
	h := e.handles()
	e.activate(h)
	if !e.tiltEnabled() || i < 0 || i >= len(h.cards) || i >= len(e.cards) {
		return nil, nil
	}
	return &e.cards[i], h.cards[i]
}

// PointerEnter starts tilting card i. The card's on-screen rectangle is read
// once here and reused for every move until the pointer leaves.
func (e *Engine) PointerEnter(i int) {
	st, el := e.tiltCard(i)
	if st == nil {
		return
	}
	st.Hovered = true
	st.Releasing = false
	st.rect = el.BoundingRect()
	if st.Scale == 0 {
		st.Scale = 1
	}
	st.tween = NewTweenGroup(e.cfg.Tilt.TrackSeconds, ease.OutQuad,
		TweenField{&st.Scale, e.cfg.Tilt.Scale})
	e.requestFrame()
}

// PointerMove records the latest pointer position over card i in viewport
// coordinates. Moves are coalesced; only the last one before a frame is
// applied.
func (e *Engine) PointerMove(i int, x, y float64) {
	st, _ := e.tiltCard(i)
	if st == nil || !st.Hovered {
		return
	}
	st.pointer = Vec2{X: x, Y: y}
	st.pointerDirty = true
	e.requestFrame()
}

// PointerLeave eases card i back to its pure parallax translation, more
// slowly than tilt tracking.
func (e *Engine) PointerLeave(i int) {
	st, _ := e.tiltCard(i)
	if st == nil || !st.Hovered {
		return
	}
	st.Hovered = false
	st.Releasing = true
	st.pointerDirty = false
	st.tween = NewTweenGroup(e.cfg.Tilt.LeaveSeconds, ease.OutCubic,
		TweenField{&st.RotateX, 0},
		TweenField{&st.RotateY, 0},
		TweenField{&st.Scale, 1},
	)
	e.requestFrame()
}

// updateTilt advances tilt tweens and writes the composed transform of every
// tilt-owned card. The parallax offset of those cards follows the current
// scroll offset, so a release lands on the pure parallax translation. It
// returns true while any tween is still running.
func (e *Engine) updateTilt(h *elementHandles, m *Metrics, now time.Duration, stats *debugStats) bool {
	var dt float32
	if e.tiltClockSet {
		dt = float32((now - e.tiltLast).Seconds())
		if dt < 0 {
			dt = 0
		}
	}
	e.tiltLast = now

	cfg := &e.cfg.Tilt
	active := false
	for i := range e.cards {
		st := &e.cards[i]
		if !st.ownedByTilt() || i >= len(h.cards) {
			continue
		}
		card := h.cards[i]
		if i < len(m.Cards) {
			st.ParallaxOffset = CardParallaxOffset(m.Cards[i], e.scroll.Current, m.ViewportHeight, e.cfg.Cards.Factor)
		}

		if st.Hovered && st.pointerDirty {
			rx, ry := TiltAngles(st.rect, st.pointer.X, st.pointer.Y, cfg.MaxDeg)
			st.tween = NewTweenGroup(cfg.TrackSeconds, ease.OutQuad,
				TweenField{&st.RotateX, rx},
				TweenField{&st.RotateY, ry},
				TweenField{&st.Scale, cfg.Scale},
			)
			st.pointerDirty = false
		}
		st.tween.Update(dt)

		if st.Releasing && !st.tween.Running() {
			st.Releasing = false
			st.RotateX, st.RotateY, st.Scale = 0, 0, 1
			st.tween = nil
			card.SetTransform(Translate(0, st.ParallaxOffset))
			continue
		}

		card.SetTransform(Transform{
			Perspective: cfg.Perspective,
			Y:           st.ParallaxOffset,
			RotateX:     st.RotateX,
			RotateY:     st.RotateY,
			Scale:       st.Scale,
		})
		stats.cardsTilted++
		if st.tween.Running() {
			active = true
		}
	}
	e.tiltClockSet = active
	return active
}
