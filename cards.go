package scrollfx

// CardVisualState is the per-card state shared by the scroll engine and the
// tilt subsystem. The scroll engine writes ParallaxOffset; the tilt
// subsystem reads it so its transform keeps the parallax translation.
type CardVisualState struct {
	Hovered   bool
	Releasing bool
	// ParallaxOffset is the last vertical offset applied by the scroll engine.
	ParallaxOffset float64
	// Culled is true when the card was outside the viewport buffer on the
	// last frame that evaluated it.
	Culled bool

	// Tilt values currently applied while hovered or releasing.
	RotateX, RotateY, Scale float64

	rect         Rect
	pointer      Vec2
	pointerDirty bool
	tween        *TweenGroup
}

// ownedByTilt reports whether the tilt subsystem currently writes this
// card's transform.
func (c *CardVisualState) ownedByTilt() bool {
	return c.Hovered || c.Releasing
}

// CardParallaxOffset returns the vertical offset for a card whose layout box
// is layout, when the page is scrolled to current. The offset is zero when
// the card's center sits at the viewport center and grows linearly away from
// it. Layout boxes exclude applied transforms, so the result never feeds
// back into itself.
func CardParallaxOffset(layout Rect, current, viewportHeight, factor float64) float64 {
	center := layout.Y + layout.Height/2 - current
	return -(center - viewportHeight/2) * factor
}

// CardVisible reports whether the card's on-screen box intersects the
// viewport grown by buffer on every side.
func CardVisible(layout Rect, current, viewportWidth, viewportHeight, buffer float64) bool {
	screen := Rect{X: layout.X, Y: layout.Y - current, Width: layout.Width, Height: layout.Height}
	view := Rect{Width: viewportWidth, Height: viewportHeight}.Expand(buffer)
	return screen.Intersects(view)
}

// applyCards writes parallax transforms to visible cards that the tilt
// subsystem does not own.
func (e *Engine) applyCards(h *elementHandles, m *Metrics, stats *debugStats) {
	cfg := &e.cfg.Cards
	current := e.scroll.Current
	for i, card := range h.cards {
		if i >= len(m.Cards) || i >= len(e.cards) {
			break
		}
		st := &e.cards[i]
		if st.ownedByTilt() {
			continue
		}
		layout := m.Cards[i]
		if !CardVisible(layout, current, m.ViewportWidth, m.ViewportHeight, cfg.Buffer) {
			st.Culled = true
			stats.cardsCulled++
			continue
		}
		st.Culled = false
		st.ParallaxOffset = CardParallaxOffset(layout, current, m.ViewportHeight, cfg.Factor)
		card.SetTransform(Translate(0, st.ParallaxOffset))
		stats.cardsMoved++
	}
}
