package scrollfx

// ReadingProgress returns how far through the document the reader is, as a
// percentage in [0, 100]. maxScroll is floored at 1.
func ReadingProgress(current, maxScroll float64) float64 {
	if maxScroll < 1 {
		maxScroll = 1
	}
	return clamp(current/maxScroll*100, 0, 100)
}

// ScrollSpy returns the index of the section under the probe line
// scrollY+offset, or -1 when none contains it. Sections with no height are
// never active. When sections overlap the last one in document order wins.
func ScrollSpy(sections []Rect, scrollY, offset float64) int {
	probe := scrollY + offset
	active := -1
	for i, s := range sections {
		if s.Height <= 0 {
			continue
		}
		if probe >= s.Y && probe < s.Y+s.Height {
			active = i
		}
	}
	return active
}

// BackToTopVisible reports whether the back-to-top button should show.
func BackToTopVisible(scrollY, threshold float64) bool {
	return scrollY > threshold
}

// applyWidgets updates the reading-progress bar, back-to-top button and
// sidebar links. None of them feed back into the physics step.
func (e *Engine) applyWidgets(h *elementHandles, m *Metrics) {
	if h.progress != nil {
		h.progress.SetWidthPercent(ReadingProgress(e.scroll.Current, m.MaxScroll))
	}
	if h.backToTop != nil {
		visible := BackToTopVisible(e.scroll.Target, e.cfg.Widgets.BackToTopShowAt)
		if !e.widgetsInit || visible != e.backToTopShown {
			h.backToTop.SetClass("visible", visible)
			e.backToTopShown = visible
		}
	}
	if len(h.navLinks) > 0 {
		active := ScrollSpy(m.Sections, e.scroll.Target, e.cfg.Widgets.ScrollSpyOffset)
		if !e.widgetsInit || active != e.activeLink {
			for i, link := range h.navLinks {
				if link.Element != nil {
					link.Element.SetClass("active", i == active)
				}
			}
			e.activeLink = active
		}
	}
	e.widgetsInit = true
}
