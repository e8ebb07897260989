package scrollfx

// Geometry is the read side of the page boundary. Implementations must be
// cheap to call; the engine reads them at most once per frame and caches
// layout-dependent values in Metrics.
type Geometry interface {
	// Viewport returns the inner width and height in CSS pixels.
	Viewport() (width, height float64)
	// ScrollY returns the current vertical scroll offset.
	ScrollY() float64
	// ScrollHeight returns the full document height.
	ScrollHeight() float64
	// PrefersReducedMotion reports the reduced-motion media preference.
	PrefersReducedMotion() bool
	// CanHover reports whether the primary pointer can hover.
	CanHover() bool
}

// StyleSink is the write side of the page boundary: inline style properties
// and class toggles on one element.
type StyleSink interface {
	SetTransform(t Transform)
	SetOpacity(v float64)
	SetDisplay(visible bool)
	SetWidthPercent(pct float64)
	SetClass(name string, on bool)
}

// Element is a page element the engine may read layout from and write
// styles to.
type Element interface {
	StyleSink
	// Layout returns the element's layout box in document coordinates,
	// excluding any transform applied through the StyleSink.
	Layout() Rect
	// BoundingRect returns the element's current on-screen rectangle in
	// viewport coordinates, transforms included.
	BoundingRect() Rect
}

// NavLink is a sidebar link that targets one section of the page.
type NavLink struct {
	// Target is the id of the section the link points at.
	Target  string
	Element Element
	// Section is the targeted section element, nil when absent.
	Section Element
}

// Page is everything the engine needs from its host.
type Page interface {
	Geometry
	// Lookup returns the element for name, or nil when the page has none.
	Lookup(name ElementName) Element
	// Cards returns the tiltable cards in document order.
	Cards() []Element
	// NavLinks returns the sidebar links in document order.
	NavLinks() []NavLink
}
