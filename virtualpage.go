package scrollfx

// VirtualElement is an in-memory Element. It records the last value of every
// style property written to it so tests and non-browser hosts can read them
// back.
type VirtualElement struct {
	Name   string
	layout Rect
	page   *VirtualPage

	Transform    Transform
	HasTransform bool
	Opacity      float64
	HasOpacity   bool
	Hidden       bool
	WidthPercent float64
	Classes      map[string]bool

	// TransformWrites counts SetTransform calls.
	TransformWrites int
	// Writes counts every style write.
	Writes int
}

// SetTransform implements StyleSink.
func (el *VirtualElement) SetTransform(t Transform) {
	el.Transform = t
	el.HasTransform = true
	el.TransformWrites++
	el.Writes++
}

// SetOpacity implements StyleSink.
func (el *VirtualElement) SetOpacity(v float64) {
	el.Opacity = v
	el.HasOpacity = true
	el.Writes++
}

// SetDisplay implements StyleSink.
func (el *VirtualElement) SetDisplay(visible bool) {
	el.Hidden = !visible
	el.Writes++
}

// SetWidthPercent implements StyleSink.
func (el *VirtualElement) SetWidthPercent(pct float64) {
	el.WidthPercent = pct
	el.Writes++
}

// SetClass implements StyleSink.
func (el *VirtualElement) SetClass(name string, on bool) {
	if el.Classes == nil {
		el.Classes = make(map[string]bool)
	}
	el.Classes[name] = on
	el.Writes++
}

// HasClass reports whether the class is currently set.
func (el *VirtualElement) HasClass(name string) bool {
	return el.Classes[name]
}

// Layout implements Element.
func (el *VirtualElement) Layout() Rect {
	return el.layout
}

// SetLayout moves the element's layout box. Engines see the change after
// their next metrics invalidation.
func (el *VirtualElement) SetLayout(r Rect) {
	el.layout = r
}

// BoundingRect implements Element: the layout box shifted by the page
// scroll and the applied translation.
func (el *VirtualElement) BoundingRect() Rect {
	r := el.layout
	if el.page != nil {
		r.Y -= el.page.scrollY
	}
	if el.HasTransform {
		r.X += el.Transform.X
		r.Y += el.Transform.Y
	}
	return r
}

// VirtualPage is a headless Page. It backs the tests, the scripted
// scenarios and the desktop preview.
type VirtualPage struct {
	width, height float64
	docHeight     float64
	scrollY       float64

	reducedMotion bool
	canHover      bool

	elements  map[ElementName]*VirtualElement
	cards     []*VirtualElement
	navLinks  []NavLink
	listeners []Listener

	viewportReads int
}

// NewVirtualPage creates a page with the given viewport and document height.
// The pointer can hover and reduced motion is off.
func NewVirtualPage(width, height, docHeight float64) *VirtualPage {
	return &VirtualPage{
		width:     width,
		height:    height,
		docHeight: docHeight,
		canHover:  true,
		elements:  make(map[ElementName]*VirtualElement),
	}
}

// AddElement registers a named element with a layout box in document
// coordinates.
func (p *VirtualPage) AddElement(name ElementName, layout Rect) *VirtualElement {
	el := &VirtualElement{Name: string(name), layout: layout, page: p}
	p.elements[name] = el
	return el
}

// Element returns the named element or nil.
func (p *VirtualPage) Element(name ElementName) *VirtualElement {
	return p.elements[name]
}

// AddCard appends a tiltable card.
func (p *VirtualPage) AddCard(layout Rect) *VirtualElement {
	el := &VirtualElement{Name: "card", layout: layout, page: p}
	p.cards = append(p.cards, el)
	return el
}

// AddNavLink appends a sidebar link targeting a section with the given
// layout box. A zero section box means the section is absent.
func (p *VirtualPage) AddNavLink(target string, section Rect) *VirtualElement {
	link := &VirtualElement{Name: "nav:" + target, page: p}
	nl := NavLink{Target: target, Element: link}
	if section != (Rect{}) {
		nl.Section = &VirtualElement{Name: target, layout: section, page: p}
	}
	p.navLinks = append(p.navLinks, nl)
	return link
}

// CardElements returns the cards as concrete elements.
func (p *VirtualPage) CardElements() []*VirtualElement {
	return p.cards
}

// Subscribe registers a listener for ScrollTo and Resize.
func (p *VirtualPage) Subscribe(l Listener) {
	p.listeners = append(p.listeners, l)
}

// ScrollTo moves the page, clamped to the scrollable range, and notifies
// listeners.
func (p *VirtualPage) ScrollTo(y float64) {
	p.scrollY = clamp(y, 0, p.maxScroll())
	for _, l := range p.listeners {
		l.OnScroll(p.scrollY)
	}
}

// ScrollBy scrolls relative to the current offset.
func (p *VirtualPage) ScrollBy(dy float64) {
	p.ScrollTo(p.scrollY + dy)
}

// Resize changes the viewport and notifies listeners.
func (p *VirtualPage) Resize(width, height float64) {
	p.width, p.height = width, height
	p.scrollY = clamp(p.scrollY, 0, p.maxScroll())
	for _, l := range p.listeners {
		l.OnResize()
	}
}

// SetReducedMotion sets the reduced-motion preference.
func (p *VirtualPage) SetReducedMotion(on bool) {
	p.reducedMotion = on
}

// SetCanHover sets the hover capability.
func (p *VirtualPage) SetCanHover(on bool) {
	p.canHover = on
}

// ViewportReads counts Viewport calls, a proxy for layout reads.
func (p *VirtualPage) ViewportReads() int {
	return p.viewportReads
}

func (p *VirtualPage) maxScroll() float64 {
	m := p.docHeight - p.height
	if m < 0 {
		return 0
	}
	return m
}

// Viewport implements Geometry.
func (p *VirtualPage) Viewport() (float64, float64) {
	p.viewportReads++
	return p.width, p.height
}

// ScrollY implements Geometry.
func (p *VirtualPage) ScrollY() float64 { return p.scrollY }

// ScrollHeight implements Geometry.
func (p *VirtualPage) ScrollHeight() float64 { return p.docHeight }

// PrefersReducedMotion implements Geometry.
func (p *VirtualPage) PrefersReducedMotion() bool { return p.reducedMotion }

// CanHover implements Geometry.
func (p *VirtualPage) CanHover() bool { return p.canHover }

// Lookup implements Page. A missing element is returned as a nil interface.
func (p *VirtualPage) Lookup(name ElementName) Element {
	el, ok := p.elements[name]
	if !ok {
		return nil
	}
	return el
}

// Cards implements Page.
func (p *VirtualPage) Cards() []Element {
	out := make([]Element, len(p.cards))
	for i, c := range p.cards {
		out[i] = c
	}
	return out
}

// NavLinks implements Page.
func (p *VirtualPage) NavLinks() []NavLink {
	return p.navLinks
}

// CardAt returns the index of the card under the viewport point (x, y), or
// -1. Later cards win when they overlap.
func (p *VirtualPage) CardAt(x, y float64) int {
	hit := -1
	for i, c := range p.cards {
		if c.BoundingRect().Contains(x, y) {
			hit = i
		}
	}
	return hit
}
