//go:build js && wasm

// Package dom runs a scrollfx engine against the live browser document.
package dom

import (
	"strconv"
	"strings"
	"syscall/js"

	"github.com/phanxgames/scrollfx"
)

// Page implements scrollfx.Page over window and document.
type Page struct {
	win js.Value
	doc js.Value

	reducedMotion js.Value // MediaQueryList
	hover         js.Value // MediaQueryList

	cards    []scrollfx.Element
	navLinks []scrollfx.NavLink
}

// NewPage captures the global window and queries the card and nav-link
// collections once. Pages are full reloads, so the collections never change.
func NewPage() *Page {
	win := js.Global()
	p := &Page{
		win:           win,
		doc:           win.Get("document"),
		reducedMotion: win.Call("matchMedia", "(prefers-reduced-motion: reduce)"),
		hover:         win.Call("matchMedia", "(hover: hover)"),
	}

	nodes := p.doc.Call("querySelectorAll", scrollfx.CardSelector)
	for i := 0; i < nodes.Length(); i++ {
		p.cards = append(p.cards, newElement(nodes.Index(i)))
	}

	links := p.doc.Call("querySelectorAll", scrollfx.NavLinkSelector)
	for i := 0; i < links.Length(); i++ {
		a := links.Index(i)
		id := strings.TrimPrefix(a.Call("getAttribute", "href").String(), "#")
		nl := scrollfx.NavLink{Target: id, Element: newElement(a)}
		if section := p.doc.Call("getElementById", id); !section.IsNull() {
			nl.Section = newElement(section)
		}
		p.navLinks = append(p.navLinks, nl)
	}
	return p
}

// Viewport implements scrollfx.Geometry.
func (p *Page) Viewport() (float64, float64) {
	return p.win.Get("innerWidth").Float(), p.win.Get("innerHeight").Float()
}

// ScrollY implements scrollfx.Geometry.
func (p *Page) ScrollY() float64 {
	return p.win.Get("scrollY").Float()
}

// ScrollHeight implements scrollfx.Geometry.
func (p *Page) ScrollHeight() float64 {
	return p.doc.Get("documentElement").Get("scrollHeight").Float()
}

// PrefersReducedMotion implements scrollfx.Geometry.
func (p *Page) PrefersReducedMotion() bool {
	return p.reducedMotion.Get("matches").Bool()
}

// CanHover implements scrollfx.Geometry.
func (p *Page) CanHover() bool {
	return p.hover.Get("matches").Bool()
}

// Lookup implements scrollfx.Page. A selector with no match returns a nil
// interface.
func (p *Page) Lookup(name scrollfx.ElementName) scrollfx.Element {
	v := p.doc.Call("querySelector", string(name))
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return newElement(v)
}

// Cards implements scrollfx.Page.
func (p *Page) Cards() []scrollfx.Element {
	return p.cards
}

// NavLinks implements scrollfx.Page.
func (p *Page) NavLinks() []scrollfx.NavLink {
	return p.navLinks
}

// Element wraps one DOM node. Style writes go straight to its inline style.
type Element struct {
	v     js.Value
	style js.Value
}

func newElement(v js.Value) *Element {
	return &Element{v: v, style: v.Get("style")}
}

// Value returns the underlying DOM node.
func (e *Element) Value() js.Value {
	return e.v
}

// SetTransform implements scrollfx.StyleSink.
func (e *Element) SetTransform(t scrollfx.Transform) {
	e.style.Set("transform", t.CSS())
}

// SetOpacity implements scrollfx.StyleSink.
func (e *Element) SetOpacity(v float64) {
	e.style.Set("opacity", strconv.FormatFloat(v, 'f', 2, 64))
}

// SetDisplay implements scrollfx.StyleSink. Showing an element clears the
// inline value so the stylesheet decides.
func (e *Element) SetDisplay(visible bool) {
	if visible {
		e.style.Set("display", "")
		return
	}
	e.style.Set("display", "none")
}

// SetWidthPercent implements scrollfx.StyleSink.
func (e *Element) SetWidthPercent(pct float64) {
	e.style.Set("width", strconv.FormatFloat(pct, 'f', 2, 64)+"%")
}

// SetClass implements scrollfx.StyleSink.
func (e *Element) SetClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

// Layout implements scrollfx.Element. It walks the offsetParent chain, which
// ignores CSS transforms, so applied parallax never shifts the result.
func (e *Element) Layout() scrollfx.Rect {
	var x, y float64
	for n := e.v; !n.IsNull() && !n.IsUndefined(); n = n.Get("offsetParent") {
		x += n.Get("offsetLeft").Float()
		y += n.Get("offsetTop").Float()
	}
	return scrollfx.Rect{
		X:      x,
		Y:      y,
		Width:  e.v.Get("offsetWidth").Float(),
		Height: e.v.Get("offsetHeight").Float(),
	}
}

// BoundingRect implements scrollfx.Element.
func (e *Element) BoundingRect() scrollfx.Rect {
	r := e.v.Call("getBoundingClientRect")
	return scrollfx.Rect{
		X:      r.Get("left").Float(),
		Y:      r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}
