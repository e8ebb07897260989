//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/phanxgames/scrollfx"
)

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Binding owns the event listeners that feed an engine. Release removes
// them and frees their callbacks.
type Binding struct {
	eng       *scrollfx.Engine
	page      *Page
	listeners []listener
	globals   []string
}

// Bind wires window scroll and resize, pointer events on every card, the
// back-to-top button and a late layout pass on window load to eng. It also
// exposes scrollfxInvalidate on the global object for pages that change
// layout after load.
func Bind(eng *scrollfx.Engine, page *Page) *Binding {
	b := &Binding{eng: eng, page: page}
	win := page.win
	passive := js.ValueOf(map[string]any{"passive": true})

	b.on(win, "scroll", passive, func(js.Value) {
		eng.OnScroll(page.ScrollY())
	})
	b.on(win, "resize", passive, func(js.Value) {
		eng.OnResize()
	})
	// Images and web fonts move sections after the first measurement.
	b.on(win, "load", js.Undefined(), func(js.Value) {
		eng.Invalidate()
	})

	for i, card := range page.Cards() {
		el, ok := card.(*Element)
		if !ok {
			continue
		}
		b.on(el.v, "pointerenter", passive, func(js.Value) {
			eng.PointerEnter(i)
		})
		b.on(el.v, "pointermove", passive, func(ev js.Value) {
			eng.PointerMove(i, ev.Get("clientX").Float(), ev.Get("clientY").Float())
		})
		b.on(el.v, "pointerleave", passive, func(js.Value) {
			eng.PointerLeave(i)
		})
	}

	if top, ok := page.Lookup(scrollfx.ElemBackToTop).(*Element); ok {
		b.on(top.v, "click", js.Undefined(), func(ev js.Value) {
			ev.Call("preventDefault")
			behavior := "smooth"
			if page.PrefersReducedMotion() {
				behavior = "auto"
			}
			win.Call("scrollTo", map[string]any{"top": 0, "behavior": behavior})
		})
	}

	invalidate := js.FuncOf(func(js.Value, []js.Value) any {
		eng.Invalidate()
		return nil
	})
	b.listeners = append(b.listeners, listener{fn: invalidate})
	win.Set("scrollfxInvalidate", invalidate)
	b.globals = append(b.globals, "scrollfxInvalidate")
	return b
}

func (b *Binding) on(target js.Value, event string, opts js.Value, handler func(ev js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		handler(ev)
		return nil
	})
	if opts.IsUndefined() {
		target.Call("addEventListener", event, fn)
	} else {
		target.Call("addEventListener", event, fn, opts)
	}
	b.listeners = append(b.listeners, listener{target: target, event: event, fn: fn})
}

// Release detaches every listener, stops the engine and frees the callbacks.
func (b *Binding) Release() {
	b.eng.Stop()
	for _, l := range b.listeners {
		if l.event != "" {
			l.target.Call("removeEventListener", l.event, l.fn)
		}
		l.fn.Release()
	}
	b.listeners = nil
	for _, name := range b.globals {
		b.page.win.Delete(name)
	}
	b.globals = nil
}
