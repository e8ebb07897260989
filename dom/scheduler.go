//go:build js && wasm

package dom

import (
	"syscall/js"
	"time"

	"github.com/phanxgames/scrollfx"
)

// Scheduler implements scrollfx.Scheduler with requestAnimationFrame and
// setTimeout. Each callback is a one-shot js.Func released after it runs or
// when it is cancelled, whichever comes first.
type Scheduler struct {
	win js.Value
}

// NewScheduler returns a scheduler bound to the global window.
func NewScheduler() *Scheduler {
	return &Scheduler{win: js.Global()}
}

// RequestFrame implements scrollfx.Scheduler. The frame time passed to fn is
// the rAF timestamp.
func (s *Scheduler) RequestFrame(fn scrollfx.FrameFunc) scrollfx.CancelFunc {
	var cb js.Func
	released := false
	release := func() {
		if !released {
			released = true
			cb.Release()
		}
	}
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		release()
		var now time.Duration
		if len(args) > 0 {
			now = time.Duration(args[0].Float() * float64(time.Millisecond))
		}
		fn(now)
		return nil
	})
	id := s.win.Call("requestAnimationFrame", cb)
	return func() {
		if released {
			return
		}
		s.win.Call("cancelAnimationFrame", id)
		release()
	}
}

// After implements scrollfx.Scheduler.
func (s *Scheduler) After(d time.Duration, fn func()) scrollfx.CancelFunc {
	var cb js.Func
	released := false
	release := func() {
		if !released {
			released = true
			cb.Release()
		}
	}
	cb = js.FuncOf(func(_ js.Value, _ []js.Value) any {
		release()
		fn()
		return nil
	})
	id := s.win.Call("setTimeout", cb, d.Milliseconds())
	return func() {
		if released {
			return
		}
		s.win.Call("clearTimeout", id)
		release()
	}
}
