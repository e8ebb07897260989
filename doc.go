// Package scrollfx is a scroll-driven visual-effects engine for long-form
// pages.
//
// The engine smooths the raw scroll offset toward a displayed offset and
// derives everything else from it: a slowly drifting background layer,
// per-card parallax, two celestial bodies that sweep along curved paths
// through consecutive scroll zones, pointer tilt on hoverable cards, and the
// reading-progress, back-to-top and scroll-spy widgets.
//
// # Hosts
//
// The engine never touches a browser directly. A host supplies a [Page]
// (geometry, element lookup and style sinks) and a [Scheduler] (animation
// frames and timers), then forwards scroll, resize and pointer events:
//
//	eng, err := scrollfx.New(page, sched, scrollfx.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	eng.Start()
//	// on scroll:  eng.OnScroll(window.scrollY)
//	// on resize:  eng.OnResize()
//	// on pointer: eng.PointerEnter(i), eng.PointerMove(i, x, y), eng.PointerLeave(i)
//
// The dom package binds an engine to a real document under js/wasm.
// [VirtualPage] and [ManualScheduler] run the engine headlessly for tests,
// scripted [Scenario] replays and the desktop preview.
//
// # Frame loop
//
// At most one frame is pending at any time. A frame advances the smoothed
// offset, writes transforms only when something moved, and reschedules
// itself until the offset converges and no tilt tween is running. Layout is
// measured once per metrics generation; a generation ends when the viewport
// width changes after a debounced resize or when [Engine.Invalidate] is
// called.
//
// Viewports narrower than the mobile breakpoint get no effects at all, and
// the reduced-motion preference hides the bodies for the session.
//
// # Configuration
//
// Every tunable lives in [Config]. [LoadConfig] reads YAML over the
// defaults:
//
//	smoothing: 0.1
//	loop_mode: free_run
//	background:
//	  factor: 0.05
//	  max_fraction: 0.1
//
// # Debugging
//
// [Engine.SetDebugMode] prints per-frame timing, scroll state and write
// counts to stderr, prefixed with [scrollfx].
package scrollfx
