package scrollfx

import (
	"errors"
	"io"
	"math"
	"time"
)

// Listener receives the host events that drive the engine. Engine
// implements it; hosts call it from their scroll and resize handlers.
type Listener interface {
	OnScroll(y float64)
	OnResize()
}

// Engine is one instance of the scroll-driven animation engine. All of its
// state lives here; several engines can run side by side (tests do).
//
// Engine is not safe for concurrent use. Hosts call it from a single
// goroutine, which in a browser is the event loop.
type Engine struct {
	cfg   Config
	page  Page
	sched Scheduler

	scroll   ScrollState
	elements elementCache
	metrics  metricsCache
	cards    []CardVisualState

	framePending bool
	cancelFrame  CancelFunc
	cancelResize CancelFunc

	// Evaluated once per activation.
	activated      bool
	reducedMotion  bool
	canHover       bool
	bodiesDisabled bool
	parallaxOff    bool

	suspended bool
	drawnGen  uint64

	// Free-run clock.
	startedAt time.Duration
	clockSet  bool

	motion    MotionFrame
	hasMotion bool

	tiltLast     time.Duration
	tiltClockSet bool

	widgetsInit    bool
	backToTopShown bool
	activeLink     int

	debug    bool
	debugOut io.Writer
}

// New creates an engine bound to a page and a scheduler. Nothing is read
// from the page until the first frame.
func New(page Page, sched Scheduler, cfg Config) (*Engine, error) {
	if page == nil {
		return nil, errors.New("scrollfx: nil page")
	}
	if sched == nil {
		return nil, errors.New("scrollfx: nil scheduler")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		page:       page,
		sched:      sched,
		activeLink: -1,
	}, nil
}

// Start samples the page's scroll offset and schedules the first frame.
func (e *Engine) Start() {
	y := e.page.ScrollY()
	e.scroll = ScrollState{Target: y, Current: y, LastSampled: y}
	e.requestFrame()
}

// Stop cancels any pending frame and resize timer. A later scroll event
// wakes the engine again.
func (e *Engine) Stop() {
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}
	e.framePending = false
	if e.cancelResize != nil {
		e.cancelResize()
		e.cancelResize = nil
	}
}

// OnScroll records the raw scroll offset and wakes the frame loop. Events
// arriving between two frames are coalesced; only the last target is seen.
func (e *Engine) OnScroll(y float64) {
	e.scroll.Target = y
	e.requestFrame()
}

// OnResize debounces resize bursts. When the burst settles, metrics are
// invalidated if the viewport width changed and one frame is scheduled.
// Height-only changes keep the current generation.
func (e *Engine) OnResize() {
	if e.cancelResize != nil {
		e.cancelResize()
	}
	e.cancelResize = e.sched.After(e.cfg.ResizeDebounce, e.resizeSettled)
}

func (e *Engine) resizeSettled() {
	e.cancelResize = nil
	if e.metrics.valid() {
		w, _ := e.page.Viewport()
		if w != e.metrics.metrics.ViewportWidth {
			e.metrics.invalidate()
		}
	}
	e.requestFrame()
}

// Invalidate drops the cached metrics and schedules a frame to remeasure.
func (e *Engine) Invalidate() {
	e.metrics.invalidate()
	e.requestFrame()
}

// Metrics returns the current metrics generation, measuring the page if
// needed.
func (e *Engine) Metrics() *Metrics {
	return e.ensureMetrics(e.handles())
}

// CachedMetrics returns the metrics generation currently held, or nil when
// the cache is invalid. Unlike Metrics it never measures the page.
func (e *Engine) CachedMetrics() *Metrics {
	if !e.metrics.valid() {
		return nil
	}
	return e.metrics.metrics
}

// Scroll returns a copy of the scroll state.
func (e *Engine) Scroll() ScrollState {
	return e.scroll
}

// FramePending reports whether a frame is queued with the scheduler.
func (e *Engine) FramePending() bool {
	return e.framePending
}

// Suspended reports whether the last frame hit the mobile cutoff.
func (e *Engine) Suspended() bool {
	return e.suspended
}

// BodiesDisabled reports whether body animation was switched off for this
// session by the reduced-motion preference.
func (e *Engine) BodiesDisabled() bool {
	return e.bodiesDisabled
}

// Motion returns the last body poses written, if any.
func (e *Engine) Motion() (MotionFrame, bool) {
	return e.motion, e.hasMotion
}

// Card returns the visual state of card i.
func (e *Engine) Card(i int) (CardVisualState, bool) {
	if i < 0 || i >= len(e.cards) {
		return CardVisualState{}, false
	}
	return e.cards[i], true
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// requestFrame queues one frame unless one is already pending.
func (e *Engine) requestFrame() {
	if e.framePending {
		return
	}
	e.framePending = true
	e.cancelFrame = e.sched.RequestFrame(e.frame)
}

func (e *Engine) frame(now time.Duration) {
	e.framePending = false
	e.cancelFrame = nil
	e.Step(now)
}

// Step runs one animation frame and reschedules itself when there is more
// to do. It never panics: a panic from a host sink is reported and the
// engine goes idle until the next event.
func (e *Engine) Step(now time.Duration) {
	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	defer func() {
		if r := recover(); r != nil {
			e.reportPanic(r)
			return
		}
		if e.debug {
			stats.stepTime = time.Since(t0)
			e.debugLog(stats)
		}
	}()

	if e.step(now, &stats) {
		stats.rescheduled = true
		e.requestFrame()
	}
}

// step performs the frame and reports whether another frame is needed.
func (e *Engine) step(now time.Duration, stats *debugStats) bool {
	h := e.handles()
	m := e.ensureMetrics(h)
	stats.generation = m.Generation

	// Hard performance cutoff for the physics: no transform writes, no
	// further frames. Widgets still follow the raw offset.
	if m.ViewportWidth < e.cfg.MobileBreakpoint {
		e.suspended = true
		e.scroll.LastSampled = e.scroll.Current
		e.scroll.Current = e.scroll.Target
		e.applyWidgets(h, m)
		return false
	}
	e.suspended = false
	e.activate(h)

	if e.parallaxOff {
		e.scroll.LastSampled = e.scroll.Current
		e.scroll.Current = e.scroll.Target
		e.applyWidgets(h, m)
		e.drawnGen = m.Generation
		return false
	}

	e.scroll.Advance(e.cfg.Smoothing)
	e.scroll.Settle(e.cfg.ConvergeEpsilon)
	stats.current, stats.target = e.scroll.Current, e.scroll.Target

	fresh := m.Generation != e.drawnGen
	moved := e.scroll.Moved() || fresh
	if moved {
		e.applyBackground(h, m)
		e.applyCards(h, m, stats)
		e.applyWidgets(h, m)
	} else {
		stats.skipped = true
	}
	more := e.updateTilt(h, m, now, stats)
	if !e.scroll.Converged(e.cfg.ConvergeEpsilon) {
		more = true
	}

	// Pages without both bodies run background and card parallax only.
	if !h.hasBodies() || e.bodiesDisabled {
		e.drawnGen = m.Generation
		return more
	}

	freeRun := e.cfg.LoopMode == LoopFreeRun
	elapsed := 0.0
	if freeRun {
		if !e.clockSet {
			e.startedAt = now
			e.clockSet = true
		}
		elapsed = (now - e.startedAt).Seconds()
	}
	if moved || freeRun {
		e.motion = ComputeMotion(m, &e.cfg.Bodies, e.scroll.Current, elapsed)
		e.hasMotion = true
		h.jupiter.SetTransform(e.motion.Jupiter.Transform)
		h.saturn.SetOpacity(e.motion.Saturn.Opacity)
		h.saturn.SetTransform(e.motion.Saturn.Transform)
		stats.bodies = true
	}
	e.drawnGen = m.Generation

	if freeRun && (e.motion.Jupiter.Visible || e.motion.Saturn.Visible) {
		more = true
	}
	return more
}

// activate evaluates the once-per-activation media preferences. Reduced
// motion hides both bodies for the rest of the session; background parallax
// survives only when configured to.
func (e *Engine) activate(h *elementHandles) {
	if e.activated {
		return
	}
	e.activated = true
	e.reducedMotion = e.page.PrefersReducedMotion()
	e.canHover = e.page.CanHover() && !e.reducedMotion
	if !e.reducedMotion {
		return
	}
	e.bodiesDisabled = true
	e.parallaxOff = !e.cfg.ReducedMotion.KeepParallax
	if h.jupiter != nil {
		h.jupiter.SetDisplay(false)
	}
	if h.saturn != nil {
		h.saturn.SetDisplay(false)
	}
}

// handles resolves element handles and sizes the per-card state to match.
func (e *Engine) handles() *elementHandles {
	h := e.elements.ensure(e.page, &e.cfg)
	if len(e.cards) != len(h.cards) {
		e.cards = make([]CardVisualState, len(h.cards))
		for i := range e.cards {
			e.cards[i].Scale = 1
		}
	}
	return h
}

func (e *Engine) ensureMetrics(h *elementHandles) *Metrics {
	regen := !e.metrics.valid()
	m := e.metrics.ensure(e.page, h)
	if regen {
		e.debugMetrics(m)
	}
	return m
}

// BackgroundOffset returns how far the background layer moves up for the
// smoothed offset current.
func BackgroundOffset(current, viewportHeight float64, cfg *BackgroundConfig) float64 {
	off := current * cfg.Factor
	if cfg.MaxFraction > 0 {
		off = math.Min(off, viewportHeight*cfg.MaxFraction)
	}
	return off
}

func (e *Engine) applyBackground(h *elementHandles, m *Metrics) {
	if h.spaceBg == nil {
		return
	}
	h.spaceBg.SetTransform(Translate(0, -BackgroundOffset(e.scroll.Current, m.ViewportHeight, &e.cfg.Background)))
}
