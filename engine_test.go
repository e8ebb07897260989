package scrollfx

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

// newTestEngine wires an engine to page with a manual scheduler and starts
// it. The first frame has not run yet.
func newTestEngine(t *testing.T, page *VirtualPage, cfg Config) (*Engine, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	eng, err := New(page, sched, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	page.Subscribe(eng)
	eng.Start()
	return eng, sched
}

// bodyPage is the 1600x900 reference page with both bodies, a quote section
// at 1000 and a background layer.
func bodyPage() *VirtualPage {
	p := NewVirtualPage(1600, 900, 5000)
	p.AddElement(ElemJupiter, Rect{Width: 260, Height: 260})
	p.AddElement(ElemSaturn, Rect{Width: 360, Height: 220})
	p.AddElement(ElemQuoteSection, Rect{Y: 1000, Width: 1600, Height: 500})
	p.AddElement(ElemSpaceBg, Rect{Width: 1600, Height: 5000})
	return p
}

// settle runs frames until the engine idles and fails if it never does.
func settle(t *testing.T, sched *ManualScheduler) int {
	t.Helper()
	n := sched.RunFrames(1000, frame)
	if sched.Pending() != 0 {
		t.Fatalf("engine still scheduling after %d frames", n)
	}
	return n
}

func TestNewRejectsBadInput(t *testing.T) {
	sched := NewManualScheduler()
	if _, err := New(nil, sched, DefaultConfig()); err == nil {
		t.Error("expected error for nil page")
	}
	if _, err := New(NewVirtualPage(1, 1, 1), nil, DefaultConfig()); err == nil {
		t.Error("expected error for nil scheduler")
	}
	cfg := DefaultConfig()
	cfg.Smoothing = 1.5
	if _, err := New(NewVirtualPage(1, 1, 1), sched, cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestEngineConvergesMonotonically(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	page.ScrollTo(1000)
	prev := math.Inf(1)
	frames := 0
	for sched.Pending() > 0 {
		sched.Step(frame)
		frames++
		s := eng.Scroll()
		dist := math.Abs(s.Target - s.Current)
		if dist >= prev && dist != 0 {
			t.Fatalf("frame %d: distance %f did not shrink from %f", frames, dist, prev)
		}
		if s.Current > s.Target {
			t.Fatalf("frame %d: current %f overshot target %f", frames, s.Current, s.Target)
		}
		prev = dist
		if frames > 200 {
			t.Fatal("no convergence within 200 frames")
		}
	}
	s := eng.Scroll()
	if math.Abs(s.Target-s.Current) > DefaultConvergeEpsilon {
		t.Errorf("idle at distance %f, want <= %f", math.Abs(s.Target-s.Current), DefaultConvergeEpsilon)
	}
	// 1000 * 0.88^n <= 0.5 needs 60 frames.
	if frames < 55 || frames > 70 {
		t.Errorf("converged in %d frames, want about 60", frames)
	}
}

func TestEngineCoalescesScrollEvents(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	page.ScrollTo(100)
	page.ScrollTo(300)
	page.ScrollTo(250)
	if sched.Pending() != 1 {
		t.Fatalf("Pending = %d after three scroll events, want 1", sched.Pending())
	}
	if !eng.FramePending() {
		t.Error("FramePending = false, want true")
	}
	if eng.Scroll().Target != 250 {
		t.Errorf("Target = %f, want last event 250", eng.Scroll().Target)
	}
}

func TestEngineBackgroundParallax(t *testing.T) {
	page := bodyPage()
	bg := page.Element(ElemSpaceBg)
	_, sched := newTestEngine(t, page, DefaultConfig())
	page.ScrollTo(2000)
	settle(t, sched)

	want := -2000 * DefaultBackgroundFactor
	if !approxEqual(bg.Transform.Y, want, 1e-9) {
		t.Errorf("background Y = %f, want %f", bg.Transform.Y, want)
	}
}

func TestEngineBackgroundMaxFraction(t *testing.T) {
	page := bodyPage()
	bg := page.Element(ElemSpaceBg)
	cfg := DefaultConfig()
	cfg.Background.Factor = 0.5
	cfg.Background.MaxFraction = 0.1
	_, sched := newTestEngine(t, page, cfg)
	page.ScrollTo(4000)
	settle(t, sched)

	if !approxEqual(bg.Transform.Y, -90, 1e-9) {
		t.Errorf("background Y = %f, want clamp -90", bg.Transform.Y)
	}
}

func TestEngineWithoutBodiesKeepsParallax(t *testing.T) {
	page := NewVirtualPage(1600, 900, 3000)
	bg := page.AddElement(ElemSpaceBg, Rect{Width: 1600, Height: 3000})
	page.AddElement(ElemJupiter, Rect{Width: 100, Height: 100}) // Saturn missing
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	before := bg.Transform.Y
	page.ScrollTo(600)
	settle(t, sched)

	if bg.Transform.Y == before {
		t.Error("background did not move on a page without bodies")
	}
	if _, ok := eng.Motion(); ok {
		t.Error("body motion computed on a page without bodies")
	}
	if page.Element(ElemJupiter).TransformWrites != 0 {
		t.Error("Jupiter transformed although Saturn is absent")
	}
}

func TestEngineEmptyPage(t *testing.T) {
	page := NewVirtualPage(1600, 900, 0)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	page.ScrollTo(500)
	settle(t, sched)

	m := eng.Metrics()
	if m.MaxScroll != 1 {
		t.Errorf("MaxScroll = %f, want floor 1", m.MaxScroll)
	}
	if math.IsNaN(m.EssayCardCenter) || m.EssayCardCenter != sentinelEssayCardHeight/2 {
		t.Errorf("EssayCardCenter = %f, want sentinel %f", m.EssayCardCenter, sentinelEssayCardHeight/2)
	}
}

func TestEngineMobileCutoff(t *testing.T) {
	page := bodyPage()
	page.Resize(800, 900)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	jupiter := page.Element(ElemJupiter)
	saturn := page.Element(ElemSaturn)

	sched.Step(frame)
	page.ScrollTo(700)
	sched.Step(frame)
	sched.Step(frame)

	if jupiter.TransformWrites != 0 || saturn.TransformWrites != 0 {
		t.Errorf("bodies transformed on mobile: jupiter=%d saturn=%d", jupiter.TransformWrites, saturn.TransformWrites)
	}
	if page.Element(ElemSpaceBg).TransformWrites != 0 {
		t.Error("background transformed on mobile")
	}
	if sched.Pending() != 0 || eng.FramePending() {
		t.Error("frame scheduled on mobile")
	}
	if !eng.Suspended() {
		t.Error("Suspended = false, want true")
	}

	// Widening past the breakpoint resumes.
	page.Resize(1200, 900)
	sched.Advance(DefaultResizeDebounce)
	settle(t, sched)
	if eng.Suspended() {
		t.Error("still suspended after widening")
	}
	if jupiter.TransformWrites == 0 {
		t.Error("Jupiter not animated after widening")
	}
}

func TestEngineResizeInvalidation(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)
	first := eng.Metrics()

	// Height-only change keeps the generation.
	page.Resize(1600, 700)
	sched.Advance(DefaultResizeDebounce)
	settle(t, sched)
	if got := eng.Metrics(); got != first {
		t.Errorf("height-only resize replaced metrics gen %d with gen %d", first.Generation, got.Generation)
	}

	// Width change yields a fresh generation.
	page.Resize(1400, 700)
	sched.Advance(DefaultResizeDebounce)
	second := eng.Metrics()
	if second == first {
		t.Fatal("width change kept stale metrics")
	}
	if second.Generation != first.Generation+1 {
		t.Errorf("Generation = %d, want %d", second.Generation, first.Generation+1)
	}
	if second.ViewportWidth != 1400 {
		t.Errorf("ViewportWidth = %f, want 1400", second.ViewportWidth)
	}
	if second.JupiterPath.P2.X != 1400+200 {
		t.Errorf("Jupiter path not rescaled: P2.X = %f", second.JupiterPath.P2.X)
	}
}

func TestEngineResizeDebounce(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)
	first := eng.Metrics()

	page.Resize(1500, 900)
	sched.Advance(100 * time.Millisecond)
	page.Resize(1400, 900)
	sched.Advance(100 * time.Millisecond)
	if sched.PendingTimers() != 1 {
		t.Fatalf("PendingTimers = %d, want 1 coalesced timer", sched.PendingTimers())
	}
	if eng.Metrics() != first {
		t.Fatal("metrics invalidated before the debounce settled")
	}
	sched.Advance(50 * time.Millisecond)
	if m := eng.Metrics(); m == first || m.ViewportWidth != 1400 {
		t.Errorf("metrics after debounce: width %f, want fresh 1400", m.ViewportWidth)
	}
}

func TestEngineInvalidateOnDemand(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)
	first := eng.Metrics()

	page.Element(ElemQuoteSection).SetLayout(Rect{Y: 1200, Width: 1600, Height: 500})
	eng.Invalidate()
	settle(t, sched)
	if m := eng.Metrics(); m == first || m.QuoteTop != 1200 {
		t.Errorf("QuoteTop = %f after Invalidate, want 1200", m.QuoteTop)
	}
}

func TestEngineCachedMetricsNeverMeasures(t *testing.T) {
	page := bodyPage()
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)
	if m := eng.CachedMetrics(); m == nil || m.Generation != 1 {
		t.Fatalf("CachedMetrics = %+v, want generation 1", m)
	}

	eng.Invalidate()
	reads := page.ViewportReads()
	if m := eng.CachedMetrics(); m != nil {
		t.Errorf("CachedMetrics = generation %d after Invalidate, want nil", m.Generation)
	}
	if page.ViewportReads() != reads {
		t.Error("CachedMetrics measured the page")
	}

	settle(t, sched)
	if m := eng.CachedMetrics(); m == nil || m.Generation != 2 {
		t.Errorf("CachedMetrics = %+v after the next frame, want generation 2", m)
	}
}

func TestEngineReducedMotion(t *testing.T) {
	page := bodyPage()
	page.SetReducedMotion(true)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	jupiter := page.Element(ElemJupiter)
	saturn := page.Element(ElemSaturn)
	if !jupiter.Hidden || !saturn.Hidden {
		t.Error("bodies not hidden under reduced motion")
	}
	if !eng.BodiesDisabled() {
		t.Error("BodiesDisabled = false, want true")
	}

	page.ScrollTo(1500)
	settle(t, sched)
	if jupiter.TransformWrites != 0 || saturn.TransformWrites != 0 {
		t.Error("bodies animated under reduced motion")
	}
	if bg := page.Element(ElemSpaceBg); bg.Transform.Y == 0 {
		t.Error("background parallax stopped although keep_parallax is on")
	}
}

func TestEngineReducedMotionWithoutParallax(t *testing.T) {
	page := bodyPage()
	page.SetReducedMotion(true)
	progress := page.AddElement(ElemProgressBar, Rect{Width: 1600, Height: 4})
	cfg := DefaultConfig()
	cfg.ReducedMotion.KeepParallax = false
	eng, sched := newTestEngine(t, page, cfg)
	sched.Step(frame)

	page.ScrollTo(2050)
	if ran := sched.Step(frame); ran != 1 {
		t.Fatalf("ran %d frames, want 1", ran)
	}
	if sched.Pending() != 0 {
		t.Error("loop kept running with parallax disabled")
	}
	if page.Element(ElemSpaceBg).TransformWrites != 0 {
		t.Error("background moved with parallax disabled")
	}
	if eng.Scroll().Current != 2050 {
		t.Errorf("Current = %f, want snapped 2050", eng.Scroll().Current)
	}
	if !approxEqual(progress.WidthPercent, 50, 1e-9) {
		t.Errorf("progress = %f, want 50", progress.WidthPercent)
	}
}

func TestEngineBodiesMatchMotionModel(t *testing.T) {
	page := bodyPage()
	page.ScrollTo(500)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	sched.Step(frame)

	jupiter := page.Element(ElemJupiter)
	want := ComputeMotion(eng.Metrics(), &eng.cfg.Bodies, 500, 0)
	if jupiter.Transform != want.Jupiter.Transform {
		t.Errorf("Jupiter transform = %+v, want %+v", jupiter.Transform, want.Jupiter.Transform)
	}
	if jupiter.Opacity != DefaultJupiterOpacity {
		t.Errorf("Jupiter opacity = %f, want base %f", jupiter.Opacity, DefaultJupiterOpacity)
	}
	saturn := page.Element(ElemSaturn)
	if saturn.Opacity != 0 {
		t.Errorf("Saturn opacity = %f before its zone, want 0", saturn.Opacity)
	}
	if sched.Pending() != 0 {
		t.Error("converge mode scheduled a frame with nothing to do")
	}
}

func TestEngineSkipsWritesWhenIdle(t *testing.T) {
	page := bodyPage()
	page.ScrollTo(800)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	settle(t, sched)

	bg := page.Element(ElemSpaceBg)
	jupiter := page.Element(ElemJupiter)
	bgWrites, jWrites := bg.TransformWrites, jupiter.TransformWrites

	eng.Step(sched.Now())
	eng.Step(sched.Now())
	if bg.TransformWrites != bgWrites || jupiter.TransformWrites != jWrites {
		t.Errorf("idle steps wrote styles: bg %d->%d jupiter %d->%d",
			bgWrites, bg.TransformWrites, jWrites, jupiter.TransformWrites)
	}
}

func TestEngineFreeRunKeepsLoopAlive(t *testing.T) {
	page := bodyPage()
	cfg := DefaultConfig()
	cfg.LoopMode = LoopFreeRun
	eng, sched := newTestEngine(t, page, cfg)

	ran := sched.RunFrames(30, frame)
	if ran != 30 {
		t.Fatalf("free-run loop ran %d of 30 frames", ran)
	}
	m, ok := eng.Motion()
	if !ok {
		t.Fatal("no motion computed")
	}
	if m.Jupiter.Transform.Rotate == 0 {
		t.Error("Jupiter did not spin with elapsed time")
	}

	// Once both bodies are off-screen the loop idles.
	page.ScrollTo(eng.Metrics().ZoneAEnd())
	settle(t, sched)
	if m, _ := eng.Motion(); m.Jupiter.Visible || m.Saturn.Visible {
		t.Errorf("bodies visible at handoff: %+v", m)
	}
}

func TestEngineHandoffAtQuote(t *testing.T) {
	page := bodyPage()
	page.ScrollTo(1000)
	eng, sched := newTestEngine(t, page, DefaultConfig())
	sched.Step(frame)

	m := eng.Metrics()
	jupiter := page.Element(ElemJupiter)
	saturn := page.Element(ElemSaturn)
	if jupiter.Transform.X != m.JupiterPath.P2.X || jupiter.Transform.Y != m.JupiterPath.P2.Y {
		t.Errorf("Jupiter at (%f,%f), want path end %v", jupiter.Transform.X, jupiter.Transform.Y, m.JupiterPath.P2)
	}
	if saturn.Transform.X != m.SaturnPath.P0.X || saturn.Transform.Y != m.SaturnPath.P0.Y {
		t.Errorf("Saturn at (%f,%f), want path start %v", saturn.Transform.X, saturn.Transform.Y, m.SaturnPath.P0)
	}
}

type panickingElement struct{ *VirtualElement }

func (panickingElement) SetTransform(Transform) { panic("sink exploded") }

type panicPage struct{ *VirtualPage }

func (p panicPage) Lookup(name ElementName) Element {
	if name == ElemSpaceBg {
		return panickingElement{&VirtualElement{}}
	}
	return p.VirtualPage.Lookup(name)
}

func TestEngineStepRecoversFromSinkPanic(t *testing.T) {
	page := panicPage{NewVirtualPage(1600, 900, 3000)}
	sched := NewManualScheduler()
	eng, err := New(page, sched, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	eng.SetDebugOutput(&buf)
	eng.Start()

	sched.Step(frame)
	if !strings.Contains(buf.String(), "sink exploded") {
		t.Errorf("panic not reported, output %q", buf.String())
	}
	if eng.FramePending() {
		t.Error("engine kept a frame pending after a panic")
	}
}

func TestEngineDebugLog(t *testing.T) {
	page := bodyPage()
	sched := NewManualScheduler()
	eng, err := New(page, sched, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	eng.SetDebugOutput(&buf)
	eng.SetDebugMode(true)
	eng.Start()
	sched.Step(frame)

	out := buf.String()
	for _, want := range []string{"[scrollfx] metrics gen 1", "[scrollfx] step:", "bodies: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestEnginesAreIndependent(t *testing.T) {
	a := bodyPage()
	b := bodyPage()
	engA, schedA := newTestEngine(t, a, DefaultConfig())
	engB, schedB := newTestEngine(t, b, DefaultConfig())

	a.ScrollTo(900)
	settle(t, schedA)
	schedB.Step(frame)

	if engB.Scroll().Target != 0 {
		t.Errorf("engine B saw engine A's scroll: %f", engB.Scroll().Target)
	}
	if engA.Scroll().Current != 900 {
		t.Errorf("engine A Current = %f, want 900", engA.Scroll().Current)
	}
}
