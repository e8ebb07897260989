package scrollfx

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugStats holds per-frame timing and write counts.
// Only populated when the engine's debug mode is on.
type debugStats struct {
	stepTime    time.Duration
	generation  uint64
	current     float64
	target      float64
	cardsMoved  int
	cardsCulled int
	cardsTilted int
	bodies      bool
	skipped     bool
	rescheduled bool
}

// SetDebugMode enables or disables per-frame diagnostics.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// SetDebugOutput redirects diagnostics. The default is stderr.
func (e *Engine) SetDebugOutput(w io.Writer) {
	e.debugOut = w
}

func (e *Engine) debugWriter() io.Writer {
	if e.debugOut != nil {
		return e.debugOut
	}
	return os.Stderr
}

// debugLog prints one frame's stats.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	w := e.debugWriter()
	_, _ = fmt.Fprintf(w,
		"[scrollfx] step: %v | gen: %d | scroll: %.2f -> %.2f | skipped: %v | next: %v\n",
		stats.stepTime, stats.generation, stats.current, stats.target, stats.skipped, stats.rescheduled)
	_, _ = fmt.Fprintf(w,
		"[scrollfx] cards moved: %d | culled: %d | tilted: %d | bodies: %v\n",
		stats.cardsMoved, stats.cardsCulled, stats.cardsTilted, stats.bodies)
}

// debugMetrics prints a new metrics generation.
func (e *Engine) debugMetrics(m *Metrics) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(e.debugWriter(),
		"[scrollfx] metrics gen %d: viewport %.0fx%.0f | quote %.0f | max scroll %.0f | cards %d\n",
		m.Generation, m.ViewportWidth, m.ViewportHeight, m.QuoteTop, m.MaxScroll, len(m.Cards))
}

// reportPanic is always printed: a panic inside a host sink is a host bug
// and the engine has already gone idle.
func (e *Engine) reportPanic(v any) {
	_, _ = fmt.Fprintf(e.debugWriter(), "[scrollfx] step recovered from panic: %v\n", v)
}
