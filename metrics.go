package scrollfx

import "math"

// Fallbacks for absent elements. They keep downstream math finite.
const (
	sentinelEssayCardHeight = 200.0
)

// Metrics is a snapshot of every layout-dependent measurement the engine
// needs. A Metrics value belongs to exactly one generation and is never
// mutated after it is computed.
type Metrics struct {
	Generation uint64

	ViewportWidth  float64
	ViewportHeight float64

	QuoteTop        float64
	QuoteHeight     float64
	LibraryTop      float64
	EssayCardCenter float64
	FooterTop       float64
	// MaxScroll is document height minus viewport height, floored at 1.
	MaxScroll float64

	// Cards holds each card's layout box in document coordinates, in the
	// same order as Page.Cards.
	Cards []Rect
	// Sections holds each nav link's target section box, in the same order as
	// Page.NavLinks. Absent sections get an empty Rect.
	Sections []Rect

	JupiterPath Path
	SaturnPath  Path
}

// ZoneAEnd is the scroll offset where Jupiter's zone ends.
func (m *Metrics) ZoneAEnd() float64 { return m.QuoteTop }

// ZoneBStart is the scroll offset where Saturn's zone begins. It always
// equals ZoneAEnd so one body hands off to the other.
func (m *Metrics) ZoneBStart() float64 { return m.QuoteTop }

// cacheState is the lifecycle of a memoized Metrics value.
type cacheState uint8

const (
	cacheUnset       cacheState = iota // never computed
	cacheValid                         // holds the current generation
	cacheInvalidated                   // computed before, must be recomputed
)

// metricsCache memoizes Metrics between invalidations.
type metricsCache struct {
	state      cacheState
	generation uint64
	metrics    *Metrics
}

// ensure returns the cached Metrics, computing a new generation when the
// cache is unset or invalidated.
func (c *metricsCache) ensure(page Page, h *elementHandles) *Metrics {
	if c.state == cacheValid {
		return c.metrics
	}
	c.generation++
	c.metrics = computeMetrics(page, h, c.generation)
	c.state = cacheValid
	return c.metrics
}

// invalidate drops the current generation. The next ensure recomputes.
func (c *metricsCache) invalidate() {
	if c.state == cacheValid {
		c.state = cacheInvalidated
	}
	c.metrics = nil
}

// valid reports whether a current generation is held.
func (c *metricsCache) valid() bool {
	return c.state == cacheValid
}

// computeMetrics measures the page. Absent elements are replaced by sentinel
// offsets so nothing downstream divides by zero or produces NaN.
func computeMetrics(page Page, h *elementHandles, gen uint64) *Metrics {
	w, vh := page.Viewport()
	w, vh = finite(w), finite(vh)
	scrollHeight := finite(page.ScrollHeight())

	m := &Metrics{
		Generation:     gen,
		ViewportWidth:  w,
		ViewportHeight: vh,
		MaxScroll:      math.Max(scrollHeight-vh, 1),
		FooterTop:      scrollHeight,
	}

	if h.quote != nil {
		r := h.quote.Layout()
		m.QuoteTop = finite(r.Y)
		m.QuoteHeight = finite(r.Height)
	}
	if h.library != nil {
		m.LibraryTop = finite(h.library.Layout().Y)
	}
	essayTop, essayHeight := 0.0, sentinelEssayCardHeight
	if h.essayCard != nil {
		r := h.essayCard.Layout()
		essayTop, essayHeight = finite(r.Y), finite(r.Height)
	}
	m.EssayCardCenter = essayTop + essayHeight/2
	if h.footer != nil {
		m.FooterTop = finite(h.footer.Layout().Y)
	}

	if len(h.cards) > 0 {
		m.Cards = make([]Rect, len(h.cards))
		for i, card := range h.cards {
			m.Cards[i] = finiteRect(card.Layout())
		}
	}
	if len(h.navLinks) > 0 {
		m.Sections = make([]Rect, len(h.navLinks))
		for i, link := range h.navLinks {
			if link.Section != nil {
				m.Sections[i] = finiteRect(link.Section.Layout())
			}
		}
	}

	m.JupiterPath = Path{
		P0: Vec2{X: -200, Y: vh * 0.1},
		P1: Vec2{X: w * 0.4, Y: vh * 1.0},
		P2: Vec2{X: w + 200, Y: -200},
	}
	m.SaturnPath = Path{
		P0: Vec2{X: w + 100, Y: vh * 0.2},
		P1: Vec2{X: w * 0.5, Y: vh * 0.9},
		P2: Vec2{X: -250, Y: vh * 0.15},
	}
	return m
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func finiteRect(r Rect) Rect {
	return Rect{X: finite(r.X), Y: finite(r.Y), Width: finite(r.Width), Height: finite(r.Height)}
}
