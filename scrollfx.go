package scrollfx

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Path is a quadratic Bezier curve in viewport pixels. A Path is immutable
// for the lifetime of the metrics generation that produced it.
type Path struct {
	P0, P1, P2 Vec2
}

// Point evaluates the curve at t on both axes with a shared parameter.
func (p Path) Point(t float64) Vec2 {
	return Vec2{
		X: QuadraticBezier(p.P0.X, p.P1.X, p.P2.X, t),
		Y: QuadraticBezier(p.P0.Y, p.P1.Y, p.P2.Y, t),
	}
}

// ElementName is the selector used to look up an optional page element.
type ElementName string

const (
	ElemJupiter        ElementName = ".jupiter"         // decorative body A
	ElemSaturn         ElementName = ".saturn"          // decorative body B
	ElemQuoteSection   ElementName = "#quote-section"   // zone boundary between the bodies
	ElemLibrarySection ElementName = "#library-section" // library/grid zone
	ElemEssayCard      ElementName = ".earth-theme"     // featured essay card
	ElemFooter         ElementName = "footer"           // page footer
	ElemSpaceBg        ElementName = ".space-bg"        // background parallax layer
	ElemProgressBar    ElementName = ".progress-bar"    // reading-progress indicator
	ElemBackToTop      ElementName = ".back-to-top"     // back-to-top button
)

// ElementNames lists every named element in lookup order.
var ElementNames = []ElementName{
	ElemJupiter, ElemSaturn, ElemQuoteSection, ElemLibrarySection,
	ElemEssayCard, ElemFooter, ElemSpaceBg, ElemProgressBar, ElemBackToTop,
}

// Selectors for the element collections. Nav links must be in-page anchors
// whose href names the target section's id.
const (
	CardSelector    = ".card"
	NavLinkSelector = `.sidebar a[href^="#"]`
)

// LoopMode selects when the frame loop goes idle.
type LoopMode string

const (
	// LoopConverge idles as soon as the smoothed scroll reaches the target.
	LoopConverge LoopMode = "converge"
	// LoopFreeRun keeps the loop alive while a body is visible so bodies can
	// spin with elapsed time.
	LoopFreeRun LoopMode = "free_run"
)
