package scrollfx

import (
	"strconv"
	"strings"
)

// Transform is the structured form of an inline CSS transform. Hosts that
// write real style attributes use CSS; hosts that draw directly read the
// fields.
//
// Composition order:
//
//	perspective -> translate3d(X, Y, 0) -> rotateX -> rotateY -> rotate -> scale
type Transform struct {
	// Perspective in pixels. Zero omits the term.
	Perspective float64
	// X and Y are the translation in pixels.
	X, Y float64
	// RotateX and RotateY tilt around the horizontal and vertical axes, in
	// degrees. Zero values are omitted.
	RotateX, RotateY float64
	// Rotate is the in-plane rotation in degrees. Zero is omitted unless
	// KeepRotate is set.
	Rotate     float64
	KeepRotate bool
	// Scale is a uniform scale factor. Zero omits the term.
	Scale float64
}

// Translate returns a pure translation, the card transform used by
// the scroll engine when no tilt is active.
func Translate(x, y float64) Transform {
	return Transform{X: x, Y: y}
}

// CSS renders the transform as an inline style value, e.g.
// "translate3d(12.00px, -4.50px, 0) rotate(45deg) scale(1.20)".
func (t Transform) CSS() string {
	var b strings.Builder
	b.Grow(96)
	if t.Perspective != 0 {
		b.WriteString("perspective(")
		b.WriteString(trimFloat(t.Perspective))
		b.WriteString("px) ")
	}
	b.WriteString("translate3d(")
	b.WriteString(fixed2(t.X))
	b.WriteString("px, ")
	b.WriteString(fixed2(t.Y))
	b.WriteString("px, 0)")
	if t.RotateX != 0 {
		b.WriteString(" rotateX(")
		b.WriteString(fixed2(t.RotateX))
		b.WriteString("deg)")
	}
	if t.RotateY != 0 {
		b.WriteString(" rotateY(")
		b.WriteString(fixed2(t.RotateY))
		b.WriteString("deg)")
	}
	if t.Rotate != 0 || t.KeepRotate {
		b.WriteString(" rotate(")
		b.WriteString(trimFloat(t.Rotate))
		b.WriteString("deg)")
	}
	if t.Scale != 0 {
		b.WriteString(" scale(")
		b.WriteString(fixed2(t.Scale))
		b.WriteString(")")
	}
	return b.String()
}

// fixed2 formats v with exactly two decimals, normalising negative zero.
func fixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}

// trimFloat formats v with the shortest representation.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
