package scrollfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// minTweenSeconds keeps gween away from zero-length tweens, which report
// finished while still holding the start value.
const minTweenSeconds = 0.001

// TweenGroup animates up to 4 float64 fields simultaneously with one easing
// and duration. Call Update(dt) each frame; the group writes values through
// the field pointers.
//
// There is no global animation manager; the owner calls Update itself.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// TweenField pairs a field with the value it should reach.
type TweenField struct {
	Field *float64
	To    float64
}

// NewTweenGroup creates a group that moves each field from its current value
// to its target over duration seconds. Fields beyond the fourth are ignored.
func NewTweenGroup(duration float32, fn ease.TweenFunc, fields ...TweenField) *TweenGroup {
	if duration < minTweenSeconds {
		duration = minTweenSeconds
	}
	g := &TweenGroup{}
	for _, f := range fields {
		if g.count == len(g.tweens) {
			break
		}
		g.tweens[g.count] = gween.New(float32(*f.Field), float32(f.To), duration, fn)
		g.fields[g.count] = f.Field
		g.count++
	}
	g.Done = g.count == 0
	return g
}

// Update advances all tweens by dt seconds and writes values to the fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Running reports whether g exists and has not finished.
func (g *TweenGroup) Running() bool {
	return g != nil && !g.Done
}
