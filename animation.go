package canvas

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fieldTweenGroup animates up to 4 float64 fields simultaneously. Grounded
// on TweenGroup, generalized from animating fields on a scene
// Node to animating arbitrary *float64 targets (ViewState's pan X/Y and
// zoom), since the canvas engine has no Node/scene-graph concept of its
// own — only ViewState needs smoothed scalars.
type fieldTweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	Done   bool
}

// newFieldTween builds a tween group over the supplied (current, target,
// field-pointer) triples.
func newFieldTween(duration float32, fn ease.TweenFunc, targets ...tweenTarget) *fieldTweenGroup {
	g := &fieldTweenGroup{count: len(targets)}
	for i, t := range targets {
		g.tweens[i] = gween.New(float32(*t.field), float32(t.to), duration, fn)
		g.fields[i] = t.field
	}
	return g
}

type tweenTarget struct {
	field *float64
	to    float64
}

// Update advances every tween by dt seconds, writing values into their
// target fields. Done is set once every tween has finished.
func (g *fieldTweenGroup) Update(dt float32) {
	if g.Done {
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
