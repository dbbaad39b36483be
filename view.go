package canvas

import (
	"math"

	"github.com/tanema/gween/ease"
)

// ViewState holds the pan/zoom the host currently renders with. Adapted
// from camera.go's Camera: the follow-target and rotation concerns have no
// home in a 2D orthogonal canvas, but the scroll-animation pattern
// (gween-driven, updated by the host's frame loop) is kept verbatim.
type ViewState struct {
	PanX, PanY float64
	Zoom       float64

	Viewport SceneRect

	tween *fieldTweenGroup
}

// NewViewState returns a ViewState at zoom 1 with no pan offset.
func NewViewState(viewport SceneRect) *ViewState {
	return &ViewState{Zoom: 1.0, Viewport: viewport}
}

// ScrollTo animates PanX/PanY to (x, y) over duration seconds.
func (v *ViewState) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	v.tween = newFieldTween(duration, fn,
		tweenTarget{&v.PanX, x},
		tweenTarget{&v.PanY, y},
	)
}

// ZoomTo animates Zoom to z (clamped to [ZoomMin, ZoomMax]) over duration
// seconds.
func (v *ViewState) ZoomTo(z float64, duration float32, fn ease.TweenFunc) {
	z = clampZoom(z)
	v.tween = newFieldTween(duration, fn, tweenTarget{&v.Zoom, z})
}

// StepZoom multiplies Zoom by ZoomStep (or divides, if in) around a scene-
// space pivot point, keeping that point visually fixed. No animation: this is the discrete wheel-notch case.
func (v *ViewState) StepZoom(pivot ScenePoint, zoomIn bool) {
	old := v.Zoom
	next := old * ZoomStep
	if !zoomIn {
		next = old / ZoomStep
	}
	next = clampZoom(next)
	if next == old {
		return
	}

	// Keep pivot fixed: pivot_screen = (pivot_scene - pan) * zoom, solve for
	// the new pan that preserves pivot_screen across the zoom change.
	sx := (pivot.X - v.PanX) * old
	sy := (pivot.Y - v.PanY) * old
	v.Zoom = next
	v.PanX = pivot.X - sx/next
	v.PanY = pivot.Y - sy/next
}

func clampZoom(z float64) float64 {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}

// Update advances any in-flight pan/zoom tween by dt seconds. Called from
// the host's frame loop; the core never drives its own clock.
func (v *ViewState) Update(dt float32) {
	if v.tween == nil {
		return
	}
	v.tween.Update(dt)
	if v.tween.Done {
		v.tween = nil
	}
}

// SceneToScreen converts a scene point to a screen-space point under the
// current pan/zoom.
func (v *ViewState) SceneToScreen(p ScenePoint) ScenePoint {
	return ScenePoint{(p.X - v.PanX) * v.Zoom, (p.Y - v.PanY) * v.Zoom}
}

// ScreenToScene converts a screen-space point back to scene space.
func (v *ViewState) ScreenToScene(p ScenePoint) ScenePoint {
	if v.Zoom == 0 {
		return ScenePoint{}
	}
	return ScenePoint{p.X/v.Zoom + v.PanX, p.Y/v.Zoom + v.PanY}
}

// VisibleSceneRect returns the scene-space rectangle currently visible
// through Viewport, used to pad the router's A* search bounds.
func (v *ViewState) VisibleSceneRect() SceneRect {
	tl := v.ScreenToScene(ScenePoint{v.Viewport.X, v.Viewport.Y})
	br := v.ScreenToScene(ScenePoint{v.Viewport.X + v.Viewport.Width, v.Viewport.Y + v.Viewport.Height})
	return SceneRect{
		X:      math.Min(tl.X, br.X),
		Y:      math.Min(tl.Y, br.Y),
		Width:  math.Abs(br.X - tl.X),
		Height: math.Abs(br.Y - tl.Y),
	}
}
