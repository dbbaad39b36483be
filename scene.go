package canvas

// RenderContext is a read-only helper: given a Document and a ViewState, it
// resolves port terminals and routed wire paths for drawing, and holds the
// hover, marquee and linking-preview overlay state the host sets on it. The
// Document's changed signal clears its cacheValid flag; the overlay state
// stays as last set. Grounded on Scene (the one
// object that bundles a live Document-like tree with camera state for a
// draw pass), stripped of every ebiten drawing call since painting is
// host-owned.
type RenderContext struct {
	doc  *Document
	view *ViewState

	hoveredEdge   *PortRef
	marqueeRect   *SceneRect
	linkingFrom   *ScenePoint
	linkingCursor *ScenePoint

	cacheValid bool
}

// NewRenderContext binds a RenderContext to doc and view, subscribing to
// the document's changed signal to clear cacheValid.
func NewRenderContext(doc *Document, view *ViewState) *RenderContext {
	rc := &RenderContext{doc: doc, view: view}
	doc.OnChanged(rc.invalidate)
	return rc
}

func (rc *RenderContext) invalidate() { rc.cacheValid = false }

// FabricBlocked implements RouteContext for the Router.
func (rc *RenderContext) FabricBlocked(c FabricCoord) bool {
	return rc.doc.IsFabricPointBlocked(c)
}

// FabricStep implements RouteContext for the Router.
func (rc *RenderContext) FabricStep() float64 {
	return rc.doc.fabric.Step
}

// NewRouter returns a Router bound to this context and the view's currently
// visible scene rectangle.
func (rc *RenderContext) NewRouter() *Router {
	return NewRouter(rc, rc.view.VisibleSceneRect())
}

// ResolvedPathScene computes the full drawable scene-space path for a wire:
// anchor, border, fabric terminal on each side, the routed interior path
// (respecting any routeOverride), and the opposite side's terminal/border/
// anchor.
func (rc *RenderContext) ResolvedPathScene(w *Wire) ([]ScenePoint, bool) {
	aTerm, aOK := rc.endpointTerminal(w.A)
	bTerm, bOK := rc.endpointTerminal(w.B)
	if !aOK || !bOK {
		return nil, false
	}

	router := rc.NewRouter()
	var lattice []FabricCoord
	if w.RouteOverrideMatches(aTerm.Fabric, bTerm.Fabric) {
		lattice = router.RouteWithOverride(w.RouteOverride, aTerm.Fabric, 0, 0, bTerm.Fabric, 0, 0)
	} else {
		adx, ady := rc.endpointDirection(w.A)
		bdx, bdy := rc.endpointDirection(w.B)
		lattice = router.Route(aTerm.Fabric, adx, ady, bTerm.Fabric, bdx, bdy)
	}

	fab := rc.doc.fabric
	interior := RouteScenePath(fab, lattice, fab.ToScene(aTerm.Fabric), fab.ToScene(bTerm.Fabric))

	path := make([]ScenePoint, 0, len(interior)+4)
	path = append(path, aTerm.Anchor, aTerm.Border)
	path = append(path, interior...)
	path = append(path, bTerm.Border, bTerm.Anchor)
	return path, true
}

func (rc *RenderContext) endpointTerminal(e Endpoint) (PortTerminal, bool) {
	if e.IsAttached() {
		return rc.doc.ComputePortTerminal(e.Attached.ItemID, e.Attached.PortID)
	}
	fab := rc.doc.fabric
	fc := fab.ToFabric(e.Free)
	return PortTerminal{Anchor: e.Free, Border: e.Free, Fabric: fc}, true
}

func (rc *RenderContext) endpointDirection(e Endpoint) (int32, int32) {
	if e.IsAttached() {
		if port := rc.doc.GetPort(*e.Attached); port != nil {
			return port.Side.Direction()
		}
	}
	return 0, 0
}

// SetHoveredEdge records the currently hovered port for overlay drawing.
func (rc *RenderContext) SetHoveredEdge(ref *PortRef) { rc.hoveredEdge = ref }

// HoveredEdge returns the currently hovered port, if any.
func (rc *RenderContext) HoveredEdge() (PortRef, bool) {
	if rc.hoveredEdge == nil {
		return PortRef{}, false
	}
	return *rc.hoveredEdge, true
}

// SetMarqueeRect records the in-progress marquee rectangle for overlay
// drawing, or clears it when r is nil.
func (rc *RenderContext) SetMarqueeRect(r *SceneRect) { rc.marqueeRect = r }

// MarqueeRect returns the in-progress marquee rectangle, if any.
func (rc *RenderContext) MarqueeRect() (SceneRect, bool) {
	if rc.marqueeRect == nil {
		return SceneRect{}, false
	}
	return *rc.marqueeRect, true
}

// SetLinkingPreview records the in-progress linking session's anchor and
// current cursor position for the preview line, or clears it when either is
// nil.
func (rc *RenderContext) SetLinkingPreview(from, cursor *ScenePoint) {
	rc.linkingFrom = from
	rc.linkingCursor = cursor
}

// LinkingPreview returns the in-progress linking preview endpoints, if any.
func (rc *RenderContext) LinkingPreview() (from, cursor ScenePoint, ok bool) {
	if rc.linkingFrom == nil || rc.linkingCursor == nil {
		return ScenePoint{}, ScenePoint{}, false
	}
	return *rc.linkingFrom, *rc.linkingCursor, true
}

// VisibleFabricPoints enumerates the lattice points within the view's
// visible scene rect, for background grid drawing.
func (rc *RenderContext) VisibleFabricPoints() []FabricCoord {
	return rc.doc.fabric.Enumerate(rc.view.VisibleSceneRect(), nil)
}
