package canvas

import "math"

// Endpoint is either attached (references a port by id) or free (a bare
// scene point). Grounded on CanvasWire::Endpoint in original_source — a
// tagged union of PortRef-or-point, expressed in Go as a pointer field that
// is nil for the free case.
type Endpoint struct {
	Attached *PortRef
	Free     ScenePoint
}

// IsAttached reports whether the endpoint references a port.
func (e Endpoint) IsAttached() bool { return e.Attached != nil }

// FreeEndpoint returns a detached endpoint at p.
func FreeEndpoint(p ScenePoint) Endpoint { return Endpoint{Free: p} }

// AttachedEndpoint returns an endpoint referencing the given port.
func AttachedEndpoint(ref PortRef) Endpoint { return Endpoint{Attached: &ref} }

// Wire is a canvas item connecting two endpoints, optionally pinned to a
// manual orthogonal path (RouteOverride).
type Wire struct {
	id ObjectId

	A, B Endpoint

	ArrowPolicy   ArrowPolicy
	ColorOverride string // empty means "no override"

	RouteOverride []FabricCoord
	overrideStart FabricCoord
	overrideEnd   FabricCoord
	overrideStale bool

	// doc is a non-owning back-reference used only to resolve attached
	// endpoints' current scene anchors; Document is still the sole owner
	// of the Wire (set by Document.InsertItem / CreateWire), matching the ownership
	// graph a host expects while letting BoundsScene/HitTest stay self-
	// contained the way CanvasItem requires.
	doc *Document
}

// NewWire constructs a wire between two endpoints.
func NewWire(id ObjectId, a, b Endpoint) *Wire {
	return &Wire{id: id, A: a, B: b, ArrowPolicy: ArrowEnd}
}

func (w *Wire) ID() ObjectId { return w.id }

// endpointScene resolves an endpoint to its current scene point: the
// attached port's live anchor, or the free point.
func (w *Wire) endpointScene(e Endpoint) ScenePoint {
	if e.IsAttached() && w.doc != nil {
		if p, ok := w.doc.PortAnchorScene(e.Attached.ItemID, e.Attached.PortID); ok {
			return p
		}
	}
	return e.Free
}

func (w *Wire) BoundsScene() SceneRect {
	a := w.endpointScene(w.A)
	b := w.endpointScene(w.B)
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return SceneRect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// HitTest reports whether p lies within WireSegmentHitRadiusScenePx of the
// straight line between the endpoints. Controllers that need to hit-test
// against the actual routed/orthogonal path use a RenderContext instead —
// this is the cheap, route-agnostic fallback the CanvasItem interface
// exposes for marquee/selection purposes.
func (w *Wire) HitTest(p ScenePoint) bool {
	a := w.endpointScene(w.A)
	b := w.endpointScene(w.B)
	return distPointToSegment(p, a, b) <= WireSegmentHitRadiusScenePx
}

func distPointToSegment(p, a, b ScenePoint) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	abLenSq := abx*abx + aby*aby
	if abLenSq == 0 {
		return p.Dist(a)
	}
	t := (apx*abx + apy*aby) / abLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := ScenePoint{a.X + t*abx, a.Y + t*aby}
	return p.Dist(proj)
}

func (w *Wire) BlocksFabric() bool            { return false }
func (w *Wire) KeepoutSceneRect() SceneRect   { return SceneRect{} }
func (w *Wire) HasPorts() bool                { return false }
func (w *Wire) Ports() []*CanvasPort          { return nil }
func (w *Wire) PortAnchorScene(PortId) (ScenePoint, bool) { return ScenePoint{}, false }

// AttachesTo reports whether either endpoint references itemID.
func (w *Wire) AttachesTo(itemID ObjectId) bool {
	return (w.A.IsAttached() && w.A.Attached.ItemID == itemID) ||
		(w.B.IsAttached() && w.B.Attached.ItemID == itemID)
}

// AttachesToPort reports whether either endpoint references the given
// (itemID, portID) pair, and if so which side ('a' or 'b').
func (w *Wire) AttachesToPort(ref PortRef) (side byte, ok bool) {
	if w.A.IsAttached() && *w.A.Attached == ref {
		return 'a', true
	}
	if w.B.IsAttached() && *w.B.Attached == ref {
		return 'b', true
	}
	return 0, false
}

// SetRouteOverride pins a manual orthogonal path and caches the fabric
// coords of the current endpoints, so a later layout pass can tell whether
// the override still matches the endpoints it was drawn for.
func (w *Wire) SetRouteOverride(path []FabricCoord, start, end FabricCoord) {
	w.RouteOverride = path
	w.overrideStart = start
	w.overrideEnd = end
	w.overrideStale = false
}

// ClearRouteOverride drops any manual path.
func (w *Wire) ClearRouteOverride() {
	w.RouteOverride = nil
	w.overrideStale = false
}

// HasRouteOverride reports whether a manual path is pinned.
func (w *Wire) HasRouteOverride() bool { return len(w.RouteOverride) > 0 }

// RouteOverrideMatches reports whether the pinned override was drawn for
// exactly this pair of fabric endpoints. A mismatch (the block moved or was
// relaid-out without going through the code path that clears the override)
// marks the override stale so the caller can fall back to a fresh route
// instead of stretching an old manual path across new endpoints.
func (w *Wire) RouteOverrideMatches(start, end FabricCoord) bool {
	if !w.HasRouteOverride() {
		return false
	}
	if w.overrideStart != start || w.overrideEnd != end {
		w.overrideStale = true
		return false
	}
	return true
}

func (w *Wire) Clone() CanvasItem {
	cp := *w
	if w.A.Attached != nil {
		a := *w.A.Attached
		cp.A.Attached = &a
	}
	if w.B.Attached != nil {
		b := *w.B.Attached
		cp.B.Attached = &b
	}
	cp.RouteOverride = append([]FabricCoord(nil), w.RouteOverride...)
	return &cp
}
