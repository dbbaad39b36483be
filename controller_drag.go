package canvas

import "math"

type dragMode int

const (
	dragNone dragMode = iota
	dragPendingEndpoint
	dragEndpoint
	dragBlock
	dragWireSegment
)

// DragController implements the three pointer-drag sub-modes: pending/
// endpoint drag, block drag, and wire-segment drag. At most one is
// active at a time. Grounded on input.go's single active-gesture state
// machine, generalized from raw button/drag deltas to canvas edit intents.
type DragController struct {
	doc *Document
	sel *Selection

	mode dragMode

	pressScene ScenePoint

	// pending/endpoint drag
	pendingWire *Wire
	pendingSide byte // 'a' or 'b'
	origEndpoint Endpoint

	// block drag
	primaryBlock *Block
	groupOrigins map[ObjectId]ScenePoint
	groupBlocks  map[ObjectId]*Block

	// wire segment drag
	segWire       *Wire
	segHorizontal bool
	segPerp       float64
	segSpanMin    float64
	segSpanMax    float64
	segPathBefore []FabricCoord
	segTermA      FabricCoord
	segTermB      FabricCoord
}

// NewDragController binds a controller to doc and sel.
func NewDragController(doc *Document, sel *Selection) *DragController {
	return &DragController{doc: doc, sel: sel}
}

// BeginAt inspects p and starts whichever drag sub-mode applies: pending
// endpoint (press near a wire endpoint anchor), wire segment (press on an
// internal segment), or block (press on a block). Returns false if nothing
// under p qualifies.
func (c *DragController) BeginAt(p ScenePoint, rc *RenderContext) bool {
	c.pressScene = p

	if w, side, ok := c.findNearEndpoint(p); ok {
		c.mode = dragPendingEndpoint
		c.pendingWire = w
		c.pendingSide = side
		if side == 'a' {
			c.origEndpoint = w.A
		} else {
			c.origEndpoint = w.B
		}
		return true
	}

	if w, horiz, perp, spanMin, spanMax, ok := c.findSegment(p, rc); ok {
		c.mode = dragWireSegment
		c.segWire = w
		c.segHorizontal = horiz
		c.segPerp = perp
		c.segSpanMin = spanMin
		c.segSpanMax = spanMax
		c.segPathBefore = append([]FabricCoord(nil), w.RouteOverride...)
		if aTerm, ok := rc.endpointTerminal(w.A); ok {
			c.segTermA = aTerm.Fabric
		}
		if bTerm, ok := rc.endpointTerminal(w.B); ok {
			c.segTermB = bTerm.Fabric
		}
		return true
	}

	if item := c.doc.HitTestItem(p); item != nil {
		if block, ok := item.(*Block); ok && block.Movable {
			c.mode = dragBlock
			c.primaryBlock = block
			c.beginBlockGroup(block)
			return true
		}
	}

	c.mode = dragNone
	return false
}

func (c *DragController) findNearEndpoint(p ScenePoint) (*Wire, byte, bool) {
	for _, w := range c.doc.wires() {
		if w.endpointScene(w.A).Dist(p) <= EndpointHitRadiusPx {
			return w, 'a', true
		}
		if w.endpointScene(w.B).Dist(p) <= EndpointHitRadiusPx {
			return w, 'b', true
		}
	}
	return nil, 0, false
}

func (c *DragController) findSegment(p ScenePoint, rc *RenderContext) (*Wire, bool, float64, float64, float64, bool) {
	if rc == nil {
		return nil, false, 0, 0, 0, false
	}
	for _, w := range c.doc.wires() {
		path, ok := rc.ResolvedPathScene(w)
		if !ok || len(path) < 2 {
			continue
		}
		for i := 0; i+1 < len(path); i++ {
			a, b := path[i], path[i+1]
			if a.X == b.X {
				if distPointToSegment(p, a, b) <= WireSegmentHitRadiusScenePx {
					lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
					return w, false, a.X, lo, hi, true
				}
			} else if a.Y == b.Y {
				if distPointToSegment(p, a, b) <= WireSegmentHitRadiusScenePx {
					lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
					return w, true, a.Y, lo, hi, true
				}
			}
		}
	}
	return nil, false, 0, 0, 0, false
}

func (c *DragController) beginBlockGroup(primary *Block) {
	c.groupOrigins = map[ObjectId]ScenePoint{}
	c.groupBlocks = map[ObjectId]*Block{}
	if c.sel.HasItem(primary.id) {
		for _, id := range c.sel.Items() {
			if b, ok := c.doc.FindItem(id).(*Block); ok && b.Movable {
				c.groupOrigins[id] = b.Bounds.TopLeft()
				c.groupBlocks[id] = b
			}
		}
	} else {
		c.groupOrigins[primary.id] = primary.Bounds.TopLeft()
		c.groupBlocks[primary.id] = primary
	}
}

// Move advances the active drag to pointer position p.
func (c *DragController) Move(p ScenePoint, rc *RenderContext) {
	switch c.mode {
	case dragPendingEndpoint:
		if c.pressScene.Dist(p) >= EndpointDragThresholdPx {
			c.mode = dragEndpoint
		}
	case dragEndpoint:
		c.updateEndpointFree(p)
	case dragBlock:
		c.updateBlockGroup(p)
	case dragWireSegment:
		c.updateSegment(p, rc)
	}
}

func (c *DragController) updateEndpointFree(p ScenePoint) {
	snapped := c.doc.fabric.ToScene(c.doc.fabric.ToFabric(p))
	free := FreeEndpoint(snapped)
	if c.pendingSide == 'a' {
		c.pendingWire.A = free
	} else {
		c.pendingWire.B = free
	}
}

func (c *DragController) updateBlockGroup(p ScenePoint) {
	delta := p.Sub(c.pressScene)
	primaryOrigin := c.groupOrigins[c.primaryBlock.id]
	newTopLeft := primaryOrigin.Add(delta)
	snappedX := c.doc.fabric.SnapDown(newTopLeft.X)
	snappedY := c.doc.fabric.SnapDown(newTopLeft.Y)
	appliedDelta := ScenePoint{snappedX - primaryOrigin.X, snappedY - primaryOrigin.Y}

	for id, b := range c.groupBlocks {
		origin := c.groupOrigins[id]
		b.Bounds.X = origin.X + appliedDelta.X
		b.Bounds.Y = origin.Y + appliedDelta.Y
	}
}

func (c *DragController) updateSegment(p ScenePoint, rc *RenderContext) {
	fab := c.doc.fabric
	var perp float64
	if c.segHorizontal {
		perp = p.Y
	} else {
		perp = p.X
	}
	snappedPerp := fab.SnapDown(perp)

	step := fab.Step
	for i := 0; i < SegmentDragUnblockMaxSteps; i++ {
		var test FabricCoord
		if c.segHorizontal {
			test = fab.ToFabric(ScenePoint{snappedPerp, (c.segSpanMin + c.segSpanMax) / 2})
		} else {
			test = fab.ToFabric(ScenePoint{(c.segSpanMin + c.segSpanMax) / 2, snappedPerp})
		}
		if !c.doc.IsFabricPointBlocked(test) {
			break
		}
		snappedPerp += step
	}

	var a, b FabricCoord
	if c.segHorizontal {
		a = fab.ToFabric(ScenePoint{snappedPerp, c.segSpanMin})
		b = fab.ToFabric(ScenePoint{snappedPerp, c.segSpanMax})
	} else {
		a = fab.ToFabric(ScenePoint{c.segSpanMin, snappedPerp})
		b = fab.ToFabric(ScenePoint{c.segSpanMax, snappedPerp})
	}
	// a and b bracket the dragged segment itself. RouteWithOverride always
	// rewrites the first and last waypoint to the escaped wire terminals, so
	// padding the list to [a, a, b, b] keeps the dragged segment's own two
	// points alive in the middle instead of having them overwritten.
	c.segWire.SetRouteOverride([]FabricCoord{a, a, b, b}, c.segTermA, c.segTermB)
}

// End finalizes the active drag, returning the command to push onto the
// undo stack (nil if nothing should be recorded) and clearing drag state.
func (c *DragController) End(p ScenePoint, rc *RenderContext) Command {
	defer func() { c.mode = dragNone }()

	switch c.mode {
	case dragPendingEndpoint:
		c.releasePortSelection(p)
		return nil

	case dragEndpoint:
		return c.finishEndpointDrag(p)

	case dragBlock:
		return c.finishBlockDrag()

	case dragWireSegment:
		return c.finishSegmentDrag()
	}
	return nil
}

func (c *DragController) finishSegmentDrag() Command {
	w := c.segWire
	after := append([]FabricCoord(nil), w.RouteOverride...)
	if fabricPathsEqual(c.segPathBefore, after) {
		return nil
	}
	se := [2]FabricCoord{c.segTermA, c.segTermB}
	return &RouteOverrideCommand{
		WireID:   w.ID(),
		Before:   c.segPathBefore,
		After:    after,
		StartEnd: se,
	}
}

func fabricPathsEqual(a, b []FabricCoord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *DragController) releasePortSelection(p ScenePoint) {
	ref, ok := c.doc.HitTestPort(p, PortHitRadiusPx)
	if ok {
		c.sel.SetPort(ref)
	}
}

func (c *DragController) finishEndpointDrag(p ScenePoint) Command {
	defer func() {
		c.pendingWire.doc = c.doc
	}()

	ref, onPort := c.doc.HitTestPort(p, PortHitRadiusPx)
	w := c.pendingWire

	if onPort {
		if c.portAvailable(ref, w) {
			attach := AttachedEndpoint(ref)
			if c.pendingSide == 'a' {
				w.A = attach
			} else {
				w.B = attach
			}
			w.ClearRouteOverride()
			c.doc.emitChanged()
			return nil
		}
	}

	if block := c.blockUnderFreeEdge(p); block != nil {
		portID := block.AddPortToward(p, RoleDynamic, "")
		attach := AttachedEndpoint(PortRef{ItemID: block.id, PortID: portID})
		if c.pendingSide == 'a' {
			w.A = attach
		} else {
			w.B = attach
		}
		w.ClearRouteOverride()
		c.doc.emitChanged()
		return nil
	}

	if c.pendingSide == 'a' {
		w.A = c.origEndpoint
	} else {
		w.B = c.origEndpoint
	}
	c.doc.emitChanged()
	return nil
}

func (c *DragController) portAvailable(ref PortRef, exclude *Wire) bool {
	block, ok := c.doc.FindItem(ref.ItemID).(*Block)
	if !ok {
		return false
	}
	port := block.GetPort(ref.PortID)
	if port == nil {
		return false
	}
	if block.AllowMultiplePorts {
		return true
	}
	for _, w := range c.doc.wires() {
		if w == exclude {
			continue
		}
		if _, attached := w.AttachesToPort(ref); attached {
			return false
		}
	}
	return true
}

func (c *DragController) blockUnderFreeEdge(p ScenePoint) *Block {
	for i := len(c.doc.Items()) - 1; i >= 0; i-- {
		item := c.doc.Items()[i]
		block, ok := item.(*Block)
		if !ok {
			continue
		}
		if distToRectEdge(p, block.Bounds) <= PortActivationBandPx {
			return block
		}
	}
	return nil
}

func distToRectEdge(p ScenePoint, r SceneRect) float64 {
	if !r.Contains(p) {
		return math.Inf(1)
	}
	dl := p.X - r.X
	dr := r.X + r.Width - p.X
	dt := p.Y - r.Y
	db := r.Y + r.Height - p.Y
	m := dl
	if dr < m {
		m = dr
	}
	if dt < m {
		m = dt
	}
	if db < m {
		m = db
	}
	return m
}

func (c *DragController) finishBlockDrag() Command {
	var children []Command
	for id, b := range c.groupBlocks {
		origin := c.groupOrigins[id]
		to := b.Bounds.TopLeft()
		if origin == to {
			continue
		}
		b.Bounds.X, b.Bounds.Y = origin.X, origin.Y // rewind; MoveItemCommand.Apply will re-apply via SetItemTopLeft
		children = append(children, &MoveItemCommand{ItemID: id, From: origin, To: to})
	}
	if len(children) == 0 {
		return nil
	}
	return NewCompositeCommand("move", children...)
}
