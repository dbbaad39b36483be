package canvas

// LinkMode selects what a completed two-click linking gesture produces.
type LinkMode int

const (
	LinkNormal LinkMode = iota
	LinkSplit
	LinkJoin
	LinkBroadcast
)

func (m LinkMode) hubKind() (HubKind, bool) {
	switch m {
	case LinkSplit:
		return HubSplit, true
	case LinkJoin:
		return HubJoin, true
	case LinkBroadcast:
		return HubBroadcast, true
	default:
		return 0, false
	}
}

// LinkingController drives the two-click port-to-port (or port-to-hub)
// wire-creation gesture. Grounded on input.go's press/release gesture
// pairing, generalized from a single click-drag to a two-click session.
// Completing a link ends the session and the next click starts a new one;
// links do not chain off a hub.
type LinkingController struct {
	doc   *Document
	style Style

	mode LinkMode
	from *PortRef
}

// NewLinkingController binds a controller to doc, defaulting to LinkNormal
// mode and the default style palette.
func NewLinkingController(doc *Document) *LinkingController {
	return &LinkingController{doc: doc, style: DefaultStyle}
}

// SetMode changes the active linking mode, resetting any in-progress
// session.
func (c *LinkingController) SetMode(mode LinkMode) {
	c.mode = mode
	c.from = nil
}

// Cancel discards an in-progress session (Escape key).
func (c *LinkingController) Cancel() { c.from = nil }

// InProgress reports whether a first click has been recorded.
func (c *LinkingController) InProgress() bool { return c.from != nil }

// Click handles one click at scene point p: if a port is hit (or minted
// from a free block edge), it either starts a session or, if one is
// already in progress, completes it by creating a wire (or a hub plus two
// wires, per the active mode). Returns the newly created wire(s), if any.
func (c *LinkingController) Click(p ScenePoint) []*Wire {
	ref, ok := c.resolvePort(p)
	if !ok {
		return nil
	}

	if c.from == nil {
		c.from = &ref
		return nil
	}

	start := *c.from
	c.from = nil
	if start == ref {
		return nil
	}

	if kind, isHub := c.mode.hubKind(); isHub {
		return c.createHubLink(start, ref, kind)
	}
	return []*Wire{c.createDirectLink(start, ref)}
}

func (c *LinkingController) resolvePort(p ScenePoint) (PortRef, bool) {
	if ref, ok := c.doc.HitTestPort(p, PortHitRadiusPx); ok {
		return ref, true
	}
	for i := len(c.doc.Items()) - 1; i >= 0; i-- {
		block, ok := c.doc.Items()[i].(*Block)
		if !ok {
			continue
		}
		if distToRectEdge(p, block.Bounds) <= PortActivationBandPx {
			portID := block.AddPortToward(p, RoleDynamic, "")
			return PortRef{ItemID: block.id, PortID: portID}, true
		}
	}
	return PortRef{}, false
}

func (c *LinkingController) createDirectLink(a, b PortRef) *Wire {
	w := c.doc.CreateWire(AttachedEndpoint(a), AttachedEndpoint(b))
	if color, ok := c.linkColorForEndpoints(a, b); ok {
		w.ColorOverride = color
	}
	return w
}

// linkColorForEndpoints applies the hub-linked-wire color rule: if either
// endpoint sits on a link-hub block, the wire adopts the producer/consumer
// link color for that side.
func (c *LinkingController) linkColorForEndpoints(a, b PortRef) (string, bool) {
	if color, ok := c.hubSideColor(a); ok {
		return color, true
	}
	if color, ok := c.hubSideColor(b); ok {
		return color, true
	}
	return "", false
}

func (c *LinkingController) hubSideColor(ref PortRef) (string, bool) {
	block, ok := c.doc.FindItem(ref.ItemID).(*Block)
	if !ok || !block.IsLinkHub {
		return "", false
	}
	port := block.GetPort(ref.PortID)
	if port == nil {
		return "", false
	}
	return c.style.WireColorFor(port.Role, true)
}

// createHubLink implements the hub-linking gesture: a new link-hub
// block at the lattice-snapped midpoint between the two ports' fabric
// points, two ports on the hub with roles opposite the wire roles on each
// side, and two wires start<->hubPortA, hubPortB<->end. Returns both wires.
func (c *LinkingController) createHubLink(start, end PortRef, kind HubKind) []*Wire {
	startAnchor, _ := c.doc.PortAnchorScene(start.ItemID, start.PortID)
	endAnchor, _ := c.doc.PortAnchorScene(end.ItemID, end.PortID)

	fab := c.doc.fabric
	mid := ScenePoint{(startAnchor.X + endAnchor.X) / 2, (startAnchor.Y + endAnchor.Y) / 2}
	midFab := fab.ToFabric(mid)
	midScene := fab.ToScene(midFab)

	size := fab.Step * LinkHubSizeFactor
	bounds := SceneRect{X: midScene.X - size/2, Y: midScene.Y - size/2, Width: size, Height: size}

	hub := c.doc.CreateBlock(bounds, true)
	hub.IsLinkHub = true
	hub.HubKind = kind
	hub.Label = kind.Symbol()
	hub.Content = &SymbolContent{Symbol: kind.Symbol()}
	hub.ShowPorts = true

	startRole := RoleProducer
	if port := c.doc.GetPort(start); port != nil {
		startRole = oppositeRole(port.Role)
	}
	endRole := RoleConsumer
	if port := c.doc.GetPort(end); port != nil {
		endRole = oppositeRole(port.Role)
	}

	hubPortA := hub.AddPortToward(startAnchor, startRole, "")
	hubPortB := hub.AddPortToward(endAnchor, endRole, "")

	w1 := c.doc.CreateWire(AttachedEndpoint(start), AttachedEndpoint(PortRef{ItemID: hub.id, PortID: hubPortA}))
	w1.ArrowPolicy = arrowPolicyForHubWire(startRole, true)
	if color, ok := c.style.WireColorFor(startRole, true); ok {
		w1.ColorOverride = color
	}

	w2 := c.doc.CreateWire(AttachedEndpoint(PortRef{ItemID: hub.id, PortID: hubPortB}), AttachedEndpoint(end))
	w2.ArrowPolicy = arrowPolicyForHubWire(endRole, false)
	if color, ok := c.style.WireColorFor(endRole, true); ok {
		w2.ColorOverride = color
	}

	return []*Wire{w1, w2}
}

func oppositeRole(r PortRole) PortRole {
	if r == RoleProducer {
		return RoleConsumer
	}
	if r == RoleConsumer {
		return RoleProducer
	}
	return RoleDynamic
}

// arrowPolicyForHubWire computes the arrow policy for a hub-connected wire:
// None on hub-producer sides, Start/End on consumer sides, where Start/End
// reflects which endpoint (A or B) the hub occupies on this particular
// wire (hubIsEndpointB selects End, otherwise Start).
func arrowPolicyForHubWire(hubSideRole PortRole, hubIsEndpointB bool) ArrowPolicy {
	if hubSideRole == RoleProducer {
		return ArrowNone
	}
	if hubIsEndpointB {
		return ArrowEnd
	}
	return ArrowStart
}
