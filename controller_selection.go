package canvas

// ClickModifiers carries the modifier keys held during a pointer click,
// mirroring input.go's KeyModifiers bitmask in spirit but scoped to the two
// this controller cares about.
type ClickModifiers struct {
	Ctrl  bool
	Shift bool
}

// SelectionController turns click/marquee pointer events into Selection
// mutations. It is stateless between events except for the transient
// marquee drag in progress. Grounded on input.go's press/move/release state
// machine, generalized from raw mouse buttons to canvas selection intents.
type SelectionController struct {
	doc *Document
	sel *Selection

	pressScene  ScenePoint
	marqueeDown bool
	marqueeOn   bool
}

// NewSelectionController binds a controller to doc and sel.
func NewSelectionController(doc *Document, sel *Selection) *SelectionController {
	return &SelectionController{doc: doc, sel: sel}
}

// Press begins a potential click or marquee at p.
func (c *SelectionController) Press(p ScenePoint) {
	c.pressScene = p
	c.marqueeDown = true
	c.marqueeOn = false
}

// Move updates an in-progress marquee once the drag exceeds
// MarqueeDragThresholdPx, returning the current marquee rect and whether a
// marquee is active (for the caller to forward to RenderContext.SetMarqueeRect).
func (c *SelectionController) Move(p ScenePoint, rc *RenderContext) (SceneRect, bool) {
	if !c.marqueeDown {
		return SceneRect{}, false
	}
	if !c.marqueeOn {
		if c.pressScene.Dist(p) < MarqueeDragThresholdPx {
			return SceneRect{}, false
		}
		c.marqueeOn = true
	}
	rect := rectFromPoints(c.pressScene, p)
	if rc != nil {
		rc.SetMarqueeRect(&rect)
	}
	return rect, true
}

// Release finalizes a click (if no marquee was started) or a marquee
// selection (if one was), applying ctrl/shift combination rules.
func (c *SelectionController) Release(p ScenePoint, mods ClickModifiers, rc *RenderContext) {
	defer func() {
		c.marqueeDown = false
		c.marqueeOn = false
		if rc != nil {
			rc.SetMarqueeRect(nil)
		}
	}()

	if c.marqueeOn {
		rect := rectFromPoints(c.pressScene, p)
		ids, ports := c.itemsAndPortsIn(rect)
		c.applySet(ids, mods)
		c.sel.SetMarqueePorts(ports)
		return
	}

	item := c.doc.HitTestItem(p)
	if item == nil {
		if !mods.Ctrl && !mods.Shift {
			c.sel.Clear()
		}
		return
	}
	switch {
	case mods.Ctrl:
		c.sel.ToggleItem(item.ID())
	case mods.Shift:
		c.sel.AddItem(item.ID())
	default:
		c.sel.SetItems([]ObjectId{item.ID()})
	}
}

func (c *SelectionController) applySet(ids []ObjectId, mods ClickModifiers) {
	switch {
	case mods.Ctrl:
		for _, id := range ids {
			c.sel.ToggleItem(id)
		}
	case mods.Shift:
		merged := append(c.sel.Items(), ids...)
		c.sel.SetItems(merged)
	default:
		c.sel.SetItems(ids)
	}
}

// itemsAndPortsIn collects every item whose bounds intersect rect and every
// port whose anchor lies within rect expanded by PortActivationBandPx/2 on
// each side.
func (c *SelectionController) itemsAndPortsIn(rect SceneRect) ([]ObjectId, []PortRef) {
	expanded := rect.Expanded(PortActivationBandPx / 2)
	var ids []ObjectId
	var ports []PortRef
	for _, item := range c.doc.Items() {
		if item.BoundsScene().Intersects(rect) {
			ids = append(ids, item.ID())
		}
		if !item.HasPorts() {
			continue
		}
		for _, port := range item.Ports() {
			if expanded.Contains(port.AnchorScene()) {
				ports = append(ports, PortRef{ItemID: item.ID(), PortID: port.ID})
			}
		}
	}
	return ids, ports
}

func rectFromPoints(a, b ScenePoint) SceneRect {
	x := a.X
	if b.X < x {
		x = b.X
	}
	y := a.Y
	if b.Y < y {
		y = b.Y
	}
	w := a.X - b.X
	if w < 0 {
		w = -w
	}
	h := a.Y - b.Y
	if h < 0 {
		h = -h
	}
	return SceneRect{X: x, Y: y, Width: w, Height: h}
}
