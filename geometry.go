package canvas

// geometryIsFabricPointBlocked and geometryComputePortTerminal are the
// Geometry service: pure functions over a Document, never mutating it. Document.IsFabricPointBlocked/ComputePortTerminal delegate
// here. Grounded on transform.go's pure matrix-from-fields computation
// style (no caching, always recomputed from current state).

func geometryIsFabricPointBlocked(doc *Document, coord FabricCoord) bool {
	p := doc.fabric.ToScene(coord)
	for _, item := range doc.items {
		if !item.BlocksFabric() {
			continue
		}
		if item.KeepoutSceneRect().Contains(p) {
			return true
		}
	}
	return false
}

// PortTerminal is the result of computePortTerminal: the port's raw anchor
// on the block edge, the anchor moved out to the keepout border, and the
// nearest unblocked fabric coordinate in the port's outward direction.
type PortTerminal struct {
	Anchor ScenePoint
	Border ScenePoint
	Fabric FabricCoord
}

func geometryComputePortTerminal(doc *Document, itemID ObjectId, portID PortId) (PortTerminal, bool) {
	item := doc.FindItem(itemID)
	if item == nil || !item.HasPorts() {
		return PortTerminal{}, false
	}
	block, ok := item.(*Block)
	if !ok {
		return PortTerminal{}, false
	}
	port := block.GetPort(portID)
	if port == nil {
		return PortTerminal{}, false
	}

	anchor := port.AnchorScene()
	dx, dy := port.Side.Direction()

	keepout := block.KeepoutSceneRect()
	bounds := block.Bounds
	var border ScenePoint
	if !block.BlocksFabric() || keepout == (SceneRect{}) {
		border = clampToRect(anchor, bounds)
	} else {
		border = projectToRectBorder(anchor, keepout, dx, dy)
	}

	fc := doc.fabric.ToFabric(border)
	for i := 0; i < PortTerminalMaxSteps; i++ {
		if !doc.IsFabricPointBlocked(fc) {
			break
		}
		fc = fc.Add(dx, dy)
	}

	return PortTerminal{Anchor: anchor, Border: border, Fabric: fc}, true
}

// projectToRectBorder moves p outward (in direction dx,dy) until it lies on
// the border of rect.
func projectToRectBorder(p ScenePoint, rect SceneRect, dx, dy int32) ScenePoint {
	out := p
	if dx > 0 {
		out.X = rect.X + rect.Width
	} else if dx < 0 {
		out.X = rect.X
	}
	if dy > 0 {
		out.Y = rect.Y + rect.Height
	} else if dy < 0 {
		out.Y = rect.Y
	}
	return out
}

func clampToRect(p ScenePoint, rect SceneRect) ScenePoint {
	x := p.X
	if x < rect.X {
		x = rect.X
	} else if x > rect.X+rect.Width {
		x = rect.X + rect.Width
	}
	y := p.Y
	if y < rect.Y {
		y = rect.Y
	} else if y > rect.Y+rect.Height {
		y = rect.Y + rect.Height
	}
	return ScenePoint{x, y}
}
