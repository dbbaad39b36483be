package canvas

import (
	"math"
	"sort"
)

// layoutConnection is one wire endpoint attached to the block being laid
// out, classified to a side and carrying the sort key used to order ports
// along that side.
type layoutConnection struct {
	wire    *Wire
	side    Side
	sortKey float64
}

// layoutApplyAutoPorts implements auto-port layout: resize
// block to a square sized for its busiest side, re-center it, clear route
// overrides on every attached wire, and assign each attached wire's block-
// side port to an evenly spaced position on its classified side. Grounded
// on camera.go's recompute-from-scratch viewport fitting, generalized from
// a single rectangle fit to a four-sided bucket layout.
func layoutApplyAutoPorts(doc *Document, block *Block) {
	conns := classifyConnections(doc, block)
	if len(conns) == 0 {
		return
	}

	bySide := map[Side][]layoutConnection{}
	maxCount := 0
	for _, c := range conns {
		bySide[c.side] = append(bySide[c.side], c)
		if n := len(bySide[c.side]); n > maxCount {
			maxCount = n
		}
	}

	step := block.PortSnapStep
	if step <= 0 {
		step = doc.fabric.Step
	}
	size := step * float64(maxCount+1)
	if current := math.Max(block.Bounds.Width, block.Bounds.Height); current > size {
		size = current
	}

	center := block.Bounds.Center()
	block.Bounds.Width = size
	block.Bounds.Height = size
	block.Bounds.X = center.X - size/2
	block.Bounds.Y = center.Y - size/2

	for _, w := range doc.wiresAttachedTo(block.id) {
		w.ClearRouteOverride()
	}

	for side, list := range bySide {
		sort.Slice(list, func(i, j int) bool { return list[i].sortKey < list[j].sortKey })
		edgeLen := size
		for i, c := range list {
			portID, ok := wireBlockSidePort(c.wire, block.id)
			if !ok {
				continue
			}
			t := step * float64(i+1) / edgeLen
			block.UpdatePort(portID, side, t)
		}
	}
}

// classifyConnections returns one layoutConnection per wire with exactly
// one endpoint attached to block, classified by side and carrying the
// perpendicular coordinate along that side as its sort key. The returned
// list is unsorted; layoutApplyAutoPorts sorts each side.
func classifyConnections(doc *Document, block *Block) []layoutConnection {
	center := block.Bounds.Center()
	var out []layoutConnection

	for _, w := range doc.wiresAttachedTo(block.id) {
		aOnBlock := w.A.IsAttached() && w.A.Attached.ItemID == block.id
		bOnBlock := w.B.IsAttached() && w.B.Attached.ItemID == block.id
		if aOnBlock && bOnBlock {
			continue // both ends on the same block: not classifiable to a side
		}

		other := w.B
		if !aOnBlock {
			other = w.A
		}
		target := w.endpointScene(other)

		dx := target.X - center.X
		dy := target.Y - center.Y

		var side Side
		var sortKey float64
		if math.Abs(dx) >= math.Abs(dy) {
			if dx >= 0 {
				side = SideRight
			} else {
				side = SideLeft
			}
			sortKey = target.Y
		} else {
			if dy >= 0 {
				side = SideBottom
			} else {
				side = SideTop
			}
			sortKey = target.X
		}
		out = append(out, layoutConnection{wire: w, side: side, sortKey: sortKey})
	}
	return out
}

// wireBlockSidePort returns the port id of wire's endpoint attached to
// blockID.
func wireBlockSidePort(w *Wire, blockID ObjectId) (PortId, bool) {
	if w.A.IsAttached() && w.A.Attached.ItemID == blockID {
		return w.A.Attached.PortID, true
	}
	if w.B.IsAttached() && w.B.Attached.ItemID == blockID {
		return w.B.Attached.PortID, true
	}
	return NilPortId, false
}
