package canvas

// CanvasItem is the polymorphic capability set shared by every item a
// Document can hold: a Block or a Wire. Grounded on node.go's Node, which
// plays the same "one set of capabilities, two+ concrete shapes" role for
// willow's scene graph; here the variant is a small interface rather than a
// single flattened struct because Block and Wire share almost no field
// layout (a wire has no ports of its own, a block has no endpoints).
type CanvasItem interface {
	// ID returns the item's identity within its Document.
	ID() ObjectId
	// BoundsScene returns the item's axis-aligned scene bounding rect.
	BoundsScene() SceneRect
	// HitTest reports whether p lies on/in the item.
	HitTest(p ScenePoint) bool
	// BlocksFabric reports whether this item's KeepoutSceneRect blocks
	// fabric lattice points.
	BlocksFabric() bool
	// KeepoutSceneRect returns the rectangle within which wires may not
	// route, when BlocksFabric is true.
	KeepoutSceneRect() SceneRect
	// HasPorts reports whether this item exposes ports.
	HasPorts() bool
	// Ports returns the item's ports in display order, or nil.
	Ports() []*CanvasPort
	// PortAnchorScene returns the scene anchor point for the named port, or
	// false if this item has no such port.
	PortAnchorScene(portID PortId) (ScenePoint, bool)
	// Clone returns a deep, detached copy (used by commands that must hold
	// an item by value across an apply/revert interval).
	Clone() CanvasItem
}
