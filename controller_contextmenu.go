package canvas

import "sort"

// ContextTargetKind classifies what a context-menu click landed on.
type ContextTargetKind int

const (
	ContextTargetEmpty ContextTargetKind = iota
	ContextTargetPort
	ContextTargetWire
	ContextTargetBlock
	ContextTargetLinkHub
	ContextTargetSelection
)

// ContextTarget is the resolved click target for a context-menu request.
type ContextTarget struct {
	Kind  ContextTargetKind
	Item  CanvasItem
	Port  *PortRef
	Point ScenePoint
}

// ContextAction is one entry in the flat action list built for a context
// menu. Run executes it against doc/sel, pushing any command it performs
// onto the undo stack itself, and returns that command (nil when nothing was
// recorded, e.g. Undo and Redo).
type ContextAction struct {
	Name string
	Run  func(doc *Document, sel *Selection) Command
}

// ContextMenuController resolves a click target and builds the flat action
// list for it. Grounded on input.go's hit-test-then-dispatch pattern,
// generalized from raw button handlers to a declarative action list a host
// UI renders as a menu.
type ContextMenuController struct {
	doc *Document
	sel *Selection
}

// NewContextMenuController binds a controller to doc and sel.
func NewContextMenuController(doc *Document, sel *Selection) *ContextMenuController {
	return &ContextMenuController{doc: doc, sel: sel}
}

// ResolveTarget classifies the click at p.
func (c *ContextMenuController) ResolveTarget(p ScenePoint) ContextTarget {
	if len(c.sel.Items()) > 1 {
		if item := c.doc.HitTestItem(p); item != nil && c.sel.HasItem(item.ID()) {
			return ContextTarget{Kind: ContextTargetSelection, Point: p}
		}
	}
	if ref, ok := c.doc.HitTestPort(p, PortHitRadiusPx); ok {
		return ContextTarget{Kind: ContextTargetPort, Port: &ref, Point: p}
	}
	item := c.doc.HitTestItem(p)
	if item == nil {
		return ContextTarget{Kind: ContextTargetEmpty, Point: p}
	}
	if w, ok := item.(*Wire); ok {
		return ContextTarget{Kind: ContextTargetWire, Item: w, Point: p}
	}
	if b, ok := item.(*Block); ok && b.IsLinkHub {
		return ContextTarget{Kind: ContextTargetLinkHub, Item: b, Point: p}
	}
	return ContextTarget{Kind: ContextTargetBlock, Item: item, Point: p}
}

// Actions builds the flat action list for target: Undo/Redo always
// present, then the target-specific actions (Delete Port, Delete, Delete
// Selection, or Create Block for empty space). No framing or custom actions
// are added.
func (c *ContextMenuController) Actions(target ContextTarget) []ContextAction {
	actions := []ContextAction{
		{Name: "Undo", Run: func(doc *Document, sel *Selection) Command {
			doc.Commands().Undo(doc)
			return nil
		}},
		{Name: "Redo", Run: func(doc *Document, sel *Selection) Command {
			doc.Commands().Redo(doc)
			return nil
		}},
	}

	switch target.Kind {
	case ContextTargetPort:
		ref := *target.Port
		actions = append(actions, ContextAction{Name: "Delete Port", Run: func(doc *Document, sel *Selection) Command {
			cmd := NewDeletePortCommand(ref.ItemID, ref.PortID)
			if doc.Commands().Do(doc, cmd) {
				return cmd
			}
			return nil
		}})

	case ContextTargetWire, ContextTargetBlock, ContextTargetLinkHub:
		id := target.Item.ID()
		actions = append(actions, ContextAction{Name: "Delete", Run: func(doc *Document, sel *Selection) Command {
			cmd := NewDeleteItemCommand(id)
			if doc.Commands().Do(doc, cmd) {
				return cmd
			}
			return nil
		}})

	case ContextTargetSelection:
		actions = append(actions, ContextAction{Name: "Delete Selection", Run: func(doc *Document, sel *Selection) Command {
			ids := append([]ObjectId(nil), sel.Items()...)
			sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
			var children []Command
			for _, id := range ids {
				children = append(children, NewDeleteItemCommand(id))
			}
			composite := NewCompositeCommand("delete selection", children...)
			if composite == nil {
				return nil
			}
			if doc.Commands().Do(doc, composite) {
				sel.Clear()
				return composite
			}
			return nil
		}})

	case ContextTargetEmpty:
		at := target.Point
		actions = append(actions, ContextAction{Name: "Create Block", Run: func(doc *Document, sel *Selection) Command {
			size := doc.fabric.Step * NewBlockSizeFactor
			bounds := SceneRect{X: at.X - size/2, Y: at.Y - size/2, Width: size, Height: size}
			bounds = SceneRect{
				X:      doc.fabric.SnapDown(bounds.X),
				Y:      doc.fabric.SnapDown(bounds.Y),
				Width:  doc.fabric.SnapCeil(bounds.Width),
				Height: doc.fabric.SnapCeil(bounds.Height),
			}
			block := NewBlock(NewObjectId(), bounds, doc.fabric.Step)
			block.Label = "BLOCK"

			cmd := NewCreateItemCommand(block)
			if !doc.Commands().Do(doc, cmd) {
				return nil
			}
			sel.SetItems([]ObjectId{block.ID()})
			return cmd
		}})
	}

	return actions
}
