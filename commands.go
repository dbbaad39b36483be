package canvas

import "sort"

// Command is a transactional edit to a Document. Both Apply and Revert are
// total: they never partially mutate and then fail. Grounded on
// animation.go's TweenGroup (an explicit, restartable apply/update/done
// state machine) generalized to a two-method apply/revert pair.
type Command interface {
	Apply(doc *Document) bool
	Revert(doc *Document) bool
}

// CommandManager executes commands and maintains the undo/redo stacks.
// It is the sole mutator of those stacks.
type CommandManager struct {
	undoStack []Command
	redoStack []Command
}

// NewCommandManager returns an empty command manager.
func NewCommandManager() *CommandManager {
	return &CommandManager{}
}

// Do applies cmd against doc. On success it is pushed onto the undo stack
// and the redo stack is cleared; on failure the stacks are untouched.
func (m *CommandManager) Do(doc *Document, cmd Command) bool {
	if !cmd.Apply(doc) {
		return false
	}
	m.undoStack = append(m.undoStack, cmd)
	m.redoStack = nil
	return true
}

// CanUndo reports whether there is a command to undo.
func (m *CommandManager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether there is a command to redo.
func (m *CommandManager) CanRedo() bool { return len(m.redoStack) > 0 }

// Undo reverts the most recently applied command and moves it to the redo
// stack. Returns false if there is nothing to undo or the revert fails.
func (m *CommandManager) Undo(doc *Document) bool {
	if len(m.undoStack) == 0 {
		return false
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	if !cmd.Revert(doc) {
		return false
	}
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	m.redoStack = append(m.redoStack, cmd)
	return true
}

// Redo re-applies the most recently undone command.
func (m *CommandManager) Redo(doc *Document) bool {
	if len(m.redoStack) == 0 {
		return false
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	if !cmd.Apply(doc) {
		return false
	}
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	m.undoStack = append(m.undoStack, cmd)
	return true
}

// Clear empties both stacks (used by Document.Reset on deserialization).
func (m *CommandManager) Clear() {
	m.undoStack = nil
	m.redoStack = nil
}

// --- MoveItemCommand ---

// MoveItemCommand moves a movable block's top-left from `from` to `to`.
type MoveItemCommand struct {
	ItemID ObjectId
	From   ScenePoint
	To     ScenePoint
}

func (c *MoveItemCommand) Apply(doc *Document) bool {
	return doc.SetItemTopLeft(c.ItemID, c.To)
}

func (c *MoveItemCommand) Revert(doc *Document) bool {
	return doc.SetItemTopLeft(c.ItemID, c.From)
}

// --- CreateItemCommand ---

// CreateItemCommand inserts item at the end of the document on first Apply,
// remembering its index so a later Apply (after a Revert) reinserts at the
// same slot.
type CreateItemCommand struct {
	item  CanvasItem
	index int
	set   bool
}

// NewCreateItemCommand constructs a command that will insert item.
func NewCreateItemCommand(item CanvasItem) *CreateItemCommand {
	return &CreateItemCommand{item: item}
}

func (c *CreateItemCommand) Apply(doc *Document) bool {
	if c.item == nil {
		return false
	}
	if !c.set {
		c.index = len(doc.items)
		c.set = true
	}
	if !doc.InsertItem(c.index, c.item) {
		return false
	}
	c.item = nil
	return true
}

func (c *CreateItemCommand) Revert(doc *Document) bool {
	_, item, ok := doc.RemoveItem(c.currentID(doc))
	if !ok {
		return false
	}
	c.item = item
	return true
}

func (c *CreateItemCommand) currentID(doc *Document) ObjectId {
	if c.item != nil {
		return c.item.ID()
	}
	if c.index >= 0 && c.index < len(doc.items) {
		return doc.items[c.index].ID()
	}
	return NilObjectId
}

// --- DeleteItemCommand ---

type savedItem struct {
	id    ObjectId
	index int
	item  CanvasItem
}

// DeleteItemCommand removes one item (and, if it is a link hub, every wire
// attached to it) and restores all of them in original z-order on Revert.
type DeleteItemCommand struct {
	targetID ObjectId
	saved    []savedItem
	firstRun bool
}

// NewDeleteItemCommand constructs a command that will delete the item with
// the given id (and, transitively, a link hub's wires).
func NewDeleteItemCommand(id ObjectId) *DeleteItemCommand {
	return &DeleteItemCommand{targetID: id}
}

func (c *DeleteItemCommand) Apply(doc *Document) bool {
	if !c.firstRun {
		idx, item, ok := doc.RemoveItem(c.targetID)
		if !ok {
			return false
		}
		c.saved = []savedItem{{id: c.targetID, index: idx, item: item}}

		if b, ok := item.(*Block); ok && b.IsLinkHub {
			for _, w := range doc.wiresAttachedTo(b.id) {
				wIdx, wItem, wOK := doc.RemoveItem(w.id)
				if wOK {
					c.saved = append(c.saved, savedItem{id: w.id, index: wIdx, item: wItem})
				}
			}
		}
		c.firstRun = true
		return true
	}

	// Subsequent Apply (after a Revert): remove exactly the saved ids,
	// without re-collecting hub siblings.
	ok := true
	for _, s := range c.saved {
		if _, _, removed := doc.RemoveItem(s.id); !removed {
			ok = false
		}
	}
	return ok
}

func (c *DeleteItemCommand) Revert(doc *Document) bool {
	// Each saved index was taken after the earlier removals, so reinserting
	// in reverse removal order puts every item back at its original slot.
	for i := len(c.saved) - 1; i >= 0; i-- {
		s := c.saved[i]
		if !doc.InsertItem(s.index, s.item) {
			return false
		}
	}
	return true
}

// --- DeletePortCommand ---

type savedWireRef struct {
	id    ObjectId
	index int
	item  CanvasItem
}

// DeletePortCommand removes every wire attached to (itemID, portID), then
// removes the port itself, restoring both on Revert. If the deleted port was
// a paired consumer, its auto-created opposite producer is removed too
// (provided it carries no wires of its own), so a pair never outlives the
// consumer side that spawned it.
type DeletePortCommand struct {
	itemID ObjectId
	portID PortId

	portIndex int
	port      *CanvasPort
	wires     []savedWireRef

	pairIndex int
	pair      *CanvasPort
}

// NewDeletePortCommand constructs a command that will delete the named port
// and every wire referencing it.
func NewDeletePortCommand(itemID ObjectId, portID PortId) *DeletePortCommand {
	return &DeletePortCommand{itemID: itemID, portID: portID}
}

func (c *DeletePortCommand) Apply(doc *Document) bool {
	block, ok := doc.FindItem(c.itemID).(*Block)
	if !ok {
		return false
	}

	ref := PortRef{ItemID: c.itemID, PortID: c.portID}
	c.wires = c.wires[:0]
	for _, w := range doc.wires() {
		if _, attached := w.AttachesToPort(ref); attached {
			idx, item, removed := doc.RemoveItem(w.id)
			if removed {
				c.wires = append(c.wires, savedWireRef{id: w.id, index: idx, item: item})
			}
		}
	}

	idx, port, removed := block.RemovePort(c.portID)
	if !removed {
		return false
	}
	c.portIndex = idx
	c.port = port

	if pairIdx, pair, ok := removeOppositeProducerPort(doc, block, port); ok {
		c.pairIndex = pairIdx
		c.pair = pair
	}

	doc.emitChanged()
	return true
}

func (c *DeletePortCommand) Revert(doc *Document) bool {
	block, ok := doc.FindItem(c.itemID).(*Block)
	if !ok || c.port == nil {
		return false
	}
	block.InsertPort(c.portIndex, c.port)
	if c.pair != nil {
		block.InsertPort(c.pairIndex, c.pair)
	}

	sorted := append([]savedWireRef(nil), c.wires...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].index < sorted[j].index })
	for _, s := range sorted {
		if !doc.InsertItem(s.index, s.item) {
			return false
		}
	}
	doc.emitChanged()
	return true
}

// --- RouteOverrideCommand ---

// RouteOverrideCommand records a wire-segment drag's resulting manual path
// override, so it can be undone like any other edit.
type RouteOverrideCommand struct {
	WireID   ObjectId
	Before   []FabricCoord
	After    []FabricCoord
	StartEnd [2]FabricCoord
}

func (c *RouteOverrideCommand) Apply(doc *Document) bool {
	w, ok := doc.FindItem(c.WireID).(*Wire)
	if !ok {
		return false
	}
	if len(c.After) == 0 {
		w.ClearRouteOverride()
	} else {
		w.SetRouteOverride(c.After, c.StartEnd[0], c.StartEnd[1])
	}
	doc.emitChanged()
	return true
}

func (c *RouteOverrideCommand) Revert(doc *Document) bool {
	w, ok := doc.FindItem(c.WireID).(*Wire)
	if !ok {
		return false
	}
	if len(c.Before) == 0 {
		w.ClearRouteOverride()
	} else {
		w.SetRouteOverride(c.Before, c.StartEnd[0], c.StartEnd[1])
	}
	doc.emitChanged()
	return true
}

// --- CompositeCommand ---

// CompositeCommand applies an ordered list of child commands and reverts
// them in reverse order. An empty composite is rejected by NewCompositeCommand so
// it can never be pushed onto the undo stack.
type CompositeCommand struct {
	Name     string
	children []Command
	applied  int
}

// NewCompositeCommand builds a composite from children, or returns nil if
// children is empty.
func NewCompositeCommand(name string, children ...Command) *CompositeCommand {
	if len(children) == 0 {
		return nil
	}
	return &CompositeCommand{Name: name, children: children}
}

func (c *CompositeCommand) Apply(doc *Document) bool {
	c.applied = 0
	for _, child := range c.children {
		if !child.Apply(doc) {
			return false
		}
		c.applied++
	}
	return true
}

func (c *CompositeCommand) Revert(doc *Document) bool {
	for i := c.applied - 1; i >= 0; i-- {
		if !c.children[i].Revert(doc) {
			return false
		}
	}
	c.applied = 0
	return true
}
