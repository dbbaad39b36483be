package canvas

// Document owns the ordered sequence of canvas items and the undo/redo
// command stacks. It provides id allocation, item and port lookup, the pure
// geometry helpers, debounced auto-port-layout scheduling, and a single
// Changed signal. Grounded on scene.go's ownership of a child-node list plus
// camera.go's single mutable view state, generalized to items+commands.
type Document struct {
	fabric Fabric
	items  []CanvasItem

	commands *CommandManager

	listeners []func()

	// mutationDepth > 0 suppresses Changed emission and auto-layout flush
	// until the outermost mutating call returns: changed
	// fires once per public call, not once per internal step.
	mutationDepth int

	pendingAutoLayout map[ObjectId]bool
}

// NewDocument constructs an empty document with the given fabric step
// (DefaultFabricStep if step <= 0).
func NewDocument(fabricStep float64) *Document {
	return &Document{
		fabric:            NewFabric(fabricStep),
		commands:          NewCommandManager(),
		pendingAutoLayout: make(map[ObjectId]bool),
	}
}

// Fabric returns the document's lattice configuration.
func (d *Document) Fabric() Fabric { return d.fabric }

// Commands returns the document's command manager, for Undo/Redo/Do calls.
func (d *Document) Commands() *CommandManager { return d.commands }

// Items returns the live item slice in z-order (bottom to top). Callers must
// not mutate the returned slice.
func (d *Document) Items() []CanvasItem { return d.items }

// OnChanged registers a listener invoked after any mutating operation that
// altered document state. There is no unsubscribe; callers that need one
// should wrap fn in a closure over a boolean flag.
func (d *Document) OnChanged(fn func()) {
	d.listeners = append(d.listeners, fn)
}

func (d *Document) emitChanged() {
	if d.mutationDepth > 0 {
		return
	}
	d.flushAutoLayout()
	for _, fn := range d.listeners {
		fn()
	}
}

// beginMutation/endMutation bracket a public entry point so nested document
// calls (e.g. a composite command touching several items) emit Changed once.
func (d *Document) beginMutation() { d.mutationDepth++ }

func (d *Document) endMutation() {
	d.mutationDepth--
	if d.mutationDepth == 0 {
		d.emitChanged()
	}
}

// FindItem returns the item with the given id, or nil.
func (d *Document) FindItem(id ObjectId) CanvasItem {
	for _, it := range d.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}

func (d *Document) findIndex(id ObjectId) int {
	for i, it := range d.items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// wires returns the subset of items that are wires.
func (d *Document) wires() []*Wire {
	var out []*Wire
	for _, it := range d.items {
		if w, ok := it.(*Wire); ok {
			out = append(out, w)
		}
	}
	return out
}

// wiresAttachedTo returns every wire with an endpoint attached to itemID.
func (d *Document) wiresAttachedTo(itemID ObjectId) []*Wire {
	var out []*Wire
	for _, w := range d.wires() {
		if w.AttachesTo(itemID) {
			out = append(out, w)
		}
	}
	return out
}

// InsertItem inserts item at index (clamped into range), claiming back-
// references where needed (Wire.doc). Returns false if an item with the same
// id already exists.
func (d *Document) InsertItem(index int, item CanvasItem) bool {
	if item == nil || d.FindItem(item.ID()) != nil {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > len(d.items) {
		index = len(d.items)
	}

	if w, ok := item.(*Wire); ok {
		w.doc = d
	}

	d.items = append(d.items, nil)
	copy(d.items[index+1:], d.items[index:])
	d.items[index] = item

	if b, ok := item.(*Block); ok && b.AutoPortLayout {
		d.pendingAutoLayout[b.id] = true
	}

	d.emitChanged()
	return true
}

// RemoveItem removes the item with the given id, returning its prior index
// and value for undo.
func (d *Document) RemoveItem(id ObjectId) (int, CanvasItem, bool) {
	idx := d.findIndex(id)
	if idx < 0 {
		return 0, nil, false
	}
	item := d.items[idx]
	d.items = append(d.items[:idx], d.items[idx+1:]...)
	delete(d.pendingAutoLayout, id)
	d.emitChanged()
	return idx, item, true
}

// CreateBlock allocates a new Block at bounds (snapped to the fabric on
// insertion), inserts it, and returns it.
func (d *Document) CreateBlock(bounds SceneRect, movable bool) *Block {
	d.beginMutation()
	defer d.endMutation()

	snapped := SceneRect{
		X:      d.fabric.SnapDown(bounds.X),
		Y:      d.fabric.SnapDown(bounds.Y),
		Width:  d.fabric.SnapCeil(bounds.Width),
		Height: d.fabric.SnapCeil(bounds.Height),
	}
	b := NewBlock(NewObjectId(), snapped, d.fabric.Step)
	b.Movable = movable
	d.items = append(d.items, b)
	return b
}

// CreateWire allocates and inserts a new Wire between a and b.
func (d *Document) CreateWire(a, b Endpoint) *Wire {
	d.beginMutation()
	defer d.endMutation()

	w := NewWire(NewObjectId(), a, b)
	w.doc = d
	d.items = append(d.items, w)
	return w
}

// GetPort resolves a PortRef to its owning block's CanvasPort, or nil.
func (d *Document) GetPort(ref PortRef) *CanvasPort {
	block, ok := d.FindItem(ref.ItemID).(*Block)
	if !ok {
		return nil
	}
	return block.GetPort(ref.PortID)
}

// PortAnchorScene resolves (itemID, portID) to its current scene anchor.
func (d *Document) PortAnchorScene(itemID ObjectId, portID PortId) (ScenePoint, bool) {
	item := d.FindItem(itemID)
	if item == nil {
		return ScenePoint{}, false
	}
	return item.PortAnchorScene(portID)
}

// HitTestPort returns the first port within radius of p, scanning items in
// reverse z-order (topmost first), or false if none qualify.
func (d *Document) HitTestPort(p ScenePoint, radius float64) (PortRef, bool) {
	for i := len(d.items) - 1; i >= 0; i-- {
		item := d.items[i]
		if !item.HasPorts() {
			continue
		}
		for _, port := range item.Ports() {
			if port.AnchorScene().Dist(p) <= radius {
				return PortRef{ItemID: item.ID(), PortID: port.ID}, true
			}
		}
	}
	return PortRef{}, false
}

// HitTestItem returns the topmost item whose HitTest accepts p, or nil.
func (d *Document) HitTestItem(p ScenePoint) CanvasItem {
	for i := len(d.items) - 1; i >= 0; i-- {
		if d.items[i].HitTest(p) {
			return d.items[i]
		}
	}
	return nil
}

// SetItemTopLeft relocates a movable block so its top-left is at p, snapped
// to the fabric, clearing any wire route overrides whose endpoints are no
// longer valid board state. A snap that lands back on the block's current
// position is a no-op: it reports success without touching wires, queuing
// auto-layout, or emitting changed, matching setItemTopLeftImpl's early
// "r == boundsScene()" return.
func (d *Document) SetItemTopLeft(id ObjectId, p ScenePoint) bool {
	block, ok := d.FindItem(id).(*Block)
	if !ok || !block.Movable {
		return false
	}

	x := d.fabric.SnapDown(p.X)
	y := d.fabric.SnapDown(p.Y)
	if x == block.Bounds.X && y == block.Bounds.Y {
		return true
	}

	d.beginMutation()
	defer d.endMutation()

	block.Bounds.X = x
	block.Bounds.Y = y

	for _, w := range d.wiresAttachedTo(id) {
		w.ClearRouteOverride()
	}
	if block.AutoPortLayout {
		d.pendingAutoLayout[id] = true
	}
	return true
}

// IsFabricPointBlocked reports whether coord falls inside any item's
// keepout rectangle.
func (d *Document) IsFabricPointBlocked(coord FabricCoord) bool {
	return geometryIsFabricPointBlocked(d, coord)
}

// ComputePortTerminal returns the geometry service's terminal computation
// for the given port.
func (d *Document) ComputePortTerminal(itemID ObjectId, portID PortId) (PortTerminal, bool) {
	return geometryComputePortTerminal(d, itemID, portID)
}

// flushAutoLayout runs layoutApplyAutoPorts for every block queued since the
// last flush, then clears the queue. Called only from emitChanged, so a
// burst of moves/port edits inside one public call triggers layout once per
// affected block.
func (d *Document) flushAutoLayout() {
	if len(d.pendingAutoLayout) == 0 {
		return
	}
	pending := d.pendingAutoLayout
	d.pendingAutoLayout = make(map[ObjectId]bool)
	for id := range pending {
		if block, ok := d.FindItem(id).(*Block); ok {
			layoutApplyAutoPorts(d, block)
		}
	}
}

// ScheduleAutoPortLayout queues block for the next auto-layout flush,
// without waiting for a move or port edit to trigger it implicitly.
func (d *Document) ScheduleAutoPortLayout(block *Block) {
	d.pendingAutoLayout[block.id] = true
	d.emitChanged()
}

// Reset discards all items and command history, used when loading a
// document from serialized state.
func (d *Document) Reset(fabricStep float64) {
	d.fabric = NewFabric(fabricStep)
	d.items = nil
	d.commands.Clear()
	d.pendingAutoLayout = make(map[ObjectId]bool)
}
