package canvas

import "testing"

func TestCreateBlockSnapsToFabric(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{X: 3, Y: 5, Width: 61, Height: 30}, true)

	if b.Bounds.X != 0 || b.Bounds.Y != 8 {
		t.Errorf("top-left = (%v, %v), want rounded to the nearest step (0, 8)", b.Bounds.X, b.Bounds.Y)
	}
	if b.Bounds.Width != 64 || b.Bounds.Height != 32 {
		t.Errorf("size = (%v, %v), want ceil-snapped to (64, 32)", b.Bounds.Width, b.Bounds.Height)
	}
}

func TestInsertItemRejectsDuplicateID(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)

	dup := NewBlock(b.id, SceneRect{Width: 16, Height: 16}, 8)
	if doc.InsertItem(len(doc.items), dup) {
		t.Fatal("expected duplicate id insert to fail")
	}
}

func TestSetItemTopLeftRejectsImmovable(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, false)

	if doc.SetItemTopLeft(b.id, ScenePoint{X: 80, Y: 80}) {
		t.Fatal("expected move of immovable block to be rejected")
	}
}

func TestSetItemTopLeftClearsRouteOverrides(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b := doc.CreateBlock(SceneRect{X: 200, Y: 200, Width: 16, Height: 16}, true)
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	pb := b.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	w := doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: b.id, PortID: pb}))
	w.SetRouteOverride([]FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}}, FabricCoord{}, FabricCoord{X: 1, Y: 0})

	if !w.HasRouteOverride() {
		t.Fatal("expected route override to be set before move")
	}
	doc.SetItemTopLeft(a.id, ScenePoint{X: 40, Y: 40})
	if w.HasRouteOverride() {
		t.Error("expected route override to be cleared after endpoint block moved")
	}
}

func TestSetItemTopLeftSamePositionIsFullNoop(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b := doc.CreateBlock(SceneRect{X: 200, Y: 200, Width: 16, Height: 16}, true)
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	pb := b.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	w := doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: b.id, PortID: pb}))
	w.SetRouteOverride([]FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}}, FabricCoord{}, FabricCoord{X: 1, Y: 0})

	calls := 0
	doc.OnChanged(func() { calls++ })

	if !doc.SetItemTopLeft(a.id, ScenePoint{X: 0, Y: 0}) {
		t.Fatal("expected a snap back onto the current position to report success")
	}
	if !w.HasRouteOverride() {
		t.Error("expected a same-position move to leave route overrides untouched")
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0: a same-position move should not emit changed", calls)
	}
}

func TestEmitChangedFiresOnceAcrossMutation(t *testing.T) {
	doc := NewDocument(8)
	calls := 0
	doc.OnChanged(func() { calls++ })

	doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a single CreateBlock", calls)
	}
}

func TestRemoveItemClearsPendingAutoLayout(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b.AutoPortLayout = true
	doc.ScheduleAutoPortLayout(b)

	if _, _, ok := doc.RemoveItem(b.id); !ok {
		t.Fatal("expected removal to succeed")
	}
	if doc.pendingAutoLayout[b.id] {
		t.Error("expected pending auto-layout entry to be cleared on removal")
	}
}

func TestHitTestItemReturnsTopmost(t *testing.T) {
	doc := NewDocument(8)
	doc.CreateBlock(SceneRect{Width: 32, Height: 32}, true)
	top := doc.CreateBlock(SceneRect{Width: 32, Height: 32}, true)

	hit := doc.HitTestItem(ScenePoint{X: 10, Y: 10})
	if hit == nil || hit.ID() != top.ID() {
		t.Error("expected the most recently inserted overlapping block to win hit test")
	}
}

func TestResetClearsItemsAndCommands(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	doc.Commands().Do(doc, &MoveItemCommand{ItemID: b.id, From: ScenePoint{}, To: ScenePoint{X: 8}})

	doc.Reset(8)
	if len(doc.Items()) != 0 {
		t.Error("expected Reset to clear items")
	}
	if doc.Commands().CanUndo() {
		t.Error("expected Reset to clear command history")
	}
}
