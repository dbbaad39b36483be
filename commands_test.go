package canvas

import "testing"

func TestMoveItemCommandUndoRedo(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)

	cmd := &MoveItemCommand{ItemID: b.id, From: ScenePoint{}, To: ScenePoint{X: 80, Y: 40}}
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected move to apply")
	}
	if b.Bounds.X != 80 || b.Bounds.Y != 40 {
		t.Fatalf("got (%v, %v), want (80, 40)", b.Bounds.X, b.Bounds.Y)
	}

	if !doc.Commands().Undo(doc) {
		t.Fatal("expected undo to succeed")
	}
	if b.Bounds.X != 0 || b.Bounds.Y != 0 {
		t.Fatalf("after undo got (%v, %v), want (0, 0)", b.Bounds.X, b.Bounds.Y)
	}

	if !doc.Commands().Redo(doc) {
		t.Fatal("expected redo to succeed")
	}
	if b.Bounds.X != 80 || b.Bounds.Y != 40 {
		t.Fatalf("after redo got (%v, %v), want (80, 40)", b.Bounds.X, b.Bounds.Y)
	}
}

func TestDoClearsRedoStack(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)

	doc.Commands().Do(doc, &MoveItemCommand{ItemID: b.id, From: ScenePoint{}, To: ScenePoint{X: 8}})
	doc.Commands().Undo(doc)
	if !doc.Commands().CanRedo() {
		t.Fatal("expected a pending redo after undo")
	}

	doc.Commands().Do(doc, &MoveItemCommand{ItemID: b.id, From: ScenePoint{}, To: ScenePoint{X: 16}})
	if doc.Commands().CanRedo() {
		t.Error("expected redo stack to be cleared by a new Do")
	}
}

func TestCreateItemCommandUndoRedoReinsertsAtIndex(t *testing.T) {
	doc := NewDocument(8)
	doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b := NewBlock(NewObjectId(), SceneRect{X: 100, Width: 16, Height: 16}, 8)

	cmd := NewCreateItemCommand(b)
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected create to apply")
	}
	if len(doc.Items()) != 2 {
		t.Fatalf("len(Items()) = %d, want 2", len(doc.Items()))
	}

	doc.Commands().Undo(doc)
	if len(doc.Items()) != 1 {
		t.Fatalf("after undo len(Items()) = %d, want 1", len(doc.Items()))
	}

	doc.Commands().Redo(doc)
	if len(doc.Items()) != 2 {
		t.Fatalf("after redo len(Items()) = %d, want 2", len(doc.Items()))
	}
	if doc.Items()[1].ID() != b.id {
		t.Error("expected the recreated block to reoccupy its original index")
	}
}

func TestDeleteItemCommandRemovesLinkHubWires(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	hub := doc.CreateBlock(SceneRect{X: 100, Width: 16, Height: 16}, true)
	hub.IsLinkHub = true
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	ph := hub.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: hub.id, PortID: ph}))

	if len(doc.Items()) != 3 {
		t.Fatalf("setup: len(Items()) = %d, want 3", len(doc.Items()))
	}

	cmd := NewDeleteItemCommand(hub.id)
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected delete to apply")
	}
	if len(doc.Items()) != 1 {
		t.Fatalf("after delete len(Items()) = %d, want 1 (hub and its wire gone)", len(doc.Items()))
	}

	if !doc.Commands().Undo(doc) {
		t.Fatal("expected undo to succeed")
	}
	if len(doc.Items()) != 3 {
		t.Fatalf("after undo len(Items()) = %d, want 3", len(doc.Items()))
	}
}

func TestDeletePortCommandRemovesAttachedWires(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b := doc.CreateBlock(SceneRect{X: 100, Width: 16, Height: 16}, true)
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	pb := b.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: b.id, PortID: pb}))

	cmd := NewDeletePortCommand(a.id, pa)
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected delete to apply")
	}
	if len(doc.Items()) != 2 {
		t.Fatalf("after delete len(Items()) = %d, want 2 (wire removed)", len(doc.Items()))
	}
	if a.GetPort(pa) != nil {
		t.Error("expected port to be removed")
	}

	if !doc.Commands().Undo(doc) {
		t.Fatal("expected undo to succeed")
	}
	if len(doc.Items()) != 3 {
		t.Fatalf("after undo len(Items()) = %d, want 3", len(doc.Items()))
	}
	if a.GetPort(pa) == nil {
		t.Error("expected port to be restored")
	}
}

func TestDeletePortCommandAlsoRemovesPairedProducerAndRestoresOnUndo(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	a.AutoOppositeProducerPort = true
	consumerID := a.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	consumer := a.GetPort(consumerID)

	pairID, created := ensureOppositeProducerPort(doc, a, consumer)
	if !created {
		t.Fatal("setup: expected a freshly created paired producer port")
	}
	if a.GetPort(pairID) == nil {
		t.Fatal("setup: expected the paired producer port to exist on the block")
	}

	cmd := NewDeletePortCommand(a.id, consumerID)
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected delete to apply")
	}
	if a.GetPort(consumerID) != nil {
		t.Error("expected the consumer port to be removed")
	}
	if a.GetPort(pairID) != nil {
		t.Error("expected the paired producer port to be removed alongside its consumer")
	}

	if !doc.Commands().Undo(doc) {
		t.Fatal("expected undo to succeed")
	}
	if a.GetPort(consumerID) == nil {
		t.Error("expected the consumer port to be restored")
	}
	if a.GetPort(pairID) == nil {
		t.Error("expected the paired producer port to be restored")
	}
}

func TestCompositeCommandPartialFailureRevertsOnlyApplied(t *testing.T) {
	doc := NewDocument(8)
	b := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)

	good := &MoveItemCommand{ItemID: b.id, From: ScenePoint{}, To: ScenePoint{X: 8}}
	bad := &MoveItemCommand{ItemID: NewObjectId(), From: ScenePoint{}, To: ScenePoint{X: 8}}
	composite := NewCompositeCommand("test", good, bad)

	if composite.Apply(doc) {
		t.Fatal("expected composite apply to fail when a child fails")
	}
	if b.Bounds.X != 8 {
		t.Fatalf("expected first child's effect to remain until Revert, got X=%v", b.Bounds.X)
	}
	if !composite.Revert(doc) {
		t.Fatal("expected revert of partially applied composite to succeed")
	}
	if b.Bounds.X != 0 {
		t.Fatalf("expected first child's effect reverted, got X=%v", b.Bounds.X)
	}
}

func TestNewCompositeCommandRejectsEmpty(t *testing.T) {
	if NewCompositeCommand("empty") != nil {
		t.Fatal("expected nil composite for zero children")
	}
}

func TestRouteOverrideCommandUndoRedo(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{Width: 16, Height: 16}, true)
	b := doc.CreateBlock(SceneRect{X: 200, Width: 16, Height: 16}, true)
	pa := a.AddPort(SideRight, 0.5, RoleProducer, "out")
	pb := b.AddPort(SideLeft, 0.5, RoleConsumer, "in")
	w := doc.CreateWire(AttachedEndpoint(PortRef{ItemID: a.id, PortID: pa}), AttachedEndpoint(PortRef{ItemID: b.id, PortID: pb}))

	cmd := &RouteOverrideCommand{
		WireID: w.id,
		Before: nil,
		After:  []FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}},
		StartEnd: [2]FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}
	if !doc.Commands().Do(doc, cmd) {
		t.Fatal("expected route override to apply")
	}
	if !w.HasRouteOverride() {
		t.Fatal("expected wire to carry the override")
	}

	doc.Commands().Undo(doc)
	if w.HasRouteOverride() {
		t.Error("expected undo to clear the override")
	}

	doc.Commands().Redo(doc)
	if !w.HasRouteOverride() {
		t.Error("expected redo to restore the override")
	}
}
