package canvas

import "testing"

func TestGeometryIsFabricPointBlockedByBlockKeepout(t *testing.T) {
	doc := NewDocument(8)
	doc.CreateBlock(SceneRect{X: 0, Y: 0, Width: 16, Height: 16}, true)

	if !geometryIsFabricPointBlocked(doc, FabricCoord{X: 1, Y: 1}) {
		t.Error("expected a point inside the block's keepout to be blocked")
	}
	if geometryIsFabricPointBlocked(doc, FabricCoord{X: 100, Y: 100}) {
		t.Error("expected a point far from any block to be unblocked")
	}
}

func TestGeometryComputePortTerminalWalksOffBlockedBorder(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{X: 0, Y: 0, Width: 16, Height: 16}, true)
	pid := a.AddPort(SideRight, 0.5, RoleProducer, "")

	term, ok := geometryComputePortTerminal(doc, a.id, pid)
	if !ok {
		t.Fatal("expected a resolvable terminal for an existing port")
	}
	if doc.IsFabricPointBlocked(term.Fabric) {
		t.Errorf("Fabric terminal %v should have walked clear of the block's own keepout", term.Fabric)
	}
	keepout := a.KeepoutSceneRect()
	if term.Border.X != keepout.X+keepout.Width {
		t.Errorf("Border.X = %v, want the keepout's right edge %v", term.Border.X, keepout.X+keepout.Width)
	}
}

func TestGeometryComputePortTerminalMissingPortFails(t *testing.T) {
	doc := NewDocument(8)
	a := doc.CreateBlock(SceneRect{X: 0, Y: 0, Width: 16, Height: 16}, true)

	if _, ok := geometryComputePortTerminal(doc, a.id, NewPortId()); ok {
		t.Error("expected failure for a port id that doesn't exist on the block")
	}
}

func TestClampToRectClampsOutOfBoundsPoint(t *testing.T) {
	rect := SceneRect{X: 0, Y: 0, Width: 10, Height: 10}
	got := clampToRect(ScenePoint{X: 20, Y: -5}, rect)
	want := ScenePoint{X: 10, Y: 0}
	if got != want {
		t.Errorf("clampToRect() = %v, want %v", got, want)
	}
}

func TestProjectToRectBorderMovesOutwardInDirection(t *testing.T) {
	rect := SceneRect{X: 0, Y: 0, Width: 10, Height: 10}
	got := projectToRectBorder(ScenePoint{X: 5, Y: 5}, rect, 1, 0)
	want := ScenePoint{X: 10, Y: 5}
	if got != want {
		t.Errorf("projectToRectBorder() = %v, want %v", got, want)
	}
}
