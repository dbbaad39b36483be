package canvas

import "testing"

// fakeRouteContext is a minimal RouteContext test double backed by an
// explicit set of blocked coordinates.
type fakeRouteContext struct {
	blocked map[FabricCoord]bool
	step    float64
}

func newFakeRouteContext(blocked ...FabricCoord) *fakeRouteContext {
	m := map[FabricCoord]bool{}
	for _, c := range blocked {
		m[c] = true
	}
	return &fakeRouteContext{blocked: m, step: DefaultFabricStep}
}

func (f *fakeRouteContext) FabricBlocked(c FabricCoord) bool { return f.blocked[c] }
func (f *fakeRouteContext) FabricStep() float64              { return f.step }

func pathEndsMatch(path []FabricCoord, a, b FabricCoord) bool {
	if len(path) == 0 {
		return false
	}
	return path[0] == a && path[len(path)-1] == b
}

func pathIsOrthogonal(path []FabricCoord) bool {
	for i := 1; i < len(path); i++ {
		dx := absInt32(path[i].X - path[i-1].X)
		dy := absInt32(path[i].Y - path[i-1].Y)
		if dx != 0 && dy != 0 {
			return false
		}
		if dx+dy == 0 {
			return false
		}
	}
	return true
}

func TestRouteStraightLineWhenClear(t *testing.T) {
	ctx := newFakeRouteContext()
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	path := r.Route(FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 5, Y: 0}, -1, 0)

	if !pathEndsMatch(path, FabricCoord{X: 0, Y: 0}, FabricCoord{X: 5, Y: 0}) {
		t.Fatalf("path = %v, want endpoints (0,0)-(5,0)", path)
	}
	if !pathIsOrthogonal(path) {
		t.Errorf("path %v is not orthogonal", path)
	}
}

func TestRouteIsDeterministic(t *testing.T) {
	ctx := newFakeRouteContext(FabricCoord{X: 2, Y: 0}, FabricCoord{X: 2, Y: 1})
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	first := r.Route(FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 4, Y: 0}, -1, 0)
	second := r.Route(FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 4, Y: 0}, -1, 0)

	if len(first) != len(second) {
		t.Fatalf("nondeterministic lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("nondeterministic path: %v vs %v", first, second)
		}
	}
}

func TestRouteAvoidsBlockedCoords(t *testing.T) {
	blocked := []FabricCoord{}
	for y := -2; y <= 2; y++ {
		blocked = append(blocked, FabricCoord{X: 2, Y: int32(y)})
	}
	ctx := newFakeRouteContext(blocked...)
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	path := r.Route(FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 4, Y: 0}, -1, 0)
	if !pathEndsMatch(path, FabricCoord{X: 0, Y: 0}, FabricCoord{X: 4, Y: 0}) {
		t.Fatalf("path = %v, want endpoints (0,0)-(4,0)", path)
	}
	for _, c := range path {
		if ctx.FabricBlocked(c) {
			t.Errorf("path %v passes through blocked coord %v", path, c)
		}
	}
}

func TestEscapeStepsOutwardWhenStartBlocked(t *testing.T) {
	ctx := newFakeRouteContext(FabricCoord{X: 0, Y: 0}, FabricCoord{X: 1, Y: 0})
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	got := r.escape(FabricCoord{X: 0, Y: 0}, 1, 0)
	want := FabricCoord{X: 2, Y: 0}
	if got != want {
		t.Errorf("escape = %v, want %v", got, want)
	}
}

func TestEscapeGivesUpAfterMaxStepsAndReturnsOriginal(t *testing.T) {
	blocked := []FabricCoord{}
	for x := int32(0); x <= RouterEscapeMaxSteps+2; x++ {
		blocked = append(blocked, FabricCoord{X: x, Y: 0})
	}
	ctx := newFakeRouteContext(blocked...)
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	got := r.escape(FabricCoord{X: 0, Y: 0}, 1, 0)
	if got != (FabricCoord{X: 0, Y: 0}) {
		t.Errorf("escape = %v, want original coord returned unchanged when no exit found", got)
	}
}

func TestSimplePathPrefersLongerAxisFirst(t *testing.T) {
	ctx := newFakeRouteContext()
	r := NewRouter(ctx, SceneRect{})

	path := r.simplePath(FabricCoord{X: 0, Y: 0}, FabricCoord{X: 10, Y: 1})
	if path == nil {
		t.Fatal("expected a simple path between unblocked points")
	}
	if !pathEndsMatch(path, FabricCoord{X: 0, Y: 0}, FabricCoord{X: 10, Y: 1}) {
		t.Errorf("path endpoints = %v", path)
	}
	if len(path) < 2 || path[1].Y != 0 || path[1].X <= 0 {
		t.Errorf("path = %v, want the first move along X (the longer axis)", path)
	}
}

func TestSimplePathReturnsNilWhenBothLShapesBlocked(t *testing.T) {
	ctx := newFakeRouteContext(FabricCoord{X: 3, Y: 0}, FabricCoord{X: 0, Y: 3})
	r := NewRouter(ctx, SceneRect{})

	path := r.simplePath(FabricCoord{X: 0, Y: 0}, FabricCoord{X: 3, Y: 3})
	if path != nil {
		t.Errorf("expected nil when both corner shapes are blocked, got %v", path)
	}
}

func TestAstarFallsBackToManhattanWhenNoPathExists(t *testing.T) {
	blocked := []FabricCoord{}
	// The wall spans the whole padded search region (y -16..21), so A* finds no path.
	for y := int32(-30); y <= 30; y++ {
		blocked = append(blocked, FabricCoord{X: 2, Y: y})
	}
	ctx := newFakeRouteContext(blocked...)
	r := NewRouter(ctx, SceneRect{Width: 40, Height: 40})

	path := r.routeBetween(FabricCoord{X: 0, Y: 0}, FabricCoord{X: 4, Y: 0})
	if !pathEndsMatch(path, FabricCoord{X: 0, Y: 0}, FabricCoord{X: 4, Y: 0}) {
		t.Fatalf("expected a fallback path with correct endpoints, got %v", path)
	}
}

func TestRouteWithOverrideRoutesThroughWaypoints(t *testing.T) {
	ctx := newFakeRouteContext()
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	waypoints := []FabricCoord{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 6, Y: 3}}
	path := r.RouteWithOverride(waypoints, FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 6, Y: 3}, 1, 0)

	if !pathEndsMatch(path, FabricCoord{X: 0, Y: 0}, FabricCoord{X: 6, Y: 3}) {
		t.Fatalf("path endpoints = %v, want (0,0)-(6,3)", path)
	}
	found := false
	for _, c := range path {
		if c == (FabricCoord{X: 3, Y: 3}) {
			found = true
		}
	}
	if !found {
		t.Errorf("path %v does not pass through waypoint (3,3)", path)
	}
}

func TestRouteWithOverrideFewerThanTwoWaypointsFallsBackToRoute(t *testing.T) {
	ctx := newFakeRouteContext()
	r := NewRouter(ctx, SceneRect{Width: 800, Height: 600})

	direct := r.Route(FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 5, Y: 0}, -1, 0)
	withOverride := r.RouteWithOverride([]FabricCoord{{X: 0, Y: 0}}, FabricCoord{X: 0, Y: 0}, 1, 0, FabricCoord{X: 5, Y: 0}, -1, 0)

	if len(direct) != len(withOverride) {
		t.Fatalf("RouteWithOverride with < 2 waypoints should match Route, got %v vs %v", withOverride, direct)
	}
}

func TestSmoothCollapsesCollinearRuns(t *testing.T) {
	ctx := newFakeRouteContext()
	r := NewRouter(ctx, SceneRect{})

	path := []FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}}
	got := r.smooth(path)

	want := []FabricCoord{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("smooth(%v) = %v, want %v", path, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("smooth(%v) = %v, want %v", path, got, want)
		}
	}
}

func TestRouteScenePathPinsEndpointsAndCollapsesCollinear(t *testing.T) {
	fab := NewFabric(8)
	path := []FabricCoord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	start := ScenePoint{X: -2, Y: 0}
	end := ScenePoint{X: 18, Y: 0}

	out := RouteScenePath(fab, path, start, end)

	if out[0] != start {
		t.Errorf("out[0] = %v, want pinned start %v", out[0], start)
	}
	if out[len(out)-1] != end {
		t.Errorf("out[last] = %v, want pinned end %v", out[len(out)-1], end)
	}
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2 (collinear middle point collapsed)", len(out))
	}
}

func TestRouteScenePathEmptyPathReturnsNil(t *testing.T) {
	fab := NewFabric(8)
	out := RouteScenePath(fab, nil, ScenePoint{}, ScenePoint{})
	if out != nil {
		t.Errorf("RouteScenePath(nil) = %v, want nil", out)
	}
}
