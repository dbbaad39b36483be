package canvas

import (
	"container/heap"
)

// RouteContext is the read-only view a Router needs: whether a lattice
// coordinate is blocked, and the fabric step. RenderContext implements this
// so the router never touches the Document directly.
type RouteContext interface {
	FabricBlocked(c FabricCoord) bool
	FabricStep() float64
}

// direction indices for A* state and turn-penalty comparison.
const (
	dirNone = iota
	dirEast
	dirWest
	dirNorth
	dirSouth
)

var dirDeltas = [5][2]int32{
	dirNone:  {0, 0},
	dirEast:  {1, 0},
	dirWest:  {-1, 0},
	dirNorth: {0, -1},
	dirSouth: {0, 1},
}

func directionOf(from, to FabricCoord) int {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 1 && dy == 0:
		return dirEast
	case dx == -1 && dy == 0:
		return dirWest
	case dx == 0 && dy == -1:
		return dirNorth
	case dx == 0 && dy == 1:
		return dirSouth
	default:
		return dirNone
	}
}

// Router computes orthogonal lattice paths between two fabric coordinates.
// It is stateless: constructed fresh per call with the context and visible
// scene rect that bound the search, grounded on animation.go's pattern of
// building one-shot helper objects instead of keeping a persistent solver.
type Router struct {
	ctx     RouteContext
	visible SceneRect
}

// NewRouter constructs a Router bound to ctx and the currently visible
// scene rectangle (used to pad the A* search bounds).
func NewRouter(ctx RouteContext, visible SceneRect) *Router {
	return &Router{ctx: ctx, visible: visible}
}

// Route computes a lattice path from start (escaping outward along
// startDir) to end (escaping outward along endDir), trying a direct
// shortcut before falling back to full search. dir values are
// Side.Direction() pairs.
func (r *Router) Route(start FabricCoord, startDx, startDy int32, end FabricCoord, endDx, endDy int32) []FabricCoord {
	a := r.escape(start, startDx, startDy)
	b := r.escape(end, endDx, endDy)
	return r.routeBetween(a, b)
}

// RouteWithOverride routes a manual multi-waypoint path: waypoints has its
// first and last entries rewritten to the post-escape start/end, then each
// consecutive pair is routed independently and concatenated, dropping the
// duplicate joint coordinate.
func (r *Router) RouteWithOverride(waypoints []FabricCoord, start FabricCoord, startDx, startDy int32, end FabricCoord, endDx, endDy int32) []FabricCoord {
	if len(waypoints) < 2 {
		return r.Route(start, startDx, startDy, end, endDx, endDy)
	}
	a := r.escape(start, startDx, startDy)
	b := r.escape(end, endDx, endDy)

	pts := append([]FabricCoord(nil), waypoints...)
	pts[0] = a
	pts[len(pts)-1] = b

	var out []FabricCoord
	for i := 0; i+1 < len(pts); i++ {
		seg := r.routeBetween(pts[i], pts[i+1])
		if i > 0 && len(seg) > 0 {
			seg = seg[1:]
		}
		out = append(out, seg...)
	}
	return out
}

// escape steps outward from coord in direction (dx,dy) until an unblocked
// coordinate is found, up to RouterEscapeMaxSteps; if none is found the
// original coord is returned unchanged.
func (r *Router) escape(coord FabricCoord, dx, dy int32) FabricCoord {
	if !r.ctx.FabricBlocked(coord) {
		return coord
	}
	c := coord
	for i := 0; i < RouterEscapeMaxSteps; i++ {
		c = c.Add(dx, dy)
		if !r.ctx.FabricBlocked(c) {
			return c
		}
	}
	return coord
}

// routeBetween is the core single-pair path finder: simple path shortcuts,
// then A*, then the Manhattan fallback, followed by smoothing.
func (r *Router) routeBetween(a, b FabricCoord) []FabricCoord {
	if path := r.simplePath(a, b); path != nil {
		return r.smooth(path)
	}
	if path := r.astar(a, b); path != nil {
		return r.smooth(path)
	}
	return r.smooth(r.manhattanFallback(a, b))
}

// simplePath tries the direct Manhattan path and both L-shapes, preferring
// the longer axis first. Interior coords must be unblocked; endpoints may
// be blocked.
func (r *Router) simplePath(a, b FabricCoord) []FabricCoord {
	if a.X == b.X || a.Y == b.Y {
		path := straightLine(a, b)
		if r.interiorClear(path) {
			return path
		}
		return nil
	}

	longerAxisX := absInt32(b.X-a.X) >= absInt32(b.Y-a.Y)

	tryHV := func() []FabricCoord {
		corner := FabricCoord{X: b.X, Y: a.Y}
		return joinPaths(straightLine(a, corner), straightLine(corner, b))
	}
	tryVH := func() []FabricCoord {
		corner := FabricCoord{X: a.X, Y: b.Y}
		return joinPaths(straightLine(a, corner), straightLine(corner, b))
	}

	var first, second []FabricCoord
	if longerAxisX {
		first, second = tryHV(), tryVH()
	} else {
		first, second = tryVH(), tryHV()
	}
	if r.interiorClear(first) {
		return first
	}
	if r.interiorClear(second) {
		return second
	}
	return nil
}

func (r *Router) interiorClear(path []FabricCoord) bool {
	if len(path) == 0 {
		return false
	}
	for i := 1; i < len(path)-1; i++ {
		if r.ctx.FabricBlocked(path[i]) {
			return false
		}
	}
	return true
}

func straightLine(a, b FabricCoord) []FabricCoord {
	if a.X != b.X && a.Y != b.Y {
		return nil
	}
	var out []FabricCoord
	if a.X == b.X {
		step := int32(1)
		if b.Y < a.Y {
			step = -1
		}
		for y := a.Y; ; y += step {
			out = append(out, FabricCoord{X: a.X, Y: y})
			if y == b.Y {
				break
			}
		}
	} else {
		step := int32(1)
		if b.X < a.X {
			step = -1
		}
		for x := a.X; ; x += step {
			out = append(out, FabricCoord{X: x, Y: a.Y})
			if x == b.X {
				break
			}
		}
	}
	return out
}

func joinPaths(a, b []FabricCoord) []FabricCoord {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := append([]FabricCoord(nil), a...)
	out = append(out, b[1:]...)
	return out
}

// astarState is one expanded node in the priority queue.
type astarState struct {
	coord FabricCoord
	dir   int
	g     int
	f     int
}

type astarHeap []astarState

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.dir != b.dir {
		return a.dir < b.dir
	}
	if a.coord.Y != b.coord.Y {
		return a.coord.Y < b.coord.Y
	}
	return a.coord.X < b.coord.X
}
func (h astarHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *astarHeap) Push(x any)        { *h = append(*h, x.(astarState)) }
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type astarKey struct {
	coord FabricCoord
	dir   int
}

// astar is a full-grid search bounded by RouterMaxVisited states and the
// union of the endpoints' bbox and the visible scene rect padded by 16
// lattice steps.
func (r *Router) astar(start, goal FabricCoord) []FabricCoord {
	step := r.ctx.FabricStep()
	if step <= 0 {
		step = DefaultFabricStep
	}
	fab := NewFabric(step)

	minX, maxX := start.X, goal.X
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	minY, maxY := start.Y, goal.Y
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	vis := fab.ToFabric(ScenePoint{r.visible.X, r.visible.Y})
	visEnd := fab.ToFabric(ScenePoint{r.visible.X + r.visible.Width, r.visible.Y + r.visible.Height})
	if vis.X < minX {
		minX = vis.X
	}
	if visEnd.X > maxX {
		maxX = visEnd.X
	}
	if vis.Y < minY {
		minY = vis.Y
	}
	if visEnd.Y > maxY {
		maxY = visEnd.Y
	}
	const pad = 16
	minX -= pad
	maxX += pad
	minY -= pad
	maxY += pad

	inBounds := func(c FabricCoord) bool {
		return c.X >= minX && c.X <= maxX && c.Y >= minY && c.Y <= maxY
	}

	open := &astarHeap{}
	heap.Init(open)
	heap.Push(open, astarState{coord: start, dir: dirNone, g: 0, f: start.ManhattanDist(goal)})

	gScore := map[astarKey]int{{start, dirNone}: 0}
	parent := map[astarKey]astarKey{}
	visited := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(astarState)
		key := astarKey{cur.coord, cur.dir}
		if cur.g > gScore[key] {
			continue
		}
		visited++
		if visited > RouterMaxVisited {
			return nil
		}
		if cur.coord == goal {
			return reconstructPath(parent, key)
		}

		for d := dirEast; d <= dirSouth; d++ {
			delta := dirDeltas[d]
			next := FabricCoord{X: cur.coord.X + delta[0], Y: cur.coord.Y + delta[1]}
			if !inBounds(next) {
				continue
			}
			if next != goal && r.ctx.FabricBlocked(next) {
				continue
			}
			cost := 1
			if cur.dir != dirNone && cur.dir != d {
				cost += RouterTurnPenalty
			}
			ng := cur.g + cost
			nk := astarKey{next, d}
			if prev, ok := gScore[nk]; ok && prev <= ng {
				continue
			}
			gScore[nk] = ng
			parent[nk] = key
			heap.Push(open, astarState{coord: next, dir: d, g: ng, f: ng + next.ManhattanDist(goal)})
		}
	}
	return nil
}

func reconstructPath(parent map[astarKey]astarKey, key astarKey) []FabricCoord {
	var rev []FabricCoord
	for {
		rev = append(rev, key.coord)
		prev, ok := parent[key]
		if !ok {
			break
		}
		key = prev
	}
	out := make([]FabricCoord, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}

// manhattanFallback moves all-X then all-Y, ignoring blockage, as a
// deterministic last resort when A* exhausts its visited-state budget.
func (r *Router) manhattanFallback(a, b FabricCoord) []FabricCoord {
	corner := FabricCoord{X: b.X, Y: a.Y}
	return joinPaths(straightLine(a, corner), straightLine(corner, b))
}

// smooth greedily extends each point as far as possible along an axis-
// aligned clear run, replacing intermediate points. The segment to the
// final candidate point may end on a blocked coord (the destination itself
// is allowed to be blocked).
func (r *Router) smooth(path []FabricCoord) []FabricCoord {
	if len(path) < 3 {
		return path
	}
	out := []FabricCoord{path[0]}
	i := 0
	for i < len(path)-1 {
		best := i + 1
		for j := i + 2; j < len(path); j++ {
			if !axisAligned(path[i], path[j]) {
				break
			}
			if j < len(path)-1 && !r.segmentClear(path[i], path[j]) {
				break
			}
			best = j
		}
		out = append(out, path[best])
		i = best
	}
	return out
}

func axisAligned(a, b FabricCoord) bool { return a.X == b.X || a.Y == b.Y }

func (r *Router) segmentClear(a, b FabricCoord) bool {
	pts := straightLine(a, b)
	if pts == nil {
		return false
	}
	for i := 1; i < len(pts)-1; i++ {
		if r.ctx.FabricBlocked(pts[i]) {
			return false
		}
	}
	return true
}

// RouteScenePath converts a lattice path to scene points, collapses
// consecutive collinear triples, and pins the first/last points to the
// unsnapped original scene positions.
func RouteScenePath(fab Fabric, path []FabricCoord, startScene, endScene ScenePoint) []ScenePoint {
	if len(path) == 0 {
		return nil
	}
	pts := make([]ScenePoint, len(path))
	for i, c := range path {
		pts[i] = fab.ToScene(c)
	}
	pts[0] = startScene
	pts[len(pts)-1] = endScene

	if len(pts) < 3 {
		return pts
	}
	out := []ScenePoint{pts[0]}
	for i := 1; i < len(pts)-1; i++ {
		if collinear(out[len(out)-1], pts[i], pts[i+1]) {
			continue
		}
		out = append(out, pts[i])
	}
	out = append(out, pts[len(pts)-1])
	return out
}

func collinear(a, b, c ScenePoint) bool {
	const eps = 1e-6
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross > eps || cross < -eps {
		return false
	}
	return true
}
