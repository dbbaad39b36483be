package canvas

import "math"

// CanvasPort is a connection point on a Block's edge. The anchor position is
// always recomputed from Side/T and the owning block's current bounds —
// ports never cache a stale scene position. Grounded on node.go's transform
// fields (recomputed from X/Y/Scale/Rotation rather than cached), applied
// here to a single scalar (T along one edge) instead of a full affine.
type CanvasPort struct {
	ID   PortId
	Role PortRole
	Side Side
	T    float64
	Name string

	block *Block
}

// AnchorScene computes the port's current anchor point on the block's edge.
// T is clamped away from the corners by one PortSnapStep (or centered if the
// edge is shorter than two steps) and snapped to the nearest multiple of the
// step.
func (p *CanvasPort) AnchorScene() ScenePoint {
	b := p.block
	bounds := b.Bounds
	step := b.PortSnapStep

	var edgeLen float64
	switch p.Side {
	case SideLeft, SideRight:
		edgeLen = bounds.Height
	default:
		edgeLen = bounds.Width
	}

	t := clamp01(p.T)
	if step > 0 && edgeLen > 0 {
		minT := step / edgeLen
		maxT := 1 - step/edgeLen
		if minT > maxT {
			t = 0.5
		} else {
			if t < minT {
				t = minT
			} else if t > maxT {
				t = maxT
			}
			units := math.Round(edgeLen * t / step)
			t = units * step / edgeLen
			if t < minT {
				t = minT
			} else if t > maxT {
				t = maxT
			}
		}
	}

	switch p.Side {
	case SideLeft:
		return ScenePoint{bounds.X, bounds.Y + t*bounds.Height}
	case SideRight:
		return ScenePoint{bounds.X + bounds.Width, bounds.Y + t*bounds.Height}
	case SideTop:
		return ScenePoint{bounds.X + t*bounds.Width, bounds.Y}
	default: // SideBottom
		return ScenePoint{bounds.X + t*bounds.Width, bounds.Y + bounds.Height}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BlockStyle holds optional custom colors; a zero value means "use the host
// theme default". Grounded on original_source's CanvasStyle.
type BlockStyle struct {
	Outline string
	Fill    string
	Label   string
}

// Block is a rectangular canvas item that may host ports and a drawable
// BlockContent payload.
type Block struct {
	id ObjectId

	Bounds       SceneRect
	Movable      bool
	Deletable    bool
	Label        string
	SpecId       string
	CornerRadius float64

	ports []*CanvasPort

	ShowPorts                bool
	ShowPortLabels           bool
	AllowMultiplePorts       bool
	AutoPortLayout           bool
	AutoPortRole             *PortRole
	AutoOppositeProducerPort bool
	PortSnapStep             float64

	IsLinkHub bool
	HubKind   HubKind

	Style         BlockStyle
	KeepoutMargin float64 // <0 means "use default = fabric step"

	Content        BlockContent
	ContentPadding EdgeInsets

	fabricStep float64
}

// NewBlock constructs a Block with the given id, bounds, and owning
// document's fabric step (used only for the keepout-margin default and the
// port-snap default). Document.CreateBlock is the usual entry point; this
// constructor also backs deserialization.
func NewBlock(id ObjectId, bounds SceneRect, fabricStep float64) *Block {
	return &Block{
		id:            id,
		Bounds:        bounds,
		Movable:       true,
		Deletable:     true,
		CornerRadius:  DefaultBlockCornerRadius,
		ShowPorts:     true,
		PortSnapStep:  fabricStep,
		KeepoutMargin: -1,
		fabricStep:    fabricStep,
	}
}

func (b *Block) ID() ObjectId       { return b.id }
func (b *Block) BoundsScene() SceneRect { return b.Bounds }

func (b *Block) HitTest(p ScenePoint) bool { return b.Bounds.Contains(p) }

func (b *Block) BlocksFabric() bool { return true }

// KeepoutSceneRect returns Bounds expanded by max(KeepoutMargin, fabricStep),
// folding the "<0 means default to step" rule into a plain max() since the
// negative case always loses to a positive step anyway.
func (b *Block) KeepoutSceneRect() SceneRect {
	margin := b.KeepoutMargin
	if margin < b.fabricStep {
		margin = b.fabricStep
	}
	return b.Bounds.Expanded(margin)
}

func (b *Block) HasPorts() bool { return true }

func (b *Block) Ports() []*CanvasPort { return b.ports }

func (b *Block) PortAnchorScene(portID PortId) (ScenePoint, bool) {
	for _, p := range b.ports {
		if p.ID == portID {
			return p.AnchorScene(), true
		}
	}
	return ScenePoint{}, false
}

// GetPort returns the port with the given id, or nil.
func (b *Block) GetPort(portID PortId) *CanvasPort {
	for _, p := range b.ports {
		if p.ID == portID {
			return p
		}
	}
	return nil
}

// PortIndex returns the index of the port with the given id, or -1.
func (b *Block) PortIndex(portID PortId) int {
	for i, p := range b.ports {
		if p.ID == portID {
			return i
		}
	}
	return -1
}

// AddPort appends a new port at the end of the port list; t is stored as-is
// (clamping happens lazily at anchor time).
func (b *Block) AddPort(side Side, t float64, role PortRole, name string) PortId {
	p := &CanvasPort{ID: NewPortId(), Role: role, Side: side, T: t, Name: name, block: b}
	b.ports = append(b.ports, p)
	return p.ID
}

// AddPortToward mints a port on whichever edge faces target, computing
// Side/T from the direction between the block's center and target:
// |dx| >= |dy| picks a horizontal edge (Left/Right), otherwise a
// vertical edge (Top/Bottom); T is (component+1)/2 where component is the
// normalized offset along the chosen edge, in [-1, 1].
func (b *Block) AddPortToward(target ScenePoint, role PortRole, name string) PortId {
	center := b.Bounds.Center()
	dx := target.X - center.X
	dy := target.Y - center.Y

	var side Side
	var t float64
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			side = SideRight
		} else {
			side = SideLeft
		}
		component := 0.0
		if b.Bounds.Height > 0 {
			component = clampSigned(dy / (b.Bounds.Height / 2))
		}
		t = (component + 1) / 2
	} else {
		if dy >= 0 {
			side = SideBottom
		} else {
			side = SideTop
		}
		component := 0.0
		if b.Bounds.Width > 0 {
			component = clampSigned(dx / (b.Bounds.Width / 2))
		}
		t = (component + 1) / 2
	}
	return b.AddPort(side, t, role, name)
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// UpdatePort sets side/t on an existing port, returning false if not found.
func (b *Block) UpdatePort(id PortId, side Side, t float64) bool {
	p := b.GetPort(id)
	if p == nil {
		return false
	}
	p.Side = side
	p.T = t
	return true
}

// UpdatePortName renames an existing port, returning false if not found.
func (b *Block) UpdatePortName(id PortId, name string) bool {
	p := b.GetPort(id)
	if p == nil {
		return false
	}
	p.Name = name
	return true
}

// RemovePort removes the port with the given id, returning its index and
// value for undo, or false if not found.
func (b *Block) RemovePort(id PortId) (int, *CanvasPort, bool) {
	idx := b.PortIndex(id)
	if idx < 0 {
		return 0, nil, false
	}
	p := b.ports[idx]
	b.ports = append(b.ports[:idx], b.ports[idx+1:]...)
	return idx, p, true
}

// InsertPort reinserts a previously removed port at index (undo of
// RemovePort). index is clamped into range.
func (b *Block) InsertPort(index int, p *CanvasPort) {
	p.block = b
	if index < 0 {
		index = 0
	}
	if index > len(b.ports) {
		index = len(b.ports)
	}
	b.ports = append(b.ports, nil)
	copy(b.ports[index+1:], b.ports[index:])
	b.ports[index] = p
}

// Clone returns a deep, detached copy of the block and its ports, suitable
// for command undo snapshots.
func (b *Block) Clone() CanvasItem {
	cp := *b
	cp.ports = make([]*CanvasPort, len(b.ports))
	for i, p := range b.ports {
		pc := *p
		pc.block = &cp
		cp.ports[i] = &pc
	}
	if b.Content != nil {
		cp.Content = b.Content.Clone()
	}
	return &cp
}
