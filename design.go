package canvas

// NodeKind classifies a DesignNode.
type NodeKind int

const (
	NodeTile NodeKind = iota
	NodeLinkHub
)

// DesignNode is one node in a DesignState: either a Tile (a pre-existing
// block identified by its SpecId, not itself emitted) or a LinkHub (a
// canvas link-hub block materialized as a first-class node).
type DesignNode struct {
	ID      string
	Kind    NodeKind
	HubKind HubKind
	Bounds  SceneRect
}

// DesignPortKey identifies one side of a DesignLink: either a stable pair
// id (for auto-paired ports) or an explicit name.
type DesignPortKey struct {
	Side PortSide
	Role PortRole
	T    float64
	PairID string
	Name   string
}

// PortSide is a renamed alias kept distinct from canvas.Side so design-layer
// port keys read naturally in isolation; it shares Side's encoding.
type PortSide = Side

// DesignEndpoint references a DesignNode and the port key on it.
type DesignEndpoint struct {
	NodeID string
	Port   DesignPortKey
}

// DesignLink is one wire projected to the design layer.
type DesignLink struct {
	ID            string
	From          DesignEndpoint
	To            DesignEndpoint
	RouteOverride []FabricCoord
}

// DesignState is the higher-level link/node view a host projects a canvas
// to and from.
type DesignState struct {
	Metadata map[string]any
	Zoom     float64
	PanX     float64
	PanY     float64
	Nodes    []DesignNode
	Links    []DesignLink
}

// ProjectToDesignState implements the Canvas → DesignState direction of
// the bidirectional projection. Grounded on jsonschema.go's two-pass
// block-then-wire traversal, generalized from a wire format to a link/node
// abstraction.
func ProjectToDesignState(doc *Document, view *ViewState) *DesignState {
	ds := &DesignState{Zoom: 1}
	if view != nil {
		ds.Zoom, ds.PanX, ds.PanY = view.Zoom, view.PanX, view.PanY
	}

	nodeIDByBlock := map[ObjectId]string{}

	for _, item := range doc.Items() {
		block, ok := item.(*Block)
		if !ok {
			continue
		}
		if block.IsLinkHub {
			id := block.SpecId
			if id == "" {
				id = NewObjectId().String()
				block.SpecId = id
			}
			ds.Nodes = append(ds.Nodes, DesignNode{ID: id, Kind: NodeLinkHub, HubKind: block.HubKind, Bounds: block.Bounds})
			nodeIDByBlock[block.id] = id
		} else if block.SpecId != "" {
			nodeIDByBlock[block.id] = block.SpecId
			ds.Nodes = append(ds.Nodes, DesignNode{ID: block.SpecId, Kind: NodeTile, Bounds: block.Bounds})
		}
	}

	for _, item := range doc.Items() {
		w, ok := item.(*Wire)
		if !ok || !w.A.IsAttached() || !w.B.IsAttached() {
			continue
		}
		from, fromOK := designEndpointFor(doc, nodeIDByBlock, *w.A.Attached)
		to, toOK := designEndpointFor(doc, nodeIDByBlock, *w.B.Attached)
		if !fromOK || !toOK {
			continue
		}
		ds.Links = append(ds.Links, DesignLink{
			ID:            w.id.String(),
			From:          from,
			To:            to,
			RouteOverride: append([]FabricCoord(nil), w.RouteOverride...),
		})
	}

	return ds
}

func designEndpointFor(doc *Document, nodeIDByBlock map[ObjectId]string, ref PortRef) (DesignEndpoint, bool) {
	block, ok := doc.FindItem(ref.ItemID).(*Block)
	if !ok {
		return DesignEndpoint{}, false
	}
	port := block.GetPort(ref.PortID)
	if port == nil {
		return DesignEndpoint{}, false
	}
	nodeID, ok := nodeIDByBlock[block.id]
	if !ok {
		return DesignEndpoint{}, false
	}
	key := DesignPortKey{Side: port.Side, Role: port.Role, T: port.T}
	if pairKey, paired := pairedPortKey(port.Name); paired {
		key.PairID = pairKey
	} else {
		key.Name = port.Name
	}
	return DesignEndpoint{NodeID: nodeID, Port: key}, true
}

// TileAdopter resolves a pre-existing block by SpecId, used by
// MaterializeDesignState so Tile nodes are adopted rather than recreated.
type TileAdopter interface {
	FindBySpecId(specId string) (*Block, bool)
}

type docTileAdopter struct{ doc *Document }

func (a docTileAdopter) FindBySpecId(specId string) (*Block, bool) {
	for _, item := range a.doc.Items() {
		if b, ok := item.(*Block); ok && b.SpecId == specId {
			return b, true
		}
	}
	return nil, false
}

// MaterializeDesignState implements the DesignState → Canvas direction of
// the bidirectional projection: Tile nodes are adopted from pre-existing
// blocks, LinkHub nodes are created fresh, and every link is wired up
// (reusing an existing port by key or minting one); links whose node ids do
// not resolve are skipped. Finally, on each block with
// AutoOppositeProducerPort, every Consumer port gets its paired producer via
// ensureOppositeProducerPort.
func MaterializeDesignState(doc *Document, view *ViewState, ds *DesignState) {
	if view != nil {
		view.Zoom, view.PanX, view.PanY = ds.Zoom, ds.PanX, ds.PanY
	}
	adopter := docTileAdopter{doc: doc}

	blockByNodeID := map[string]*Block{}
	for _, n := range ds.Nodes {
		switch n.Kind {
		case NodeTile:
			if b, ok := adopter.FindBySpecId(n.ID); ok {
				blockByNodeID[n.ID] = b
			}
		case NodeLinkHub:
			size := doc.fabric.Step * LinkHubSizeFactor
			bounds := n.Bounds
			if bounds.Width == 0 && bounds.Height == 0 {
				bounds = SceneRect{Width: size, Height: size}
			}
			hub := doc.CreateBlock(bounds, true)
			hub.IsLinkHub = true
			hub.HubKind = n.HubKind
			hub.SpecId = n.ID
			hub.Label = n.HubKind.Symbol()
			blockByNodeID[n.ID] = hub
		}
	}

	portByKey := map[string]PortId{}
	keyFor := func(nodeID string, key DesignPortKey) string {
		role := key.Role.String()
		if key.PairID != "" {
			return nodeID + "|" + role + "|pair:" + key.PairID
		}
		return nodeID + "|" + role + "|name:" + key.Name
	}

	resolvePort := func(nodeID string, key DesignPortKey) (PortId, bool) {
		block, ok := blockByNodeID[nodeID]
		if !ok {
			return NilPortId, false
		}
		if id, ok := portByKey[keyFor(nodeID, key)]; ok {
			return id, true
		}
		name := key.Name
		if key.PairID != "" {
			name = PairedProducerPrefix + key.PairID
		}
		id := block.AddPort(key.Side, key.T, key.Role, name)
		portByKey[keyFor(nodeID, key)] = id
		return id, true
	}

	for _, link := range ds.Links {
		fromPort, ok1 := resolvePort(link.From.NodeID, link.From.Port)
		toPort, ok2 := resolvePort(link.To.NodeID, link.To.Port)
		if !ok1 || !ok2 {
			continue
		}
		fromBlock := blockByNodeID[link.From.NodeID]
		toBlock := blockByNodeID[link.To.NodeID]
		w := doc.CreateWire(
			AttachedEndpoint(PortRef{ItemID: fromBlock.id, PortID: fromPort}),
			AttachedEndpoint(PortRef{ItemID: toBlock.id, PortID: toPort}),
		)
		w.RouteOverride = append([]FabricCoord(nil), link.RouteOverride...)

		style := DefaultStyle
		if fromBlock.IsLinkHub {
			if color, ok := style.WireColorFor(link.From.Port.Role, true); ok {
				w.ColorOverride = color
			}
		} else if toBlock.IsLinkHub {
			if color, ok := style.WireColorFor(link.To.Port.Role, true); ok {
				w.ColorOverride = color
			}
		}
	}

	for _, block := range blockByNodeID {
		if !block.AutoOppositeProducerPort {
			continue
		}
		for _, p := range append([]*CanvasPort(nil), block.ports...) {
			if p.Role == RoleConsumer {
				ensureOppositeProducerPort(doc, block, p)
			}
		}
	}
}
