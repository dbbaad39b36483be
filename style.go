package canvas

// Style holds the default palette consulted by a host renderer; the core
// never paints pixels (rendering is explicitly host-owned), but it does
// decide which color a wire or hub should carry, which is domain logic the
// host has no way to derive on its own. Grounded on original_source's
// CanvasStyle/CanvasConstants color table.
type Style struct {
	Background     string
	BlockOutline   string
	BlockFill      string
	BlockText      string
	BlockSelection string
	WireColor      string
	DynamicPort    string
	LinkProducer   string
	LinkConsumer   string
}

// DefaultStyle is the bit-exact palette carried over from the original
// implementation's constants table.
var DefaultStyle = Style{
	Background:     "#121316",
	BlockOutline:   "#2EC27E",
	BlockFill:      "#0E1B18",
	BlockText:      "#B8C2CC",
	BlockSelection: "#5DA9FF",
	WireColor:      "#8D99A8",
	DynamicPort:    "#D2B36A",
	LinkProducer:   "#E55353",
	LinkConsumer:   "#5CCB7A",
}

// WireColorFor resolves the color a wire between a link-hub endpoint and a
// regular endpoint should carry: red on the hub's producer side, green on
// its consumer side. hubRole is the role the
// hub-side port plays; ok is false when neither endpoint touches a hub.
func (s Style) WireColorFor(hubRole PortRole, hubInvolved bool) (string, bool) {
	if !hubInvolved {
		return "", false
	}
	if hubRole == RoleProducer {
		return s.LinkProducer, true
	}
	return s.LinkConsumer, true
}
