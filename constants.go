package canvas

// Bit-exact defaults. Grounded on input.go's const block
// (maxPointers, defaultDragDeadZone) — one flat block of named constants,
// no config struct.
const (
	// DefaultFabricStep is the lattice unit in scene units.
	DefaultFabricStep = 8.0

	// DefaultBlockCornerRadius is the default rounded-corner radius for
	// freshly created blocks.
	DefaultBlockCornerRadius = 6.0

	// PortHitRadiusPx is the pointer hit-test radius around a port anchor.
	PortHitRadiusPx = 8.0

	// EdgeHoverRadiusPx is the hover radius used to highlight a candidate
	// block edge during an endpoint drag.
	EdgeHoverRadiusPx = 14.0

	// EndpointHitRadiusPx is the press hit-test radius around a wire
	// endpoint anchor.
	EndpointHitRadiusPx = 10.0

	// EndpointDragThresholdPx is the minimum pointer movement before a
	// pending endpoint press becomes an endpoint drag.
	EndpointDragThresholdPx = 4.0

	// MarqueeDragThresholdPx is the minimum view-space movement before a
	// selection click becomes a marquee drag.
	MarqueeDragThresholdPx = 4.0

	// PortActivationBandPx is the band around a block edge in which a
	// dropped endpoint mints a new dynamic port.
	PortActivationBandPx = 20.0

	// LinkHubSizeFactor expresses the link hub's square size as a multiple
	// of the fabric step.
	LinkHubSizeFactor = 2.0

	// NewBlockSizeFactor expresses the side length of a block freshly
	// stamped by the "Create Block" context-menu action, as a multiple of
	// the fabric step.
	NewBlockSizeFactor = 6.0

	// RouterTurnPenalty is the extra cost charged for a direction change
	// during A* search.
	RouterTurnPenalty = 3

	// RouterMaxVisited bounds the A* search before it gives up and falls
	// back to a direct Manhattan path.
	RouterMaxVisited = 40000

	// RouterEscapeMaxSteps bounds how far the router steps outward from an
	// endpoint's border point while looking for an unblocked coord.
	RouterEscapeMaxSteps = 8

	// SegmentDragUnblockMaxSteps bounds how far a dragged wire segment is
	// shifted outward to find an unblocked parallel lattice line.
	SegmentDragUnblockMaxSteps = 64

	// PortTerminalMaxSteps bounds how far computePortTerminal steps in the
	// port-side direction looking for an unblocked fabric coord.
	PortTerminalMaxSteps = 64

	// ZoomMin and ZoomMax bound the camera/view zoom factor.
	ZoomMin = 0.10
	ZoomMax = 8.00

	// ZoomStep is the multiplicative zoom factor applied per wheel notch.
	ZoomStep = 1.10

	// WireSegmentHitRadiusScenePx is the scene-space hit radius (before
	// zoom adjustment) used to detect a press over an internal wire
	// segment.
	WireSegmentHitRadiusScenePx = 6.0

	// MaxStateDocumentBytes is the size bound for a persisted state
	// document. FileDocumentStore does not check it on Save or Load.
	MaxStateDocumentBytes = 4 * 1024 * 1024

	// SchemaVersion is the current canvas JSON document schema version.
	SchemaVersion = 1
)

// PairedProducerPrefix and LegacyPairedProducerPrefix name a producer port
// auto-created opposite a consumer/dynamic port.
const (
	PairedProducerPrefix       = "__pair:"
	LegacyPairedProducerPrefix = "__paired:"
)
