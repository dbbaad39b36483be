package canvas

import "math"

// Fabric is the lattice configuration underlying the canvas: every wire
// endpoint and routed path coordinate lives on this integer grid. Grounded
// on camera.go's viewport/bounds math, generalized from a screen rectangle
// to a lattice enumeration.
type Fabric struct {
	Step float64
}

// NewFabric returns a Fabric with the given step, defaulting to
// DefaultFabricStep when step <= 0.
func NewFabric(step float64) Fabric {
	if step <= 0 {
		step = DefaultFabricStep
	}
	return Fabric{Step: step}
}

// ToScene converts a lattice coordinate to its scene-space point.
func (f Fabric) ToScene(c FabricCoord) ScenePoint {
	return ScenePoint{float64(c.X) * f.Step, float64(c.Y) * f.Step}
}

// ToFabric converts a scene point to the nearest lattice coordinate,
// rounding each axis independently.
func (f Fabric) ToFabric(p ScenePoint) FabricCoord {
	return FabricCoord{
		X: int32(math.Round(p.X / f.Step)),
		Y: int32(math.Round(p.Y / f.Step)),
	}
}

// SnapDown rounds a scalar to the nearest multiple of the step (half steps
// round up) — used for block top-left snapping.
func (f Fabric) SnapDown(v float64) float64 {
	return math.Floor(v/f.Step+0.5) * f.Step
}

// SnapCeil snaps a scalar up to the nearest multiple of the step — used for
// block size snapping so a created block never shrinks below its requested
// size.
func (f Fabric) SnapCeil(v float64) float64 {
	return math.Ceil(v/f.Step) * f.Step
}

// Enumerate returns every lattice coordinate within rect padded by one step,
// filtered by the optional blocked predicate (nil means unfiltered).
func (f Fabric) Enumerate(rect SceneRect, blocked func(FabricCoord) bool) []FabricCoord {
	pad := f.Step
	minC := f.ToFabric(ScenePoint{rect.X - pad, rect.Y - pad})
	maxC := f.ToFabric(ScenePoint{rect.X + rect.Width + pad, rect.Y + rect.Height + pad})

	var out []FabricCoord
	for y := minC.Y; y <= maxC.Y; y++ {
		for x := minC.X; x <= maxC.X; x++ {
			c := FabricCoord{X: x, Y: y}
			if blocked != nil && blocked(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}
