package scene

import "github.com/Faultbox/pastel-room/pkg/math"

// GridConfig is the floor grid's live configuration. The adjustment panel
// writes it; snapping and grid redraw read it.
type GridConfig struct {
	Visible     bool
	Size        float32
	Divisions   int
	CenterColor [3]float32
	GridColor   [3]float32
	Snap        bool
}

// DefaultGridConfig returns a 20x20 grid with snapping on.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Visible:     true,
		Size:        FloorSize,
		Divisions:   20,
		CenterColor: Hex(0x444444),
		GridColor:   Hex(0x888888),
		Snap:        true,
	}
}

// Step returns the cell size, or 0 for a degenerate grid.
func (g GridConfig) Step() float32 {
	if g.Divisions < 1 {
		return 0
	}
	return g.Size / float32(g.Divisions)
}

// SnapXZ rounds X and Z to the nearest cell boundary. Y is untouched.
// Snapping an already snapped position returns it unchanged.
func (g GridConfig) SnapXZ(p math.Vec3) math.Vec3 {
	step := g.Step()
	p.X = math.SnapTo(p.X, step)
	p.Z = math.SnapTo(p.Z, step)
	return p
}
