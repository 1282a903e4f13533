// Package lighting describes the room's light rig: one ambient term and one
// directional light.
package lighting

import "github.com/Faultbox/pastel-room/pkg/math"

// Intensity limits used by the adjustment panel.
const (
	MinIntensity = 0
	MaxIntensity = 1
)

// Setup holds the light intensities edited in the adjustment panel.
type Setup struct {
	Ambient float32
	Main    float32
	// Position of the directional light. It shines towards the origin.
	Position math.Vec3
}

// Default returns the room's starting light rig.
func Default() Setup {
	return Setup{
		Ambient:  0.5,
		Main:     0.8,
		Position: math.Vec3{X: 10, Y: 10, Z: 10},
	}
}

// Direction returns the unit vector from the origin towards the light,
// the form the mesh shader expects. A light sitting on the origin is
// treated as overhead.
func (s Setup) Direction() math.Vec3 {
	if s.Position.Length() == 0 {
		return math.Vec3{Y: 1}
	}
	return s.Position.Normalize()
}

// Clamp limits both intensities to [MinIntensity, MaxIntensity].
func (s Setup) Clamp() Setup {
	s.Ambient = clamp(s.Ambient)
	s.Main = clamp(s.Main)
	return s
}

// Shade returns the diffuse factor for a surface normal, matching the
// fragment shader: ambient + main * max(dot(n, l), 0).
func (s Setup) Shade(normal math.Vec3) float32 {
	d := normal.Normalize().Dot(s.Direction())
	if d < 0 {
		d = 0
	}
	return s.Ambient + s.Main*d
}

func clamp(v float32) float32 {
	if v < MinIntensity {
		return MinIntensity
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return v
}
