// Package layout holds model placements: the built-in room layout, the YAML
// and JSON placement files, and a watcher that reloads them on change.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// Placement describes where a model sits in the room.
type Placement struct {
	Name     string     `yaml:"name" json:"name"`
	Position math.Vec3  `yaml:"position" json:"position"`
	Rotation math.Euler `yaml:"rotation" json:"rotation"` // Radians, XYZ order
	Scale    Scale      `yaml:"scale" json:"scale"`

	// Frames > 0 loads <name>_0 .. <name>_{Frames-1} and replaces the
	// static model with a flipbook once every frame has loaded.
	Frames    int     `yaml:"frames,omitempty" json:"frames,omitempty"`
	FrameRate float32 `yaml:"frame_rate,omitempty" json:"frame_rate,omitempty"`
}

// Animated reports whether the placement has a frame-animated replacement.
func (p Placement) Animated() bool {
	return p.Frames > 0
}

// FrameName returns the logical name of animation frame i.
func (p Placement) FrameName(i int) string {
	return fmt.Sprintf("%s_%d", p.Name, i)
}

// Validate checks a single placement.
func (p Placement) Validate() error {
	if p.Name == "" {
		return errors.New("placement without name")
	}
	if p.Scale.X <= 0 || p.Scale.Y <= 0 || p.Scale.Z <= 0 {
		return fmt.Errorf("%s: scale must be positive, got %v", p.Name, p.Scale.Vec3())
	}
	if p.Frames < 0 {
		return fmt.Errorf("%s: negative frame count", p.Name)
	}
	if p.Frames > 0 && p.FrameRate <= 0 {
		return fmt.Errorf("%s: animated placement needs a positive frame_rate", p.Name)
	}
	return nil
}

// Scale is a per-axis scale. It is written as a single number when all
// three axes are equal and accepts either form when read.
type Scale struct {
	X, Y, Z float32
}

// Uniform returns a scale of s on every axis.
func Uniform(s float32) Scale {
	return Scale{s, s, s}
}

// Vec3 returns the scale as a vector.
func (s Scale) Vec3() math.Vec3 {
	return math.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

// ScaleFromVec3 converts a vector to a Scale.
func ScaleFromVec3(v math.Vec3) Scale {
	return Scale{v.X, v.Y, v.Z}
}

// IsUniform reports whether all axes are equal.
func (s Scale) IsUniform() bool {
	return s.X == s.Y && s.Y == s.Z
}

// UnmarshalYAML accepts `scale: 0.8` or `scale: {x: 1, y: 2, z: 1}` or `scale: [1, 2, 1]`.
func (s *Scale) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float32
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		*s = Uniform(f)
	case yaml.SequenceNode:
		var a []float32
		if err := node.Decode(&a); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		if len(a) != 3 {
			return fmt.Errorf("scale: want 3 components, got %d", len(a))
		}
		*s = Scale{a[0], a[1], a[2]}
	default:
		var v math.Vec3
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		*s = ScaleFromVec3(v)
	}
	return nil
}

// MarshalYAML writes a uniform scale as a plain number.
func (s Scale) MarshalYAML() (any, error) {
	if s.IsUniform() {
		return s.X, nil
	}
	return s.Vec3(), nil
}

// UnmarshalJSON accepts a number or an {x,y,z} object.
func (s *Scale) UnmarshalJSON(data []byte) error {
	var f float32
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Uniform(f)
		return nil
	}
	var v math.Vec3
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	*s = ScaleFromVec3(v)
	return nil
}

// MarshalJSON writes a uniform scale as a plain number.
func (s Scale) MarshalJSON() ([]byte, error) {
	if s.IsUniform() {
		return json.Marshal(s.X)
	}
	return json.Marshal(s.Vec3())
}

// Clone returns a deep copy of placements, so callers never share the
// backing array of the built-in list.
func Clone(placements []Placement) ([]Placement, error) {
	out := make([]Placement, 0, len(placements))
	if err := copier.CopyWithOption(&out, &placements, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("cloning placements: %w", err)
	}
	return out, nil
}

// ValidateAll checks every placement and rejects duplicate names.
func ValidateAll(placements []Placement) error {
	seen := make(map[string]bool, len(placements))
	for i, p := range placements {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("placement %d: %w", i, err)
		}
		if seen[p.Name] {
			return fmt.Errorf("placement %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
