package tween

import (
	"time"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Field names used by the helpers.
const (
	FieldPosition = "position"
	FieldRotation = "rotation"
	FieldScale    = "scale"
	FieldValue    = "value"
)

// Transform returns a tween moving node to the given transform.
func Transform(node *scene.Node, position math.Vec3, rotation math.Euler, scale math.Vec3, d time.Duration) *Tween {
	return &Tween{
		From: State{Vectors: map[string]math.Vec3{
			FieldPosition: node.Position,
			FieldRotation: node.Rotation.Vec3(),
			FieldScale:    node.Scale,
		}},
		To: State{Vectors: map[string]math.Vec3{
			FieldPosition: position,
			FieldRotation: rotation.Vec3(),
			FieldScale:    scale,
		}},
		Duration: d,
		Apply: func(s State) {
			node.Position = s.Vectors[FieldPosition]
			node.Rotation = math.EulerFromVec3(s.Vectors[FieldRotation])
			node.Scale = s.Vectors[FieldScale]
		},
	}
}

// Vec3 returns a tween moving *v to target.
func Vec3(v *math.Vec3, target math.Vec3, d time.Duration) *Tween {
	return &Tween{
		From:     State{Vectors: map[string]math.Vec3{FieldValue: *v}},
		To:       State{Vectors: map[string]math.Vec3{FieldValue: target}},
		Duration: d,
		Apply:    func(s State) { *v = s.Vectors[FieldValue] },
	}
}

// Float returns a tween moving *f to target.
func Float(f *float32, target float32, d time.Duration) *Tween {
	return &Tween{
		From:     State{Scalars: map[string]float32{FieldValue: *f}},
		To:       State{Scalars: map[string]float32{FieldValue: target}},
		Duration: d,
		Apply:    func(s State) { *f = s.Scalars[FieldValue] },
	}
}
