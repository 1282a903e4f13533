package layout

import "github.com/Faultbox/pastel-room/pkg/math"

const pi = math.Pi

func place(name string, pos, rot math.Vec3, scale float32) Placement {
	return Placement{
		Name:     name,
		Position: pos,
		Rotation: math.EulerFromVec3(rot),
		Scale:    Uniform(scale),
	}
}

// defaultPlacements is the furnished room. Never hand it out directly; use
// Defaults.
var defaultPlacements = []Placement{
	place("arched_door", math.Vec3{X: -9.5, Z: -9.5}, math.Vec3{Y: pi / 4}, 1.0),
	place("desk", math.Vec3{X: -5, Z: -8}, math.Vec3{}, 0.9),
	place("cute_desk_chair", math.Vec3{X: -5, Z: -6}, math.Vec3{Y: pi / 6}, 0.8),
	place("pastel_keyboard", math.Vec3{X: -5, Y: 1.1, Z: -8.5}, math.Vec3{}, 0.5),
	place("gaming_desktop", math.Vec3{X: -6.5, Y: 1.1, Z: -8.5}, math.Vec3{Y: pi / 8}, 0.7),
	place("pencil", math.Vec3{X: -4, Y: 1.1, Z: -8}, math.Vec3{Y: pi / 4}, 0.4),
	place("book", math.Vec3{X: -3.5, Y: 1.1, Z: -7.5}, math.Vec3{Y: pi / 3}, 0.5),
	place("violet_bed", math.Vec3{X: 5, Z: -8}, math.Vec3{}, 1.0),
	place("pink_pet_bed", math.Vec3{X: 8, Z: -5}, math.Vec3{Y: -pi / 6}, 0.8),
	// The dog's yaw has always been 180 radians, not degrees.
	place("dog", math.Vec3{X: -8, Z: 8}, math.Vec3{Y: 180}, 1.0),
	place("cat_feeder", math.Vec3{X: 8, Z: -3}, math.Vec3{}, 0.7),
	place("bunny", math.Vec3{Z: -5}, math.Vec3{Y: pi / 2}, 0.6),
	place("pocket_pet", math.Vec3{X: 2, Z: -5}, math.Vec3{Y: -pi / 4}, 0.5),
	place("tassel_rug", math.Vec3{Y: 0.01}, math.Vec3{X: -pi / 2}, 1.5),
	place("tassel_rug_2", math.Vec3{X: 5, Y: 0.01, Z: 5}, math.Vec3{X: -pi / 2}, 1.2),
	place("organizer", math.Vec3{X: -8, Z: 5}, math.Vec3{Y: pi / 2}, 0.8),
	place("old_radio", math.Vec3{X: -8, Y: 1.5, Z: 5}, math.Vec3{Y: pi / 2}, 0.7),
	place("night_light", math.Vec3{X: 7, Z: -8}, math.Vec3{}, 0.7),
	place("light_switch", math.Vec3{X: -9.9, Y: 4}, math.Vec3{Y: pi / 2}, 0.8),
	place("orchids", math.Vec3{X: -5, Y: 1.1, Z: -7}, math.Vec3{}, 0.5),
	place("tulip_guestbook", math.Vec3{Z: 8}, math.Vec3{Y: -pi / 4}, 0.8),
}

// Defaults returns a fresh copy of the built-in room layout.
func Defaults() []Placement {
	out, err := Clone(defaultPlacements)
	if err != nil {
		// Placement holds no pointers, so a value copy is already deep.
		return append([]Placement(nil), defaultPlacements...)
	}
	return out
}

// Names returns the logical model names in placement order.
func Names(placements []Placement) []string {
	names := make([]string, len(placements))
	for i, p := range placements {
		names[i] = p.Name
	}
	return names
}
