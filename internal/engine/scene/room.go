package scene

import "github.com/Faultbox/pastel-room/pkg/math"

// Room colours and dimensions.
const (
	FloorSize  = 20
	WallWidth  = 20
	WallHeight = 10
	FloorColor = 0xAD80BC
	WallColor  = 0xFFCFFF
	Background = 0xDEC5E7
)

// Node names of the fixed room geometry.
const (
	NameFloor    = "floor"
	NameBackWall = "back_wall"
	NameLeftWall = "left_wall"
)

// BuildRoom adds the floor and two walls and sets the background colour.
func (s *Scene) BuildRoom() {
	s.Background = Hex(Background)

	floor := NewNode(NameFloor, KindFloor)
	floor.Mesh = PlaneMesh(FloorSize, FloorSize, Hex(FloorColor))
	floor.Rotation = math.Euler{X: -math.Pi / 2}
	s.Add(nil, floor)

	back := NewNode(NameBackWall, KindWall)
	back.Mesh = PlaneMesh(WallWidth, WallHeight, Hex(WallColor))
	back.Position = math.Vec3{Y: WallHeight / 2, Z: -FloorSize / 2}
	s.Add(nil, back)

	left := NewNode(NameLeftWall, KindWall)
	left.Mesh = PlaneMesh(WallWidth, WallHeight, Hex(WallColor))
	left.Position = math.Vec3{X: FloorSize / 2, Y: WallHeight / 2}
	left.Rotation = math.Euler{Y: math.Pi / 2}
	s.Add(nil, left)
}
