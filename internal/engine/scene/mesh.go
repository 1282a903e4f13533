package scene

import (
	"image"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// Primitive selects how a mesh's vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Mesh is renderer-independent geometry. Triangle meshes store three
// vertices per triangle; line meshes two per segment.
type Mesh struct {
	Primitive Primitive
	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Colors    [][3]float32 // Per-vertex, line meshes only

	Color   [3]float32 // Diffuse colour
	Opacity float32
	Texture *image.RGBA
	// TextureName identifies Texture for GPU caching.
	TextureName string

	Min, Max math.Vec3 // Local bounds
}

// NewTriangleMesh creates a mesh from a triangle list. Missing normals are
// replaced with flat face normals.
func NewTriangleMesh(positions, normals []math.Vec3, uvs []math.Vec2, color [3]float32) *Mesh {
	if len(normals) != len(positions) {
		normals = FlatNormals(positions)
	}
	m := &Mesh{
		Primitive: Triangles,
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Color:     color,
		Opacity:   1,
	}
	m.ComputeBounds()
	return m
}

// NewLineMesh creates a mesh of line segments with per-vertex colours.
func NewLineMesh(positions []math.Vec3, colors [][3]float32) *Mesh {
	m := &Mesh{
		Primitive: Lines,
		Positions: positions,
		Colors:    colors,
		Color:     [3]float32{1, 1, 1},
		Opacity:   1,
	}
	m.ComputeBounds()
	return m
}

// ComputeBounds recalculates Min and Max from Positions.
func (m *Mesh) ComputeBounds() {
	if len(m.Positions) == 0 {
		m.Min, m.Max = math.Vec3{}, math.Vec3{}
		return
	}
	m.Min, m.Max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.Min = m.Min.Min(p)
		m.Max = m.Max.Max(p)
	}
}

// TriangleCount returns the number of triangles in a triangle mesh.
func (m *Mesh) TriangleCount() int {
	if m.Primitive != Triangles {
		return 0
	}
	return len(m.Positions) / 3
}

// Triangle returns the local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	return m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
}

// FlatNormals returns one face normal per vertex of a triangle list.
func FlatNormals(positions []math.Vec3) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(positions); i += 3 {
		n := positions[i+1].Sub(positions[i]).Cross(positions[i+2].Sub(positions[i])).Normalize()
		normals[i], normals[i+1], normals[i+2] = n, n, n
	}
	return normals
}

// PlaneMesh returns a width x height rectangle in the XY plane, centred on
// the origin and facing +Z.
func PlaneMesh(width, height float32, color [3]float32) *Mesh {
	hw, hh := width/2, height/2
	bl := math.Vec3{X: -hw, Y: -hh}
	br := math.Vec3{X: hw, Y: -hh}
	tr := math.Vec3{X: hw, Y: hh}
	tl := math.Vec3{X: -hw, Y: hh}

	positions := []math.Vec3{bl, br, tr, bl, tr, tl}
	uvs := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	up := math.Vec3{Z: 1}
	normals := []math.Vec3{up, up, up, up, up, up}

	return NewTriangleMesh(positions, normals, uvs, color)
}

// Hex converts a 0xRRGGBB colour to components in [0,1].
func Hex(rgb uint32) [3]float32 {
	return [3]float32{
		float32((rgb>>16)&0xFF) / 255,
		float32((rgb>>8)&0xFF) / 255,
		float32(rgb&0xFF) / 255,
	}
}
