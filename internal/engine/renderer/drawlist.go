package renderer

import (
	"sort"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Vertex layouts uploaded to the GPU.
const (
	meshStride = 8 // position(3) normal(3) uv(2)
	lineStride = 6 // position(3) colour(3)
)

// Item is one mesh to draw with its world transform.
type Item struct {
	Node  *scene.Node
	Mesh  *scene.Mesh
	Model math.Mat4
	// Depth is the squared distance from the eye to the item's origin,
	// used to order transparent meshes back to front.
	Depth       float32
	Highlighted bool
}

// DrawList is a frame's work split by pass.
type DrawList struct {
	Opaque      []Item
	Transparent []Item
	Lines       []Item
}

// Len returns the total number of items.
func (d DrawList) Len() int {
	return len(d.Opaque) + len(d.Transparent) + len(d.Lines)
}

// Collect walks the visible part of the scene and sorts each mesh into a
// pass. Meshes under highlight are flagged for the selection tint.
func Collect(s *scene.Scene, eye math.Vec3, highlight *scene.Node) DrawList {
	var list DrawList
	collect(&list, s.Root, math.Identity(), eye, highlight, false)

	sort.SliceStable(list.Transparent, func(i, j int) bool {
		return list.Transparent[i].Depth > list.Transparent[j].Depth
	})
	return list
}

func collect(list *DrawList, n *scene.Node, parent math.Mat4, eye math.Vec3, highlight *scene.Node, lit bool) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.LocalMatrix())
	lit = lit || (highlight != nil && n == highlight)

	if m := n.Mesh; m != nil && len(m.Positions) > 0 {
		item := Item{Node: n, Mesh: m, Model: world, Highlighted: lit}
		d := world.Translation().Sub(eye)
		item.Depth = d.Dot(d)

		switch {
		case m.Primitive == scene.Lines:
			list.Lines = append(list.Lines, item)
		case m.Opacity < 1:
			list.Transparent = append(list.Transparent, item)
		default:
			list.Opaque = append(list.Opaque, item)
		}
	}

	for _, c := range n.Children {
		collect(list, c, world, eye, highlight, lit)
	}
}

// interleaveMesh packs a triangle mesh as position, normal, uv. Missing
// normals or UVs are written as zeros.
func interleaveMesh(m *scene.Mesh) []float32 {
	out := make([]float32, 0, len(m.Positions)*meshStride)
	for i, p := range m.Positions {
		var n math.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv math.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
	return out
}

// interleaveLines packs a line mesh as position, colour. Vertices without
// a colour use the mesh colour.
func interleaveLines(m *scene.Mesh) []float32 {
	out := make([]float32, 0, len(m.Positions)*lineStride)
	for i, p := range m.Positions {
		c := m.Color
		if i < len(m.Colors) {
			c = m.Colors[i]
		}
		out = append(out, p.X, p.Y, p.Z, c[0], c[1], c[2])
	}
	return out
}

// Project maps a world point to pixel coordinates inside a width x height
// view with the origin at the top left. ok is false for points behind the
// camera or outside the clip volume.
func Project(viewProj math.Mat4, p math.Vec3, width, height float32) (math.Vec2, bool) {
	clip := viewProj.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return math.Vec2{}, false
	}
	ndc := math.Vec2{X: clip[0] / clip[3], Y: clip[1] / clip[3]}
	if !ndc.InRange(-1, 1) {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (ndc.X + 1) / 2 * width,
		Y: (1 - ndc.Y) / 2 * height,
	}, true
}
