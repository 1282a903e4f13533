package debug

import (
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// BBoxWireframe returns the 12 edges (24 endpoints) of a box.
func BBoxWireframe(lo, hi math.Vec3) []math.Vec3 {
	c := func(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
	return []math.Vec3{
		// Bottom face
		c(lo.X, lo.Y, lo.Z), c(hi.X, lo.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, lo.Y, hi.Z),
		c(hi.X, lo.Y, hi.Z), c(lo.X, lo.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, lo.Y, lo.Z),
		// Top face
		c(lo.X, hi.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, hi.Y, lo.Z), c(hi.X, hi.Y, hi.Z),
		c(hi.X, hi.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
		c(lo.X, hi.Y, hi.Z), c(lo.X, hi.Y, lo.Z),
		// Vertical edges
		c(lo.X, lo.Y, lo.Z), c(lo.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, lo.Z), c(hi.X, hi.Y, lo.Z),
		c(hi.X, lo.Y, hi.Z), c(hi.X, hi.Y, hi.Z),
		c(lo.X, lo.Y, hi.Z), c(lo.X, hi.Y, hi.Z),
	}
}

// PaddedBBoxWireframe expands the box by padding on all sides.
func PaddedBBoxWireframe(lo, hi math.Vec3, padding float32) []math.Vec3 {
	pad := math.Splat(padding)
	return BBoxWireframe(lo.Sub(pad), hi.Add(pad))
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the padding for selection boxes.
const DefaultBBoxPadding = 0.05

// NameSelection names the selection box helper node.
const NameSelection = "selection_box"

// SelectionColor is the selection box line colour.
var SelectionColor = scene.Hex(0xFFD400)

// NewSelectionNode returns a hidden helper node for the selection box.
func NewSelectionNode() *scene.Node {
	n := scene.NewNode(NameSelection, scene.KindHelper)
	n.Visible = false
	return n
}

// SetSelectionBox replaces n's mesh with a padded wireframe around the
// world-space box lo..hi.
func SetSelectionBox(n *scene.Node, lo, hi math.Vec3) {
	n.Mesh = scene.NewLineMesh(PaddedBBoxWireframe(lo, hi, DefaultBBoxPadding), nil)
	n.Mesh.Color = SelectionColor
}
