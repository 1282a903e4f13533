// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Helper heights above the floor, so lines do not z-fight with it.
const (
	GridHeight = 0.01
	AxesHeight = 0.02
	AxesLength = 5
)

// Helper node names.
const (
	NameGrid   = "grid"
	NameAxes   = "axes"
	NameLabels = "axis_labels"
)

// GridLines generates line segments for a square grid centred on the
// origin in the XZ plane. The two lines through the centre use
// CenterColor.
func GridLines(cfg scene.GridConfig) (positions []math.Vec3, colors [][3]float32) {
	if cfg.Divisions < 1 || cfg.Size <= 0 {
		return nil, nil
	}

	half := cfg.Size / 2
	step := cfg.Size / float32(cfg.Divisions)
	center := cfg.Divisions / 2

	for i := 0; i <= cfg.Divisions; i++ {
		k := -half + float32(i)*step
		color := cfg.GridColor
		if cfg.Divisions%2 == 0 && i == center {
			color = cfg.CenterColor
		}

		positions = append(positions,
			math.Vec3{X: -half, Z: k}, math.Vec3{X: half, Z: k},
			math.Vec3{X: k, Z: -half}, math.Vec3{X: k, Z: half},
		)
		colors = append(colors, color, color, color, color)
	}
	return positions, colors
}

// NewGridNode builds the grid helper node.
func NewGridNode(cfg scene.GridConfig) *scene.Node {
	n := scene.NewNode(NameGrid, scene.KindHelper)
	n.Mesh = scene.NewLineMesh(GridLines(cfg))
	n.Position = math.Vec3{Y: GridHeight}
	n.Visible = cfg.Visible
	return n
}

// AxesLines returns the X (red), Y (green) and Z (blue) axes from the origin.
func AxesLines(length float32) (positions []math.Vec3, colors [][3]float32) {
	red := [3]float32{1, 0, 0}
	green := [3]float32{0, 1, 0}
	blue := [3]float32{0, 0, 1}
	positions = []math.Vec3{
		{}, {X: length},
		{}, {Y: length},
		{}, {Z: length},
	}
	colors = [][3]float32{red, red, green, green, blue, blue}
	return positions, colors
}

// NewAxesNode builds the axes helper node.
func NewAxesNode() *scene.Node {
	n := scene.NewNode(NameAxes, scene.KindHelper)
	n.Mesh = scene.NewLineMesh(AxesLines(AxesLength))
	n.Position = math.Vec3{Y: AxesHeight}
	return n
}

// AxisLabel is a text marker drawn at a world position.
type AxisLabel struct {
	Text     string
	Position math.Vec3
	Color    [3]float32
}

// AxisLabels returns the X, Y and Z markers just past the axes' ends.
func AxisLabels() []AxisLabel {
	return []AxisLabel{
		{Text: "X", Position: math.Vec3{X: 5.5, Y: 0.5}, Color: [3]float32{1, 0, 0}},
		{Text: "Y", Position: math.Vec3{Y: 5.5}, Color: [3]float32{0, 1, 0}},
		{Text: "Z", Position: math.Vec3{Y: 0.5, Z: 5.5}, Color: [3]float32{0, 0, 1}},
	}
}

// NewLabelsNode builds an empty group whose visibility gates label drawing.
// The labels are drawn as screen-space text at AxisLabels positions.
func NewLabelsNode() *scene.Node {
	return scene.NewNode(NameLabels, scene.KindHelper)
}
