package scene

import "github.com/Faultbox/pastel-room/pkg/math"

// Kind classifies a node for picking and rendering.
type Kind int

const (
	KindGroup Kind = iota
	KindFloor
	KindWall
	KindHelper
	KindModel
	KindMesh
)

var kindNames = [...]string{"group", "floor", "wall", "helper", "model", "mesh"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Metadata is user data attached to a node.
type Metadata struct {
	// ModelName is the logical model name. Set on a model root and every
	// mesh beneath it.
	ModelName string
	// Frames and FrameRate describe a flipbook replacement node.
	Frames    int
	FrameRate float32
}

// Node is an element of the scene hierarchy.
type Node struct {
	ID       uint64 // Assigned when the node is added to a Scene
	Name     string
	Kind     Kind
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
	Visible  bool
	Meta     Metadata

	Mesh *Mesh

	Parent   *Node
	Children []*Node
}

// NewNode creates a visible node with unit scale.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:    name,
		Kind:    kind,
		Scale:   math.Splat(1),
		Visible: true,
	}
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) removeChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// LocalMatrix returns translate * rotate * scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix multiplies local matrices from the root down to n.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// VisibleInTree reports whether n and all its ancestors are visible.
func (n *Node) VisibleInTree() bool {
	for p := n; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// SetModelName tags n and every descendant with name.
func (n *Node) SetModelName(name string) {
	Traverse(n, func(c *Node) bool {
		c.Meta.ModelName = name
		return true
	})
}

// Traverse visits n and its descendants depth first. Returning false from
// fn skips the node's children.
func Traverse(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Traverse(c, fn)
	}
}
