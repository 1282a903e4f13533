// Package scene holds the room's node hierarchy: floor, walls, helpers and
// loaded models, plus the registry of meshes that can be clicked.
package scene

import "errors"

// ErrNotInScene is returned when removing a node that has no parent.
var ErrNotInScene = errors.New("node is not in the scene")

// Clickable is a registry entry: a pickable mesh and the model it belongs to.
type Clickable struct {
	Mesh  *Node
	Owner *Node // Direct child of the root
	Name  string
}

// Scene owns the hierarchy. It is not safe for concurrent use; mutate it
// from the frame loop only.
type Scene struct {
	Root       *Node
	Background [3]float32

	nextID     uint64
	clickables []Clickable
}

// New creates an empty scene.
func New() *Scene {
	s := &Scene{Root: NewNode("root", KindGroup)}
	s.assignIDs(s.Root)
	return s
}

func (s *Scene) assignIDs(n *Node) {
	Traverse(n, func(c *Node) bool {
		if c.ID == 0 {
			s.nextID++
			c.ID = s.nextID
		}
		return true
	})
}

// Add attaches child under parent, or under the root when parent is nil.
// Nodes built off-scene receive their IDs here.
func (s *Scene) Add(parent, child *Node) {
	if parent == nil {
		parent = s.Root
	}
	parent.AddChild(child)
	s.assignIDs(child)
}

// Remove detaches n from its parent.
func (s *Scene) Remove(n *Node) error {
	if n.Parent == nil || !n.Parent.removeChild(n) {
		return ErrNotInScene
	}
	return nil
}

// TopLevel walks up from n to the ancestor that is a direct child of the
// root. It returns nil for the root itself or a detached node.
func (s *Scene) TopLevel(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Parent == s.Root {
			return p
		}
	}
	return nil
}

// ModelRoots returns the root's direct children that carry a model name,
// in insertion order.
func (s *Scene) ModelRoots() []*Node {
	var roots []*Node
	for _, c := range s.Root.Children {
		if c.Kind == KindModel && c.Meta.ModelName != "" {
			roots = append(roots, c)
		}
	}
	return roots
}

// VisibleModelRoots is ModelRoots without hidden models.
func (s *Scene) VisibleModelRoots() []*Node {
	var roots []*Node
	for _, r := range s.ModelRoots() {
		if r.Visible {
			roots = append(roots, r)
		}
	}
	return roots
}

// RebuildClickables collects every visible triangle mesh beneath a visible
// model root. Call it after each model load or visibility change.
func (s *Scene) RebuildClickables() []Clickable {
	s.clickables = s.clickables[:0]
	for _, root := range s.VisibleModelRoots() {
		Traverse(root, func(n *Node) bool {
			if !n.Visible {
				return false
			}
			if n.Mesh != nil && n.Mesh.Primitive == Triangles {
				s.clickables = append(s.clickables, Clickable{
					Mesh:  n,
					Owner: s.TopLevel(n),
					Name:  root.Meta.ModelName,
				})
			}
			return true
		})
	}
	return s.clickables
}

// Clickables returns the registry built by the last RebuildClickables.
func (s *Scene) Clickables() []Clickable {
	return s.clickables
}

// Surfaces returns every visible triangle mesh in the scene: floor, walls
// and models. Used for hover feedback, never for selection.
func (s *Scene) Surfaces() []*Node {
	var out []*Node
	Traverse(s.Root, func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh != nil && n.Mesh.Primitive == Triangles {
			out = append(out, n)
		}
		return true
	})
	return out
}
