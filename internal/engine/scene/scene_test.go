package scene

import (
	"errors"
	"testing"

	"github.com/Faultbox/pastel-room/pkg/math"
)

const eps = 1e-4

func near(a, b math.Vec3) bool {
	return a.Sub(b).Length() < eps
}

// modelNode builds a model root with one triangle mesh child, like the loader.
func modelNode(name string) *Node {
	root := NewNode(name, KindModel)
	mesh := NewNode(name+"_mesh", KindMesh)
	mesh.Mesh = NewTriangleMesh([]math.Vec3{{}, {X: 1}, {Y: 1}}, nil, nil, [3]float32{1, 1, 1})
	root.AddChild(mesh)
	root.SetModelName(name)
	return root
}

// find returns the first node named name, depth first.
func find(s *Scene, name string) *Node {
	var found *Node
	Traverse(s.Root, func(n *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

func TestAddAssignsIDs(t *testing.T) {
	s := New()
	dog := modelNode("dog")
	s.Add(nil, dog)

	if dog.ID == 0 || dog.Children[0].ID == 0 {
		t.Fatal("expected IDs assigned on Add")
	}
	if dog.ID == dog.Children[0].ID || dog.ID == s.Root.ID {
		t.Error("IDs must be unique")
	}
	if find(s, "dog_mesh") != dog.Children[0] {
		t.Error("mesh not reachable from the root")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	dog := modelNode("dog")
	s.Add(nil, dog)

	if err := s.Remove(dog); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(s.Root.Children) != 0 || dog.Parent != nil {
		t.Error("node still attached")
	}
	if err := s.Remove(dog); !errors.Is(err, ErrNotInScene) {
		t.Errorf("expected ErrNotInScene, got %v", err)
	}
}

func TestTopLevel(t *testing.T) {
	s := New()
	dog := modelNode("dog")
	s.Add(nil, dog)
	inner := NewNode("collar", KindGroup)
	s.Add(dog.Children[0], inner)

	if got := s.TopLevel(inner); got != dog {
		t.Errorf("TopLevel(inner) = %v, want dog", got)
	}
	if got := s.TopLevel(dog); got != dog {
		t.Errorf("TopLevel(dog) = %v, want dog", got)
	}
	if got := s.TopLevel(s.Root); got != nil {
		t.Errorf("TopLevel(root) = %v, want nil", got)
	}
}

func TestVisibleInTree(t *testing.T) {
	s := New()
	dog := modelNode("dog")
	s.Add(nil, dog)
	mesh := dog.Children[0]

	if !mesh.VisibleInTree() {
		t.Fatal("mesh should be visible")
	}
	dog.Visible = false
	if mesh.VisibleInTree() {
		t.Error("hidden parent must hide the mesh")
	}
	if !mesh.Visible {
		t.Error("VisibleInTree must not change the node flag")
	}
}

func TestWorldMatrix(t *testing.T) {
	s := New()
	parent := NewNode("parent", KindGroup)
	parent.Position = math.Vec3{X: 10}
	parent.Scale = math.Splat(2)
	child := NewNode("child", KindGroup)
	child.Position = math.Vec3{X: 1}
	s.Add(nil, parent)
	s.Add(parent, child)

	got := child.WorldMatrix().TransformVec3(math.Vec3{})
	if !near(got, math.Vec3{X: 12}) {
		t.Errorf("child origin in world: got %v, want (12,0,0)", got)
	}
}

func TestRebuildClickables(t *testing.T) {
	s := New()
	s.BuildRoom()
	dog := modelNode("dog")
	cat := modelNode("cat_feeder")
	s.Add(nil, dog)
	s.Add(nil, cat)

	grid := NewNode("grid", KindHelper)
	grid.Mesh = NewLineMesh([]math.Vec3{{}, {X: 1}}, [][3]float32{{1, 1, 1}, {1, 1, 1}})
	s.Add(nil, grid)

	reg := s.RebuildClickables()
	if len(reg) != 2 {
		t.Fatalf("expected 2 clickables, got %d", len(reg))
	}
	for _, c := range reg {
		if c.Owner == nil || c.Owner.Parent != s.Root {
			t.Errorf("%s: owner must be a top-level node", c.Name)
		}
		if c.Name != c.Mesh.Meta.ModelName || c.Name != c.Owner.Meta.ModelName {
			t.Errorf("clickable name %q does not match metadata", c.Name)
		}
	}

	// A mesh nested below a group still belongs to the model root.
	part := NewNode("dog_ear", KindMesh)
	part.Mesh = NewTriangleMesh([]math.Vec3{{}, {X: 1}, {Y: 1}}, nil, nil, [3]float32{1, 1, 1})
	group := NewNode("dog_head", KindGroup)
	group.AddChild(part)
	s.Add(dog, group)
	reg = s.RebuildClickables()
	if len(reg) != 3 {
		t.Fatalf("expected 3 clickables with the nested mesh, got %d", len(reg))
	}
	for _, c := range reg {
		if c.Mesh == part && c.Owner != dog {
			t.Errorf("nested mesh owner = %v, want dog", c.Owner.Name)
		}
	}
	if err := s.Remove(group); err != nil {
		t.Fatal(err)
	}

	// Hidden models drop out of the registry.
	cat.Visible = false
	reg = s.RebuildClickables()
	if len(reg) != 1 || reg[0].Name != "dog" {
		t.Errorf("expected only dog after hiding cat, got %+v", reg)
	}

	// Surfaces include the room geometry but never line helpers.
	if got := len(s.Surfaces()); got != 4 {
		t.Errorf("expected floor, 2 walls and dog as surfaces, got %d", got)
	}
}

func TestBuildRoom(t *testing.T) {
	s := New()
	s.BuildRoom()

	floor := find(s, NameFloor)
	if floor == nil || floor.Kind != KindFloor {
		t.Fatal("floor missing")
	}
	// The floor lies in XZ: its +Z plane normal must point up.
	up := floor.WorldMatrix().TransformDirection(math.Vec3{Z: 1})
	if !near(up, math.Vec3{Y: 1}) {
		t.Errorf("floor normal: got %v, want +Y", up)
	}

	back := find(s, NameBackWall)
	if back == nil || back.Position != (math.Vec3{Y: 5, Z: -10}) {
		t.Errorf("back wall: %+v", back)
	}
	left := find(s, NameLeftWall)
	if left == nil || left.Position != (math.Vec3{X: 10, Y: 5}) {
		t.Errorf("left wall: %+v", left)
	}
	if s.Background != Hex(Background) {
		t.Errorf("background: got %v", s.Background)
	}
	if len(s.ModelRoots()) != 0 {
		t.Error("room geometry must not count as models")
	}
}

func TestHex(t *testing.T) {
	got := Hex(0xFF8000)
	if got[0] != 1 || got[2] != 0 || got[1] < 0.5 || got[1] > 0.51 {
		t.Errorf("Hex(0xFF8000) = %v", got)
	}
}

func TestFlatNormals(t *testing.T) {
	n := FlatNormals([]math.Vec3{{}, {X: 1}, {Y: 1}})
	for i, v := range n {
		if !near(v, math.Vec3{Z: 1}) {
			t.Errorf("normal %d: got %v, want +Z", i, v)
		}
	}
}

func TestGridSnapXZ(t *testing.T) {
	g := DefaultGridConfig()
	if g.Step() != 1 {
		t.Fatalf("default step = %v, want 1", g.Step())
	}

	tests := []struct {
		name string
		in   math.Vec3
		want math.Vec3
		cfg  func(*GridConfig)
	}{
		{"drag to 2.4", math.Vec3{X: 2.4, Y: 0.3, Z: -1.6}, math.Vec3{X: 2, Y: 0.3, Z: -2}, nil},
		{"half cells", math.Vec3{X: 0.4, Z: 0.6}, math.Vec3{X: 0.5, Z: 0.5}, func(c *GridConfig) { c.Divisions = 40 }},
		{"coarse", math.Vec3{X: 2.4, Z: 3.1}, math.Vec3{X: 2, Z: 4}, func(c *GridConfig) { c.Divisions = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGridConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			got := cfg.SnapXZ(tt.in)
			if !near(got, tt.want) {
				t.Errorf("SnapXZ(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if again := cfg.SnapXZ(got); again != got {
				t.Errorf("snap not idempotent: %v -> %v", got, again)
			}
		})
	}
}
