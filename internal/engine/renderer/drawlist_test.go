package renderer

import (
	"testing"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

func model(name string, pos math.Vec3, opacity float32) *scene.Node {
	root := scene.NewNode(name, scene.KindModel)
	root.Position = pos
	mesh := scene.NewNode(name+"_mesh", scene.KindMesh)
	mesh.Mesh = scene.PlaneMesh(1, 1, [3]float32{1, 1, 1})
	mesh.Mesh.Opacity = opacity
	root.AddChild(mesh)
	root.SetModelName(name)
	return root
}

func TestCollectPasses(t *testing.T) {
	s := scene.New()
	s.BuildRoom()

	lines := scene.NewNode("grid", scene.KindHelper)
	lines.Mesh = scene.NewLineMesh([]math.Vec3{{}, {X: 1}}, nil)
	s.Add(nil, lines)

	dog := model("dog", math.Vec3{X: 1}, 1)
	s.Add(nil, dog)
	s.Add(nil, model("vase", math.Vec3{}, 0.5))

	hidden := model("hidden", math.Vec3{}, 1)
	hidden.Visible = false
	s.Add(nil, hidden)

	list := Collect(s, math.Vec3{Z: 10}, dog)

	// floor, two walls and dog.
	if len(list.Opaque) != 4 {
		t.Errorf("opaque = %d, want 4", len(list.Opaque))
	}
	if len(list.Transparent) != 1 || len(list.Lines) != 1 {
		t.Errorf("transparent = %d, lines = %d, want 1 and 1", len(list.Transparent), len(list.Lines))
	}
	if list.Len() != 6 {
		t.Errorf("Len() = %d, want 6", list.Len())
	}

	for _, it := range list.Opaque {
		want := it.Node.Meta.ModelName == "dog"
		if it.Highlighted != want {
			t.Errorf("%s highlighted = %v, want %v", it.Node.Name, it.Highlighted, want)
		}
	}
}

func TestCollectWorldMatrix(t *testing.T) {
	s := scene.New()
	s.Add(nil, model("desk", math.Vec3{X: 3, Z: -2}, 1))

	list := Collect(s, math.Vec3{}, nil)
	if len(list.Opaque) != 1 {
		t.Fatalf("opaque = %d, want 1", len(list.Opaque))
	}
	if got := list.Opaque[0].Model.Translation(); got != (math.Vec3{X: 3, Z: -2}) {
		t.Errorf("translation = %v", got)
	}
	if got := list.Opaque[0].Depth; got != 13 {
		t.Errorf("depth = %v, want 13", got)
	}
}

func TestCollectSortsTransparentBackToFront(t *testing.T) {
	s := scene.New()
	s.Add(nil, model("near", math.Vec3{Z: 8}, 0.5))
	s.Add(nil, model("far", math.Vec3{Z: -8}, 0.5))
	s.Add(nil, model("mid", math.Vec3{}, 0.5))

	list := Collect(s, math.Vec3{Z: 10}, nil)
	var got []string
	for _, it := range list.Transparent {
		got = append(got, it.Node.Meta.ModelName)
	}
	want := []string{"far", "mid", "near"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestInterleaveMesh(t *testing.T) {
	m := scene.PlaneMesh(2, 2, [3]float32{1, 0, 0})
	data := interleaveMesh(m)
	if len(data) != 6*meshStride {
		t.Fatalf("len = %d, want %d", len(data), 6*meshStride)
	}
	// First vertex: bottom-left corner, +Z normal, uv (0,0).
	want := []float32{-1, -1, 0, 0, 0, 1, 0, 0}
	for i, v := range want {
		if data[i] != v {
			t.Fatalf("vertex 0 = %v, want %v", data[:meshStride], want)
		}
	}
}

func TestInterleaveMeshMissingUVs(t *testing.T) {
	m := scene.NewTriangleMesh([]math.Vec3{{}, {X: 1}, {Y: 1}}, nil, nil, [3]float32{1, 1, 1})
	data := interleaveMesh(m)
	if len(data) != 3*meshStride {
		t.Fatalf("len = %d", len(data))
	}
	if data[6] != 0 || data[7] != 0 {
		t.Errorf("uv = %v,%v, want zeros", data[6], data[7])
	}
}

func TestInterleaveLines(t *testing.T) {
	m := scene.NewLineMesh([]math.Vec3{{}, {X: 5}}, [][3]float32{{1, 0, 0}})
	m.Color = [3]float32{0, 0, 1}
	data := interleaveLines(m)
	if len(data) != 2*lineStride {
		t.Fatalf("len = %d", len(data))
	}
	if data[3] != 1 || data[5] != 0 {
		t.Errorf("first colour = %v", data[3:6])
	}
	if data[9] != 0 || data[11] != 1 {
		t.Errorf("second colour = %v, want mesh colour", data[9:12])
	}
}

func TestProject(t *testing.T) {
	proj := math.Perspective(1, 1, 0.1, 100)
	view := math.LookAt(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	vp := proj.Mul(view)

	p, ok := Project(vp, math.Vec3{}, 800, 600)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if abs(p.X-400) > 0.01 || abs(p.Y-300) > 0.01 {
		t.Errorf("origin projects to %v, want (400,300)", p)
	}

	if _, ok := Project(vp, math.Vec3{Z: 20}, 800, 600); ok {
		t.Error("point behind the camera should not project")
	}

	up, ok := Project(vp, math.Vec3{Y: 1}, 800, 600)
	if !ok || up.Y >= 300 {
		t.Errorf("point above origin = %v, want above centre", up)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
