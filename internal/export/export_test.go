package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/internal/layout"
	"github.com/Faultbox/pastel-room/pkg/math"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) SetText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func model(name string) *scene.Node {
	n := scene.NewNode(name, scene.KindModel)
	n.SetModelName(name)
	n.AddChild(scene.NewNode("mesh", scene.KindMesh))
	return n
}

func byName(s *scene.Scene, name string) *scene.Node {
	for _, n := range s.Root.Children {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func testScene() *scene.Scene {
	s := scene.New()
	s.BuildRoom()

	dog := model("dog")
	dog.Position = math.Vec3{X: 1.23456, Y: 0, Z: -2.005}
	dog.Rotation = math.Euler{Y: 3.14159265}
	s.Add(nil, dog)

	desk := model("desk")
	desk.Scale = math.Vec3{X: 1, Y: 2, Z: 1}
	s.Add(nil, desk)

	// Untagged children are not models.
	s.Add(nil, scene.NewNode("helper", scene.KindHelper))
	return s
}

func TestCollect(t *testing.T) {
	got := Collect(testScene())
	if len(got) != 2 {
		t.Fatalf("got %d placements, want 2: %+v", len(got), got)
	}

	dog := got[0]
	if dog.Name != "dog" {
		t.Fatalf("first placement %q, want dog", dog.Name)
	}
	if dog.Position.X != 1.23 || dog.Position.Z != math.RoundTo(-2.005, 2) {
		t.Errorf("position not rounded to 2 dp: %v", dog.Position)
	}
	if dog.Rotation.Y != 3.1416 {
		t.Errorf("rotation not rounded to 4 dp: %v", dog.Rotation)
	}
	if !dog.Scale.IsUniform() || got[1].Scale.IsUniform() {
		t.Errorf("scale uniformity lost: %v %v", dog.Scale, got[1].Scale)
	}
}

func TestCollectDedup(t *testing.T) {
	s := testScene()
	dog := byName(s, "dog")
	// The same node listed twice contributes once.
	s.Root.Children = append(s.Root.Children, dog)

	// A second dog is a different object and stays.
	s.Add(nil, model("dog"))

	got := Collect(s)
	count := 0
	for _, p := range got {
		if p.Name == "dog" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d dog entries, want 2", count)
	}
}

func TestCollectSkipsHidden(t *testing.T) {
	s := testScene()
	byName(s, "desk").Visible = false
	if got := Collect(s); len(got) != 1 || got[0].Name != "dog" {
		t.Errorf("hidden placeholder exported: %+v", got)
	}
}

func TestFormats(t *testing.T) {
	placements := Collect(testScene())

	js, err := JSON(placements)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(js), `"scale": 1`) {
		t.Errorf("uniform scale not written as a number:\n%s", js)
	}

	// Both outputs load back as layouts.
	for format, data := range map[string][]byte{"json": js} {
		back, err := layout.Parse(data, format)
		if err != nil || len(back) != len(placements) {
			t.Errorf("%s round trip: %v, %d placements", format, err, len(back))
		}
	}
	ym, err := YAML(placements)
	if err != nil {
		t.Fatal(err)
	}
	back, err := layout.Parse(ym, "yaml")
	if err != nil || len(back) != 2 || back[1].Scale.Y != 2 {
		t.Errorf("yaml round trip: %v %+v", err, back)
	}

	empty, _ := JSON(nil)
	if string(empty) != "[]" {
		t.Errorf("empty export = %s", empty)
	}
}

func TestExport(t *testing.T) {
	clip := &fakeClipboard{}
	res, err := New(clip, nil).Export(testScene())
	if err != nil {
		t.Fatal(err)
	}
	if clip.text != res.JSON || res.YAML == "" {
		t.Error("clipboard does not hold the JSON manifest")
	}

	_, err = New(nil, nil).Export(testScene())
	if !errors.Is(err, ErrNoClipboard) {
		t.Errorf("expected ErrNoClipboard, got %v", err)
	}

	clip.err = errors.New("busy")
	res, err = New(clip, nil).Export(testScene())
	if err == nil || len(res.Placements) != 2 {
		t.Errorf("clipboard failure: err=%v placements=%d", err, len(res.Placements))
	}
}
