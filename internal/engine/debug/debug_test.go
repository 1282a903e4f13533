package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

func TestGridLines(t *testing.T) {
	cfg := scene.GridConfig{
		Size:        20,
		Divisions:   20,
		CenterColor: [3]float32{1, 0, 0},
		GridColor:   [3]float32{0, 0, 1},
	}
	positions, colors := GridLines(cfg)

	// 21 lines per direction, 2 endpoints each.
	if len(positions) != 21*4 || len(colors) != len(positions) {
		t.Fatalf("expected %d vertices, got %d positions %d colors", 21*4, len(positions), len(colors))
	}

	centerCount := 0
	for i, p := range positions {
		if p.Y != 0 {
			t.Fatalf("vertex %d off the XZ plane: %v", i, p)
		}
		if p.X < -10 || p.X > 10 || p.Z < -10 || p.Z > 10 {
			t.Fatalf("vertex %d outside grid: %v", i, p)
		}
		if colors[i] == cfg.CenterColor {
			centerCount++
		}
	}
	if centerCount != 4 {
		t.Errorf("expected the two centre lines (4 vertices) coloured, got %d", centerCount)
	}

	// Lines sit on cell boundaries.
	if positions[4].Z != -9 {
		t.Errorf("second line at z=%v, want -9", positions[4].Z)
	}
}

func TestGridLinesDegenerate(t *testing.T) {
	if p, _ := GridLines(scene.GridConfig{Size: 20, Divisions: 0}); p != nil {
		t.Error("zero divisions should produce no lines")
	}
}

func TestHelperNodes(t *testing.T) {
	grid := NewGridNode(scene.GridConfig{Size: 20, Divisions: 10, Visible: true})
	if grid.Position.Y != GridHeight || grid.Mesh == nil {
		t.Errorf("grid node: %+v", grid)
	}
	axes := NewAxesNode()
	if axes.Position.Y != AxesHeight || len(axes.Mesh.Positions) != 6 {
		t.Errorf("axes node: %+v", axes)
	}
	if axes.Mesh.Max != (math.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("axes extent: %v", axes.Mesh.Max)
	}

	labels := AxisLabels()
	if len(labels) != 3 || labels[0].Position != (math.Vec3{X: 5.5, Y: 0.5}) {
		t.Errorf("labels: %+v", labels)
	}
}

func TestBBoxWireframe(t *testing.T) {
	lo := math.Vec3{X: -1, Y: 0, Z: -1}
	hi := math.Vec3{X: 1, Y: 2, Z: 1}
	verts := BBoxWireframe(lo, hi)
	if len(verts) != BBoxWireframeVertexCount {
		t.Fatalf("expected %d vertices, got %d", BBoxWireframeVertexCount, len(verts))
	}
	for i, v := range verts {
		if v.Min(lo) != lo || v.Max(hi) != hi {
			t.Errorf("vertex %d outside box: %v", i, v)
		}
	}

	padded := PaddedBBoxWireframe(lo, hi, 0.5)
	if padded[0] != (math.Vec3{X: -1.5, Y: -0.5, Z: -1.5}) {
		t.Errorf("padded corner: %v", padded[0])
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "room")
	sc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2: bottom row red, top row blue (GL order).
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if path != filepath.Join(dir, "room_2026-03-01_12-00-00.000.png") {
		t.Errorf("unexpected path %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("top row should be blue after flip")
	}

	if _, err := sc.CaptureFromPixels([]byte{1, 2, 3}, 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCaptureSameInstant(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "room")
	sc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 250e6, time.UTC) }

	pixels := []byte{1, 2, 3, 255}
	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first != filepath.Join(dir, "room_2026-03-01_12-00-00.250.png") {
		t.Errorf("first path %s", first)
	}
	if second != filepath.Join(dir, "room_2026-03-01_12-00-00.250_1.png") {
		t.Errorf("second path %s", second)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 files, got %d", len(entries))
	}

	// Captures a few milliseconds apart get distinct timestamps.
	sc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 257e6, time.UTC) }
	third, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if third != filepath.Join(dir, "room_2026-03-01_12-00-00.257.png") {
		t.Errorf("third path %s", third)
	}
}
