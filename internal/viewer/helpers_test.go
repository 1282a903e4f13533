package viewer

import (
	"testing"

	"github.com/Faultbox/pastel-room/internal/engine/gizmo"
	"github.com/Faultbox/pastel-room/internal/room"
	"github.com/Faultbox/pastel-room/pkg/math"
)

func TestSnapDivisions(t *testing.T) {
	tests := []struct {
		in   int32
		want int
	}{
		{10, 10},
		{14, 10},
		{15, 20},
		{47, 50},
		{100, 100},
		{3, 10},
		{250, 100},
	}
	for _, tt := range tests {
		if got := snapDivisions(tt.in); got != tt.want {
			t.Errorf("snapDivisions(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMouseButtonEdges(t *testing.T) {
	var m mouseButtons

	pressed, released := m.update([3]bool{true, false, false})
	if !pressed[0] || released[0] {
		t.Errorf("first frame: pressed=%v released=%v", pressed, released)
	}

	pressed, released = m.update([3]bool{true, false, false})
	if pressed[0] || released[0] {
		t.Errorf("held: pressed=%v released=%v", pressed, released)
	}

	pressed, released = m.update([3]bool{false, true, false})
	if pressed[0] || !released[0] || !pressed[1] {
		t.Errorf("release left, press right: pressed=%v released=%v", pressed, released)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name  string
		p     room.Progress
		frac  float32
		label string
	}{
		{"empty", room.Progress{}, 1, "0 / 0 models"},
		{"half", room.Progress{Done: 2, Total: 4}, 0.5, "2 / 4 models"},
		{"streaming", room.Progress{Current: "desk", Done: 1, Total: 4, Loaded: 50, Size: 100}, 0.375, "Loading desk (1 / 4)"},
		{"done", room.Progress{Done: 4, Total: 4, Loaded: 10, Size: 10}, 1, "4 / 4 models"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressFraction(tt.p); got != tt.frac {
				t.Errorf("fraction = %v, want %v", got, tt.frac)
			}
			if got := progressLabel(tt.p); got != tt.label {
				t.Errorf("label = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestCenteredBox(t *testing.T) {
	box := centeredBox(math.Vec2{X: 0, Y: 20}, math.Vec2{X: 800, Y: 600}, 400, 200)
	if box.Min != (math.Vec2{X: 200, Y: 220}) || box.Max != (math.Vec2{X: 600, Y: 420}) {
		t.Errorf("box = %+v", box)
	}

	small := centeredBox(math.Vec2{}, math.Vec2{X: 300, Y: 100}, 400, 200)
	if small.Min != (math.Vec2{}) || small.Max != (math.Vec2{X: 300, Y: 100}) {
		t.Errorf("shrunk box = %+v", small)
	}
}

func TestKeyBindingsCoverGizmoKeys(t *testing.T) {
	want := []gizmo.Key{gizmo.KeyTranslate, gizmo.KeyRotate, gizmo.KeyScale, gizmo.KeyDetach, gizmo.KeyCycle, gizmo.KeyToggleSnap}
	bound := make(map[gizmo.Key]bool)
	for _, kb := range keyBindings {
		if bound[kb.cmd] {
			t.Errorf("%v bound twice", kb.cmd)
		}
		bound[kb.cmd] = true
	}
	for _, k := range want {
		if !bound[k] {
			t.Errorf("%v not bound", k)
		}
	}
}

func TestDevModeLabel(t *testing.T) {
	if devModeLabel(room.ModeView) != "Dev Mode" || devModeLabel(room.ModeDev) != "Exit Dev Mode" {
		t.Error("unexpected dev mode labels")
	}
}
