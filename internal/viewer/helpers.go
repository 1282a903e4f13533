package viewer

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/pastel-room/internal/engine/gizmo"
	"github.com/Faultbox/pastel-room/internal/portfolio"
	"github.com/Faultbox/pastel-room/internal/room"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Grid division slider limits.
const (
	MinDivisions  = 10
	MaxDivisions  = 100
	DivisionsStep = 10
)

// Camera slider ranges.
const (
	CameraRangeXZ = 20
	CameraMaxY    = 20
)

// Overlay content box size in pixels.
const (
	overlayWidth  = 520
	overlayHeight = 360
)

// keyBindings maps keyboard keys to dev-mode commands.
var keyBindings = []struct {
	key imgui.Key
	cmd gizmo.Key
}{
	{imgui.KeyG, gizmo.KeyTranslate},
	{imgui.KeyR, gizmo.KeyRotate},
	{imgui.KeyS, gizmo.KeyScale},
	{imgui.KeyEscape, gizmo.KeyDetach},
	{imgui.KeyTab, gizmo.KeyCycle},
	{imgui.KeyN, gizmo.KeyToggleSnap},
}

// mouseButtons turns per-frame button state into press and release edges.
// captured marks presses that began on the canvas; only their releases
// are forwarded.
type mouseButtons struct {
	down     [3]bool
	captured [3]bool
}

func (m *mouseButtons) update(now [3]bool) (pressed, released [3]bool) {
	for i := range now {
		pressed[i] = now[i] && !m.down[i]
		released[i] = !now[i] && m.down[i]
	}
	m.down = now
	return pressed, released
}

// snapDivisions clamps a slider value to the division range and rounds it
// to the nearest step.
func snapDivisions(v int32) int {
	v = max(MinDivisions, min(MaxDivisions, v))
	return int((v+DivisionsStep/2)/DivisionsStep) * DivisionsStep
}

// progressFraction returns how far the batch is, counting the bytes of
// the model currently streaming.
func progressFraction(p room.Progress) float32 {
	if p.Total == 0 {
		return 1
	}
	f := float32(p.Done)
	if p.Size > 0 && p.Done < p.Total {
		f += float32(p.Loaded) / float32(p.Size)
	}
	return math.Clamp(f/float32(p.Total), 0, 1)
}

// progressLabel describes the batch for the loading bar.
func progressLabel(p room.Progress) string {
	if p.Current == "" {
		return fmt.Sprintf("%d / %d models", p.Done, p.Total)
	}
	return fmt.Sprintf("Loading %s (%d / %d)", p.Current, p.Done, p.Total)
}

// centeredBox returns a w x h box centred in the area, shrunk to fit.
func centeredBox(pos, size math.Vec2, w, h float32) portfolio.Box {
	w, h = min(w, size.X), min(h, size.Y)
	lo := math.Vec2{X: pos.X + (size.X-w)/2, Y: pos.Y + (size.Y-h)/2}
	return portfolio.Box{Min: lo, Max: lo.Add(math.Vec2{X: w, Y: h})}
}

// devModeLabel names the dev mode toggle after the action it performs.
func devModeLabel(m room.Mode) string {
	if m == room.ModeDev {
		return "Exit Dev Mode"
	}
	return "Dev Mode"
}

func vec2(v imgui.Vec2) math.Vec2 {
	return math.Vec2{X: v.X, Y: v.Y}
}

func color(c [3]float32, alpha float32) imgui.Vec4 {
	return imgui.NewVec4(c[0], c[1], c[2], alpha)
}
