package room

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/gizmo"
	"github.com/Faultbox/pastel-room/internal/engine/picking"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ClickSlop is how far, in pixels, the pointer may travel between press
// and release for the release to count as a click.
const ClickSlop = 4

type input struct {
	canvas, window picking.Rect
	pointer        math.Vec2
	inside         bool

	pressed   [3]bool
	pressAt   math.Vec2
	travelled float32
}

// SetViewport records the canvas's on-screen rectangle and the window
// rectangle, and updates the camera aspect.
func (r *Room) SetViewport(canvas, window picking.Rect) {
	r.viewport.canvas = canvas
	r.viewport.window = window
	r.Camera.SetViewport(canvas.W, canvas.H)
}

// PointerDown handles a button press at p.
func (r *Room) PointerDown(p math.Vec2, b Button) {
	r.viewport.pointer = p
	r.viewport.pressed[b] = true
	if b != ButtonLeft {
		return
	}
	r.viewport.pressAt = p
	r.viewport.travelled = 0

	if r.mode != ModeDev {
		return
	}

	ray := r.rayAt(p)
	if hit, ok := picking.Pick(ray, r.Scene.Clickables()); ok && hit.Owner != nil {
		if r.Gizmo.Target() != hit.Owner {
			r.Gizmo.Attach(hit.Owner)
		}
		r.Gizmo.BeginDrag(ray, p)
	}
}

// PointerMove handles pointer motion to p. Drags either edit the selected
// model or move the camera.
func (r *Room) PointerMove(p math.Vec2, now time.Time) error {
	delta := p.Sub(r.viewport.pointer)
	r.viewport.pointer = p
	r.viewport.inside = r.viewport.canvas.Contains(p)
	if r.viewport.pressed[ButtonLeft] {
		r.viewport.travelled += delta.Length()
	}

	if r.Gizmo.Dragging() {
		return r.Gizmo.Drag(r.rayAt(p), p, now)
	}
	switch {
	case r.viewport.pressed[ButtonLeft]:
		r.Camera.HandleDrag(delta.X, delta.Y)
	case r.viewport.pressed[ButtonRight], r.viewport.pressed[ButtonMiddle]:
		r.Camera.HandlePan(delta.X, delta.Y)
	}
	return nil
}

// PointerUp handles a button release. In view mode a left click that did
// not drag opens the overlay for the model under the pointer, or closes
// an open overlay when it lands on the backdrop.
func (r *Room) PointerUp(b Button, now time.Time) {
	r.viewport.pressed[b] = false
	if b != ButtonLeft {
		return
	}
	if r.Gizmo.Dragging() {
		r.Gizmo.EndDrag(now)
		return
	}
	if r.mode == ModeView && r.viewport.travelled <= ClickSlop {
		r.Click(r.viewport.pointer, now)
	}
}

// Click routes a view-mode click: an open overlay takes it first, then
// the model under p opens its overlay.
func (r *Room) Click(p math.Vec2, now time.Time) {
	if r.Overlay.ClickAt(p) {
		return
	}
	hit, ok := picking.Pick(r.rayAt(p), r.Scene.Clickables())
	if !ok {
		return
	}
	r.log.Debug("model clicked", zap.String("model", hit.Name), zap.Float32("distance", hit.Distance))
	r.Overlay.Open(hit.Name, now)
}

// Scroll zooms the camera.
func (r *Room) Scroll(dy float32) {
	r.Camera.HandleZoom(dy)
}

// KeyPressed routes a command key. Gizmo keys only act in dev mode;
// Escape also closes an open overlay. It reports whether the key was used.
func (r *Room) KeyPressed(k gizmo.Key) bool {
	if k == gizmo.KeyDetach && r.Overlay.IsOpen() {
		r.Overlay.Close()
		return true
	}
	if r.mode != ModeDev {
		return false
	}
	return r.Gizmo.HandleKey(k)
}
