package gizmo

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/picking"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// BeginDrag starts a drag at pointer. It returns false when idle.
func (c *Controller) BeginDrag(ray picking.Ray, pointer math.Vec2) bool {
	if c.target == nil || c.dragging {
		return false
	}

	c.dragging = true
	c.dragPointer = pointer
	c.startPosition = c.target.Position
	c.startRotation = c.target.Rotation
	c.startScale = c.target.Scale
	c.dragHit, c.dragHitOK = ray.IntersectPlaneY(c.startPosition.Y)

	if c.OnDraggingChanged != nil {
		c.OnDraggingChanged(true)
	}
	return true
}

// Drag applies pointer motion to the target according to the mode and
// raises an object-change event.
func (c *Controller) Drag(ray picking.Ray, pointer math.Vec2, now time.Time) error {
	if !c.dragging {
		return nil
	}
	if c.target == nil || c.target.Parent == nil {
		return ErrTargetGone
	}

	delta := pointer.Sub(c.dragPointer)
	switch c.state {
	case Translating:
		hit, ok := ray.IntersectPlaneY(c.startPosition.Y)
		if !ok || !c.dragHitOK {
			// Pointer above the horizon: keep the last valid position.
			break
		}
		moved := hit.Sub(c.dragHit)
		c.target.Position = math.Vec3{
			X: c.startPosition.X + moved.X,
			Y: c.startPosition.Y,
			Z: c.startPosition.Z + moved.Z,
		}
	case Rotating:
		rot := c.startRotation
		rot.Y += delta.X * RotatePerPixel
		c.target.Rotation = rot
	case Scaling:
		factor := 1 - delta.Y*ScalePerPixel
		s := c.startScale.Scale(factor)
		if s.X < MinScale || s.Y < MinScale || s.Z < MinScale {
			break
		}
		c.target.Scale = s
	}

	c.objectChanged(now)
	return nil
}

// EndDrag finishes a drag and flushes any pending change, so the stored
// position is snapped once the pointer is released.
func (c *Controller) EndDrag(now time.Time) {
	if !c.dragging {
		return
	}
	c.endDrag(now)
}

func (c *Controller) endDrag(now time.Time) {
	c.dragging = false
	if c.pending {
		c.flush(now)
	}
	if c.OnDraggingChanged != nil {
		c.OnDraggingChanged(false)
	}
}

// Tick runs the trailing edge of the debounce window. Call once per frame.
func (c *Controller) Tick(now time.Time) error {
	if c.target != nil && c.target.Parent == nil {
		return ErrTargetGone
	}
	if c.pending && now.Sub(c.lastFlush) >= c.debounce {
		c.flush(now)
	}
	return nil
}

// objectChanged is the per-movement event. Snapping and logging run at
// most once per debounce window; the rest wait for Tick or EndDrag.
func (c *Controller) objectChanged(now time.Time) {
	c.pending = true
	if now.Sub(c.lastFlush) >= c.debounce {
		c.flush(now)
	}
}

func (c *Controller) flush(now time.Time) {
	c.pending = false
	c.lastFlush = now
	if c.target == nil {
		return
	}

	if c.grid != nil && c.grid.Snap {
		c.target.Position = c.grid.SnapXZ(c.target.Position)
	}

	p, r, s := c.target.Position, c.target.Rotation, c.target.Scale
	c.log.Debug("transform",
		zap.String("model", c.target.Meta.ModelName),
		zap.Stringer("mode", c.mode),
		zap.Float32s("position", []float32{p.X, p.Y, p.Z}),
		zap.Float32s("rotation", []float32{r.X, r.Y, r.Z}),
		zap.Float32s("scale", []float32{s.X, s.Y, s.Z}),
	)
	if c.OnChange != nil {
		c.OnChange(c.target)
	}
}
