// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// OrbitCamera orbits around a target point. Drag and zoom input is
// accumulated as a delta that Update bleeds off by Damping each frame.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle above the XZ plane, radians
	Yaw      float32 // Horizontal angle from +Z towards +X, radians

	// Projection
	FOV    float32 // Vertical, degrees
	Near   float32
	Far    float32
	Aspect float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32

	// Damping is the fraction of pending motion applied per update.
	// Zero applies input immediately.
	Damping float32

	// Enabled gates user input; the gizmo disables it while dragging.
	Enabled bool

	deltaYaw, deltaPitch float32
	zoomScale            float32
}

// NewOrbitCamera creates a camera at eye looking at target.
func NewOrbitCamera(eye, target math.Vec3) *OrbitCamera {
	c := &OrbitCamera{
		FOV:             60,
		Near:            0.1,
		Far:             1000,
		Aspect:          16.0 / 9.0,
		MinDistance:     2,
		MaxDistance:     100,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.002,
		Damping:         0.05,
		Enabled:         true,
		zoomScale:       1,
	}
	c.Target = target
	c.SetPosition(eye)
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.Pitch) * math32.Sin(c.Yaw)
	y := c.Distance * math32.Sin(c.Pitch)
	z := c.Distance * math32.Cos(c.Pitch) * math32.Cos(c.Yaw)

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// SetPosition places the camera at eye, keeping the target, and
// recomputes the orbit angles. Pending motion is discarded.
func (c *OrbitCamera) SetPosition(eye math.Vec3) {
	offset := eye.Sub(c.Target)
	dist := offset.Length()
	if dist < 1e-4 {
		return
	}
	c.Distance = dist
	c.Pitch = math32.Asin(offset.Y / dist)
	c.Yaw = math32.Atan2(offset.X, offset.Z)
	c.deltaYaw, c.deltaPitch, c.zoomScale = 0, 0, 1
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV*math.Pi/180, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// SetViewport updates the aspect ratio after a resize.
func (c *OrbitCamera) SetViewport(width, height float32) {
	if width > 0 && height > 0 {
		c.Aspect = width / height
	}
}

// HandleDrag queues an orbit from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	if !c.Enabled {
		return
	}
	c.deltaYaw -= deltaX * c.DragSensitivity
	c.deltaPitch += deltaY * c.DragSensitivity
}

// HandleZoom queues a dolly from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	if !c.Enabled {
		return
	}
	c.zoomScale *= 1 - delta*c.ZoomSensitivity
}

// HandlePan moves the target across the view plane by a drag delta.
func (c *OrbitCamera) HandlePan(deltaX, deltaY float32) {
	if !c.Enabled {
		return
	}
	speed := c.Distance * c.PanSensitivity

	right := math.Vec3{
		X: math32.Cos(c.Yaw),
		Z: -math32.Sin(c.Yaw),
	}
	forward := c.Target.Sub(c.Position()).Normalize()
	up := right.Cross(forward).Normalize()

	c.Target = c.Target.Add(right.Scale(-deltaX * speed)).Add(up.Scale(deltaY * speed))
}

// Update applies pending motion. It returns true while the camera is
// still settling.
func (c *OrbitCamera) Update() bool {
	factor := c.Damping
	if factor <= 0 || factor > 1 {
		factor = 1
	}

	c.Yaw += c.deltaYaw * factor
	c.Pitch = math.Clamp(c.Pitch+c.deltaPitch*factor, c.MinPitch, c.MaxPitch)

	zoomStep := 1 + (c.zoomScale-1)*factor
	c.Distance = math.Clamp(c.Distance*zoomStep, c.MinDistance, c.MaxDistance)

	c.deltaYaw *= 1 - factor
	c.deltaPitch *= 1 - factor
	c.zoomScale = 1 + (c.zoomScale-1)*(1-factor)

	const settle = 1e-5
	moving := abs(c.deltaYaw) > settle || abs(c.deltaPitch) > settle || abs(c.zoomScale-1) > settle
	if !moving {
		c.deltaYaw, c.deltaPitch, c.zoomScale = 0, 0, 1
	}
	return moving
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
