package picking

import (
	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p math.Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// NDCResult is the outcome of a pointer conversion.
type NDCResult struct {
	NDC      math.Vec2
	Fallback bool // The canvas rectangle was unusable
	Clamped  bool // The result was pulled back into [-1, 1]
}

// NDC converts a pointer position to normalized device coordinates using
// the canvas's current on-screen rectangle, which follows DPI scaling and
// canvas resizes. When that yields values outside [-1, 1] (a stale or
// empty rectangle) it logs and retries relative to the whole viewport.
// The result is always clamped to [-1, 1].
func NDC(pointer math.Vec2, canvas, viewport Rect, log *zap.Logger) NDCResult {
	var res NDCResult

	ndc, ok := toNDC(pointer, canvas)
	if !ok || !ndc.InRange(-1, 1) {
		if log != nil {
			log.Debug("pointer outside canvas rect, using viewport",
				zap.Float32("x", pointer.X), zap.Float32("y", pointer.Y),
				zap.Float32("ndc_x", ndc.X), zap.Float32("ndc_y", ndc.Y))
		}
		res.Fallback = true
		ndc, _ = toNDC(pointer, viewport)
	}

	if !ndc.InRange(-1, 1) {
		res.Clamped = true
		ndc = ndc.Clamp(-1, 1)
	}
	res.NDC = ndc
	return res
}

func toNDC(p math.Vec2, r Rect) (math.Vec2, bool) {
	if r.W <= 0 || r.H <= 0 {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: (p.X-r.X)/r.W*2 - 1,
		Y: -((p.Y-r.Y)/r.H)*2 + 1,
	}, true
}
