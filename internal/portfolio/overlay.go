package portfolio

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/engine/tween"
	"github.com/Faultbox/pastel-room/internal/logger"
	"github.com/Faultbox/pastel-room/pkg/math"
)

// DefaultFade is how long an overlay takes to fade in.
const DefaultFade = 250 * time.Millisecond

// Box is a screen rectangle in pixels.
type Box struct {
	Min, Max math.Vec2
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p math.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Panel is one opened overlay.
type Panel struct {
	Content Content
	// Opacity runs from 0 to 1 while the panel fades in.
	Opacity float32
}

// Overlay shows at most one Panel at a time.
type Overlay struct {
	// ContentBox is where the content box was last drawn. Clicks outside
	// it land on the backdrop.
	ContentBox Box
	Fade       time.Duration

	tweens *tween.Manager
	panel  *Panel
	log    *zap.Logger
}

// NewOverlay creates a closed overlay. Fades run on tweens, which may be nil
// to show panels at full opacity.
func NewOverlay(tweens *tween.Manager, log *zap.Logger) *Overlay {
	log = logger.OrNop(log)
	return &Overlay{Fade: DefaultFade, tweens: tweens, log: log}
}

// Open shows the content for name, discarding any open panel.
func (o *Overlay) Open(name string, now time.Time) *Panel {
	if o.panel != nil {
		o.log.Debug("overlay replaced", zap.String("from", o.panel.Content.Name), zap.String("to", name))
	}

	p := &Panel{Content: Lookup(name)}
	if o.tweens != nil && o.Fade > 0 {
		o.tweens.Add(tween.Float(&p.Opacity, 1, o.Fade), now)
	} else {
		p.Opacity = 1
	}
	o.panel = p
	o.log.Info("overlay opened", zap.String("model", name), zap.String("content", p.Content.Name))
	return p
}

// Close hides the overlay.
func (o *Overlay) Close() {
	if o.panel == nil {
		return
	}
	o.log.Debug("overlay closed", zap.String("content", o.panel.Content.Name))
	o.panel = nil
}

// Current returns the open panel, or nil.
func (o *Overlay) Current() *Panel {
	return o.panel
}

// IsOpen reports whether a panel is shown.
func (o *Overlay) IsOpen() bool {
	return o.panel != nil
}

// ClickAt handles a click while the overlay may be open. A click outside
// the content box closes it. It reports whether the overlay consumed the
// click, which is always the case while open.
func (o *Overlay) ClickAt(p math.Vec2) bool {
	if o.panel == nil {
		return false
	}
	if !o.ContentBox.Contains(p) {
		o.Close()
	}
	return true
}
