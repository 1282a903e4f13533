package room

import (
	"time"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
)

// Flipbook shows one child of Node at a time, cycling at Rate frames per
// second.
type Flipbook struct {
	Node  *scene.Node
	Rate  float32
	start time.Time
	frame int
}

// NewFlipbook starts the animation at now with frame 0 visible.
func NewFlipbook(n *scene.Node, rate float32, now time.Time) *Flipbook {
	f := &Flipbook{Node: n, Rate: rate, start: now, frame: -1}
	f.show(0)
	return f
}

// Frame returns the visible frame index.
func (f *Flipbook) Frame() int {
	return f.frame
}

// Advance selects the frame for now and reports whether it changed.
func (f *Flipbook) Advance(now time.Time) bool {
	count := len(f.Node.Children)
	if count == 0 || f.Rate <= 0 {
		return false
	}
	elapsed := now.Sub(f.start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	i := int(elapsed*float64(f.Rate)) % count
	if i == f.frame {
		return false
	}
	f.show(i)
	return true
}

func (f *Flipbook) show(i int) {
	for j, c := range f.Node.Children {
		c.Visible = j == i
	}
	f.frame = i
}
