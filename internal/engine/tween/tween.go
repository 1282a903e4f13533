// Package tween advances time-based interpolations once per frame.
package tween

import (
	"time"

	"github.com/Faultbox/pastel-room/pkg/math"
)

// State is a set of named numeric fields. Vectors (position, rotation,
// scale) interpolate component-wise; scalars interpolate linearly. Both
// use the same eased factor.
type State struct {
	Vectors map[string]math.Vec3
	Scalars map[string]float32
}

// Lerp returns the state between s and to at factor f. Fields missing from
// to keep s's value.
func (s State) Lerp(to State, f float32) State {
	out := State{}
	if len(s.Vectors) > 0 {
		out.Vectors = make(map[string]math.Vec3, len(s.Vectors))
		for k, a := range s.Vectors {
			b, ok := to.Vectors[k]
			if !ok {
				b = a
			}
			out.Vectors[k] = a.Lerp(b, f)
		}
	}
	if len(s.Scalars) > 0 {
		out.Scalars = make(map[string]float32, len(s.Scalars))
		for k, a := range s.Scalars {
			b, ok := to.Scalars[k]
			if !ok {
				b = a
			}
			out.Scalars[k] = math.Lerp(a, b, f)
		}
	}
	return out
}

// Tween interpolates from one state to another over a duration.
type Tween struct {
	From     State
	To       State
	Duration time.Duration
	// Apply writes an interpolated state back to the target.
	Apply func(State)
	// Done runs once after the final Apply.
	Done func()

	start time.Time
}

// Progress returns the eased completion in [0, 1] at now. It is
// non-decreasing in now and exactly 1 at or after the end.
func (t *Tween) Progress(now time.Time) float32 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.Duration {
		return 1
	}
	return math.EaseOutCubic(float32(elapsed) / float32(t.Duration))
}

// Manager holds the active tweens. Tweens are independent; there is no
// ordering among them and no cancellation.
type Manager struct {
	active []*Tween
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Add starts t at now.
func (m *Manager) Add(t *Tween, now time.Time) {
	t.start = now
	m.active = append(m.active, t)
}

// Update advances every tween to now. Finished tweens receive their exact
// target state and are removed. Tweens added from a callback start on the
// next Update.
func (m *Manager) Update(now time.Time) {
	current := m.active
	m.active = nil

	var kept, finished []*Tween
	for _, t := range current {
		p := t.Progress(now)
		if p >= 1 {
			if t.Apply != nil {
				t.Apply(t.From.Lerp(t.To, 1).snapTo(t.To))
			}
			finished = append(finished, t)
			continue
		}
		if t.Apply != nil {
			t.Apply(t.From.Lerp(t.To, p))
		}
		kept = append(kept, t)
	}
	m.active = append(kept, m.active...)

	for _, t := range finished {
		if t.Done != nil {
			t.Done()
		}
	}
}

// snapTo replaces interpolated values with the exact targets, so float
// rounding in Lerp never leaves a finished tween off target.
func (s State) snapTo(to State) State {
	for k, v := range to.Vectors {
		if _, ok := s.Vectors[k]; ok {
			s.Vectors[k] = v
		}
	}
	for k, v := range to.Scalars {
		if _, ok := s.Scalars[k]; ok {
			s.Scalars[k] = v
		}
	}
	return s
}

// Len returns the number of active tweens.
func (m *Manager) Len() int {
	return len(m.active)
}
