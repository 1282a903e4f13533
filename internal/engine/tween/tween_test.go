package tween

import (
	"testing"
	"time"

	"github.com/Faultbox/pastel-room/internal/engine/scene"
	"github.com/Faultbox/pastel-room/pkg/math"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestProgressMonotonic(t *testing.T) {
	tw := &Tween{Duration: time.Second}
	m := NewManager()
	m.Add(tw, t0)

	prev := float32(-1)
	for ms := -100; ms <= 1500; ms += 7 {
		p := tw.Progress(t0.Add(time.Duration(ms) * time.Millisecond))
		if p < prev {
			t.Fatalf("progress decreased at %dms: %v < %v", ms, p, prev)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress out of range at %dms: %v", ms, p)
		}
		prev = p
	}
	if tw.Progress(t0.Add(time.Second)) != 1 {
		t.Error("progress must be exactly 1 at duration")
	}
}

func TestEaseOutCubicShape(t *testing.T) {
	tw := &Tween{Duration: time.Second}
	tw.start = t0
	// Halfway in time is 1 - 0.5^3 = 0.875 of the way.
	if p := tw.Progress(t0.Add(500 * time.Millisecond)); p != 0.875 {
		t.Errorf("progress at half time = %v, want 0.875", p)
	}
}

func TestFloatReachesExactTarget(t *testing.T) {
	value := float32(0.1)
	m := NewManager()
	done := 0
	tw := Float(&value, 0.7, 300*time.Millisecond)
	tw.Done = func() { done++ }
	m.Add(tw, t0)

	m.Update(t0.Add(100 * time.Millisecond))
	if value <= 0.1 || value >= 0.7 {
		t.Errorf("mid-tween value %v not between endpoints", value)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 active tween, got %d", m.Len())
	}

	m.Update(t0.Add(time.Second))
	if value != 0.7 {
		t.Errorf("final value = %v, want exactly 0.7", value)
	}
	if m.Len() != 0 {
		t.Errorf("finished tween not removed")
	}
	if done != 1 {
		t.Errorf("Done called %d times", done)
	}

	m.Update(t0.Add(2 * time.Second))
	if done != 1 {
		t.Error("Done called again after removal")
	}
}

func TestTransformTween(t *testing.T) {
	node := scene.NewNode("dog", scene.KindModel)
	node.Position = math.Vec3{X: 1}

	m := NewManager()
	target := math.Vec3{X: 3, Y: 1, Z: -2}
	m.Add(Transform(node, target, math.Euler{Y: math.Pi}, math.Splat(2), time.Second), t0)

	var xs []float32
	for ms := 0; ms <= 1200; ms += 100 {
		m.Update(t0.Add(time.Duration(ms) * time.Millisecond))
		xs = append(xs, node.Position.X)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			t.Fatalf("position went backwards: %v", xs)
		}
	}
	if node.Position != target || node.Rotation.Y != math.Pi || node.Scale != math.Splat(2) {
		t.Errorf("final transform: pos %v rot %v scale %v", node.Position, node.Rotation, node.Scale)
	}
}

func TestIndependentTweens(t *testing.T) {
	a, b := float32(0), float32(10)
	m := NewManager()
	m.Add(Float(&a, 1, 100*time.Millisecond), t0)
	m.Add(Float(&b, 20, time.Second), t0)

	m.Update(t0.Add(200 * time.Millisecond))
	if a != 1 {
		t.Errorf("short tween: %v", a)
	}
	if b == 20 || b == 10 {
		t.Errorf("long tween should be mid-flight, got %v", b)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 active, got %d", m.Len())
	}
}

func TestZeroDuration(t *testing.T) {
	var v math.Vec3
	m := NewManager()
	m.Add(Vec3(&v, math.Vec3{X: 5}, 0), t0)
	m.Update(t0)
	if v.X != 5 || m.Len() != 0 {
		t.Errorf("zero-duration tween: v=%v active=%d", v, m.Len())
	}
}

func TestAddFromCallback(t *testing.T) {
	a, b, c := float32(0), float32(0), float32(0)
	m := NewManager()

	// A running tween that queues another on its first frame.
	first := Float(&a, 1, time.Second)
	apply := first.Apply
	queued := false
	first.Apply = func(s State) {
		apply(s)
		if !queued {
			queued = true
			m.Add(Float(&b, 4, 100*time.Millisecond), t0)
		}
	}
	m.Add(first, t0)

	// A finished tween that chains from its final Apply.
	last := Float(&c, 1, 0)
	applyLast := last.Apply
	last.Apply = func(s State) {
		applyLast(s)
		m.Add(Float(&c, 2, 0), t0)
	}
	m.Add(last, t0)

	m.Update(t0.Add(10 * time.Millisecond))
	if m.Len() != 3 {
		t.Fatalf("expected 3 active after callbacks added 2, got %d", m.Len())
	}
	if b != 0 || c != 1 {
		t.Errorf("added tweens must wait for the next update: b=%v c=%v", b, c)
	}

	m.Update(t0.Add(2 * time.Second))
	if a != 1 || b != 4 || c != 2 || m.Len() != 0 {
		t.Errorf("after finish: a=%v b=%v c=%v active=%d", a, b, c, m.Len())
	}
}
