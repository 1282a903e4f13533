package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Clamp(t *testing.T) {
	v := Vec2{-3, 0.5}.Clamp(-1, 1)
	if v != (Vec2{-1, 0.5}) {
		t.Errorf("Vec2.Clamp() = %v", v)
	}
	if !v.InRange(-1, 1) {
		t.Error("clamped vector should be in range")
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 10, -4}
	b := Vec3{2, 20, 4}
	if got := a.Lerp(b, 0.5); got != (Vec3{1, 15, 0}) {
		t.Errorf("Vec3.Lerp(0.5) = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Vec3.Lerp(1) = %v, want %v", got, b)
	}
}

func TestSnapTo(t *testing.T) {
	tests := []struct {
		v, step, want float32
	}{
		{2.4, 1, 2},
		{2.6, 1, 3},
		{-2.4, 1, -2},
		{0.74, 0.5, 0.5},
		{0.76, 0.5, 1},
		{3.3, 0, 3.3},
		// halves round towards +inf
		{2.5, 1, 3},
		{-2.5, 1, -2},
		{-0.5, 1, 0},
		{-0.75, 0.5, -0.5},
	}
	for _, tt := range tests {
		got := SnapTo(tt.v, tt.step)
		if got != tt.want {
			t.Errorf("SnapTo(%v, %v) = %v, want %v", tt.v, tt.step, got, tt.want)
		}
		if again := SnapTo(got, tt.step); again != got {
			t.Errorf("SnapTo not idempotent: %v -> %v", got, again)
		}
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(0.785398, 4); got != float32(0.7854) {
		t.Errorf("RoundTo(0.785398, 4) = %v", got)
	}
	if got := RoundTo(-9.499, 2); got != float32(-9.5) {
		t.Errorf("RoundTo(-9.499, 2) = %v", got)
	}
	if got := RoundTo(-0.125, 2); got != float32(-0.12) {
		t.Errorf("RoundTo(-0.125, 2) = %v", got)
	}
}

func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Error("EaseOutCubic endpoints should be 0 and 1")
	}
	if EaseOutCubic(2) != 1 {
		t.Error("EaseOutCubic should clamp above 1")
	}
	prev := float32(0)
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float32(i) / 100)
		if v < prev {
			t.Fatalf("EaseOutCubic not monotonic at %d", i)
		}
		prev = v
	}
}
