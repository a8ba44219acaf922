package daycycle

import (
	"testing"

	"github.com/Faultbox/creeperworld/pkg/math"
)

const eps = 1e-5

func TestColorAtPhaseBoundaries(t *testing.T) {
	tests := []struct {
		t    float32
		want math.Vec3
	}{
		{0, Day},
		{30, Dusk},
		{60, Night},
		{90, Day},
	}
	for _, tt := range tests {
		if got := ColorAt(tt.t, DefaultPhase); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestColorAtInterpolates(t *testing.T) {
	tests := []struct {
		t    float32
		want math.Vec3
	}{
		{15, math.Vec3{X: 1, Y: 0.8, Z: 0.6}},
		{45, math.Vec3{X: 0.525, Y: 0.325, Z: 0.15}},
		{75, math.Vec3{X: 0.525, Y: 0.525, Z: 0.55}},
		{7.5, math.Vec3{X: 1, Y: 0.9, Z: 0.8}},
	}
	for _, tt := range tests {
		if got := ColorAt(tt.t, DefaultPhase); !got.ApproxEqual(tt.want, eps) {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	c := New(0)
	if c.Length() != 90 {
		t.Fatalf("Length = %v, want 90", c.Length())
	}
	for i := 0; i < 89; i++ {
		c.Advance(1)
	}
	if c.Time() != 89 {
		t.Fatalf("Time = %v, want 89", c.Time())
	}
	c.Advance(1)
	if c.Time() != 0 {
		t.Errorf("Time after wrap = %v, want 0", c.Time())
	}
	if got := c.Ambient(); got != Day {
		t.Errorf("Ambient after wrap = %v, want white", got)
	}
}

func TestSunPath(t *testing.T) {
	tests := []struct {
		t     float32
		wantX float32
	}{
		{0, -30},
		{30, 0},
		{60, 30},
		{60.5, SunHiddenX},
		{85, SunHiddenX},
	}
	for _, tt := range tests {
		got := SunAt(tt.t, DefaultPhase)
		want := math.Vec3{X: tt.wantX, Y: SunHeight, Z: SunDepth}
		if !got.ApproxEqual(want, eps) {
			t.Errorf("SunAt(%v) = %v, want %v", tt.t, got, want)
		}
	}
}
