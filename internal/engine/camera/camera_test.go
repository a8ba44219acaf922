package camera

import (
	"testing"

	"github.com/Faultbox/creeperworld/internal/engine/input"
	"github.com/Faultbox/creeperworld/pkg/math"
)

const eps = 1e-5

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New()
	if got := c.Front(); !got.ApproxEqual(math.Vec3{Z: -1}, eps) {
		t.Errorf("Front = %v, want -Z", got)
	}
	if got := c.Right(); !got.ApproxEqual(math.Vec3{X: 1}, eps) {
		t.Errorf("Right = %v, want +X", got)
	}
}

func TestUpdateTurnsAtSensitivity(t *testing.T) {
	c := New()
	c.Update(input.Of(input.KeyD), 0.5)
	// half a second at 180 deg/s turns a quarter circle: from -Z to +X
	if got := c.Front(); !got.ApproxEqual(math.Vec3{X: 1}, 1e-4) {
		t.Errorf("D should turn right, Front = %v", got)
	}
}

func TestPitchClamped(t *testing.T) {
	c := New()
	c.Update(input.Of(input.KeyW), 10)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.Update(input.Of(input.KeyS), 100)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -c.MaxPitch)
	}
	if f := c.Front(); f.Y > -0.99 {
		t.Errorf("looking nearly straight down expected, got %v", f)
	}
}

func TestFollow(t *testing.T) {
	c := New()
	c.Pitch = math.Radians(30)
	c.Follow(math.Vec3{X: 2, Z: 1})
	// facing -Z, so 5 behind is +Z; pitch must not change the horizontal offset
	want := math.Vec3{X: 2, Y: 3, Z: 6}
	if !c.Position.ApproxEqual(want, eps) {
		t.Errorf("Position = %v, want %v", c.Position, want)
	}
}
