// Package camera provides the key-driven follow camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creeperworld/internal/engine/input"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Up is the world up direction.
var Up = math.Vec3{Y: 1}

// Camera looks along a direction derived from yaw and pitch and can trail a target.
type Camera struct {
	Position math.Vec3

	// Orientation (radians). Yaw -pi/2 looks down -Z.
	Yaw   float32
	Pitch float32

	// Angular speed in radians per second while a key is held.
	Sensitivity float32
	MaxPitch    float32

	// Follow offset: distance behind the target and height above it.
	FollowDistance float32
	FollowHeight   float32

	// Projection
	FOV  float32
	Near float32
	Far  float32
}

// New creates a camera at (0,1,5) looking down -Z.
func New() *Camera {
	return &Camera{
		Position:       math.Vec3{Y: 1, Z: 5},
		Yaw:            -math32.Pi / 2,
		Sensitivity:    math.Radians(180),
		MaxPitch:       math.Radians(89),
		FollowDistance: 5,
		FollowHeight:   3,
		FOV:            math.Radians(45),
		Near:           0.1,
		Far:            100,
	}
}

// Update turns the camera from held keys: W/S pitch up/down, A/D yaw left/right.
func (c *Camera) Update(keys input.State, dt float32) {
	step := c.Sensitivity * dt
	c.Pitch += keys.Axis(input.KeyS, input.KeyW) * step
	c.Yaw += keys.Axis(input.KeyA, input.KeyD) * step

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// Front returns the unit view direction.
func (c *Camera) Front() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: math32.Cos(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: math32.Sin(c.Yaw) * cp,
	}.Normalize()
}

// Forward returns the view direction flattened onto the ground plane.
func (c *Camera) Forward() math.Vec3 {
	return c.Front().Flat()
}

// Right returns the horizontal direction to the right of the view.
func (c *Camera) Right() math.Vec3 {
	return c.Front().Cross(Up).Flat()
}

// Follow places the camera behind and above target along the current facing.
func (c *Camera) Follow(target math.Vec3) {
	c.Position = target.
		Sub(c.Forward().Scale(c.FollowDistance)).
		Add(math.Vec3{Y: c.FollowHeight})
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front()), Up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}
