// Package scene implements the scene graph: transforms, detached object trees,
// and an arena of nodes addressed by generation-checked handles.
package scene

import "github.com/Faultbox/creeperworld/pkg/math"

// Transform holds position, Euler orientation (radians) and scale for one node.
// The local matrix is cached and rebuilt after any mutation.
type Transform struct {
	position    math.Vec3
	orientation math.Vec3
	scale       math.Vec3

	local math.Mat4
	dirty bool
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{
		scale: math.Splat(1),
		local: math.Identity(),
	}
}

// Move adds delta to the position.
func (t *Transform) Move(delta math.Vec3) {
	t.position = t.position.Add(delta)
	t.dirty = true
}

// SetPosition replaces the position.
func (t *Transform) SetPosition(p math.Vec3) {
	t.position = p
	t.dirty = true
}

// Rotate adds delta to the Euler orientation.
func (t *Transform) Rotate(delta math.Vec3) {
	t.orientation = t.orientation.Add(delta)
	t.dirty = true
}

// SetOrientation replaces the Euler orientation.
func (t *Transform) SetOrientation(o math.Vec3) {
	t.orientation = o
	t.dirty = true
}

// Grow multiplies the scale component-wise by factor.
func (t *Transform) Grow(factor math.Vec3) {
	t.scale = t.scale.Mul(factor)
	t.dirty = true
}

// SetScale replaces the scale.
func (t *Transform) SetScale(s math.Vec3) {
	t.scale = s
	t.dirty = true
}

// Position returns the local position.
func (t *Transform) Position() math.Vec3 {
	return t.position
}

// Orientation returns the Euler orientation in radians.
func (t *Transform) Orientation() math.Vec3 {
	return t.orientation
}

// Scale returns the local scale.
func (t *Transform) Scale() math.Vec3 {
	return t.scale
}

// Matrix returns translate * rotate * scale.
func (t *Transform) Matrix() math.Mat4 {
	if t.dirty {
		t.local = math.TranslateVec(t.position).
			Mul(math.RotateEuler(t.orientation)).
			Mul(math.ScaleVec(t.scale))
		t.dirty = false
	}
	return t.local
}
