package scene

import (
	"fmt"

	"github.com/Faultbox/creeperworld/internal/engine/model"
	"github.com/Faultbox/creeperworld/pkg/math"
)

// Part is one drawable piece of a node: geometry plus its texture and material bindings.
type Part struct {
	Mesh     *model.Mesh
	Textures []*model.Texture
	Material model.Material
}

// Object is a node subtree that has not been inserted into a Graph yet.
// Asset import and scene construction build Objects; Graph.Spawn moves them into the arena.
type Object struct {
	Name      string
	Transform Transform
	Parts     []Part
	Children  []*Object
}

// NewObject creates an object with an identity transform.
func NewObject(name string, parts ...Part) *Object {
	return &Object{
		Name:      name,
		Transform: NewTransform(),
		Parts:     parts,
	}
}

// Move translates the object.
func (o *Object) Move(delta math.Vec3) *Object {
	o.Transform.Move(delta)
	return o
}

// Rotate adds to the object's Euler orientation.
func (o *Object) Rotate(delta math.Vec3) *Object {
	o.Transform.Rotate(delta)
	return o
}

// Grow scales the object component-wise.
func (o *Object) Grow(factor math.Vec3) *Object {
	o.Transform.Grow(factor)
	return o
}

// SetOrientation replaces the object's Euler orientation.
func (o *Object) SetOrientation(e math.Vec3) *Object {
	o.Transform.SetOrientation(e)
	return o
}

// AddChild appends child and returns its index.
func (o *Object) AddChild(child *Object) int {
	o.Children = append(o.Children, child)
	return len(o.Children) - 1
}

// complete reports whether the subtree holds no nil children.
func (o *Object) complete() bool {
	for _, c := range o.Children {
		if c == nil || !c.complete() {
			return false
		}
	}
	return true
}

// Child returns the i-th child.
func (o *Object) Child(i int) (*Object, error) {
	if i < 0 || i >= len(o.Children) {
		return nil, fmt.Errorf("%q child %d of %d: %w", o.Name, i, len(o.Children), ErrIndexOutOfRange)
	}
	return o.Children[i], nil
}

// Count returns the number of objects in the subtree, including o.
func (o *Object) Count() int {
	n := 1
	for _, c := range o.Children {
		n += c.Count()
	}
	return n
}
