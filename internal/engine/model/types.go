// Package model provides CPU-side mesh data, materials and primitive mesh generators.
package model

import (
	"image"

	"github.com/Faultbox/creeperworld/pkg/math"
)

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds triangle geometry ready for GPU upload.
// The renderer keys its GPU buffers on the Mesh pointer, so meshes are shared by pointer.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Texture is a decoded image bound to a named sampler.
type Texture struct {
	Name    string
	Sampler string
	Image   *image.RGBA
}

// DefaultSampler is the sampler uniform every shader program declares.
const DefaultSampler = "baseTexture"

// Material holds Phong reflection coefficients.
type Material struct {
	Ambient   float32
	Diffuse   float32
	Specular  float32
	Shininess float32
}

// DefaultMaterial returns the coefficients used when an asset does not specify any.
func DefaultMaterial() Material {
	return Material{Ambient: 0.1, Diffuse: 1.0, Specular: 0.3, Shininess: 4}
}

// Vec4 packs the material for the shader's vec4 uniform.
func (m Material) Vec4() [4]float32 {
	return [4]float32{m.Ambient, m.Diffuse, m.Specular, m.Shininess}
}
