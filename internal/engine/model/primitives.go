package model

import "github.com/chewxy/math32"

// Square returns a unit quad in the XY plane centered on the origin, facing +Z.
func Square() *Mesh {
	m := &Mesh{
		Name: "square",
		Vertices: []Vertex{
			{Position: [3]float32{0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-0.5, -0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
			{Position: [3]float32{-0.5, 0.5, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 3, 1, 2, 3},
	}
	m.ComputeBounds()
	return m
}

// cubeFace describes one face of the unit cube by its normal and in-plane axes.
type cubeFace struct {
	normal, u, v [3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
}

// Cube returns a unit cube centered on the origin with per-face normals and UVs.
func Cube() *Mesh {
	m := &Mesh{Name: "cube"}
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		for i, c := range corners {
			var p [3]float32
			for k := 0; k < 3; k++ {
				p[k] = f.normal[k]*0.5 + f.u[k]*c[0] + f.v[k]*c[1]
			}
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: f.normal, TexCoord: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}

// Primitive returns a named primitive mesh, or nil if the name is unknown.
func Primitive(name string) *Mesh {
	switch name {
	case "square", "quad":
		return Square()
	case "cube", "box":
		return Cube()
	}
	return nil
}

func sqrtf(x float32) float32 {
	return math32.Sqrt(x)
}
