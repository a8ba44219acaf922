package model

// ComputeBounds recalculates the bounding box from the vertices.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := range m.Vertices {
		updateBounds(&b, m.Vertices[i].Position)
	}
	m.Bounds = b
}

// FlipV returns a copy of the mesh with every V texture coordinate replaced by 1-V.
// Used for assets authored with (0,0) at the lower-left corner of texture space.
func (m *Mesh) FlipV() *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  m.Indices,
		Bounds:   m.Bounds,
	}
	copy(out.Vertices, m.Vertices)
	for i := range out.Vertices {
		out.Vertices[i].TexCoord[1] = 1 - out.Vertices[i].TexCoord[1]
	}
	return out
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on imported meshes.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	type posKey struct {
		x, y, z int32
	}
	quantize := func(v float32) int32 {
		return int32(v / epsilon)
	}

	posMap := make(map[posKey][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := posKey{quantize(p[0]), quantize(p[1]), quantize(p[2])}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum [3]float32
		for _, idx := range idxs {
			sum[0] += vertices[idx].Normal[0]
			sum[1] += vertices[idx].Normal[1]
			sum[2] += vertices[idx].Normal[2]
		}

		avg := normalize(sum)
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func normalize(v [3]float32) [3]float32 {
	l := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if l < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	inv := 1 / sqrtf(l)
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}
