package mesh

import "github.com/Faultbox/meshprep/pkg/math"

// ComputeNormals builds a per-vertex normal buffer (x,y,z per vertex) by
// accumulating face normals, then averaging across vertices that share a
// quantized position. This reduces faceted appearance on models whose
// vertices are duplicated along seams.
func ComputeNormals(m *Mesh, precision int) []float32 {
	normals := make([]math.Vec3, m.VertexCount())

	for t := 0; t < m.TriangleCount(); t++ {
		n := m.FaceNormal(t)
		a, b, c := m.Triangle(t)
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	// Group vertices by quantized position and average their normals.
	posMap := make(map[GridKey][]int)
	for i := 0; i < m.VertexCount(); i++ {
		key := Quantize(m.Position(uint32(i)), precision)
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals[idx])
		}
		for _, idx := range idxs {
			normals[idx] = sum
		}
	}

	out := make([]float32, 0, m.VertexCount()*3)
	for _, n := range normals {
		u := n.Normalize()
		out = append(out, u.X, u.Y, u.Z)
	}
	return out
}
