package weld

import (
	gomath "math"

	"github.com/Faultbox/meshprep/pkg/math"
	"github.com/Faultbox/meshprep/pkg/mesh"
)

// edgeRecord is one triangle edge waiting for its sibling: the edge of the
// adjacent triangle that traverses the same two positions the other way.
type edgeRecord struct {
	i0, i1   uint32 // vertex indices in traversal order
	normal   math.Vec3
	consumed bool
}

// mergePair is a weldable edge pair: edge (a0,a1) of one triangle and edge
// (b0,b1) of an adjacent triangle, both referencing original vertex indices.
type mergePair struct {
	a0, a1 uint32
	b0, b1 uint32
}

// matchEdges scans all triangles and pairs up edges from different triangles
// that traverse the same quantized positions in opposite directions with a
// face-normal angle at or below the threshold.
//
// Each geometric edge is matched at most once: the record is consumed on the
// first sibling hit whether or not the angle test passes, so a non-manifold
// edge with more than two incident triangles leaves the extra triangles
// unmatched.
func matchEdges(m *mesh.Mesh, opts Options) []mergePair {
	cosThr := float32(gomath.Cos(opts.AngleDeg * gomath.Pi / 180))

	table := make(map[mesh.EdgeKey]*edgeRecord)
	var pairs []mergePair

	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := m.Triangle(t)
		pa, pb, pc := m.Position(ia), m.Position(ib), m.Position(ic)

		keys := [3]mesh.GridKey{
			mesh.Quantize(pa, opts.Precision),
			mesh.Quantize(pb, opts.Precision),
			mesh.Quantize(pc, opts.Precision),
		}
		// Degenerate: two corners on the same grid cell.
		if keys[0] == keys[1] || keys[1] == keys[2] || keys[0] == keys[2] {
			continue
		}

		normal := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
		idx := [3]uint32{ia, ib, ic}

		for j := 0; j < 3; j++ {
			i0, i1 := idx[j], idx[(j+1)%3]
			fwd := mesh.EdgeKey{A: keys[j], B: keys[(j+1)%3]}

			if rec, ok := table[fwd.Reversed()]; ok {
				if rec.consumed {
					continue
				}
				rec.consumed = true
				if rec.normal.Dot(normal) >= cosThr {
					pairs = append(pairs, mergePair{
						a0: rec.i0, a1: rec.i1,
						b0: i0, b1: i1,
					})
				}
				continue
			}
			if _, ok := table[fwd]; !ok {
				table[fwd] = &edgeRecord{i0: i0, i1: i1, normal: normal}
			}
		}
	}

	return pairs
}
