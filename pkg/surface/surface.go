// Package surface partitions a triangle mesh into maximal groups of
// triangles connected only through smooth edges and assigns each group a
// numeric identifier. The identifier is written to every vertex of the
// group's triangles as a 4-component attribute, so a renderer can use it as
// a per-pixel discriminator when drawing edge highlights.
package surface

import (
	gomath "math"

	"github.com/Faultbox/meshprep/pkg/math"
	"github.com/Faultbox/meshprep/pkg/mesh"
)

// NoSurface marks a triangle excluded from segmentation (degenerate).
const NoSurface = ^uint32(0)

// Options controls segmentation.
type Options struct {
	// AngleDeg is the smallest face-normal angle in degrees that makes a
	// shared edge hard. Edges below it are smooth and connect triangles
	// into one surface.
	AngleDeg float64

	// Precision is the number of decimal digits positions are rounded to
	// when reconstructing shared edges.
	Precision int

	// FirstID is the identifier assigned to the first surface discovered by
	// a fresh segmenter, usually 0 or 1.
	FirstID uint32
}

// DefaultOptions returns the standard segmentation parameters.
func DefaultOptions() Options {
	return Options{
		AngleDeg:  1.0,
		Precision: mesh.DefaultPrecision,
	}
}

// Result is the output of one segmentation call.
type Result struct {
	// TriangleIDs holds the surface identifier of each triangle, in index
	// buffer order. Degenerate triangles are set to NoSurface.
	TriangleIDs []uint32

	// VertexAttr holds 4 components per vertex: the surface identifier in
	// the first three and 1 in the fourth, matching a color attribute
	// layout. Vertices on a hard edge belong to several surfaces and keep
	// the identifier of the last one that visited them.
	VertexAttr []float32

	// MaxID is the highest identifier the segmenter has assigned so far,
	// including earlier meshes processed by the same segmenter.
	MaxID uint32
}

// Segmenter assigns surface identifiers. One segmenter owns one identifier
// counter: meshes processed in sequence by the same segmenter receive
// disjoint, strictly increasing identifier ranges, so a caller can segment a
// whole scene and then normalize by a single constant (MaxID+1).
//
// A segmenter is not safe for concurrent use. Callers wanting parallelism
// create one segmenter per goroutine and accept independent identifier
// spaces.
type Segmenter struct {
	opts   Options
	nextID uint32
	maxID  uint32
}

// New creates a segmenter. Zero-valued Precision falls back to the default;
// AngleDeg is taken as-is, so pass DefaultOptions() and adjust.
func New(opts Options) *Segmenter {
	if opts.Precision <= 0 {
		opts.Precision = mesh.DefaultPrecision
	}
	return &Segmenter{opts: opts, nextID: opts.FirstID}
}

// MaxID returns the highest identifier assigned so far. It is only
// meaningful after at least one Segment call found a surface.
func (s *Segmenter) MaxID() uint32 {
	return s.maxID
}

// Segment floods the mesh's triangle adjacency graph, crossing only smooth
// edges, and labels every reachable triangle (and its vertices) with the
// current identifier before moving to the next unvisited triangle.
func (s *Segmenter) Segment(m *mesh.Mesh) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	triCount := m.TriangleCount()
	cosThr := float32(gomath.Cos(s.opts.AngleDeg * gomath.Pi / 180))

	normals, degenerate := faceData(m, s.opts.Precision)
	adj := buildAdjacency(m, s.opts.Precision, degenerate)

	ids := make([]uint32, triCount)
	for t := range ids {
		ids[t] = NoSurface
	}
	attr := make([]float32, m.VertexCount()*4)
	for i := 0; i < m.VertexCount(); i++ {
		attr[i*4+3] = 1
	}

	var queue []int
	for t := 0; t < triCount; t++ {
		if degenerate[t] || ids[t] != NoSurface {
			continue
		}

		id := s.nextID
		s.nextID++
		s.maxID = id

		ids[t] = id
		queue = append(queue[:0], t)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			s.label(m, attr, cur, id)

			for _, n := range adj[cur] {
				if ids[n] != NoSurface {
					continue
				}
				if normals[cur].Dot(normals[n]) < cosThr {
					continue // hard edge
				}
				ids[n] = id
				queue = append(queue, n)
			}
		}
	}

	return &Result{TriangleIDs: ids, VertexAttr: attr, MaxID: s.maxID}, nil
}

func (s *Segmenter) label(m *mesh.Mesh, attr []float32, t int, id uint32) {
	a, b, c := m.Triangle(t)
	v := float32(id)
	for _, i := range [3]uint32{a, b, c} {
		attr[i*4] = v
		attr[i*4+1] = v
		attr[i*4+2] = v
		attr[i*4+3] = 1
	}
}

// faceData computes per-triangle unit normals and flags degenerate
// triangles (two corners on the same grid cell).
func faceData(m *mesh.Mesh, precision int) (normals []math.Vec3, degenerate []bool) {
	triCount := m.TriangleCount()
	normals = make([]math.Vec3, triCount)
	degenerate = make([]bool, triCount)

	for t := 0; t < triCount; t++ {
		a, b, c := m.Triangle(t)
		ka := mesh.Quantize(m.Position(a), precision)
		kb := mesh.Quantize(m.Position(b), precision)
		kc := mesh.Quantize(m.Position(c), precision)
		if ka == kb || kb == kc || ka == kc {
			degenerate[t] = true
			continue
		}
		normals[t] = m.FaceNormal(t)
	}
	return normals, degenerate
}

// buildAdjacency links triangles that share a geometric edge, identified by
// the canonical quantized key of its endpoints. All triangles incident to
// one edge are linked pairwise; the smooth/hard decision happens during the
// flood fill.
func buildAdjacency(m *mesh.Mesh, precision int, degenerate []bool) [][]int {
	triCount := m.TriangleCount()
	edges := make(map[mesh.EdgeKey][]int)

	for t := 0; t < triCount; t++ {
		if degenerate[t] {
			continue
		}
		a, b, c := m.Triangle(t)
		keys := [3]mesh.GridKey{
			mesh.Quantize(m.Position(a), precision),
			mesh.Quantize(m.Position(b), precision),
			mesh.Quantize(m.Position(c), precision),
		}
		for j := 0; j < 3; j++ {
			k := mesh.EdgeKey{A: keys[j], B: keys[(j+1)%3]}.Canonical()
			edges[k] = append(edges[k], t)
		}
	}

	adj := make([][]int, triCount)
	for _, tris := range edges {
		for i := 0; i < len(tris); i++ {
			for j := i + 1; j < len(tris); j++ {
				adj[tris[i]] = append(adj[tris[i]], tris[j])
				adj[tris[j]] = append(adj[tris[j]], tris[i])
			}
		}
	}
	return adj
}
