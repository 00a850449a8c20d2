package surface

import (
	"errors"
	"testing"

	"github.com/Faultbox/meshprep/pkg/mesh"
)

// cube returns a closed unit cube with 8 shared corner vertices and 12
// triangles wound counter-clockwise viewed from outside, optionally offset
// along x.
func cube(offset float32) ([]float32, []uint32) {
	positions := []float32{
		0, 0, 0, // 0
		1, 0, 0, // 1
		1, 1, 0, // 2
		0, 1, 0, // 3
		0, 0, 1, // 4
		1, 0, 1, // 5
		1, 1, 1, // 6
		0, 1, 1, // 7
	}
	for i := 0; i < len(positions); i += 3 {
		positions[i] += offset
	}
	indices := []uint32{
		4, 5, 6, 4, 6, 7, // front z=1
		1, 0, 3, 1, 3, 2, // back z=0
		0, 4, 7, 0, 7, 3, // left x=0
		5, 1, 2, 5, 2, 6, // right x=1
		0, 1, 5, 0, 5, 4, // bottom y=0
		3, 7, 6, 3, 6, 2, // top y=1
	}
	return positions, indices
}

func distinctIDs(ids []uint32) map[uint32]int {
	counts := make(map[uint32]int)
	for _, id := range ids {
		if id != NoSurface {
			counts[id]++
		}
	}
	return counts
}

func TestSegmentCubeFaces(t *testing.T) {
	// All dihedral angles between faces are 90 degrees, each face is flat:
	// any threshold below 90 yields one surface per face.
	positions, indices := cube(0)
	s := New(DefaultOptions())

	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	ids := distinctIDs(res.TriangleIDs)
	if len(ids) != 6 {
		t.Fatalf("cube produced %d surfaces, want 6 (ids: %v)", len(ids), ids)
	}
	for id, count := range ids {
		if count != 2 {
			t.Errorf("surface %d spans %d triangles, want 2", id, count)
		}
	}
	if res.MaxID != 5 {
		t.Errorf("MaxID = %d, want 5", res.MaxID)
	}
}

func TestSegmentCoplanarComponent(t *testing.T) {
	// Two coplanar triangles sharing an edge: one surface, one identifier,
	// and all vertices labeled with it.
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
	}
	indices := []uint32{0, 1, 2, 2, 1, 3}
	s := New(DefaultOptions())

	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if res.TriangleIDs[0] != res.TriangleIDs[1] {
		t.Errorf("coplanar triangles got different surfaces: %v", res.TriangleIDs)
	}
	if res.MaxID != 0 {
		t.Errorf("MaxID = %d, want 0", res.MaxID)
	}
	for v := 0; v < 4; v++ {
		if res.VertexAttr[v*4] != 0 || res.VertexAttr[v*4+3] != 1 {
			t.Errorf("vertex %d attr = %v, want id 0 with alpha 1",
				v, res.VertexAttr[v*4:v*4+4])
		}
	}
}

func TestSegmentDisconnectedCubes(t *testing.T) {
	p1, i1 := cube(0)
	p2, i2 := cube(10)

	// One mesh holding both cubes, far apart: identifiers must differ
	// between the components.
	positions := append(append([]float32{}, p1...), p2...)
	indices := append([]uint32{}, i1...)
	for _, i := range i2 {
		indices = append(indices, i+8)
	}

	s := New(DefaultOptions())
	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	first := distinctIDs(res.TriangleIDs[:12])
	second := distinctIDs(res.TriangleIDs[12:])
	if len(first) < 1 || len(second) < 1 {
		t.Fatal("both cubes should be segmented")
	}
	for id := range first {
		if _, shared := second[id]; shared {
			t.Errorf("identifier %d appears in both cubes", id)
		}
	}
}

func TestSegmentCounterAcrossMeshes(t *testing.T) {
	// One segmenter across two meshes: disjoint, strictly increasing ranges.
	p, i := cube(0)
	s := New(DefaultOptions())

	first, err := s.Segment(mesh.New(p, i))
	if err != nil {
		t.Fatalf("first Segment() error: %v", err)
	}
	second, err := s.Segment(mesh.New(p, i))
	if err != nil {
		t.Fatalf("second Segment() error: %v", err)
	}

	if first.MaxID != 5 {
		t.Errorf("first MaxID = %d, want 5", first.MaxID)
	}
	if second.MaxID != 11 {
		t.Errorf("second MaxID = %d, want 11", second.MaxID)
	}
	for _, id := range second.TriangleIDs {
		if id <= first.MaxID {
			t.Fatalf("second mesh reused identifier %d", id)
		}
	}
	if s.MaxID() != second.MaxID {
		t.Errorf("Segmenter.MaxID() = %d, want %d", s.MaxID(), second.MaxID)
	}
}

func TestSegmentIndependentInstances(t *testing.T) {
	// Two segmenters own separate counters: both start at FirstID.
	p, i := cube(0)

	a, err := New(DefaultOptions()).Segment(mesh.New(p, i))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	b, err := New(DefaultOptions()).Segment(mesh.New(p, i))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if a.MaxID != b.MaxID {
		t.Errorf("MaxID diverged between instances: %d vs %d", a.MaxID, b.MaxID)
	}
	for j := range a.TriangleIDs {
		if a.TriangleIDs[j] != b.TriangleIDs[j] {
			t.Fatalf("triangle %d labeled %d vs %d across instances",
				j, a.TriangleIDs[j], b.TriangleIDs[j])
		}
	}
}

func TestSegmentFirstID(t *testing.T) {
	opts := DefaultOptions()
	opts.FirstID = 1
	s := New(opts)

	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	res, err := s.Segment(mesh.New(positions, []uint32{0, 1, 2}))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if res.TriangleIDs[0] != 1 {
		t.Errorf("first identifier = %d, want 1", res.TriangleIDs[0])
	}
}

func TestSegmentDegenerateTriangle(t *testing.T) {
	positions := []float32{
		0, 0, 0,
		0, 0, 0, // duplicate of 0
		0, 1, 0,
		2, 0, 0,
		3, 0, 0,
		2, 1, 0,
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}
	s := New(DefaultOptions())

	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if res.TriangleIDs[0] != NoSurface {
		t.Errorf("degenerate triangle got surface %d, want NoSurface", res.TriangleIDs[0])
	}
	if res.TriangleIDs[1] != 0 {
		t.Errorf("healthy triangle got surface %d, want 0", res.TriangleIDs[1])
	}
}

func TestSegmentVertexAttrLayout(t *testing.T) {
	positions, indices := cube(0)
	s := New(DefaultOptions())

	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if got, want := len(res.VertexAttr), len(positions)/3*4; got != want {
		t.Fatalf("VertexAttr length = %d, want %d", got, want)
	}
	for v := 0; v < len(positions)/3; v++ {
		a := res.VertexAttr[v*4 : v*4+4]
		if a[0] != a[1] || a[1] != a[2] {
			t.Errorf("vertex %d: identifier components differ: %v", v, a)
		}
		if a[3] != 1 {
			t.Errorf("vertex %d: fourth component = %v, want 1", v, a[3])
		}
	}
}

func TestSegmentSplitVertices(t *testing.T) {
	// The same welded-seam geometry the welder handles: duplicated seam
	// vertices still connect the triangles, because adjacency is by
	// position, not index.
	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 0, 0, // duplicates 1
		1, 1, 0,
		0, 1, 0, // duplicates 2
	}
	indices := []uint32{0, 1, 2, 3, 4, 5}
	s := New(DefaultOptions())

	res, err := s.Segment(mesh.New(positions, indices))
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	if res.TriangleIDs[0] != res.TriangleIDs[1] {
		t.Errorf("split-seam triangles got different surfaces: %v", res.TriangleIDs)
	}
}

func TestSegmentInvalidMesh(t *testing.T) {
	s := New(DefaultOptions())
	if _, err := s.Segment(mesh.New(nil, nil)); !errors.Is(err, mesh.ErrEmptyPositions) {
		t.Errorf("Segment on empty mesh error = %v, want %v", err, mesh.ErrEmptyPositions)
	}
}
