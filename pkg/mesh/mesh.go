// Package mesh provides the shared triangle mesh representation used by the
// welding and segmentation pipelines: flat position/index buffers plus the
// quantized position keys that stand in for exact geometric equality.
package mesh

import (
	"errors"

	"github.com/Faultbox/meshprep/pkg/math"
)

// Buffer precondition errors.
var (
	ErrEmptyPositions = errors.New("mesh: empty position buffer")
	ErrPositionCount  = errors.New("mesh: position buffer length must be a multiple of 3")
	ErrIndexCount     = errors.New("mesh: index buffer length must be a multiple of 3")
	ErrIndexRange     = errors.New("mesh: index outside position buffer")
)

// Mesh is a triangle mesh over flat buffers: Positions holds x,y,z triples,
// Indices holds vertex index triples. Winding order defines each face normal.
type Mesh struct {
	Positions []float32
	Indices   []uint32
}

// New wraps the given buffers without copying.
func New(positions []float32, indices []uint32) *Mesh {
	return &Mesh{Positions: positions, Indices: indices}
}

// VertexCount returns the number of vertices in the position buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i uint32) math.Vec3 {
	return math.Vec3{
		X: m.Positions[i*3],
		Y: m.Positions[i*3+1],
		Z: m.Positions[i*3+2],
	}
}

// Triangle returns the three vertex indices of triangle t in winding order.
func (m *Mesh) Triangle(t int) (a, b, c uint32) {
	return m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
}

// FaceNormal returns the unit face normal of triangle t, derived from its
// winding order. Returns the zero vector for degenerate triangles.
func (m *Mesh) FaceNormal(t int) math.Vec3 {
	a, b, c := m.Triangle(t)
	pa := m.Position(a)
	e1 := m.Position(b).Sub(pa)
	e2 := m.Position(c).Sub(pa)
	return e1.Cross(e2).Normalize()
}

// Validate checks the caller preconditions: non-empty buffers, lengths that
// are multiples of 3, and every index inside the position buffer.
func (m *Mesh) Validate() error {
	if len(m.Positions) == 0 {
		return ErrEmptyPositions
	}
	if len(m.Positions)%3 != 0 {
		return ErrPositionCount
	}
	if len(m.Indices)%3 != 0 {
		return ErrIndexCount
	}
	n := uint32(m.VertexCount())
	for _, i := range m.Indices {
		if i >= n {
			return ErrIndexRange
		}
	}
	return nil
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
}

// Center returns the center point of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the length of the box diagonal.
func (b Bounds) Extent() float32 {
	return b.Max.Sub(b.Min).Length()
}

// Bounds returns the axis-aligned bounding box of all positions.
// Returns a zero box for an empty mesh.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) < 3 {
		return Bounds{}
	}
	b := Bounds{Min: m.Position(0), Max: m.Position(0)}
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.Z < b.Min.Z {
			b.Min.Z = p.Z
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
		if p.Z > b.Max.Z {
			b.Max.Z = p.Z
		}
	}
	return b
}
