// Package weld merges mesh vertices that were split along geometrically
// smooth edges. Model conversion pipelines commonly duplicate vertices along
// seams; when two triangles meet at a near-coplanar edge through such
// duplicates, the edge would register as a false outline seam. Welding
// rewrites the index buffer so both triangles reference one copy of each
// shared vertex. Positions are never moved and triangles are never added,
// removed, or rewound.
package weld

import (
	"github.com/Faultbox/meshprep/pkg/mesh"
)

// Options controls the welding pass.
type Options struct {
	// AngleDeg is the maximum angle in degrees between the face normals of
	// two triangles for their shared edge to be welded. It is taken as-is,
	// so a zero value welds only exactly coplanar edges; start from
	// DefaultOptions() and adjust.
	AngleDeg float64

	// Precision is the number of decimal digits positions are rounded to
	// when testing coincidence.
	Precision int

	// PairTolerance is the maximum distance between two edge endpoints for
	// them to be considered the same corner when pairing a matched edge with
	// its sibling. Pairs farther apart are assumed to be the opposite corner
	// and swapped, which prevents twisted welds.
	PairTolerance float32
}

// DefaultOptions returns the standard welding parameters.
func DefaultOptions() Options {
	return Options{
		AngleDeg:      1.0,
		Precision:     mesh.DefaultPrecision,
		PairTolerance: 0.1,
	}
}

// withDefaults fills zero-valued Precision and PairTolerance. AngleDeg is
// left alone: zero is a meaningful threshold.
func (o Options) withDefaults() Options {
	if o.Precision <= 0 {
		o.Precision = mesh.DefaultPrecision
	}
	if o.PairTolerance <= 0 {
		o.PairTolerance = 0.1
	}
	return o
}

// Weld welds the mesh described by the flat position and index buffers using
// DefaultOptions and returns a new index buffer of the same length. The
// position buffer is interleaved x,y,z; the index buffer holds vertex index
// triples in winding order.
func Weld(positions []float32, indices []uint32) ([]uint32, error) {
	return WeldWithOptions(positions, indices, DefaultOptions())
}

// WeldWithOptions is like Weld with caller-supplied parameters.
func WeldWithOptions(positions []float32, indices []uint32, opts Options) ([]uint32, error) {
	aliases, err := Aliases(positions, indices, opts)
	if err != nil {
		return nil, err
	}
	return ApplyAliases(indices, aliases), nil
}

// Aliases computes the alias table for the mesh: a mapping from every vertex
// index replaced by the weld to its canonical representative. The table is
// transitively closed, so applying it once is enough.
func Aliases(positions []float32, indices []uint32, opts Options) (map[uint32]uint32, error) {
	m := mesh.New(positions, indices)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	pairs := matchEdges(m, opts)
	return resolveMerges(m, pairs, opts), nil
}

// ApplyAliases returns a new index buffer with every aliased index replaced
// by its representative. Indices without an alias pass through unchanged.
// The presence check is explicit so index 0 works as both the source and the
// target of an alias.
func ApplyAliases(indices []uint32, aliases map[uint32]uint32) []uint32 {
	out := make([]uint32, len(indices))
	for i, idx := range indices {
		if rep, ok := aliases[idx]; ok {
			out[i] = rep
		} else {
			out[i] = idx
		}
	}
	return out
}
