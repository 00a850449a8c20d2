package mesh

import (
	gomath "math"

	"github.com/Faultbox/meshprep/pkg/math"
)

// DefaultPrecision is the number of decimal digits positions are rounded to
// when testing geometric coincidence. Four digits suits meshes modeled around
// unit scale; callers working at very large or very small scales should pick
// their own.
const DefaultPrecision = 4

// GridKey identifies a position rounded to a fixed decimal precision. Two
// vertices with equal keys are treated as geometrically coincident.
type GridKey [3]int64

// Quantize rounds p to precision decimal digits per coordinate.
func Quantize(p math.Vec3, precision int) GridKey {
	s := gomath.Pow(10, float64(precision))
	return GridKey{
		int64(gomath.Round(float64(p.X) * s)),
		int64(gomath.Round(float64(p.Y) * s)),
		int64(gomath.Round(float64(p.Z) * s)),
	}
}

// EdgeKey identifies a directed geometric edge by the grid keys of its two
// endpoints in traversal order.
type EdgeKey struct {
	A, B GridKey
}

// Reversed returns the key of the same edge traversed the other way.
func (k EdgeKey) Reversed() EdgeKey {
	return EdgeKey{A: k.B, B: k.A}
}

// Canonical returns the key with endpoints in a fixed order, so that both
// traversal directions of an edge map to the same key.
func (k EdgeKey) Canonical() EdgeKey {
	if lessKey(k.B, k.A) {
		return k.Reversed()
	}
	return k
}

func lessKey(a, b GridKey) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
