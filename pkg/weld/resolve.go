package weld

import "github.com/Faultbox/meshprep/pkg/mesh"

// unionFind is a disjoint-set over vertex indices with path compression and
// union by rank. Rank ties go to the smaller index, so representatives are
// deterministic regardless of merge order.
type unionFind struct {
	parent map[uint32]uint32
	rank   map[uint32]int
}

func newUnionFind() *unionFind {
	return &unionFind{
		parent: make(map[uint32]uint32),
		rank:   make(map[uint32]int),
	}
}

func (u *unionFind) find(i uint32) uint32 {
	p, ok := u.parent[i]
	if !ok || p == i {
		return i
	}
	root := u.find(p)
	u.parent[i] = root
	return root
}

func (u *unionFind) union(a, b uint32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		if rb < ra {
			ra, rb = rb, ra
		}
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// aliases returns the flattened table: every index whose representative is
// not itself, mapped directly to that representative.
func (u *unionFind) aliases() map[uint32]uint32 {
	out := make(map[uint32]uint32)
	for i := range u.parent {
		if root := u.find(i); root != i {
			out[i] = root
		}
	}
	return out
}

// resolveMerges turns matched edge pairs into a flattened alias table.
//
// The triangle buffer is re-scanned rather than iterating the pairs directly:
// the same geometric edge can be referenced through different vertex indices
// depending on which triangle's copy is visited, and the lookup below is
// keyed by the index pairs the matcher recorded. Each consumed pair is
// removed from the lookup together with its sibling key so revisiting the
// same triangle edge cannot re-merge it.
func resolveMerges(m *mesh.Mesh, pairs []mergePair, opts Options) map[uint32]uint32 {
	lookup := make(map[[2]uint32][2]uint32, len(pairs)*2)
	for _, p := range pairs {
		lookup[[2]uint32{p.a0, p.a1}] = [2]uint32{p.b0, p.b1}
		lookup[[2]uint32{p.b0, p.b1}] = [2]uint32{p.a0, p.a1}
	}

	uf := newUnionFind()

	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := m.Triangle(t)
		edges := [3][2]uint32{{ia, ib}, {ib, ic}, {ic, ia}}

		for _, e := range edges {
			cur := e
			sib, ok := lookup[cur]
			if !ok {
				cur = [2]uint32{e[1], e[0]}
				sib, ok = lookup[cur]
			}
			if !ok {
				continue
			}
			delete(lookup, cur)
			delete(lookup, sib)

			// Pick the vertex-to-vertex correspondence by proximity, not
			// winding: if the first endpoints are farther apart than the
			// tolerance, they belong to opposite corners of the edge.
			if m.Position(cur[0]).Distance(m.Position(sib[0])) > opts.PairTolerance {
				sib[0], sib[1] = sib[1], sib[0]
			}

			// Resolve through the aliases so far to keep the graph shallow.
			c0, c1 := uf.find(cur[0]), uf.find(cur[1])
			s0, s1 := uf.find(sib[0]), uf.find(sib[1])

			// Sibling collapsed onto the current edge after resolution;
			// nothing left to merge.
			if c0 == s0 && c1 == s1 {
				continue
			}

			uf.union(c0, s0)
			uf.union(c1, s1)
		}
	}

	return uf.aliases()
}
