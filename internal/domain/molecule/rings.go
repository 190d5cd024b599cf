package molecule

import (
	"math/bits"
	"sort"
)

// bitset is a fixed-width set of bond indices used for cycle-space algebra
// over GF(2).
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b bitset) has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

func (b bitset) xor(o bitset) {
	for i := range b {
		b[i] ^= o[i]
	}
}

// lowest returns the lowest set bit, or -1 for the empty set.
func (b bitset) lowest() int {
	for i, w := range b {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

func (b bitset) key() string {
	buf := make([]byte, 0, len(b)*8)
	for _, w := range b {
		for s := 0; s < 64; s += 8 {
			buf = append(buf, byte(w>>uint(s)))
		}
	}
	return string(buf)
}

type cycleCandidate struct {
	atoms []int
	bonds []int
	edges bitset
}

// countComponents returns the number of connected fragments.
func countComponents(n int, adjacency [][]Neighbor) int {
	seen := make([]bool, n)
	components := 0
	stack := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		components++
		seen[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adjacency[cur] {
				if !seen[nb.Atom] {
					seen[nb.Atom] = true
					stack = append(stack, nb.Atom)
				}
			}
		}
	}
	return components
}

// findSSSR computes a minimum cycle basis (the smallest set of smallest
// rings) with Horton's candidate set: for every root and every non-tree edge
// the cycle formed by the two shortest paths back to the root. Candidates are
// accepted shortest first while they stay linearly independent.
func findSSSR(n int, bonds []Bond, adjacency [][]Neighbor, components int) []Ring {
	rank := len(bonds) - n + components
	if rank <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []cycleCandidate

	dist := make([]int, n)
	parentAtom := make([]int, n)
	parentBond := make([]int, n)
	queue := make([]int, 0, n)

	for root := 0; root < n; root++ {
		for i := range dist {
			dist[i] = -1
			parentAtom[i] = -1
			parentBond[i] = -1
		}
		dist[root] = 0
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adjacency[cur] {
				if dist[nb.Atom] < 0 {
					dist[nb.Atom] = dist[cur] + 1
					parentAtom[nb.Atom] = cur
					parentBond[nb.Atom] = nb.Bond
					queue = append(queue, nb.Atom)
				}
			}
		}

		for bi, b := range bonds {
			x, y := b.Begin, b.End
			if dist[x] < 0 || dist[y] < 0 {
				continue
			}
			if parentBond[x] == bi || parentBond[y] == bi {
				continue
			}
			if d := dist[x] - dist[y]; d > 1 || d < -1 {
				continue
			}
			px := pathToRoot(x, parentAtom)
			py := pathToRoot(y, parentAtom)
			if !disjointExceptRoot(px, py) {
				continue
			}

			edges := newBitset(len(bonds))
			edges.set(bi)
			ringBonds := []int{bi}
			for _, a := range px[:len(px)-1] {
				edges.set(parentBond[a])
				ringBonds = append(ringBonds, parentBond[a])
			}
			for _, a := range py[:len(py)-1] {
				edges.set(parentBond[a])
				ringBonds = append(ringBonds, parentBond[a])
			}
			k := edges.key()
			if seen[k] {
				continue
			}
			seen[k] = true

			// root..x followed by y..(neighbour of root) is the cyclic order.
			atoms := make([]int, 0, len(px)+len(py)-1)
			for i := len(px) - 1; i >= 0; i-- {
				atoms = append(atoms, px[i])
			}
			atoms = append(atoms, py[:len(py)-1]...)
			sort.Ints(ringBonds)
			candidates = append(candidates, cycleCandidate{atoms: atoms, bonds: ringBonds, edges: edges})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if len(candidates[i].bonds) != len(candidates[j].bonds) {
			return len(candidates[i].bonds) < len(candidates[j].bonds)
		}
		a, b := candidates[i].bonds, candidates[j].bonds
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})

	var basis []bitset
	var pivots []int
	rings := make([]Ring, 0, rank)
	for _, c := range candidates {
		v := c.edges.clone()
		for i, row := range basis {
			if v.has(pivots[i]) {
				v.xor(row)
			}
		}
		p := v.lowest()
		if p < 0 {
			continue
		}
		basis = append(basis, v)
		pivots = append(pivots, p)
		rings = append(rings, Ring{Atoms: c.atoms, Bonds: c.bonds})
		if len(rings) == rank {
			break
		}
	}
	return rings
}

// pathToRoot returns [atom, parent(atom), ..., root].
func pathToRoot(atom int, parent []int) []int {
	path := []int{atom}
	for parent[atom] >= 0 {
		atom = parent[atom]
		path = append(path, atom)
	}
	return path
}

func disjointExceptRoot(a, b []int) bool {
	set := make(map[int]bool, len(a))
	for _, x := range a[:len(a)-1] {
		set[x] = true
	}
	for _, y := range b[:len(b)-1] {
		if set[y] {
			return false
		}
	}
	return true
}

//Personal.AI order the ending
