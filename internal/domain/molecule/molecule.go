// Package molecule is the structure model behind descriptor computation: a
// SMILES parser that produces an immutable molecular graph, plus the ring and
// aromaticity perception that descriptors rely on. Hydrogens are stored as
// per-atom counts; explicit [H] atoms attached to a heavy atom are folded into
// that count while parsing.
package molecule

import "math"

// BondType is the order of a bond as written or perceived.
type BondType int

const (
	BondSingle BondType = iota + 1
	BondDouble
	BondTriple
	BondQuadruple
	BondAromatic
)

// Order returns the bond order, 1.5 for aromatic bonds.
func (t BondType) Order() float64 {
	switch t {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	case BondQuadruple:
		return 4
	case BondAromatic:
		return 1.5
	default:
		return 1
	}
}

// valenceContribution is the bond's share of an atom's valence when aromatic
// bonds are counted as single; aromatic atoms add their extra pi bond
// separately.
func (t BondType) valenceContribution() int {
	switch t {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	case BondQuadruple:
		return 4
	default:
		return 1
	}
}

func (t BondType) String() string {
	switch t {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondQuadruple:
		return "quadruple"
	case BondAromatic:
		return "aromatic"
	default:
		return "unknown"
	}
}

// Atom is one vertex of the molecular graph.
type Atom struct {
	Element  *Element
	Isotope  int
	Charge   int
	Aromatic bool
	// HCount is the total number of attached hydrogens, implicit and explicit.
	HCount int
	// Radicals is the number of unpaired electrons on bracket atoms.
	Radicals int
	// Bracket reports whether the atom was written in [] form.
	Bracket bool
	Class   int
}

// AtomicNumber is a shortcut for a.Element.AtomicNumber.
func (a Atom) AtomicNumber() int { return a.Element.AtomicNumber }

// Symbol is a shortcut for a.Element.Symbol.
func (a Atom) Symbol() string { return a.Element.Symbol }

// IsHydrogen reports whether the atom itself is a hydrogen.
func (a Atom) IsHydrogen() bool { return a.Element.AtomicNumber == 1 }

// Mass returns the average mass of the atom without its hydrogens. Isotope
// labelled atoms use the mass number.
func (a Atom) Mass() float64 {
	if a.Isotope > 0 {
		return float64(a.Isotope)
	}
	return a.Element.AverageMass
}

// ExactMass returns the monoisotopic mass of the atom without its hydrogens.
func (a Atom) ExactMass() float64 {
	if a.Isotope > 0 {
		return float64(a.Isotope)
	}
	return a.Element.MonoisotopicMass
}

// Bond is one edge of the molecular graph.
type Bond struct {
	Begin int
	End   int
	Type  BondType
	// InRing reports whether the bond lies on at least one cycle.
	InRing bool
}

// Other returns the atom on the other side of the bond from atom.
func (b Bond) Other(atom int) int {
	if b.Begin == atom {
		return b.End
	}
	return b.Begin
}

// Neighbor is an adjacency entry.
type Neighbor struct {
	Atom int
	Bond int
}

// Ring is one ring of the smallest set of smallest rings.
type Ring struct {
	Atoms []int
	Bonds []int
}

// Size is the number of atoms in the ring.
func (r Ring) Size() int { return len(r.Atoms) }

// Molecule is an immutable molecular graph. Slices returned by accessors are
// shared with the molecule and must not be modified.
type Molecule struct {
	smiles     string
	atoms      []Atom
	bonds      []Bond
	adjacency  [][]Neighbor
	rings      []Ring
	components int
	distances  [][]int
}

// SMILES returns the input the molecule was parsed from.
func (m *Molecule) SMILES() string { return m.smiles }

// NumAtoms returns the number of graph atoms (heavy atoms plus unfolded [H]).
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of graph bonds.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// Atom returns atom i.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Atoms returns all atoms.
func (m *Molecule) Atoms() []Atom { return m.atoms }

// Bond returns bond i.
func (m *Molecule) Bond(i int) Bond { return m.bonds[i] }

// Bonds returns all bonds.
func (m *Molecule) Bonds() []Bond { return m.bonds }

// Neighbors returns the adjacency list of atom i.
func (m *Molecule) Neighbors(i int) []Neighbor { return m.adjacency[i] }

// Degree returns the number of graph neighbours of atom i.
func (m *Molecule) Degree(i int) int { return len(m.adjacency[i]) }

// HeavyDegree returns the number of non-hydrogen neighbours of atom i.
func (m *Molecule) HeavyDegree(i int) int {
	n := 0
	for _, nb := range m.adjacency[i] {
		if !m.atoms[nb.Atom].IsHydrogen() {
			n++
		}
	}
	return n
}

// BondBetween returns the index of the bond joining a and b, or -1.
func (m *Molecule) BondBetween(a, b int) int {
	for _, nb := range m.adjacency[a] {
		if nb.Atom == b {
			return nb.Bond
		}
	}
	return -1
}

// Rings returns the smallest set of smallest rings.
func (m *Molecule) Rings() []Ring { return m.rings }

// NumComponents returns the number of disconnected fragments.
func (m *Molecule) NumComponents() int { return m.components }

// AtomInRing reports whether atom i belongs to any ring.
func (m *Molecule) AtomInRing(i int) bool {
	for _, nb := range m.adjacency[i] {
		if m.bonds[nb.Bond].InRing {
			return true
		}
	}
	return false
}

// Distance returns the topological distance between atoms a and b, or -1 when
// they are in different fragments.
func (m *Molecule) Distance(a, b int) int { return m.distances[a][b] }

// IsRingAromatic reports whether every bond of r is aromatic.
func (m *Molecule) IsRingAromatic(r Ring) bool {
	for _, b := range r.Bonds {
		if m.bonds[b].Type != BondAromatic {
			return false
		}
	}
	return true
}

// valenceSum returns the atom's bond valence counting aromatic bonds as
// single, plus one for the pi bond of an aromatic atom.
func (m *Molecule) valenceSum(i int) int {
	sum := 0
	for _, nb := range m.adjacency[i] {
		sum += m.bonds[nb.Bond].Type.valenceContribution()
	}
	if m.atoms[i].Aromatic {
		sum++
	}
	return sum
}

// computeDistances fills the all-pairs shortest path matrix by BFS.
func (m *Molecule) computeDistances() {
	n := len(m.atoms)
	m.distances = make([][]int, n)
	queue := make([]int, 0, n)
	for src := 0; src < n; src++ {
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[src] = 0
		queue = append(queue[:0], src)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range m.adjacency[cur] {
				if dist[nb.Atom] < 0 {
					dist[nb.Atom] = dist[cur] + 1
					queue = append(queue, nb.Atom)
				}
			}
		}
		m.distances[src] = dist
	}
}

// WeightedDistances returns all-pairs shortest paths where each bond weighs
// 1/order (aromatic bonds 1/1.5). Unreachable pairs are +Inf.
func (m *Molecule) WeightedDistances() [][]float64 {
	n := len(m.atoms)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			if i != j {
				d[i][j] = math.Inf(1)
			}
		}
	}
	for _, b := range m.bonds {
		w := 1 / b.Type.Order()
		if w < d[b.Begin][b.End] {
			d[b.Begin][b.End] = w
			d[b.End][b.Begin] = w
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if math.IsInf(d[i][k], 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if s := d[i][k] + d[k][j]; s < d[i][j] {
					d[i][j] = s
				}
			}
		}
	}
	return d
}

//Personal.AI order the ending
