package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

const hydrogenMass = 1.008
const hydrogenExactMass = 1.00782503207

type hybridization int

const (
	hybridSP hybridization = iota
	hybridSP2
	hybridSP3
)

// bondCounts tallies the heavy-atom bonds of one atom by type.
type bondCounts struct {
	single, double, triple, aromatic int
}

func isHeavy(a molecule.Atom) bool { return a.AtomicNumber() > 1 }

func heavyAtomCount(m *molecule.Molecule) int {
	n := 0
	for _, a := range m.Atoms() {
		if isHeavy(a) {
			n++
		}
	}
	return n
}

// heavyBonds returns the bonds joining two heavy atoms.
func heavyBonds(m *molecule.Molecule) []molecule.Bond {
	atoms := m.Atoms()
	out := make([]molecule.Bond, 0, m.NumBonds())
	for _, b := range m.Bonds() {
		if isHeavy(atoms[b.Begin]) && isHeavy(atoms[b.End]) {
			out = append(out, b)
		}
	}
	return out
}

func countBonds(m *molecule.Molecule, i int) bondCounts {
	var c bondCounts
	for _, nb := range m.Neighbors(i) {
		if !isHeavy(m.Atom(nb.Atom)) {
			continue
		}
		switch m.Bond(nb.Bond).Type {
		case molecule.BondDouble:
			c.double++
		case molecule.BondTriple, molecule.BondQuadruple:
			c.triple++
		case molecule.BondAromatic:
			c.aromatic++
		default:
			c.single++
		}
	}
	return c
}

// total counts heavy neighbours.
func (c bondCounts) total() int { return c.single + c.double + c.triple + c.aromatic }

func hybridOf(m *molecule.Molecule, i int) hybridization {
	c := countBonds(m, i)
	switch {
	case c.triple > 0 || c.double > 1:
		return hybridSP
	case c.double > 0 || c.aromatic > 0 || m.Atom(i).Aromatic:
		return hybridSP2
	default:
		return hybridSP3
	}
}

// bondValence is the sum of bond orders plus attached hydrogens, with
// aromatic bonds counted as 1.5.
func bondValence(m *molecule.Molecule, i int) float64 {
	v := float64(m.Atom(i).HCount)
	for _, nb := range m.Neighbors(i) {
		v += m.Bond(nb.Bond).Type.Order()
	}
	return v
}

// hasDoubleTo reports whether atom i carries a double bond to an atom whose
// atomic number is in zs.
func hasDoubleTo(m *molecule.Molecule, i int, zs ...int) bool {
	for _, nb := range m.Neighbors(i) {
		if m.Bond(nb.Bond).Type != molecule.BondDouble {
			continue
		}
		z := m.Atom(nb.Atom).AtomicNumber()
		for _, want := range zs {
			if z == want {
				return true
			}
		}
	}
	return false
}

func hasNeighbor(m *molecule.Molecule, i int, pred func(j int, b molecule.Bond) bool) bool {
	for _, nb := range m.Neighbors(i) {
		if pred(nb.Atom, m.Bond(nb.Bond)) {
			return true
		}
	}
	return false
}

func isHalogen(z int) bool { return z == 9 || z == 17 || z == 35 || z == 53 }

// inRingOfSize reports whether atom i lies on a ring of exactly size atoms.
func inRingOfSize(m *molecule.Molecule, i, size int) bool {
	for _, r := range m.Rings() {
		if r.Size() != size {
			continue
		}
		for _, a := range r.Atoms {
			if a == i {
				return true
			}
		}
	}
	return false
}

func countAtoms(m *molecule.Molecule, pred func(i int, a molecule.Atom) bool) float64 {
	n := 0
	for i, a := range m.Atoms() {
		if pred(i, a) {
			n++
		}
	}
	return float64(n)
}

//Personal.AI order the ending
