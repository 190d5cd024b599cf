package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

// Functional group counts in the style of the fr_* family.

func frBenzene(m *molecule.Molecule) (float64, error) {
	return ringCounter(aromaticRing, carbocycle, func(_ *molecule.Molecule, r molecule.Ring) bool {
		return r.Size() == 6
	})(m)
}

func frHalogen(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(_ int, a molecule.Atom) bool { return isHalogen(a.AtomicNumber()) }), nil
}

// frCO counts carbonyl C=O bonds.
func frCO(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, b := range m.Bonds() {
		if b.Type != molecule.BondDouble {
			continue
		}
		zb, ze := m.Atom(b.Begin).AtomicNumber(), m.Atom(b.End).AtomicNumber()
		if (zb == 6 && ze == 8) || (zb == 8 && ze == 6) {
			n++
		}
	}
	return float64(n), nil
}

// hydroxylOn reports whether O atom i is an OH whose single carbon neighbour
// satisfies pred.
func hydroxylOn(m *molecule.Molecule, i int, pred func(c int) bool) bool {
	a := m.Atom(i)
	if a.AtomicNumber() != 8 || a.Aromatic || a.Charge != 0 || a.HCount != 1 || m.HeavyDegree(i) != 1 {
		return false
	}
	return hasNeighbor(m, i, func(j int, _ molecule.Bond) bool {
		return m.Atom(j).AtomicNumber() == 6 && pred(j)
	})
}

func frAlOH(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, _ molecule.Atom) bool {
		return hydroxylOn(m, i, func(c int) bool {
			return !m.Atom(c).Aromatic && hybridOf(m, c) == hybridSP3
		})
	}), nil
}

func frArOH(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, _ molecule.Atom) bool {
		return hydroxylOn(m, i, func(c int) bool { return m.Atom(c).Aromatic })
	}), nil
}

// frNH2 counts primary amines.
func frNH2(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, a molecule.Atom) bool {
		return a.AtomicNumber() == 7 && !a.Aromatic && a.Charge == 0 && a.HCount == 2 &&
			m.HeavyDegree(i) == 1 && countBonds(m, i).single == 1
	}), nil
}

func frNitrile(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, a molecule.Atom) bool {
		return a.AtomicNumber() == 7 && m.HeavyDegree(i) == 1 && hasNeighbor(m, i, func(j int, b molecule.Bond) bool {
			return b.Type == molecule.BondTriple && m.Atom(j).AtomicNumber() == 6
		})
	}), nil
}

// frEther counts divalent oxygens between two carbons, esters included.
func frEther(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, a molecule.Atom) bool {
		if a.AtomicNumber() != 8 || a.Aromatic || m.Degree(i) != 2 {
			return false
		}
		for _, nb := range m.Neighbors(i) {
			if m.Atom(nb.Atom).AtomicNumber() != 6 || m.Bond(nb.Bond).Type != molecule.BondSingle {
				return false
			}
		}
		return true
	}), nil
}

//Personal.AI order the ending
