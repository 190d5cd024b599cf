package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

type ringFilter func(m *molecule.Molecule, r molecule.Ring) bool

func aromaticRing(m *molecule.Molecule, r molecule.Ring) bool { return m.IsRingAromatic(r) }

func aliphaticRing(m *molecule.Molecule, r molecule.Ring) bool { return !m.IsRingAromatic(r) }

// saturatedRing holds only single bonds.
func saturatedRing(m *molecule.Molecule, r molecule.Ring) bool {
	for _, b := range r.Bonds {
		if m.Bond(b).Type != molecule.BondSingle {
			return false
		}
	}
	return true
}

func carbocycle(m *molecule.Molecule, r molecule.Ring) bool {
	for _, a := range r.Atoms {
		if m.Atom(a).AtomicNumber() != 6 {
			return false
		}
	}
	return true
}

func heterocycle(m *molecule.Molecule, r molecule.Ring) bool { return !carbocycle(m, r) }

// ringCounter counts SSSR rings matching every filter.
func ringCounter(filters ...ringFilter) Func {
	return func(m *molecule.Molecule) (float64, error) {
		n := 0
	next:
		for _, r := range m.Rings() {
			for _, f := range filters {
				if !f(m, r) {
					continue next
				}
			}
			n++
		}
		return float64(n), nil
	}
}

//Personal.AI order the ending
