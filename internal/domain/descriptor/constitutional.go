package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

func molWt(m *molecule.Molecule) (float64, error) {
	w := 0.0
	for _, a := range m.Atoms() {
		w += a.Mass() + float64(a.HCount)*hydrogenMass
	}
	return w, nil
}

func heavyAtomMolWt(m *molecule.Molecule) (float64, error) {
	w := 0.0
	for _, a := range m.Atoms() {
		if !a.IsHydrogen() {
			w += a.Mass()
		}
	}
	return w, nil
}

func exactMolWt(m *molecule.Molecule) (float64, error) {
	w := 0.0
	for _, a := range m.Atoms() {
		w += a.ExactMass() + float64(a.HCount)*hydrogenExactMass
	}
	return w, nil
}

func heavyAtoms(m *molecule.Molecule) (float64, error) {
	return float64(heavyAtomCount(m)), nil
}

// numAtoms counts every atom including all hydrogens.
func numAtoms(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, a := range m.Atoms() {
		n += 1 + a.HCount
	}
	return float64(n), nil
}

func numHeteroatoms(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(_ int, a molecule.Atom) bool {
		z := a.AtomicNumber()
		return z > 1 && z != 6
	}), nil
}

func numValenceElectrons(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, a := range m.Atoms() {
		n += a.Element.OuterElectrons - a.Charge + a.HCount
	}
	return float64(n), nil
}

func numRadicalElectrons(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, a := range m.Atoms() {
		n += a.Radicals
	}
	return float64(n), nil
}

func noCount(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(_ int, a molecule.Atom) bool {
		z := a.AtomicNumber()
		return z == 7 || z == 8
	}), nil
}

func nhohCount(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, a := range m.Atoms() {
		if z := a.AtomicNumber(); z == 7 || z == 8 {
			n += a.HCount
		}
	}
	return float64(n), nil
}

// fractionCSP3 is the share of carbons with four single bonds. Structures
// without carbon yield 0.
func fractionCSP3(m *molecule.Molecule) (float64, error) {
	carbons, sp3 := 0, 0
	for i, a := range m.Atoms() {
		if a.AtomicNumber() != 6 {
			continue
		}
		carbons++
		if hybridOf(m, i) == hybridSP3 {
			sp3++
		}
	}
	if carbons == 0 {
		return 0, nil
	}
	return float64(sp3) / float64(carbons), nil
}

func formalCharge(m *molecule.Molecule) (float64, error) {
	q := 0
	for _, a := range m.Atoms() {
		q += a.Charge
	}
	return float64(q), nil
}

//Personal.AI order the ending
