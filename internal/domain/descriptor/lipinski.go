package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

// numHDonors counts N-H, O-H and S-H groups on neutral (or protonated
// aliphatic) nitrogens, aliphatic oxygens and aliphatic sulfurs.
func numHDonors(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, a molecule.Atom) bool {
		if a.HCount == 0 {
			return false
		}
		v := bondValence(m, i)
		switch a.AtomicNumber() {
		case 7:
			if a.Aromatic {
				return a.HCount == 1 && a.Charge == 0
			}
			return (a.Charge == 0 && v == 3) || (a.Charge == 1 && v == 4)
		case 8, 16:
			return !a.Aromatic && a.HCount == 1 && a.Charge == 0
		}
		return false
	}), nil
}

// attachedToMultiplyBondedHetero reports whether atom i is singly bonded to
// an atom that carries a double bond to O, N, P or S. This rules out the
// nitrogen of amides and the hydroxyl oxygen of acids.
func attachedToMultiplyBondedHetero(m *molecule.Molecule, i int) bool {
	return hasNeighbor(m, i, func(j int, b molecule.Bond) bool {
		return b.Type == molecule.BondSingle && hasDoubleTo(m, j, 7, 8, 15, 16)
	})
}

func numHAcceptors(m *molecule.Molecule) (float64, error) {
	return countAtoms(m, func(i int, a molecule.Atom) bool {
		switch a.AtomicNumber() {
		case 8, 16:
			if a.Aromatic {
				if a.Charge != 0 {
					return false
				}
				return !hasNeighbor(m, i, func(j int, _ molecule.Bond) bool {
					nb := m.Atom(j)
					if nb.Aromatic && nb.AtomicNumber() == 7 {
						return true
					}
					return nb.Aromatic && nb.AtomicNumber() == 6 &&
						hasNeighbor(m, j, func(k int, _ molecule.Bond) bool {
							return k != i && m.Atom(k).Aromatic && m.Atom(k).AtomicNumber() == 7
						})
				})
			}
			if a.Charge < 0 {
				return true
			}
			if bondValence(m, i) != 2 {
				return false
			}
			switch a.HCount {
			case 0:
				return true
			case 1:
				return !attachedToMultiplyBondedHetero(m, i)
			}
			return false
		case 7:
			if a.Aromatic {
				return a.HCount == 0 && a.Charge == 0
			}
			return bondValence(m, i) == 3 && !attachedToMultiplyBondedHetero(m, i)
		}
		return false
	}), nil
}

// numRotatableBonds counts acyclic single bonds between non-terminal heavy
// atoms, excluding bonds next to triple bonds, amide C-N bonds and bonds to
// trihalomethyl groups.
func numRotatableBonds(m *molecule.Molecule) (float64, error) {
	n := 0
	for _, b := range heavyBonds(m) {
		if b.Type != molecule.BondSingle || b.InRing {
			continue
		}
		if m.HeavyDegree(b.Begin) < 2 || m.HeavyDegree(b.End) < 2 {
			continue
		}
		if countBonds(m, b.Begin).triple > 0 || countBonds(m, b.End).triple > 0 {
			continue
		}
		if isAmideBond(m, b.Begin, b.End) || isAmideBond(m, b.End, b.Begin) {
			continue
		}
		if isTrihaloMethyl(m, b.Begin, b.End) || isTrihaloMethyl(m, b.End, b.Begin) {
			continue
		}
		n++
	}
	return float64(n), nil
}

func isAmideBond(m *molecule.Molecule, c, nitrogen int) bool {
	return m.Atom(c).AtomicNumber() == 6 && m.Atom(nitrogen).AtomicNumber() == 7 &&
		hasDoubleTo(m, c, 8, 16)
}

// isTrihaloMethyl reports whether c is a carbon whose neighbours other than
// from are three halogens.
func isTrihaloMethyl(m *molecule.Molecule, c, from int) bool {
	if m.Atom(c).AtomicNumber() != 6 {
		return false
	}
	halogens := 0
	for _, nb := range m.Neighbors(c) {
		if nb.Atom == from {
			continue
		}
		if !isHalogen(m.Atom(nb.Atom).AtomicNumber()) {
			return false
		}
		halogens++
	}
	return halogens == 3
}

//Personal.AI order the ending
