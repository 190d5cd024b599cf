package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

// crippenContrib is one Wildman-Crippen atom type: logP and molar
// refractivity contributions.
type crippenContrib struct {
	logP float64
	mr   float64
}

var (
	crippenC1  = crippenContrib{0.1441, 2.503}
	crippenC2  = crippenContrib{0.0, 2.433}
	crippenC3  = crippenContrib{-0.2035, 2.753}
	crippenC4  = crippenContrib{-0.2051, 2.731}
	crippenC5  = crippenContrib{-0.2783, 5.007}
	crippenC6  = crippenContrib{0.1551, 3.513}
	crippenC7  = crippenContrib{0.0017, 3.888}
	crippenC8  = crippenContrib{0.08452, 2.464}
	crippenC9  = crippenContrib{-0.1444, 2.412}
	crippenC10 = crippenContrib{-0.0516, 2.488}
	crippenC11 = crippenContrib{0.1193, 2.582}
	crippenC12 = crippenContrib{-0.0967, 2.576}
	crippenC13 = crippenContrib{-0.5443, 4.041}
	crippenC14 = crippenContrib{0.0, 3.257}
	crippenC15 = crippenContrib{0.245, 3.564}
	crippenC16 = crippenContrib{0.198, 3.18}
	crippenC17 = crippenContrib{0.0, 3.104}
	crippenC18 = crippenContrib{0.1581, 3.35}
	crippenC19 = crippenContrib{0.2955, 4.346}
	crippenC20 = crippenContrib{0.2713, 3.904}
	crippenC21 = crippenContrib{0.136, 3.509}
	crippenC22 = crippenContrib{0.4619, 3.067}
	crippenC23 = crippenContrib{0.5437, 3.853}
	crippenC24 = crippenContrib{0.1893, 2.673}
	crippenC25 = crippenContrib{-0.8186, 3.135}
	crippenCS  = crippenContrib{0.08129, 3.243}

	crippenH1 = crippenContrib{0.123, 1.057}
	crippenH2 = crippenContrib{-0.2677, 1.395}
	crippenH3 = crippenContrib{0.2142, 0.9627}
	crippenH4 = crippenContrib{0.298, 1.805}
	crippenHS = crippenContrib{0.1125, 1.112}

	crippenN1  = crippenContrib{-1.019, 2.262}
	crippenN2  = crippenContrib{-0.7096, 2.173}
	crippenN3  = crippenContrib{-1.027, 2.827}
	crippenN4  = crippenContrib{-0.5188, 3.0}
	crippenN5  = crippenContrib{0.08387, 1.757}
	crippenN6  = crippenContrib{0.1836, 2.428}
	crippenN7  = crippenContrib{-0.3187, 1.839}
	crippenN8  = crippenContrib{-0.4458, 2.819}
	crippenN9  = crippenContrib{0.01508, 1.725}
	crippenN11 = crippenContrib{-0.4806, 2.338}
	crippenNS  = crippenContrib{-0.4806, 2.134}

	crippenO1  = crippenContrib{0.1552, 1.08}
	crippenO2  = crippenContrib{-0.2893, 0.8238}
	crippenO3  = crippenContrib{-0.0684, 1.085}
	crippenO4  = crippenContrib{-0.4195, 1.182}
	crippenO9  = crippenContrib{-0.1526, 0.0}
	crippenO10 = crippenContrib{0.1129, 0.2215}
	crippenO12 = crippenContrib{-1.326, 0.0}

	crippenF  = crippenContrib{0.4202, 1.108}
	crippenCl = crippenContrib{0.6895, 5.853}
	crippenBr = crippenContrib{0.8456, 8.927}
	crippenI  = crippenContrib{0.8857, 14.02}
	crippenP  = crippenContrib{0.8612, 6.92}
	crippenS1 = crippenContrib{0.6482, 7.591}
	crippenS2 = crippenContrib{-0.0024, 7.365}
	crippenS3 = crippenContrib{0.6237, 6.691}
)

// crippenAtom classifies heavy atom i.
func crippenAtom(m *molecule.Molecule, i int) crippenContrib {
	a := m.Atom(i)
	switch a.AtomicNumber() {
	case 6:
		if a.Aromatic {
			return crippenAromaticCarbon(m, i)
		}
		return crippenAliphaticCarbon(m, i)
	case 7:
		return crippenNitrogen(m, i)
	case 8:
		return crippenOxygen(m, i)
	case 9:
		return crippenF
	case 17:
		return crippenCl
	case 35:
		return crippenBr
	case 53:
		return crippenI
	case 15:
		return crippenP
	case 16:
		switch {
		case a.Aromatic:
			return crippenS3
		case a.Charge < 0:
			return crippenS2
		}
		return crippenS1
	}
	return crippenContrib{}
}

func crippenAliphaticCarbon(m *molecule.Molecule, i int) crippenContrib {
	c := countBonds(m, i)
	switch {
	case hasDoubleTo(m, i, 7, 8, 15, 16):
		return crippenC5
	case c.triple > 0 || c.double > 1:
		return crippenC7
	case c.double > 0:
		return crippenC6
	}
	h := m.Atom(i).HCount
	aromaticNb, aromaticCarbon, hetero := false, false, false
	for _, nb := range m.Neighbors(i) {
		o := m.Atom(nb.Atom)
		if !isHeavy(o) {
			continue
		}
		if o.Aromatic {
			aromaticNb = true
			if o.AtomicNumber() == 6 {
				aromaticCarbon = true
			}
		} else if o.AtomicNumber() != 6 {
			hetero = true
		}
	}
	switch {
	case aromaticNb:
		switch h {
		case 3:
			if aromaticCarbon {
				return crippenC8
			}
			return crippenC9
		case 2:
			return crippenC10
		case 1:
			return crippenC11
		}
		return crippenC12
	case hetero:
		if h >= 2 {
			return crippenC3
		}
		return crippenC4
	case h >= 2:
		return crippenC1
	}
	return crippenC2
}

func crippenAromaticCarbon(m *molecule.Molecule, i int) crippenContrib {
	if hasDoubleTo(m, i, 7, 8, 16) {
		return crippenC25
	}
	if m.Atom(i).HCount > 0 {
		return crippenC18
	}
	c := countBonds(m, i)
	if c.aromatic >= 3 {
		return crippenC19
	}
	for _, nb := range m.Neighbors(i) {
		if m.Bond(nb.Bond).Type == molecule.BondAromatic {
			continue
		}
		o := m.Atom(nb.Atom)
		if o.Aromatic {
			return crippenC20
		}
		switch o.AtomicNumber() {
		case 6:
			return crippenC21
		case 7:
			return crippenC22
		case 8:
			return crippenC23
		case 16:
			return crippenC24
		case 9:
			return crippenC14
		case 17:
			return crippenC15
		case 35:
			return crippenC16
		case 53:
			return crippenC17
		case 1:
			continue
		}
		return crippenC13
	}
	return crippenCS
}

func crippenNitrogen(m *molecule.Molecule, i int) crippenContrib {
	a := m.Atom(i)
	if a.Charge != 0 {
		return crippenNS
	}
	if a.Aromatic {
		return crippenN11
	}
	c := countBonds(m, i)
	switch {
	case c.triple > 0:
		return crippenN9
	case c.double > 0:
		if a.HCount > 0 {
			return crippenN5
		}
		return crippenN6
	}
	aromaticNb := hasNeighbor(m, i, func(j int, _ molecule.Bond) bool { return m.Atom(j).Aromatic })
	switch a.HCount {
	case 2, 3:
		if aromaticNb {
			return crippenN3
		}
		return crippenN1
	case 1:
		if aromaticNb {
			return crippenN4
		}
		return crippenN2
	}
	if aromaticNb {
		return crippenN8
	}
	return crippenN7
}

func crippenOxygen(m *molecule.Molecule, i int) crippenContrib {
	a := m.Atom(i)
	switch {
	case a.Aromatic:
		return crippenO1
	case a.Charge < 0:
		return crippenO12
	}
	c := countBonds(m, i)
	if c.double > 0 {
		if hasNeighbor(m, i, func(j int, _ molecule.Bond) bool { return m.Atom(j).Aromatic }) {
			return crippenO10
		}
		return crippenO9
	}
	if a.HCount > 0 {
		return crippenO2
	}
	if hasNeighbor(m, i, func(j int, _ molecule.Bond) bool { return m.Atom(j).Aromatic }) {
		return crippenO4
	}
	return crippenO3
}

// crippenHydrogen classifies a hydrogen attached to heavy atom i.
func crippenHydrogen(m *molecule.Molecule, i int) crippenContrib {
	switch m.Atom(i).AtomicNumber() {
	case 6:
		return crippenH1
	case 7:
		return crippenH3
	case 8:
		acidic := hasNeighbor(m, i, func(j int, _ molecule.Bond) bool {
			return hasDoubleTo(m, j, 6, 7, 8)
		})
		if acidic {
			return crippenH4
		}
	}
	return crippenH2
}

func crippen(m *molecule.Molecule) crippenContrib {
	var sum crippenContrib
	add := func(c crippenContrib, n int) {
		sum.logP += c.logP * float64(n)
		sum.mr += c.mr * float64(n)
	}
	for i, a := range m.Atoms() {
		if a.IsHydrogen() {
			nbs := m.Neighbors(i)
			if len(nbs) == 0 || m.Atom(nbs[0].Atom).IsHydrogen() {
				add(crippenHS, 1)
			} else {
				add(crippenHydrogen(m, nbs[0].Atom), 1)
			}
			continue
		}
		if a.AtomicNumber() == 0 {
			continue
		}
		add(crippenAtom(m, i), 1)
		add(crippenHydrogen(m, i), a.HCount)
	}
	return sum
}

func molLogP(m *molecule.Molecule) (float64, error) { return crippen(m).logP, nil }

func molMR(m *molecule.Molecule) (float64, error) { return crippen(m).mr, nil }

//Personal.AI order the ending
