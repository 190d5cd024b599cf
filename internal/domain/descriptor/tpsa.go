package descriptor

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"

// polarEnv describes the environment of a polar atom for the Ertl table.
type polarEnv struct {
	isAromatic bool
	charge     int
	h          int
	bondCounts
	threeRing bool
}

// tpsaNitrogen and tpsaOxygen return the Ertl fragment contribution, or false
// when the environment is not tabulated.
func tpsaNitrogen(e polarEnv) (float64, bool) {
	s, d, t, ar := e.single, e.double, e.triple, e.aromatic
	if e.isAromatic {
		switch {
		case e.charge == 0 && e.h == 0 && ar == 2 && s == 0 && d == 0:
			return 12.89, true
		case e.charge == 0 && e.h == 0 && ar == 3:
			return 4.41, true
		case e.charge == 0 && e.h == 0 && ar == 2 && s == 1:
			return 4.93, true
		case e.charge == 0 && e.h == 0 && ar == 2 && d == 1:
			return 8.39, true
		case e.charge == 0 && e.h == 1 && ar == 2:
			return 15.79, true
		case e.charge == 1 && e.h == 0 && ar == 3:
			return 4.10, true
		case e.charge == 1 && e.h == 0 && ar == 2 && s == 1:
			return 3.88, true
		case e.charge == 1 && e.h == 1 && ar == 2:
			return 14.14, true
		}
		return 0, false
	}
	switch e.charge {
	case 0:
		switch {
		case e.h == 0 && s == 3 && e.threeRing:
			return 3.01, true
		case e.h == 0 && s == 3:
			return 3.24, true
		case e.h == 0 && s == 1 && d == 1:
			return 12.36, true
		case e.h == 0 && t == 1:
			return 23.79, true
		case e.h == 0 && s == 1 && d == 2:
			return 11.68, true
		case e.h == 0 && d == 1 && t == 1:
			return 13.6, true
		case e.h == 1 && s == 2 && e.threeRing:
			return 21.94, true
		case e.h == 1 && s == 2:
			return 12.03, true
		case e.h == 1 && d == 1:
			return 23.85, true
		case e.h == 2 && s == 1:
			return 26.02, true
		}
	case 1:
		switch {
		case e.h == 0 && s == 4:
			return 0.0, true
		case e.h == 0 && s == 2 && d == 1:
			return 3.01, true
		case e.h == 0 && s == 1 && t == 1:
			return 4.36, true
		case e.h == 0 && d == 1 && t == 1:
			return 13.6, true
		case e.h == 1 && s == 3:
			return 4.44, true
		case e.h == 1 && s == 1 && d == 1:
			return 13.97, true
		case e.h == 2 && s == 2:
			return 16.61, true
		case e.h == 2 && d == 1:
			return 25.59, true
		case e.h == 3 && s == 1:
			return 27.64, true
		}
	case -1:
		if e.h == 0 && d == 1 {
			return 14.71, true
		}
	}
	return 0, false
}

func tpsaOxygen(e polarEnv) (float64, bool) {
	if e.isAromatic {
		if e.charge == 0 && e.h == 0 {
			return 13.14, true
		}
		return 0, false
	}
	switch {
	case e.charge == 0 && e.h == 0 && e.single == 2 && e.threeRing:
		return 12.53, true
	case e.charge == 0 && e.h == 0 && e.single == 2:
		return 9.23, true
	case e.charge == 0 && e.h == 0 && e.double == 1:
		return 17.07, true
	case e.charge == 0 && e.h == 1 && e.single == 1:
		return 20.23, true
	case e.charge == -1 && e.h == 0 && e.single == 1:
		return 23.06, true
	}
	return 0, false
}

func polarEnvOf(m *molecule.Molecule, i int) polarEnv {
	a := m.Atom(i)
	h := a.HCount
	for _, nb := range m.Neighbors(i) {
		if m.Atom(nb.Atom).IsHydrogen() {
			h++
		}
	}
	return polarEnv{
		isAromatic: a.Aromatic,
		charge:     a.Charge,
		h:          h,
		bondCounts: countBonds(m, i),
		threeRing:  inRingOfSize(m, i, 3),
	}
}

// tpsa sums Ertl contributions of N and O atoms. Environments missing from
// the table fall back to a linear estimate in heavy neighbours and hydrogens.
func tpsa(m *molecule.Molecule) (float64, error) {
	total := 0.0
	for i, a := range m.Atoms() {
		var (
			v  float64
			ok bool
		)
		e := polarEnvOf(m, i)
		switch a.AtomicNumber() {
		case 7:
			if v, ok = tpsaNitrogen(e); !ok {
				v = 30.5 - 8.2*float64(e.total()) + 1.5*float64(e.h)
			}
		case 8:
			if v, ok = tpsaOxygen(e); !ok {
				v = 28.5 - 8.6*float64(e.total()) + 1.5*float64(e.h)
			}
		default:
			continue
		}
		if v > 0 {
			total += v
		}
	}
	return total, nil
}

//Personal.AI order the ending
