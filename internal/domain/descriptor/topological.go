package descriptor

import (
	"fmt"
	"math"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
)

// hallKierTable holds alpha values indexed by sp, sp2, sp3. NaN marks
// hybridizations the table does not cover.
var hallKierTable = map[int][3]float64{
	6:  {-0.22, -0.13, 0},
	7:  {-0.29, -0.20, -0.04},
	8:  {math.NaN(), -0.20, -0.04},
	9:  {math.NaN(), math.NaN(), -0.07},
	15: {math.NaN(), 0.30, 0.43},
	16: {math.NaN(), 0.22, 0.35},
	17: {math.NaN(), math.NaN(), 0.29},
	35: {math.NaN(), math.NaN(), 0.48},
	53: {math.NaN(), math.NaN(), 0.73},
}

// covalentRadii is the fallback for atoms outside hallKierTable; alpha is
// then r/r(Csp3) - 1.
var covalentRadii = map[int]float64{
	5: 0.88, 14: 1.17, 32: 1.22, 33: 1.21, 34: 1.17, 50: 1.40, 51: 1.41, 52: 1.37,
}

const carbonSP3Radius = 0.77

func atomAlpha(m *molecule.Molecule, i int) float64 {
	z := m.Atom(i).AtomicNumber()
	if row, ok := hallKierTable[z]; ok {
		h := hybridOf(m, i)
		if v := row[h]; !math.IsNaN(v) {
			return v
		}
		return row[hybridSP3]
	}
	if r, ok := covalentRadii[z]; ok {
		return r/carbonSP3Radius - 1
	}
	return 0
}

func hallKierAlpha(m *molecule.Molecule) (float64, error) {
	alpha := 0.0
	for i, a := range m.Atoms() {
		if isHeavy(a) {
			alpha += atomAlpha(m, i)
		}
	}
	return alpha, nil
}

// pathCounts returns the number of heavy-atom paths of length 1, 2 and 3.
func pathCounts(m *molecule.Molecule) (p1, p2, p3 int) {
	bonds := heavyBonds(m)
	p1 = len(bonds)
	for i, a := range m.Atoms() {
		if isHeavy(a) {
			d := m.HeavyDegree(i)
			p2 += d * (d - 1) / 2
		}
	}
	// A path a-b-c-d is counted once for its central bond b-c.
	for _, b := range bonds {
		for _, na := range m.Neighbors(b.Begin) {
			if na.Atom == b.End || !isHeavy(m.Atom(na.Atom)) {
				continue
			}
			for _, nd := range m.Neighbors(b.End) {
				if nd.Atom == b.Begin || nd.Atom == na.Atom || !isHeavy(m.Atom(nd.Atom)) {
					continue
				}
				p3++
			}
		}
	}
	return p1, p2, p3
}

func kappaDenominator(p int, alpha float64) (float64, error) {
	d := float64(p) + alpha
	if d == 0 {
		return 0, fmt.Errorf("no paths of the required length")
	}
	return d * d, nil
}

func kappa1(m *molecule.Molecule) (float64, error) {
	p1, _, _ := pathCounts(m)
	alpha, _ := hallKierAlpha(m)
	a := float64(heavyAtomCount(m)) + alpha
	den, err := kappaDenominator(p1, alpha)
	if err != nil {
		return math.NaN(), err
	}
	return a * (a - 1) * (a - 1) / den, nil
}

func kappa2(m *molecule.Molecule) (float64, error) {
	_, p2, _ := pathCounts(m)
	alpha, _ := hallKierAlpha(m)
	a := float64(heavyAtomCount(m)) + alpha
	den, err := kappaDenominator(p2, alpha)
	if err != nil {
		return math.NaN(), err
	}
	return (a - 1) * (a - 2) * (a - 2) / den, nil
}

func kappa3(m *molecule.Molecule) (float64, error) {
	_, _, p3 := pathCounts(m)
	alpha, _ := hallKierAlpha(m)
	n := heavyAtomCount(m)
	a := float64(n) + alpha
	den, err := kappaDenominator(p3, alpha)
	if err != nil {
		return math.NaN(), err
	}
	if n%2 == 1 {
		return (a - 1) * (a - 3) * (a - 3) / den, nil
	}
	return (a - 3) * (a - 2) * (a - 2) / den, nil
}

func chi0(m *molecule.Molecule) (float64, error) {
	s := 0.0
	for i, a := range m.Atoms() {
		if !isHeavy(a) {
			continue
		}
		if d := m.HeavyDegree(i); d > 0 {
			s += 1 / math.Sqrt(float64(d))
		}
	}
	return s, nil
}

func chi1(m *molecule.Molecule) (float64, error) {
	s := 0.0
	for _, b := range heavyBonds(m) {
		s += 1 / math.Sqrt(float64(m.HeavyDegree(b.Begin)*m.HeavyDegree(b.End)))
	}
	return s, nil
}

// valenceDelta is the Kier-Hall valence delta of a heavy atom. Atoms beyond
// the second period are scaled by their core electron count.
func valenceDelta(a molecule.Atom) float64 {
	z := a.AtomicNumber()
	zv := a.Element.OuterElectrons
	d := float64(zv - a.HCount)
	if z > 10 {
		d /= float64(z - zv - 1)
	}
	return d
}

func chi0v(m *molecule.Molecule) (float64, error) {
	s := 0.0
	for _, a := range m.Atoms() {
		if !isHeavy(a) {
			continue
		}
		d := valenceDelta(a)
		if d < 0 {
			return math.NaN(), fmt.Errorf("negative valence delta on %s", a.Symbol())
		}
		if d > 0 {
			s += 1 / math.Sqrt(d)
		}
	}
	return s, nil
}

func chi1v(m *molecule.Molecule) (float64, error) {
	s := 0.0
	for _, b := range heavyBonds(m) {
		di, dj := valenceDelta(m.Atom(b.Begin)), valenceDelta(m.Atom(b.End))
		if di < 0 || dj < 0 {
			return math.NaN(), fmt.Errorf("negative valence delta")
		}
		if di == 0 || dj == 0 {
			continue
		}
		s += 1 / math.Sqrt(di*dj)
	}
	return s, nil
}

// heavyIndex lists the heavy atoms of m in graph order.
func heavyIndex(m *molecule.Molecule) []int {
	out := make([]int, 0, m.NumAtoms())
	for i, a := range m.Atoms() {
		if isHeavy(a) {
			out = append(out, i)
		}
	}
	return out
}

func wienerIndex(m *molecule.Molecule) (float64, error) {
	idx := heavyIndex(m)
	sum := 0
	for x := 0; x < len(idx); x++ {
		for y := x + 1; y < len(idx); y++ {
			d := m.Distance(idx[x], idx[y])
			if d < 0 {
				return math.NaN(), fmt.Errorf("structure is disconnected")
			}
			sum += d
		}
	}
	return float64(sum), nil
}

func zagreb1(m *molecule.Molecule) (float64, error) {
	s := 0
	for _, i := range heavyIndex(m) {
		d := m.HeavyDegree(i)
		s += d * d
	}
	return float64(s), nil
}

func zagreb2(m *molecule.Molecule) (float64, error) {
	s := 0
	for _, b := range heavyBonds(m) {
		s += m.HeavyDegree(b.Begin) * m.HeavyDegree(b.End)
	}
	return float64(s), nil
}

// balabanJ uses bond-order weighted distance sums. Disconnected structures
// have no defined value.
func balabanJ(m *molecule.Molecule) (float64, error) {
	bonds := heavyBonds(m)
	q := len(bonds)
	if q == 0 {
		return 0, nil
	}
	idx := heavyIndex(m)
	dist := m.WeightedDistances()
	sums := make(map[int]float64, len(idx))
	for _, i := range idx {
		s := 0.0
		for _, j := range idx {
			if math.IsInf(dist[i][j], 1) {
				return math.NaN(), fmt.Errorf("structure is disconnected")
			}
			s += dist[i][j]
		}
		sums[i] = s
	}
	mu := q - len(idx) + 1
	acc := 0.0
	for _, b := range bonds {
		acc += 1 / math.Sqrt(sums[b.Begin]*sums[b.End])
	}
	return float64(q) / float64(mu+1) * acc, nil
}

//Personal.AI order the ending
