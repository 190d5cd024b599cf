package molecule

import (
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// kekuleSearchLimit caps the backtracking steps spent matching pi bonds.
const kekuleSearchLimit = 1 << 20

// builder sanitises the raw graph produced by the SMILES reader.
type builder struct {
	atoms []Atom
	bonds []Bond
	adj   [][]Neighbor
}

func sanitizeError(atom int, format string, args ...interface{}) error {
	return errors.Newf(errors.CodeParseFailure, format, args...).WithDetailf("atom %d", atom)
}

// bondValence sums bond orders around atom i with aromatic bonds as 1.
func (b *builder) bondValence(i int) int {
	sum := 0
	for _, nb := range b.adj[i] {
		sum += b.bonds[nb.Bond].Type.valenceContribution()
	}
	return sum
}

// assignImplicitHydrogens sets HCount on atoms written without brackets
// using the lowest default valence that fits. Aromatic atoms reserve one
// valence for the pi system; aromatic O and S donate a lone pair instead.
func (b *builder) assignImplicitHydrogens() {
	for i := range b.atoms {
		a := &b.atoms[i]
		if a.Bracket || a.Element == wildcard || len(a.Element.Valences) == 0 {
			continue
		}
		sum := b.bondValence(i)
		if a.Aromatic {
			switch a.Element.Symbol {
			case "O", "S":
				a.HCount = 0
			default:
				if h := a.Element.Valences[0] - sum - 1; h > 0 {
					a.HCount = h
				}
			}
			continue
		}
		for _, v := range a.Element.Valences {
			if v >= sum {
				a.HCount = v - sum
				break
			}
		}
	}
}

// foldHydrogens removes neutral, unlabelled [H] atoms singly bonded to a
// heavy atom and adds them to that atom's hydrogen count.
func (b *builder) foldHydrogens() {
	remove := make([]bool, len(b.atoms))
	folded := false
	for i, a := range b.atoms {
		if !a.IsHydrogen() || a.Isotope != 0 || a.Charge != 0 || a.HCount != 0 || len(b.adj[i]) != 1 {
			continue
		}
		nb := b.adj[i][0]
		heavy := b.atoms[nb.Atom]
		if heavy.IsHydrogen() || b.bonds[nb.Bond].Type != BondSingle {
			continue
		}
		remove[i] = true
		b.atoms[nb.Atom].HCount++
		folded = true
	}
	if !folded {
		return
	}

	newIndex := make([]int, len(b.atoms))
	atoms := make([]Atom, 0, len(b.atoms))
	for i, a := range b.atoms {
		if remove[i] {
			newIndex[i] = -1
			continue
		}
		newIndex[i] = len(atoms)
		atoms = append(atoms, a)
	}
	bonds := make([]Bond, 0, len(b.bonds))
	adj := make([][]Neighbor, len(atoms))
	for _, bond := range b.bonds {
		x, y := newIndex[bond.Begin], newIndex[bond.End]
		if x < 0 || y < 0 {
			continue
		}
		idx := len(bonds)
		bonds = append(bonds, Bond{Begin: x, End: y, Type: bond.Type})
		adj[x] = append(adj[x], Neighbor{Atom: y, Bond: idx})
		adj[y] = append(adj[y], Neighbor{Atom: x, Bond: idx})
	}
	b.atoms, b.bonds, b.adj = atoms, bonds, adj
}

func (b *builder) build(smiles string) (*Molecule, error) {
	components := countComponents(len(b.atoms), b.adj)
	rings := findSSSR(len(b.atoms), b.bonds, b.adj, components)
	for _, r := range rings {
		for _, bi := range r.Bonds {
			b.bonds[bi].InRing = true
		}
	}

	// Aromatic bonds outside rings (biphenyl written without '-') are single.
	for i := range b.bonds {
		if b.bonds[i].Type == BondAromatic && !b.bonds[i].InRing {
			b.bonds[i].Type = BondSingle
		}
	}
	for i, a := range b.atoms {
		if !a.Aromatic {
			continue
		}
		inRing := false
		for _, nb := range b.adj[i] {
			if b.bonds[nb.Bond].InRing {
				inRing = true
				break
			}
		}
		if !inRing {
			return nil, sanitizeError(i, "non-ring atom %s marked aromatic", a.Element.Symbol)
		}
	}

	if err := b.checkValences(); err != nil {
		return nil, err
	}
	if err := b.kekulize(); err != nil {
		return nil, err
	}
	b.perceiveAromaticity(rings)
	b.assignRadicals()

	m := &Molecule{
		smiles:     smiles,
		atoms:      b.atoms,
		bonds:      b.bonds,
		adjacency:  b.adj,
		rings:      rings,
		components: components,
	}
	m.computeDistances()
	return m, nil
}

// allowedValences returns the valences permitted for atom i, nil if
// unconstrained.
func (b *builder) allowedValences(i int) []int {
	a := b.atoms[i]
	if a.Element == wildcard {
		return nil
	}
	return chargedValences(a.Element, a.Charge)
}

func (b *builder) checkValences() error {
	for i, a := range b.atoms {
		allowed := b.allowedValences(i)
		if len(allowed) == 0 {
			continue
		}
		total := b.bondValence(i) + a.HCount
		if limit := allowed[len(allowed)-1]; total > limit {
			return sanitizeError(i, "explicit valence %d for %s exceeds permitted %d", total, a.Element.Symbol, limit)
		}
	}
	return nil
}

// piDemand reports whether aromatic atom i still needs a double bond inside
// its aromatic system.
func (b *builder) piDemand(i int) bool {
	allowed := b.allowedValences(i)
	if len(allowed) == 0 {
		return false
	}
	used := b.bondValence(i) + b.atoms[i].HCount
	for _, v := range allowed {
		if v >= used {
			return v-used >= 1
		}
	}
	return false
}

// kekulize verifies that the aromatic atoms demanding a pi bond can be
// paired along aromatic bonds, which is what makes a lowercase SMILES
// chemically meaningful. Bond types stay aromatic.
func (b *builder) kekulize() error {
	n := len(b.atoms)
	needy := make([]bool, n)
	var order []int
	for i, a := range b.atoms {
		if a.Aromatic && b.piDemand(i) {
			needy[i] = true
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return nil
	}
	if len(order)%2 == 1 {
		return sanitizeError(order[0], "can't kekulize aromatic system")
	}

	matched := make([]bool, n)
	steps := 0
	var solve func(k int) bool
	solve = func(k int) bool {
		for k < len(order) && matched[order[k]] {
			k++
		}
		if k == len(order) {
			return true
		}
		steps++
		if steps > kekuleSearchLimit {
			return false
		}
		u := order[k]
		matched[u] = true
		for _, nb := range b.adj[u] {
			v := nb.Atom
			if !needy[v] || matched[v] || b.bonds[nb.Bond].Type != BondAromatic {
				continue
			}
			matched[v] = true
			if solve(k + 1) {
				return true
			}
			matched[v] = false
		}
		matched[u] = false
		return false
	}
	if !solve(0) {
		return sanitizeError(order[0], "can't kekulize aromatic system")
	}
	return nil
}

// assignRadicals sets unpaired electrons on bracket atoms whose bonds and
// hydrogens fall short of the nearest allowed valence.
func (b *builder) assignRadicals() {
	for i := range b.atoms {
		a := &b.atoms[i]
		if !a.Bracket || a.Aromatic {
			continue
		}
		allowed := b.allowedValences(i)
		if len(allowed) == 0 {
			continue
		}
		used := b.bondValence(i) + a.HCount
		for _, v := range allowed {
			if v >= used {
				a.Radicals = v - used
				break
			}
		}
	}
}

//Personal.AI order the ending
