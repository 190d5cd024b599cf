package molecule

// ringSystem is a set of atoms and bonds evaluated together for aromaticity.
type ringSystem struct {
	atoms map[int]bool
	bonds map[int]bool
}

func newRingSystem(rings ...Ring) ringSystem {
	rs := ringSystem{atoms: make(map[int]bool), bonds: make(map[int]bool)}
	for _, r := range rings {
		for _, a := range r.Atoms {
			rs.atoms[a] = true
		}
		for _, b := range r.Bonds {
			rs.bonds[b] = true
		}
	}
	return rs
}

func shareBond(a, b Ring) bool {
	for _, x := range a.Bonds {
		for _, y := range b.Bonds {
			if x == y {
				return true
			}
		}
	}
	return false
}

// perceiveAromaticity marks Kekulé rings that satisfy Hückel's 4n+2 rule as
// aromatic. Single rings are tried first, then pairs of fused rings, then
// whole fused systems, so naphthalene written with alternating bonds is
// recognised even when one ring alone carries an exocyclic double bond.
// Rings that already contain aromatic bonds are left alone.
func (b *builder) perceiveAromaticity(rings []Ring) {
	if len(rings) == 0 {
		return
	}

	candidates := make([]ringSystem, 0, len(rings))
	for _, r := range rings {
		candidates = append(candidates, newRingSystem(r))
	}
	for i := 0; i < len(rings); i++ {
		for j := i + 1; j < len(rings); j++ {
			if shareBond(rings[i], rings[j]) {
				candidates = append(candidates, newRingSystem(rings[i], rings[j]))
			}
		}
	}
	for _, system := range fusedSystems(rings) {
		if len(system) > 2 {
			members := make([]Ring, len(system))
			for k, idx := range system {
				members[k] = rings[idx]
			}
			candidates = append(candidates, newRingSystem(members...))
		}
	}

	kekule := make([]BondType, len(b.bonds))
	for i, bond := range b.bonds {
		kekule[i] = bond.Type
	}

	for _, rs := range candidates {
		if !b.huckel(rs, kekule) {
			continue
		}
		for a := range rs.atoms {
			b.atoms[a].Aromatic = true
		}
		for bi := range rs.bonds {
			b.bonds[bi].Type = BondAromatic
		}
	}
}

// fusedSystems groups ring indices connected through shared bonds.
func fusedSystems(rings []Ring) [][]int {
	parent := make([]int, len(rings))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			if shareBond(rings[i], rings[j]) {
				parent[find(i)] = find(j)
			}
		}
	}
	groups := make(map[int][]int)
	var roots []int
	for i := range rings {
		r := find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], i)
	}
	out := make([][]int, 0, len(roots))
	for _, r := range roots {
		out = append(out, groups[r])
	}
	return out
}

// huckel counts pi electrons of a Kekulé ring system and applies 4n+2.
func (b *builder) huckel(rs ringSystem, kekule []BondType) bool {
	for bi := range rs.bonds {
		if kekule[bi] == BondAromatic {
			return false
		}
	}
	electrons := 0
	for a := range rs.atoms {
		e := b.piElectrons(a, rs, kekule)
		if e < 0 {
			return false
		}
		electrons += e
	}
	return electrons >= 2 && (electrons-2)%4 == 0
}

// piElectrons returns the contribution of atom a to the ring system, or -1
// when the atom cannot take part in an aromatic ring.
func (b *builder) piElectrons(a int, rs ringSystem, kekule []BondType) int {
	atom := b.atoms[a]
	switch atom.Element.Symbol {
	case "B", "C", "N", "O", "P", "S", "Se", "As", "Te":
	default:
		return -1
	}

	inner, outer := 0, 0
	outerPartner := -1
	for _, nb := range b.adj[a] {
		switch kekule[nb.Bond] {
		case BondDouble:
			if rs.bonds[nb.Bond] {
				inner++
			} else {
				outer++
				outerPartner = nb.Atom
			}
		case BondTriple, BondQuadruple:
			return -1
		}
	}
	switch {
	case inner == 1 && outer == 0:
		return 1
	case inner > 1:
		return -1
	case outer == 1 && inner == 0:
		if rs.atoms[outerPartner] {
			// double bond to another ring atom of the same system
			return 1
		}
		switch b.atoms[outerPartner].Element.Symbol {
		case "O", "N", "S":
			return 0
		}
		return -1
	case outer > 0:
		return -1
	}

	connections := len(b.adj[a]) + atom.HCount
	switch atom.Element.Symbol {
	case "C":
		switch atom.Charge {
		case -1:
			return 2
		case 1:
			return 0
		}
		return -1
	case "B":
		if atom.Charge == 0 && connections == 3 {
			return 0
		}
	case "N", "P", "As":
		if atom.Charge == 0 && connections == 3 {
			return 2
		}
	case "O", "S", "Se", "Te":
		if atom.Charge == 0 && connections == 2 {
			return 2
		}
	}
	return -1
}

//Personal.AI order the ending
