package molecule

import (
	"strings"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// MaxSMILESLength bounds the input accepted by Parse.
const MaxSMILESLength = 4096

var wildcard = &Element{Symbol: "*", AtomicNumber: 0}

type ringOpening struct {
	atom int
	bond BondType
}

type branchFrame struct {
	atom     int
	numAtoms int
}

// smilesParser turns SMILES text into atoms and bonds. Chemistry perception
// happens afterwards in Parse.
type smilesParser struct {
	src     string
	pos     int
	atoms   []Atom
	bonds   []Bond
	adj     [][]Neighbor
	prev    int
	pending BondType
	rings   map[int]ringOpening
	stack   []branchFrame
}

func parseError(pos int, format string, args ...interface{}) error {
	return errors.Newf(errors.CodeParseFailure, format, args...).WithDetailf("position %d", pos)
}

// Parse parses a SMILES string into a sanitised Molecule: implicit
// hydrogens are assigned, valences checked, rings perceived, aromatic systems
// verified to be kekulizable and Kekulé rings satisfying Hückel's rule marked
// aromatic. Every failure is an AppError with CodeParseFailure.
func Parse(smiles string) (*Molecule, error) {
	s := strings.TrimSpace(smiles)
	if s == "" {
		return nil, errors.New(errors.CodeParseFailure, "empty SMILES")
	}
	if len(s) > MaxSMILESLength {
		return nil, errors.Newf(errors.CodeParseFailure, "SMILES longer than %d characters", MaxSMILESLength)
	}
	// Anything after the first whitespace is a title.
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}

	p := &smilesParser{src: s, prev: -1, rings: make(map[int]ringOpening)}
	if err := p.parse(); err != nil {
		return nil, err
	}

	b := &builder{atoms: p.atoms, bonds: p.bonds, adj: p.adj}
	b.assignImplicitHydrogens()
	b.foldHydrogens()
	m, err := b.build(s)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (p *smilesParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return parseError(p.pos, "branch without a preceding atom")
			}
			if p.pending != 0 {
				return parseError(p.pos, "bond symbol before branch")
			}
			p.stack = append(p.stack, branchFrame{atom: p.prev, numAtoms: len(p.atoms)})
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return parseError(p.pos, "unbalanced ')'")
			}
			if p.pending != 0 {
				return parseError(p.pos, "dangling bond at end of branch")
			}
			top := p.stack[len(p.stack)-1]
			if len(p.atoms) == top.numAtoms {
				return parseError(p.pos, "empty branch")
			}
			p.stack = p.stack[:len(p.stack)-1]
			p.prev = top.atom
			p.pos++
		case strings.IndexByte(`-=#$:/\`, c) >= 0:
			if p.prev < 0 {
				return parseError(p.pos, "bond without a preceding atom")
			}
			if p.pending != 0 {
				return parseError(p.pos, "consecutive bond symbols")
			}
			p.pending = bondForSymbol(c)
			p.pos++
		case c == '.':
			if p.prev < 0 || p.pending != 0 {
				return parseError(p.pos, "misplaced '.'")
			}
			p.prev = -1
			p.pos++
		case c == '%' || (c >= '0' && c <= '9'):
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}

	switch {
	case p.pending != 0:
		return parseError(p.pos, "dangling bond at end of input")
	case len(p.stack) > 0:
		return parseError(p.pos, "unclosed branch")
	case len(p.rings) > 0:
		for n := range p.rings {
			return parseError(p.pos, "unclosed ring %d", n)
		}
	case len(p.atoms) == 0:
		return parseError(p.pos, "no atoms")
	case p.prev < 0:
		return parseError(p.pos, "dangling '.' at end of input")
	}
	return nil
}

func bondForSymbol(c byte) BondType {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case '$':
		return BondQuadruple
	case ':':
		return BondAromatic
	default:
		return BondSingle
	}
}

func (p *smilesParser) defaultBond(a, b int) BondType {
	if p.atoms[a].Aromatic && p.atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) addBond(a, b int, t BondType) error {
	if a == b {
		return parseError(p.pos, "atom bonded to itself")
	}
	for _, nb := range p.adj[a] {
		if nb.Atom == b {
			return parseError(p.pos, "duplicate bond between atoms %d and %d", a, b)
		}
	}
	idx := len(p.bonds)
	p.bonds = append(p.bonds, Bond{Begin: a, End: b, Type: t})
	p.adj[a] = append(p.adj[a], Neighbor{Atom: b, Bond: idx})
	p.adj[b] = append(p.adj[b], Neighbor{Atom: a, Bond: idx})
	return nil
}

func (p *smilesParser) addAtom(a Atom) error {
	idx := len(p.atoms)
	p.atoms = append(p.atoms, a)
	p.adj = append(p.adj, nil)
	if p.prev >= 0 {
		t := p.pending
		if t == 0 {
			t = p.defaultBond(p.prev, idx)
		}
		if err := p.addBond(p.prev, idx, t); err != nil {
			return err
		}
	}
	p.pending = 0
	p.prev = idx
	return nil
}

func (p *smilesParser) ringClosure() error {
	start := p.pos
	if p.prev < 0 {
		return parseError(start, "ring closure without a preceding atom")
	}
	var num int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
			return parseError(start, "'%%' must be followed by two digits")
		}
		num = int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
		p.pos += 3
	} else {
		num = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		p.rings[num] = ringOpening{atom: p.prev, bond: p.pending}
		p.pending = 0
		return nil
	}
	delete(p.rings, num)

	t := p.pending
	switch {
	case t != 0 && open.bond != 0 && t != open.bond:
		return parseError(start, "conflicting bond orders on ring closure %d", num)
	case t == 0:
		t = open.bond
	}
	if t == 0 {
		t = p.defaultBond(open.atom, p.prev)
	}
	p.pending = 0
	return p.addBond(open.atom, p.prev, t)
}

func (p *smilesParser) organicAtom() error {
	start := p.pos
	c := p.src[p.pos]
	if c == '*' {
		p.pos++
		return p.addAtom(Atom{Element: wildcard})
	}
	if p.pos+1 < len(p.src) {
		two := p.src[p.pos : p.pos+2]
		if two == "Cl" || two == "Br" {
			p.pos += 2
			e, _ := LookupElement(two)
			return p.addAtom(Atom{Element: e})
		}
	}
	one := string(c)
	if organicSubset[one] {
		p.pos++
		e, _ := LookupElement(one)
		return p.addAtom(Atom{Element: e})
	}
	if sym, ok := aromaticSymbols[one]; ok {
		p.pos++
		e, _ := LookupElement(sym)
		return p.addAtom(Atom{Element: e, Aromatic: true})
	}
	return parseError(start, "unexpected character %q", c)
}

func (p *smilesParser) bracketAtom() error {
	start := p.pos
	p.pos++ // '['
	a := Atom{Bracket: true}

	a.Isotope = p.readNumber(-1)

	if p.pos >= len(p.src) {
		return parseError(start, "unterminated bracket atom")
	}
	switch c := p.src[p.pos]; {
	case c == '*':
		a.Element = wildcard
		p.pos++
	case c >= 'a' && c <= 'z':
		for _, cand := range []string{p.peek(2), p.peek(1)} {
			if sym, ok := aromaticSymbols[cand]; ok && cand != "" {
				a.Element, _ = LookupElement(sym)
				a.Aromatic = true
				p.pos += len(cand)
				break
			}
		}
	case c >= 'A' && c <= 'Z':
		for _, cand := range []string{p.peek(2), p.peek(1)} {
			if len(cand) == 2 && !(cand[1] >= 'a' && cand[1] <= 'z') {
				continue
			}
			if e, ok := LookupElement(cand); ok {
				a.Element = e
				p.pos += len(cand)
				break
			}
		}
	}
	if a.Element == nil {
		return parseError(p.pos, "unknown element in bracket atom")
	}

	// Chirality is accepted and ignored.
	for p.pos < len(p.src) && p.src[p.pos] == '@' {
		p.pos++
	}
	if rest := p.src[p.pos:]; len(rest) >= 2 {
		switch rest[:2] {
		case "TH", "AL", "SP", "TB", "OH":
			p.pos += 2
			p.readNumber(0)
		}
	}

	if p.pos < len(p.src) && p.src[p.pos] == 'H' {
		p.pos++
		a.HCount = p.readNumber(1)
	}

	if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
		sign := 1
		if p.src[p.pos] == '-' {
			sign = -1
		}
		sym := p.src[p.pos]
		p.pos++
		if n := p.readNumber(-1); n >= 0 {
			a.Charge = sign * n
		} else {
			mag := 1
			for p.pos < len(p.src) && p.src[p.pos] == sym {
				mag++
				p.pos++
			}
			a.Charge = sign * mag
		}
	}

	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		p.pos++
		a.Class = p.readNumber(-1)
		if a.Class < 0 {
			return parseError(p.pos, "atom class must be a number")
		}
	}

	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return parseError(p.pos, "expected ']'")
	}
	p.pos++
	if a.Isotope < 0 {
		a.Isotope = 0
	}
	return p.addAtom(a)
}

// readNumber consumes a run of digits. When none are present it returns def.
func (p *smilesParser) readNumber(def int) int {
	start := p.pos
	n := 0
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) && p.pos-start < 4 {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	if p.pos == start {
		return def
	}
	return n
}

func (p *smilesParser) peek(n int) string {
	if p.pos+n > len(p.src) {
		return ""
	}
	return p.src[p.pos : p.pos+n]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

//Personal.AI order the ending
