package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func mustParse(t *testing.T, smiles string) *Molecule {
	t.Helper()
	m, err := Parse(smiles)
	require.NoError(t, err, smiles)
	require.NotNil(t, m)
	return m
}

func hCounts(m *Molecule) []int {
	out := make([]int, m.NumAtoms())
	for i := range out {
		out[i] = m.Atom(i).HCount
	}
	return out
}

func TestParse_SimpleChains(t *testing.T) {
	tests := []struct {
		smiles string
		atoms  int
		bonds  int
		hs     []int
	}{
		{"C", 1, 0, []int{4}},
		{"CCO", 3, 2, []int{3, 2, 1}},
		{"C=C", 2, 1, []int{2, 2}},
		{"C#N", 2, 1, []int{1, 0}},
		{"O=C=O", 3, 2, []int{0, 0, 0}},
		{"CC(=O)O", 4, 3, []int{3, 0, 0, 1}},
		{"ClCBr", 3, 2, []int{0, 2, 0}},
		{"CS(=O)(=O)C", 5, 4, []int{3, 0, 0, 0, 3}},
		{"OP(O)(O)=O", 5, 4, []int{1, 0, 1, 1, 0}},
		{"CCO ethanol", 3, 2, []int{3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.smiles, func(t *testing.T) {
			m := mustParse(t, tt.smiles)
			assert.Equal(t, tt.atoms, m.NumAtoms())
			assert.Equal(t, tt.bonds, m.NumBonds())
			assert.Equal(t, tt.hs, hCounts(m))
			assert.Empty(t, m.Rings())
		})
	}
}

func TestParse_BracketAtoms(t *testing.T) {
	m := mustParse(t, "[NH4+]")
	a := m.Atom(0)
	assert.Equal(t, "N", a.Symbol())
	assert.Equal(t, 4, a.HCount)
	assert.Equal(t, 1, a.Charge)
	assert.Equal(t, 0, a.Radicals)
	assert.True(t, a.Bracket)

	m = mustParse(t, "[13CH4]")
	assert.Equal(t, 13, m.Atom(0).Isotope)
	assert.Equal(t, 13.0, m.Atom(0).Mass())

	m = mustParse(t, "[Fe+3]")
	assert.Equal(t, 3, m.Atom(0).Charge)

	m = mustParse(t, "[O--]")
	assert.Equal(t, -2, m.Atom(0).Charge)

	m = mustParse(t, "[CH3:7]")
	assert.Equal(t, 7, m.Atom(0).Class)
	assert.Equal(t, 1, m.Atom(0).Radicals)

	m = mustParse(t, "N[C@@H](C)C(=O)O")
	assert.Equal(t, 1, m.Atom(1).HCount)

	m = mustParse(t, "[Na+].[Cl-]")
	assert.Equal(t, 2, m.NumComponents())
	assert.Equal(t, 0, m.Atom(0).Radicals)
	assert.Equal(t, 0, m.Atom(1).HCount)
}

func TestParse_FoldsExplicitHydrogens(t *testing.T) {
	m := mustParse(t, "C[H]")
	require.Equal(t, 1, m.NumAtoms())
	assert.Equal(t, 4, m.Atom(0).HCount)

	m = mustParse(t, "[H]O[H]")
	require.Equal(t, 1, m.NumAtoms())
	assert.Equal(t, 2, m.Atom(0).HCount)

	// labelled hydrogens stay in the graph
	m = mustParse(t, "[2H]C")
	require.Equal(t, 2, m.NumAtoms())
	assert.True(t, m.Atom(0).IsHydrogen())
	assert.Equal(t, 3, m.Atom(1).HCount)

	m = mustParse(t, "[H][H]")
	assert.Equal(t, 2, m.NumAtoms())
}

func TestParse_Rings(t *testing.T) {
	tests := []struct {
		name      string
		smiles    string
		rings     int
		sizes     []int
		aromatic  int
		component int
	}{
		{"cyclohexane", "C1CCCCC1", 1, []int{6}, 0, 1},
		{"benzene", "c1ccccc1", 1, []int{6}, 1, 1},
		{"kekule benzene", "C1=CC=CC=C1", 1, []int{6}, 1, 1},
		{"percent closure", "C%10CCCCC%10", 1, []int{6}, 0, 1},
		{"closure bond order", "C1CCCCC=1", 1, []int{6}, 0, 1},
		{"naphthalene", "c1ccc2ccccc2c1", 2, []int{6, 6}, 2, 1},
		{"kekule naphthalene", "C1=CC=C2C=CC=CC2=C1", 2, []int{6, 6}, 2, 1},
		{"biphenyl", "c1ccccc1-c1ccccc1", 2, []int{6, 6}, 2, 1},
		{"biphenyl implicit", "c1ccccc1c1ccccc1", 2, []int{6, 6}, 2, 1},
		{"pyrrole", "c1cc[nH]c1", 1, []int{5}, 1, 1},
		{"kekule pyrrole", "C1=CNC=C1", 1, []int{5}, 1, 1},
		{"furan", "c1ccoc1", 1, []int{5}, 1, 1},
		{"thiophene", "c1ccsc1", 1, []int{5}, 1, 1},
		{"pyridine", "c1ccncc1", 1, []int{6}, 1, 1},
		{"2-pyridone", "O=C1C=CC=CN1", 1, []int{6}, 1, 1},
		{"benzoquinone", "O=C1C=CC(=O)C=C1", 1, []int{6}, 0, 1},
		{"cyclooctatetraene", "C1=CC=CC=CC=C1", 1, []int{8}, 0, 1},
		{"cubane", "C12C3C4C1C5C2C3C45", 5, []int{4, 4, 4, 4, 4}, 0, 1},
		{"spiro", "C1CCC2(CC1)CC2", 2, []int{3, 6}, 0, 1},
		{"two fragments", "c1ccccc1.C1CC1", 2, []int{3, 6}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.smiles)
			require.Len(t, m.Rings(), tt.rings)
			sizes := make([]int, 0, tt.rings)
			aromatic := 0
			for _, r := range m.Rings() {
				sizes = append(sizes, r.Size())
				assert.Len(t, r.Bonds, r.Size())
				if m.IsRingAromatic(r) {
					aromatic++
				}
			}
			assert.ElementsMatch(t, tt.sizes, sizes)
			assert.Equal(t, tt.aromatic, aromatic)
			assert.Equal(t, tt.component, m.NumComponents())
		})
	}
}

func TestParse_AromaticHydrogens(t *testing.T) {
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, hCounts(mustParse(t, "c1ccccc1")))
	assert.Equal(t, []int{1, 1, 1, 0, 1, 1}, hCounts(mustParse(t, "c1ccncc1")))
	assert.Equal(t, []int{3, 0, 1, 1, 1, 1, 1}, hCounts(mustParse(t, "Cc1ccccc1")))
	assert.Equal(t, []int{1, 1, 1, 0, 1}, hCounts(mustParse(t, "c1ccoc1")))

	m := mustParse(t, "c1ccccc1c1ccccc1")
	inter := m.BondBetween(5, 6)
	require.GreaterOrEqual(t, inter, 0)
	assert.Equal(t, BondSingle, m.Bond(inter).Type)
	assert.False(t, m.Bond(inter).InRing)
}

func TestParse_KekuleBenzeneBondsBecomeAromatic(t *testing.T) {
	m := mustParse(t, "C1=CC=CC=C1")
	for _, b := range m.Bonds() {
		assert.Equal(t, BondAromatic, b.Type)
		assert.True(t, b.InRing)
	}
	for _, a := range m.Atoms() {
		assert.True(t, a.Aromatic)
		assert.Equal(t, 1, a.HCount)
	}
}

func TestParse_Distances(t *testing.T) {
	m := mustParse(t, "CCO.O")
	assert.Equal(t, 0, m.Distance(0, 0))
	assert.Equal(t, 1, m.Distance(0, 1))
	assert.Equal(t, 2, m.Distance(0, 2))
	assert.Equal(t, -1, m.Distance(0, 3))

	w := mustParse(t, "c1ccccc1").WeightedDistances()
	assert.InDelta(t, 2.0, w[0][3], 1e-12) // three aromatic bonds of 2/3
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"not_a_structure",
		"C1CC",
		"C(C",
		"C)C",
		"CC(",
		"C()C",
		"C=",
		"=C",
		"C==C",
		"(C)C",
		"X",
		"[Xx]",
		"[C",
		"[CH4+:x]",
		"C1C1",
		"C11",
		"C=1CCC#1",
		"CC.",
		".C",
		"c",
		"c1cccc1",
		"c1ccnc1",
		"C(C)(C)(C)(C)C",
		"O(C)(C)C",
		"%1C",
		"C%1",
	}
	for _, smiles := range bad {
		t.Run(smiles, func(t *testing.T) {
			m, err := Parse(smiles)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.IsCode(err, errors.CodeParseFailure))
		})
	}
}

func TestParse_TooLong(t *testing.T) {
	long := make([]byte, MaxSMILESLength+1)
	for i := range long {
		long[i] = 'C'
	}
	_, err := Parse(string(long))
	assert.Error(t, err)
}

func TestBondType_OrderAndString(t *testing.T) {
	assert.Equal(t, 1.0, BondSingle.Order())
	assert.Equal(t, 2.0, BondDouble.Order())
	assert.Equal(t, 3.0, BondTriple.Order())
	assert.Equal(t, 4.0, BondQuadruple.Order())
	assert.Equal(t, 1.5, BondAromatic.Order())
	assert.Equal(t, "aromatic", BondAromatic.String())
	assert.Equal(t, "unknown", BondType(0).String())
}

func TestLookupElement(t *testing.T) {
	e, ok := LookupElement("Cl")
	require.True(t, ok)
	assert.Equal(t, 17, e.AtomicNumber)
	_, ok = LookupElement("cl")
	assert.False(t, ok)

	e, ok = ElementByNumber(6)
	require.True(t, ok)
	assert.Equal(t, "C", e.Symbol)
}

//Personal.AI order the ending
