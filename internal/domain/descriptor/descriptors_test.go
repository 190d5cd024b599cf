package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func evaluate(t *testing.T, r *Registry, smiles, name string) (float64, error) {
	t.Helper()
	m, err := molecule.Parse(smiles)
	require.NoError(t, err, smiles)
	e, ok := r.Lookup(name)
	require.True(t, ok, name)
	return e.Evaluate(m)
}

func assertDescriptors(t *testing.T, smiles string, want map[string]float64) {
	t.Helper()
	r, err := Default(Options{})
	require.NoError(t, err)
	for name, expected := range want {
		t.Run(smiles+"/"+name, func(t *testing.T) {
			v, err := evaluate(t, r, smiles, name)
			require.NoError(t, err)
			assert.InDelta(t, expected, v, 1e-3)
		})
	}
}

func TestDescriptors_Benzene(t *testing.T) {
	assertDescriptors(t, "c1ccccc1", map[string]float64{
		"MolWt":               78.114,
		"HeavyAtomMolWt":      72.066,
		"ExactMolWt":          78.04695019242,
		"HeavyAtomCount":      6,
		"NumAtoms":            12,
		"NumHeteroatoms":      0,
		"NumValenceElectrons": 30,
		"FractionCSP3":        0,
		"HallKierAlpha":       -0.78,
		"Kappa1":              3.41157,
		"Kappa2":              1.60577,
		"Kappa3":              0.84474,
		"Chi0":                4.242640687,
		"Chi1":                3.0,
		"Chi0v":               3.46410161,
		"Chi1v":               2.0,
		"BalabanJ":            3.0,
		"WienerIndex":         27,
		"Zagreb1":             24,
		"Zagreb2":             24,
		"MolLogP":             1.6866,
		"MolMR":               26.442,
		"TPSA":                0,
		"RingCount":           1,
		"NumAromaticRings":    1,
		"NumAliphaticRings":   0,
		"fr_benzene":          1,
		"NumRotatableBonds":   0,
	})
}

func TestDescriptors_Ethanol(t *testing.T) {
	assertDescriptors(t, "CCO", map[string]float64{
		"MolWt":               46.069,
		"ExactMolWt":          46.04186481198,
		"HeavyAtomCount":      3,
		"NumAtoms":            9,
		"NumHeteroatoms":      1,
		"NumValenceElectrons": 20,
		"NOCount":             1,
		"NHOHCount":           1,
		"FractionCSP3":        1,
		"HallKierAlpha":       -0.04,
		"Chi0":                2.70710678,
		"Chi1":                1.41421356,
		"Chi0v":               2.15432038,
		"Chi1v":               1.02333455,
		"BalabanJ":            1.6329932,
		"WienerIndex":         4,
		"Zagreb1":             6,
		"Zagreb2":             4,
		"MolLogP":             -0.0014,
		"MolMR":               12.7598,
		"TPSA":                20.23,
		"NumHDonors":          1,
		"NumHAcceptors":       1,
		"fr_Al_OH":            1,
		"fr_Ar_OH":            0,
		"RingCount":           0,
	})
}

func TestDescriptors_FunctionalGroups(t *testing.T) {
	tests := []struct {
		smiles string
		want   map[string]float64
	}{
		{"CC(=O)O", map[string]float64{"TPSA": 37.3, "MolLogP": 0.0909, "NumHDonors": 1, "NumHAcceptors": 1, "fr_C_O": 1, "fr_Al_OH": 0}},
		{"CC(N)=O", map[string]float64{"NumHDonors": 1, "NumHAcceptors": 1, "TPSA": 43.09}},
		{"Nc1ccccc1", map[string]float64{"NumHDonors": 1, "NumHAcceptors": 1, "fr_NH2": 1, "TPSA": 26.02}},
		{"Oc1ccccc1", map[string]float64{"fr_Ar_OH": 1, "fr_Al_OH": 0}},
		{"c1ccncc1", map[string]float64{"NumHAcceptors": 1, "NumAromaticHeterocycles": 1, "TPSA": 12.89}},
		{"c1cc[nH]c1", map[string]float64{"NumHDonors": 1, "NumHAcceptors": 0, "TPSA": 15.79}},
		{"CC#N", map[string]float64{"fr_nitrile": 1, "TPSA": 23.79, "NumRotatableBonds": 0}},
		{"CCOCC", map[string]float64{"fr_ether": 1, "NumRotatableBonds": 2, "TPSA": 9.23}},
		{"CCCC", map[string]float64{"NumRotatableBonds": 1, "FractionCSP3": 1}},
		{"CC(=O)NC", map[string]float64{"NumRotatableBonds": 0}},
		{"CCCC(F)(F)F", map[string]float64{"NumRotatableBonds": 1, "fr_halogen": 3, "NumHeteroatoms": 3}},
		{"C1CCCCC1", map[string]float64{"NumSaturatedCarbocycles": 1, "NumAliphaticCarbocycles": 1, "NumAromaticRings": 0}},
		{"C1CCOC1", map[string]float64{"NumSaturatedHeterocycles": 1, "NumAliphaticHeterocycles": 1}},
		{"c1ccc2ccccc2c1", map[string]float64{"RingCount": 2, "NumAromaticCarbocycles": 2, "fr_benzene": 2}},
		{"[NH4+]", map[string]float64{"FormalCharge": 1, "NumValenceElectrons": 8, "NumHDonors": 1}},
		{"[CH3]", map[string]float64{"NumRadicalElectrons": 1}},
	}
	for _, tt := range tests {
		assertDescriptors(t, tt.smiles, tt.want)
	}
}

func TestDescriptors_UndefinedValuesFail(t *testing.T) {
	r, err := Default(Options{})
	require.NoError(t, err)

	tests := []struct {
		smiles string
		name   string
	}{
		{"C", "Kappa1"},
		{"C", "Kappa2"},
		{"CC", "Kappa3"},
		{"CCO.O", "BalabanJ"},
		{"CCO.O", "WienerIndex"},
	}
	for _, tt := range tests {
		t.Run(tt.smiles+"/"+tt.name, func(t *testing.T) {
			_, err := evaluate(t, r, tt.smiles, tt.name)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeDescriptorFailure))
		})
	}
}

//Personal.AI order the ending
