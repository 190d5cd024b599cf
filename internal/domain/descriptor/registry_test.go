package descriptor

import (
	stderrors "errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

func constant(v float64) Func {
	return func(*molecule.Molecule) (float64, error) { return v, nil }
}

func TestCatalog_NamesUniqueAndNotDenied(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range Catalog() {
		assert.False(t, seen[e.Name], "duplicate %s", e.Name)
		seen[e.Name] = true
		assert.NotNil(t, e.Compute, e.Name)
	}
	for _, n := range Denylist {
		assert.False(t, seen[n])
	}
}

func TestNewRegistry_FiltersAndSorts(t *testing.T) {
	entries := []Entry{
		{Name: "Zeta", Compute: constant(1)},
		{Name: "setupAUTOCorrDescriptors", Compute: constant(2)},
		{Name: "Alpha", Compute: constant(3)},
		{Name: "Zeta", Compute: constant(4)},
		{Name: "PropertyFunctor", Compute: constant(5)},
		{Name: "", Compute: constant(6)},
		{Name: "NoFunc"},
	}
	r, err := NewRegistry("test", entries, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, r.Names())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "test", r.Version())

	zeta, ok := r.Lookup("Zeta")
	require.True(t, ok)
	v, err := zeta.Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "first registration wins")

	_, ok = r.Lookup("PropertyFunctor")
	assert.False(t, ok)
}

func TestDefault_OrderIsSorted(t *testing.T) {
	r, err := Default(Options{})
	require.NoError(t, err)
	names := r.Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, len(Catalog()), r.Len())
	assert.Equal(t, CatalogVersion, r.Version())
}

func TestNewRegistry_IncludeExclude(t *testing.T) {
	r, err := Default(Options{Include: []string{"TPSA", "MolWt", "Chi0"}, Exclude: []string{"Chi0"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"MolWt", "TPSA"}, r.Names())

	_, err = Default(Options{Include: []string{"NoSuchDescriptor"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestNewRegistry_Empty(t *testing.T) {
	_, err := NewRegistry("test", nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeRegistryEmpty))

	_, err = NewRegistry("test", []Entry{{Name: "PropertyFunctor", Compute: constant(1)}}, Options{})
	assert.ErrorIs(t, err, errors.ErrRegistryEmpty)

	var all []string
	for _, e := range Catalog() {
		all = append(all, e.Name)
	}
	_, err = Default(Options{Exclude: all})
	assert.True(t, errors.IsCode(err, errors.CodeRegistryEmpty))
}

func TestRegistry_Fingerprint(t *testing.T) {
	a, err := NewRegistry("v1", []Entry{{Name: "A", Compute: constant(1)}, {Name: "B", Compute: constant(1)}}, Options{})
	require.NoError(t, err)
	b, err := NewRegistry("v1", []Entry{{Name: "B", Compute: constant(2)}, {Name: "A", Compute: constant(2)}}, Options{})
	require.NoError(t, err)
	c, err := NewRegistry("v2", []Entry{{Name: "A", Compute: constant(1)}, {Name: "B", Compute: constant(1)}}, Options{})
	require.NoError(t, err)
	d, err := NewRegistry("v1", []Entry{{Name: "A", Compute: constant(1)}}, Options{})
	require.NoError(t, err)

	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	r, err := NewRegistry("v1", []Entry{{Name: "A", Compute: constant(1)}}, Options{})
	require.NoError(t, err)
	es := r.Entries()
	es[0].Name = "mutated"
	assert.Equal(t, "A", r.Entry(0).Name)
}

func TestEntry_Evaluate(t *testing.T) {
	m, err := molecule.Parse("C")
	require.NoError(t, err)

	tests := []struct {
		name    string
		compute Func
		want    float64
		wantErr bool
	}{
		{"ok", constant(2.5), 2.5, false},
		{"error", func(*molecule.Molecule) (float64, error) { return 0, stderrors.New("boom") }, 0, true},
		{"nan", constant(math.NaN()), 0, true},
		{"inf", constant(math.Inf(-1)), 0, true},
		{"panic", func(*molecule.Molecule) (float64, error) { panic("index out of range") }, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Entry{Name: tt.name, Compute: tt.compute}.Evaluate(m)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.CodeDescriptorFailure))
				assert.True(t, math.IsNaN(v))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

//Personal.AI order the ending
