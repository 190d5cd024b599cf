// Package descriptor holds the static, versioned catalog of molecular
// descriptors and the Registry that selects, orders and evaluates them.
//
// The catalog is a plain table of name -> function. A Registry is built once
// at start-up from that table: denylisted names are dropped, an optional
// allow-list is applied, names are de-duplicated and sorted so that output
// columns are identical across runs of the same catalog version.
package descriptor

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// Func computes one numeric descriptor for a parsed structure.
type Func func(m *molecule.Molecule) (float64, error)

// Entry is one named descriptor.
type Entry struct {
	Name        string
	Description string
	Compute     Func
}

// Evaluate runs the descriptor and converts panics and non-finite results
// into DescriptorFailure errors.
func (e Entry) Evaluate(m *molecule.Molecule) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = math.NaN()
			err = errors.Newf(errors.CodeDescriptorFailure, "descriptor %s panicked: %v", e.Name, r)
		}
	}()
	value, err = e.Compute(m)
	if err != nil {
		return math.NaN(), errors.Wrap(err, errors.CodeDescriptorFailure, "descriptor "+e.Name+" failed")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return math.NaN(), errors.Newf(errors.CodeDescriptorFailure, "descriptor %s returned %v", e.Name, value)
	}
	return value, nil
}

// Denylist names entries that are never registered. They are helper objects
// of the reference toolkit rather than descriptors.
var Denylist = []string{"setupAUTOCorrDescriptors", "PropertyFunctor"}

// Options narrows the catalog when building a Registry.
type Options struct {
	// Include, when non-empty, keeps only the named descriptors.
	Include []string
	// Exclude drops the named descriptors in addition to Denylist.
	Exclude []string
}

// Registry is an ordered, de-duplicated, immutable list of descriptors.
type Registry struct {
	version string
	entries []Entry
	index   map[string]int
}

// NewRegistry builds a registry from entries. It fails with RegistryEmpty
// when nothing survives filtering and with InvalidParam when Include names
// an unknown descriptor.
func NewRegistry(version string, entries []Entry, opts Options) (*Registry, error) {
	denied := make(map[string]bool, len(Denylist)+len(opts.Exclude))
	for _, n := range Denylist {
		denied[n] = true
	}
	for _, n := range opts.Exclude {
		denied[strings.TrimSpace(n)] = true
	}

	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.Name] = true
	}
	var include map[string]bool
	if len(opts.Include) > 0 {
		include = make(map[string]bool, len(opts.Include))
		for _, n := range opts.Include {
			n = strings.TrimSpace(n)
			if !known[n] {
				return nil, errors.InvalidParam("unknown descriptor in include list").WithDetail(n)
			}
			include[n] = true
		}
	}

	seen := make(map[string]bool, len(entries))
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.Compute == nil || denied[e.Name] || seen[e.Name] {
			continue
		}
		if include != nil && !include[e.Name] {
			continue
		}
		seen[e.Name] = true
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.CodeRegistryEmpty, "descriptor registry is empty").
			WithDetailf("catalog %s has %d entries, none selected", version, len(entries))
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	index := make(map[string]int, len(kept))
	for i, e := range kept {
		index[e.Name] = i
	}
	return &Registry{version: version, entries: kept, index: index}, nil
}

// Default builds a registry over the built-in catalog.
func Default(opts Options) (*Registry, error) {
	return NewRegistry(CatalogVersion, Catalog(), opts)
}

// Version returns the catalog version the registry was built from.
func (r *Registry) Version() string { return r.version }

// Len returns the number of descriptors.
func (r *Registry) Len() int { return len(r.entries) }

// Entry returns descriptor i in registry order.
func (r *Registry) Entry(i int) Entry { return r.entries[i] }

// Entries returns a copy of all descriptors in registry order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the descriptor names in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// Lookup finds a descriptor by name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Fingerprint identifies the version and column layout. Cached results are
// only reusable between registries with the same fingerprint.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n", r.version)
	for _, e := range r.entries {
		fmt.Fprintf(h, "%s\n", e.Name)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

//Personal.AI order the ending
