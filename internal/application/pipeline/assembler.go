package pipeline

import "github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"

// Default identity column headers.
const (
	DefaultNameColumn       = "Name"
	DefaultIdentifierColumn = "SMILES"
)

// AssemblerOptions names the identity columns.
type AssemblerOptions struct {
	NameColumn       string
	IdentifierColumn string
}

func (o AssemblerOptions) withDefaults() AssemblerOptions {
	if o.NameColumn == "" {
		o.NameColumn = DefaultNameColumn
	}
	if o.IdentifierColumn == "" {
		o.IdentifierColumn = DefaultIdentifierColumn
	}
	return o
}

// Columns returns the output header for registry: name, identifier, then
// descriptor names in registry order.
func Columns(registry *descriptor.Registry, opts AssemblerOptions) []string {
	opts = opts.withDefaults()
	cols := make([]string, 0, 2+registry.Len())
	cols = append(cols, opts.NameColumn, opts.IdentifierColumn)
	return append(cols, registry.Names()...)
}

// AssembleTable builds the output table. Rows keep their order.
func AssembleTable(registry *descriptor.Registry, rows []ResultRow, opts AssemblerOptions) *OutputTable {
	if rows == nil {
		rows = []ResultRow{}
	}
	return &OutputTable{Columns: Columns(registry, opts), Rows: rows}
}

//Personal.AI order the ending
