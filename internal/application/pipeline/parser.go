package pipeline

import (
	"context"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/molecule"
	"github.com/turtacn/KeyIP-Descriptors/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Descriptors/pkg/errors"
)

// StructureParser turns a raw identifier into a structure.
type StructureParser interface {
	Parse(raw string) (*molecule.Molecule, error)
}

// SMILESParser is the StructureParser backed by the molecule package.
type SMILESParser struct{}

// Parse implements StructureParser.
func (SMILESParser) Parse(raw string) (*molecule.Molecule, error) {
	return molecule.Parse(raw)
}

// ParserAdapter applies a StructureParser to a batch. It never aborts on a
// bad record; failures are returned alongside the parsed records.
type ParserAdapter struct {
	parser StructureParser
	logger logging.Logger
}

// NewParserAdapter wraps p. A nil p uses SMILESParser.
func NewParserAdapter(p StructureParser, logger logging.Logger) *ParserAdapter {
	if p == nil {
		p = SMILESParser{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ParserAdapter{parser: p, logger: logger}
}

// ParseAll parses every record in order. It only returns early, with the
// context error, when ctx is cancelled.
func (a *ParserAdapter) ParseAll(ctx context.Context, records []InputRecord) ([]ParsedRecord, []ParseFailure, error) {
	parsed := make([]ParsedRecord, 0, len(records))
	var failures []ParseFailure
	for i, rec := range records {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		m, err := a.parseOne(rec.RawIdentifier)
		if err != nil {
			f := ParseFailure{Record: rec, Reason: err.Error(), Err: err}
			failures = append(failures, f)
			a.logger.Warn("dropping unparseable record",
				logging.Int("line", rec.Line),
				logging.String("smiles", rec.RawIdentifier),
				logging.String("name", rec.DisplayName),
				logging.Err(err),
				logging.Code(err))
			continue
		}
		parsed = append(parsed, ParsedRecord{Record: rec, Structure: m})
	}
	return parsed, failures, nil
}

func (a *ParserAdapter) parseOne(raw string) (m *molecule.Molecule, err error) {
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = errors.Newf(errors.CodeParseFailure, "parser panicked: %v", r)
		}
	}()
	m, err = a.parser.Parse(raw)
	if err != nil {
		if !errors.IsCode(err, errors.CodeParseFailure) {
			err = errors.Wrap(err, errors.CodeParseFailure, "structure could not be parsed")
		}
		return nil, err
	}
	if m == nil {
		return nil, errors.Newf(errors.CodeParseFailure, "parser returned no structure for %q", raw)
	}
	return m, nil
}

//Personal.AI order the ending
