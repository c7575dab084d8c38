package audit

import (
	"errors"
	"fmt"

	"cloudaudit/pkg/logging"
)

// Assembler merges identifying fields and selected section outputs into a Table.
type Assembler struct {
	logger   logging.Logger
	sentinel string
}

// NewAssembler creates an assembler. An empty sentinel falls back to DefaultSentinel.
func NewAssembler(logger logging.Logger, sentinel string) *Assembler {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Assembler{
		logger:   logger,
		sentinel: sentinel,
	}
}

// Assemble builds the report table. Columns are the identifying fields
// followed by each section's fields in the order given. Rows follow record
// order. A field missing from a record never fails the run: it is logged and
// the cell holds an Unavailable sentinel.
func (a *Assembler) Assemble(records []Record, identifying Section, sections []Section) (*Table, error) {
	all := append([]Section{identifying}, sections...)

	header, err := buildHeader(all)
	if err != nil {
		return nil, err
	}

	table := &Table{
		Header: header,
		Rows:   make([][]any, 0, len(records)),
	}

	for _, record := range records {
		resource := resourceName(record, identifying)
		row := make([]any, 0, len(header))
		for _, section := range all {
			values := section.Extract(record)
			for _, field := range section.Fields {
				if v, ok := values[field.Name]; ok && v != nil {
					row = append(row, v)
					continue
				}
				a.logger.Warn("%s", &FieldUnavailableError{Section: section.ID, Field: field.Name, Resource: resource})
				row = append(row, Unavailable{Sentinel: a.sentinelFor(field)})
			}
		}
		table.Rows = append(table.Rows, row)
	}

	a.logger.Debug("Assembled %d rows with %d columns", len(table.Rows), len(header))
	return table, nil
}

func (a *Assembler) sentinelFor(field Field) string {
	if field.Unavailable != "" {
		return field.Unavailable
	}
	return a.sentinel
}

// Header returns the columns Assemble would produce without building rows.
func Header(identifying Section, sections []Section) ([]string, error) {
	return buildHeader(append([]Section{identifying}, sections...))
}

func buildHeader(sections []Section) ([]string, error) {
	seen := make(map[string]string)
	var header []string
	for _, s := range sections {
		if s.Extract == nil {
			return nil, fmt.Errorf("section %q has no extractor", s.ID)
		}
		for _, f := range s.Fields {
			if owner, dup := seen[f.Name]; dup {
				return nil, fmt.Errorf("%w: %s declared by %q and %q", ErrDuplicateColumn, f.Name, owner, s.ID)
			}
			seen[f.Name] = s.ID
			header = append(header, f.Name)
		}
	}
	if len(header) == 0 {
		return nil, errors.New("report has no columns")
	}
	return header, nil
}

// resourceName picks the first identifying value for log messages.
func resourceName(record Record, identifying Section) string {
	for _, f := range identifying.Fields {
		if v, ok := record.Lookup(f.Name); ok {
			return fmt.Sprint(v)
		}
	}
	return ""
}
