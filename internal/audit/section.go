package audit

// Field declares one report column. Unavailable overrides the table's default
// sentinel for this column when the record does not carry the field.
type Field struct {
	Name        string
	Unavailable string
}

// Extractor maps one record to the fields of a section. Extractors must be
// total and side-effect free; a field they cannot read is simply left out of
// the returned Values.
type Extractor func(record Record) Values

// Section is a named, independently selectable group of audit fields.
type Section struct {
	ID      string
	Fields  []Field
	Extract Extractor
}

// NewSection declares a section whose extractor copies the named fields
// verbatim from the record, preserving their types.
func NewSection(id string, fields ...Field) Section {
	return Section{
		ID:      id,
		Fields:  fields,
		Extract: CopyFields(fields...),
	}
}

// Columns returns the section's column names in declared order.
func (s Section) Columns() []string {
	cols := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		cols[i] = f.Name
	}
	return cols
}

// CopyFields returns an extractor that copies the given fields from the record.
func CopyFields(fields ...Field) Extractor {
	return func(record Record) Values {
		out := make(Values, len(fields))
		for _, f := range fields {
			if v, ok := record.Lookup(f.Name); ok {
				out[f.Name] = v
			}
		}
		return out
	}
}

// Fields is shorthand for declaring fields that use the default sentinel.
func Fields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n}
	}
	return fields
}
