package audit

// Record is one resource as returned by a provider: one database instance,
// one network, one bucket. The pipeline only reads from it. An absent key
// means the resource does not expose that attribute.
type Record map[string]any

// Lookup returns the value stored under field and whether it was present.
// A nil value counts as absent.
func (r Record) Lookup(field string) (any, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the string value of field, or "" when it is absent or not a string.
func (r Record) String(field string) string {
	v, ok := r.Lookup(field)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Values is the sub-record produced by a section extractor.
type Values map[string]any

// Unavailable marks a cell whose field could not be read from the record.
// Sentinel is the literal written to the report in its place.
type Unavailable struct {
	Sentinel string
}

// String implements fmt.Stringer.
func (u Unavailable) String() string {
	return u.Sentinel
}

// DefaultSentinel is written for any unavailable field without its own override.
const DefaultSentinel = "N/A"

// Table is the assembled report. Header is fixed before any row is appended
// and every row holds exactly len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]any
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.Header)
}

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}
