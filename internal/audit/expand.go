package audit

// Expander returns the sub-resources of a record (e.g. the subnets of a
// network). Each returned record carries only the sub-resource's own fields.
type Expander func(record Record) []Record

// Flatten turns parents into one record per sub-resource. The parent's fields
// are repeated on every sub-resource record; sub-resource fields win on a key
// clash. A parent without sub-resources is kept as a single record, so its
// sub-resource columns end up holding the sentinel.
func Flatten(records []Record, expand Expander) []Record {
	if expand == nil {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, parent := range records {
		children := expand(parent)
		if len(children) == 0 {
			out = append(out, parent)
			continue
		}
		for _, child := range children {
			merged := make(Record, len(parent)+len(child))
			for k, v := range parent {
				merged[k] = v
			}
			for k, v := range child {
				merged[k] = v
			}
			out = append(out, merged)
		}
	}
	return out
}
