package audit

import (
	"sort"
	"strings"
)

// Selection is the set of requested section ids. An empty selection means
// every section is enabled.
type Selection map[string]struct{}

// NewSelection builds a selection from section ids. Blank ids are ignored.
func NewSelection(ids ...string) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		if n := normalizeSectionID(id); n != "" {
			sel[n] = struct{}{}
		}
	}
	return sel
}

// IsAll reports whether the selection enables every section.
func (s Selection) IsAll() bool {
	return len(s) == 0
}

// Has reports whether id was requested.
func (s Selection) Has(id string) bool {
	_, ok := s[normalizeSectionID(id)]
	return ok
}

// IDs returns the requested ids sorted.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Select returns the sections to run. An empty selection returns available
// unchanged. Otherwise the requested subset is returned in available's
// declared order, never in request order. Unknown ids are an error.
func Select(available []Section, requested Selection) ([]Section, error) {
	if requested.IsAll() {
		return available, nil
	}

	known := make(map[string]bool, len(available))
	for _, s := range available {
		known[normalizeSectionID(s.ID)] = true
	}

	var unknown []string
	for _, id := range requested.IDs() {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, &InvalidSelectionError{Unknown: unknown, Available: sectionIDs(available)}
	}

	selected := make([]Section, 0, len(requested))
	for _, s := range available {
		if requested.Has(s.ID) {
			selected = append(selected, s)
		}
	}
	return selected, nil
}

func sectionIDs(sections []Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

// normalizeSectionID folds case and drops "-", "_" and spaces, so "Flow_Logs",
// "flow-logs" and "flow logs" all name the "flowlogs" section.
func normalizeSectionID(id string) string {
	return sectionSeparators.Replace(strings.ToLower(strings.TrimSpace(id)))
}

var sectionSeparators = strings.NewReplacer("-", "", "_", "", " ", "")
