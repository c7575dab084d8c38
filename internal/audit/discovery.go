package audit

import (
	"context"
	"fmt"
	"strings"
)

// Source is the read-only view of one resource family that discovery needs.
//
//go:generate mockery --name=Source --output=./mocks
type Source interface {
	// Kind names the resource family in messages, e.g. "RDS instance".
	Kind() string

	// ListIDs returns the identifiers of every resource visible to the credential.
	ListIDs(ctx context.Context) ([]string, error)

	// DescribeAll returns a record for every visible resource.
	DescribeAll(ctx context.Context) ([]Record, error)

	// Describe returns records for the given identifiers, in that order.
	Describe(ctx context.Context, ids []string) ([]Record, error)
}

// Discover returns the working set of records for a run. With no ids it
// describes everything visible. With ids it first lists every identifier and
// fails with *NotFoundError for the first requested id that is missing, then
// describes only the requested ones.
func Discover(ctx context.Context, source Source, ids []string) ([]Record, error) {
	requested := dedupe(ids)
	if len(requested) == 0 {
		records, err := source.DescribeAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe %ss: %w", source.Kind(), err)
		}
		return records, nil
	}

	known, err := source.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %ss: %w", source.Kind(), err)
	}

	existing := make(map[string]bool, len(known))
	for _, id := range known {
		existing[id] = true
	}
	for _, id := range requested {
		if !existing[id] {
			return nil, &NotFoundError{Kind: source.Kind(), ID: id}
		}
	}

	records, err := source.Describe(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("describe %ss: %w", source.Kind(), err)
	}
	return records, nil
}

// dedupe trims ids, drops blanks and repeats, and keeps the first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
