package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"

	"cloudaudit/internal/audit"
)

// setString stores v under key unless the SDK left it nil.
func setString(record audit.Record, key string, v *string) {
	if v != nil {
		record[key] = aws.ToString(v)
	}
}

func setBool(record audit.Record, key string, v *bool) {
	if v != nil {
		record[key] = aws.ToBool(v)
	}
}

func setInt32(record audit.Record, key string, v *int32) {
	if v != nil {
		record[key] = aws.ToInt32(v)
	}
}

// orderByID returns records in the order of ids. An id without a record
// yields a *audit.NotFoundError.
func orderByID(kind, key string, records []audit.Record, ids []string) ([]audit.Record, error) {
	byID := make(map[string]audit.Record, len(records))
	for _, r := range records {
		byID[r.String(key)] = r
	}

	ordered := make([]audit.Record, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, &audit.NotFoundError{Kind: kind, ID: id}
		}
		ordered = append(ordered, r)
	}
	return ordered, nil
}
