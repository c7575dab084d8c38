package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cloudaudit/internal/audit"
)

// OutputFormatType defines the file formats of the audit report.
type OutputFormatType string

const (
	// OutputFormatTypeCSV represents delimited output, one row per resource
	OutputFormatTypeCSV OutputFormatType = "CSV"
	// OutputFormatTypeJSON represents an array of header-keyed objects
	OutputFormatTypeJSON OutputFormatType = "JSON"
)

// ParseFormat converts a user-supplied format name. Empty means CSV.
func ParseFormat(s string) (OutputFormatType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(OutputFormatTypeCSV):
		return OutputFormatTypeCSV, nil
	case string(OutputFormatTypeJSON):
		return OutputFormatTypeJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use csv or json)", s)
	}
}

// Extension returns the file extension of the format, including the dot.
func (f OutputFormatType) Extension() string {
	if f == OutputFormatTypeJSON {
		return ".json"
	}
	return ".csv"
}

// Destination joins dir and file, swapping the file's extension to match format.
func Destination(dir, file string, format OutputFormatType) string {
	ext := filepath.Ext(file)
	if ext != format.Extension() {
		file = strings.TrimSuffix(file, ext) + format.Extension()
	}
	return filepath.Join(dir, file)
}

// FormatValue renders one cell as text. Booleans are lowercase, integers are
// decimal, lists and maps are compact JSON and Unavailable cells render their
// sentinel.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case audit.Unavailable:
		return val.Sentinel
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// jsonValue maps a cell to the value written in JSON output.
func jsonValue(v any) any {
	if u, ok := v.(audit.Unavailable); ok {
		return u.Sentinel
	}
	return v
}
