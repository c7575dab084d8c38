package audit

import (
	"errors"
	"fmt"
	"strings"
)

// Terminal failure classes reported by providers. Provider errors wrap one
// of these so callers can branch with errors.Is.
var (
	// ErrAuthentication means the credential is invalid or expired.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization means the credential lacks permission for the call.
	ErrAuthorization = errors.New("access denied")

	// ErrDuplicateColumn means two sections declare the same field.
	ErrDuplicateColumn = errors.New("duplicate report column")
)

// NotFoundError is returned by Discover when an explicitly requested
// identifier is not among the resources visible to the credential.
type NotFoundError struct {
	// Kind names the resource family (e.g. "RDS instance")
	Kind string

	// ID is the identifier that could not be found
	ID string
}

// Error returns the error message
func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("resource %q does not exist in the current account or region", e.ID)
	}
	return fmt.Sprintf("%s %q does not exist in the current account or region", e.Kind, e.ID)
}

// InvalidSelectionError is returned by Select when a requested section id
// is not declared by the audit.
type InvalidSelectionError struct {
	Unknown   []string
	Available []string
}

// Error returns the error message
func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("unknown section(s) %s (available: %s)",
		strings.Join(e.Unknown, ", "), strings.Join(e.Available, ", "))
}

// FieldUnavailableError describes a cell that could not be filled because the
// record does not expose the field. It never aborts a run: the assembler logs
// it and writes the sentinel instead.
type FieldUnavailableError struct {
	Section  string
	Field    string
	Resource string
}

// Error returns the error message
func (e *FieldUnavailableError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("field %s (section %s) unavailable for %s", e.Field, e.Section, e.Resource)
	}
	return fmt.Sprintf("field %s (section %s) unavailable", e.Field, e.Section)
}

// IsTerminal reports whether err must abort the whole run.
func IsTerminal(err error) bool {
	if err == nil {
		return false
	}
	var fu *FieldUnavailableError
	return !errors.As(err, &fu)
}
