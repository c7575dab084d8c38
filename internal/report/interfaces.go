package report

import (
	"io"

	"cloudaudit/internal/audit"
)

// IExporter writes an assembled audit table to a file
//
//go:generate mockery --name=IExporter --output=./mocks
type IExporter interface {
	Export(table *audit.Table, destination string, format OutputFormatType) error
}

// IPrinter renders the human-readable run summary
//
//go:generate mockery --name=IPrinter --output=./mocks
type IPrinter interface {
	PrintSummary(w io.Writer, summary Summary) error
}
